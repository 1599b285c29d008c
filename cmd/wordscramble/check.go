package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/wordscramble/internal/config"
	"github.com/lox/wordscramble/internal/game"
)

// ErrRejected is returned by check when at least one word was rejected.
var ErrRejected = errors.New("words rejected")

func cliLogLevel(*config.Config) string { return "warn" }

// CheckCmd runs words through a session without the TUI
type CheckCmd struct {
	Root  string   `required:"" help:"Root word to check against"`
	Words []string `arg:"" help:"Words to submit, in order"`
}

func (c *CheckCmd) Run(g *Globals) error {
	cfg, level, err := loadConfig(g, cliLogLevel)
	if err != nil {
		return err
	}
	logger := newLogger(g.Stderr, level)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	session, err := a.newSession(c.Root)
	if err != nil {
		return err
	}
	defer session.End()

	rejected := 0
	for _, raw := range c.Words {
		out := session.Submit(raw)
		_, _ = fmt.Fprintln(g.Stdout, formatOutcome(raw, out))
		if out.Status == game.StatusRejected {
			rejected++
		}
	}

	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d", ErrRejected, rejected, len(c.Words))
	}
	return nil
}

func formatOutcome(raw string, out game.Outcome) string {
	switch out.Status {
	case game.StatusAccepted:
		return fmt.Sprintf("%s\taccepted", out.Word)
	case game.StatusRejected:
		return fmt.Sprintf("%s\t%s\t%s: %s", out.Word, out.Rejection.Reason, out.Rejection.Title, out.Rejection.Message)
	default:
		return fmt.Sprintf("%q\tignored", strings.TrimSpace(raw))
	}
}

// PickCmd prints a root word
type PickCmd struct{}

func (c *PickCmd) Run(g *Globals) error {
	cfg, level, err := loadConfig(g, cliLogLevel)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, newLogger(g.Stderr, level))
	if err != nil {
		return err
	}

	root, err := a.picker.PickRootWord()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.Stdout, root)
	return nil
}
