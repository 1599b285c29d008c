package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lox/wordscramble/internal/client"
	"github.com/lox/wordscramble/internal/config"
	"github.com/lox/wordscramble/internal/tui"
)

func uiLogLevel(cfg *config.Config) string { return cfg.UI.LogLevel }

// PlayCmd plays a local game
type PlayCmd struct {
	Root string `help:"Play this root word instead of a random one"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, level, err := loadConfig(g, uiLogLevel)
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := newLogger(logFile, level)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	session, err := a.newSession(c.Root)
	if err != nil {
		return err
	}
	defer session.End()

	logger.Info("Starting game", "session", session.ID(), "root", session.RootWord())
	return tui.Run(tui.Local(session), logger)
}

// ConnectCmd plays a game hosted by a wordscramble server
type ConnectCmd struct {
	URL     string        `default:"ws://localhost:8080/ws" help:"WebSocket server URL"`
	Timeout time.Duration `default:"10s" help:"Connection timeout"`
}

func (c *ConnectCmd) Run(g *Globals) error {
	cfg, level, err := loadConfig(g, uiLogLevel)
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := newLogger(logFile, level)

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	session, err := client.Dial(ctx, c.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() { _ = session.Close() }()

	return tui.Run(session, logger)
}
