package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/wordscramble/internal/config"
	"github.com/lox/wordscramble/internal/dictionary"
	"github.com/lox/wordscramble/internal/game"
	"github.com/lox/wordscramble/internal/randutil"
	"github.com/lox/wordscramble/internal/words"
)

// app holds everything a command needs to start sessions.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	registry *dictionary.Registry
	picker   *words.Picker
	language string
}

// loadConfig reads and validates the config file, applying flag overrides.
// levelFor picks which config log level the command defaults to.
func loadConfig(g *Globals, levelFor func(*config.Config) string) (*config.Config, log.Level, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, 0, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, 0, err
	}
	if g.NoColor {
		cfg.UI.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	levelName := levelFor(cfg)
	if g.LogLevel != "" {
		levelName = g.LogLevel
	}
	level, err := config.ParseLogLevel(levelName)
	if err != nil {
		return nil, 0, err
	}
	return cfg, level, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// newApp loads the dictionary and root word list described by cfg.
func newApp(cfg *config.Config, logger *log.Logger) (*app, error) {
	lang, err := dictionary.BaseLanguage(cfg.Game.Language)
	if err != nil {
		return nil, err
	}

	set, err := loadDictionary(cfg.Game.Dictionary, lang)
	if err != nil {
		return nil, err
	}
	registry := dictionary.NewRegistry()
	if err := registry.Register(lang, set); err != nil {
		return nil, err
	}
	logger.Debug("Dictionary loaded", "language", lang, "words", set.Len())

	var src *words.Source
	var loadErr error
	if cfg.Game.WordList == "" {
		src = words.Embedded()
	} else {
		src, loadErr = words.LoadFile(cfg.Game.WordList)
	}
	if loadErr != nil {
		logger.Warn("Root word list unavailable", "path", cfg.Game.WordList, "error", loadErr)
	} else {
		logger.Debug("Root words loaded", "source", src.Name(), "words", src.Len())
	}

	rng, seed, err := randutil.FromSeed(cfg.Game.Seed)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using seed", "seed", seed)

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		picker:   words.NewPicker(src, loadErr, cfg.Policy(), cfg.Game.FallbackWord, rng, logger),
		language: cfg.Game.Language,
	}, nil
}

func loadDictionary(path, lang string) (*dictionary.Set, error) {
	if path != "" {
		return dictionary.LoadFile(path, lang)
	}
	if lang != dictionary.DefaultLanguage {
		return nil, fmt.Errorf("no bundled dictionary for language %q; set game.dictionary", lang)
	}
	return dictionary.Embedded()
}

// newSession starts a session on root, or on a freshly picked root word when
// root is empty.
func (a *app) newSession(root string, opts ...game.Option) (*game.Session, error) {
	if root == "" {
		var err error
		if root, err = a.picker.PickRootWord(); err != nil {
			return nil, err
		}
	}
	opts = append([]game.Option{
		game.WithLanguage(a.language),
		game.WithLogger(a.logger),
	}, opts...)
	return game.NewSession(root, a.registry, opts...)
}

// openLogFile opens the log file used while the TUI owns the terminal.
func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
