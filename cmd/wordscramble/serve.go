package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/wordscramble/internal/config"
	"github.com/lox/wordscramble/internal/game"
	"github.com/lox/wordscramble/internal/server"
)

// ServeCmd hosts one game per websocket connection
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, level, err := loadConfig(g, func(cfg *config.Config) string { return cfg.Server.LogLevel })
	if err != nil {
		return err
	}
	logger := newLogger(g.Stderr, level)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.ServerAddress()
	}

	srv := server.NewServer(func() (*game.Session, error) {
		return a.newSession("")
	}, logger, quartz.NewReal())

	ctx := setupSignalHandler(logger)
	return srv.Serve(ctx, addr)
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
		cancel()
	}()

	return ctx
}
