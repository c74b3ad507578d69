package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/coquette/internal/config"
	"github.com/vovakirdan/coquette/internal/core"
	"github.com/vovakirdan/coquette/internal/metrics"
	"github.com/vovakirdan/coquette/internal/registry"
	"github.com/vovakirdan/coquette/internal/storage"
)

// newLogger builds the process logger. Full-screen commands pass
// interactive so that, without --log-file, logs do not corrupt the display.
// The returned close function must be called on exit.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "coquette",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadEngineConfig reads the engine config and applies command-line overrides.
func loadEngineConfig() (config.EngineConfig, error) {
	ec, err := config.LoadEngine(flagConfig)
	if err != nil {
		return ec, err
	}
	if flagFPS > 0 {
		ec.TickRate = flagFPS
	}
	if flagSeed != 0 {
		ec.Seed = flagSeed
	}
	return ec, ec.Validate()
}

// terminalRuntime sizes the runtime config to the terminal, if there is one.
func terminalRuntime(ec config.EngineConfig) core.RuntimeConfig {
	cfg := ec.Runtime()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	return cfg
}

// openStore opens the database, or returns nil with a warning so that games
// still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not be saved", "err", err)
		return nil
	}
	return store
}

// checkGame returns an error naming the list command for unknown games.
func checkGame(gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'coquette list' to see available games)", gameID)
	}
	return nil
}

// startMetrics serves Prometheus metrics on addr until ctx is done.
// It returns nil when addr is empty.
func startMetrics(ctx context.Context, addr string, logger *log.Logger) *metrics.Metrics {
	if addr == "" {
		return nil
	}
	m := metrics.New()
	go func() {
		if err := m.Serve(ctx, addr, logger); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	return m
}
