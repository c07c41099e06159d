// Package cli provides common CLI initialization utilities.
// This package consolidates the startup sequence shared by cmd/spendwise
// and cmd/spendwise-worker.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spendwise/internal/backend"
	"spendwise/internal/config"
	"spendwise/internal/core"
	"spendwise/internal/log"
)

// SetupLogger initializes structured logging at level and sets it as the
// default logger. An unknown level falls back to info with a warning.
func SetupLogger(level string, out io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = out
	lvl, err := log.ParseLevel(level)
	if err == nil {
		cfg.Level = lvl
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", level)
	}
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenBackend opens the configured record store and, when enabled, seeds the
// demo expenses into an empty store.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *log.Logger) (*backend.Backend, error) {
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	b, err := backend.New(bc, logger)
	if err != nil {
		return nil, err
	}
	if cfg.SeedDemoData {
		n, err := b.Expenses.SeedSampleData(ctx, core.DateOf(time.Now()))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		if n > 0 {
			logger.Info("Seeded demo expenses", log.FieldRows, n)
		}
	}
	return b, nil
}

// ShutdownContext returns a context cancelled on SIGINT or SIGTERM.
func ShutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// GracefulShutdown runs shutdown with a fresh context bounded by timeout, so
// cleanup still gets time after the run context was cancelled.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Shutting down", "timeout", timeout.String())
	if err := shutdown(ctx); err != nil {
		if ctx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
		}
		return err
	}
	logger.Info("Shutdown complete")
	return nil
}
