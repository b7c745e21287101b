// Package cli provides the initialization shared by cmd/tracker,
// cmd/tracker-report and cmd/tracker-notifier.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tracker/internal/config"
	"tracker/internal/log"
)

// SetupLogger initializes structured logging to stdout at the given
// LOG_LEVEL and sets it as the default logger.
func SetupLogger(level string, component string) *log.Logger {
	return SetupLoggerTo(os.Stdout, level, component)
}

// SetupLoggerTo is SetupLogger writing to w, for commands whose stdout is
// their output.
func SetupLoggerTo(w io.Writer, level string, component string) *log.Logger {
	lvl, err := config.ParseLevel(level)
	logger := log.New(log.Config{
		Level:     lvl,
		Component: component,
		Output:    w,
	})
	log.SetDefault(logger)
	if err != nil {
		logger.Warn("Falling back to info level", "error", err)
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

// MustLoadConfig is LoadAndValidateConfig for main functions: it prints the
// problems and exits on failure.
func MustLoadConfig() *config.Config {
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
	}()
	return ctx, stop
}
