package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tracker/internal/amqp"
	"tracker/internal/store"
	"tracker/internal/store/google"
	"tracker/internal/store/memory"
	"tracker/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend opens the configured store and, when configured, the event
// publisher. A broker that cannot be reached disables events; it does not
// prevent startup.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		s       store.Store
		closers []func() error
	)
	switch config.Type {
	case SQLiteBackend:
		db, err := sqlite.Open(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		s = db
		closers = append(closers, db.Close)
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	case SheetsBackend:
		cli, err := google.New(ctx, config.Sheets)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		if err := cli.EnsureHeader(ctx); err != nil {
			// Not fatal: the sheet may be unreachable now and fine later.
			f.logger.Warn("Could not verify sheet header", "error", err)
		}
		s = cli
		f.logger.Info("Initialized Google Sheets backend", "sheet", config.Sheets.SheetName)
	case MemoryBackend:
		s = memory.New()
		f.logger.Info("Initialized memory backend")
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	result := &BackendResult{Store: store.WithTimeout(s, config.Timeout)}

	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			result.Events = client
			closers = append(closers, client.Close)
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	result.Cleanup = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	return result, nil
}
