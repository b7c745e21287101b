package store

import (
	"context"
	"errors"
	"time"

	"tracker/internal/core"
)

// DefaultTimeout bounds a single store call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

type timeoutStore struct {
	next    Store
	timeout time.Duration
}

var _ Store = (*timeoutStore)(nil)

// WithTimeout wraps s so that every call runs under its own deadline and every
// failure surfaces as a *core.StorageError.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &timeoutStore{next: s, timeout: d}
}

func (t *timeoutStore) Append(ctx context.Context, r core.Record) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	if err := t.next.Append(ctx, r); err != nil {
		return asStorageError(ctx, "append", err)
	}
	return nil
}

func (t *timeoutStore) FetchAll(ctx context.Context) ([]RawRow, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	rows, err := t.next.FetchAll(ctx)
	if err != nil {
		return nil, asStorageError(ctx, "fetch", err)
	}
	return rows, nil
}

func asStorageError(ctx context.Context, op string, err error) error {
	var se *core.StorageError
	if errors.As(err, &se) {
		return err
	}
	// Some clients report a timeout as their own error type.
	if ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		err = errors.Join(ctx.Err(), err)
	}
	return core.NewStorageError(op, err)
}
