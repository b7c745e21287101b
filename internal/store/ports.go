package store

import (
	"context"

	"tracker/internal/core"
)

// RawRow is a stored row keyed by column header.
type RawRow = core.RawRow

// Ports for outbound adapters.
type (
	// Appender persists exactly one record per call.
	Appender interface {
		Append(ctx context.Context, r core.Record) error
	}

	// Fetcher returns every stored row, in insertion order.
	Fetcher interface {
		FetchAll(ctx context.Context) ([]RawRow, error)
	}

	// Store is the narrow interface shared by submission and reporting.
	Store interface {
		Appender
		Fetcher
	}
)
