package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"tracker/internal/core"
	"tracker/internal/store"

	_ "modernc.org/sqlite"
)

// Store keeps contributions in a local append-only SQLite table.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open creates the database file if needed and applies migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time keeps appends serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const insertContribution = `INSERT INTO contributions (recorded_at, name, type, amount, notes) VALUES (?, ?, ?, ?, ?)`

// Append inserts one row.
func (s *Store) Append(ctx context.Context, r core.Record) error {
	_, err := s.db.ExecContext(ctx, insertContribution,
		r.Timestamp.Format(core.TimestampLayout),
		r.Name,
		string(r.Type),
		r.Amount,
		r.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

const selectContributions = `SELECT recorded_at, name, type, amount, notes FROM contributions ORDER BY id`

// FetchAll returns every row in insertion order, keyed like the sheet columns.
func (s *Store) FetchAll(ctx context.Context) ([]store.RawRow, error) {
	rows, err := s.db.QueryContext(ctx, selectContributions)
	if err != nil {
		return nil, fmt.Errorf("query contributions: %w", err)
	}
	defer rows.Close()

	var out []store.RawRow
	for rows.Next() {
		var (
			recordedAt, name, typ, notes string
			amount                       float64
		)
		if err := rows.Scan(&recordedAt, &name, &typ, &amount, &notes); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		out = append(out, store.RawRow{
			core.ColumnDate:   recordedAt,
			core.ColumnName:   name,
			core.ColumnType:   typ,
			core.ColumnAmount: amount,
			core.ColumnNotes:  notes,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributions: %w", err)
	}
	return out, nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
