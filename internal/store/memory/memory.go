package memory

import (
	"context"
	"maps"
	"sync"

	"tracker/internal/core"
	"tracker/internal/store"
)

// Store keeps rows in process memory. It backs local development and doubles
// as the store fake in tests.
type Store struct {
	mu      sync.Mutex
	rows    []core.RawRow
	err     error
	appends int
	fetches int
}

var _ store.Store = (*Store)(nil)

// New returns a store seeded with the given records.
func New(seed ...core.Record) *Store {
	s := &Store{}
	for _, r := range seed {
		s.rows = append(s.rows, r.Row())
	}
	return s
}

// NewFromRows returns a store holding rows verbatim, including malformed ones.
func NewFromRows(rows ...core.RawRow) *Store {
	s := &Store{}
	for _, r := range rows {
		s.rows = append(s.rows, maps.Clone(r))
	}
	return s
}

// Append stores the record as a row. It does not validate.
func (s *Store) Append(ctx context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appends++
	if s.err != nil {
		return s.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.rows = append(s.rows, r.Row())
	return nil
}

// FetchAll returns a copy of every stored row.
func (s *Store) FetchAll(ctx context.Context) ([]core.RawRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]core.RawRow, len(s.rows))
	for i, r := range s.rows {
		out[i] = maps.Clone(r)
	}
	return out, nil
}

// FailWith makes every subsequent call return err. A nil err restores normal
// behaviour.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Len returns the number of stored rows.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Calls returns how many times Append and FetchAll were invoked, failed
// calls included.
func (s *Store) Calls() (appends, fetches int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appends, s.fetches
}
