package services

import (
	"context"
	"errors"
	"sync/atomic"

	"tracker/internal/core"
	"tracker/internal/log"
	"tracker/internal/store"
)

// FetchPolicy decides what ComputeSummary does when the store read fails.
type FetchPolicy int

const (
	// FailSoft renders an empty summary and reports no error. The failure is
	// logged and counted so it stays observable.
	FailSoft FetchPolicy = iota
	// Strict returns the *core.LoadError to the caller.
	Strict
)

func (p FetchPolicy) String() string {
	switch p {
	case FailSoft:
		return "fail_soft"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// Reporter computes team totals from every stored row on every call.
// Each call does its own read, so a call started after an append sees it.
type Reporter struct {
	fetcher  store.Fetcher
	policy   FetchPolicy
	failures *atomic.Int64
	logger   *log.StructuredLogger
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithPolicy sets the read failure policy. The default is FailSoft.
func WithPolicy(p FetchPolicy) ReporterOption {
	return func(r *Reporter) { r.policy = p }
}

// WithReportLogger sets the logger.
func WithReportLogger(l *log.Logger) ReporterOption {
	return func(r *Reporter) { r.logger = log.NewStructuredLogger(l) }
}

func NewReporter(f store.Fetcher, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		fetcher:  f,
		policy:   FailSoft,
		failures: &atomic.Int64{},
		logger:   log.NewStructuredLogger(log.New(log.DefaultConfig()).WithComponent(log.ComponentReport)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the configured read failure policy.
func (r *Reporter) Policy() FetchPolicy {
	return r.policy
}

// Strict returns a reporter over the same store that propagates read errors.
// It shares the failure counter with r.
func (r *Reporter) Strict() *Reporter {
	cp := *r
	cp.policy = Strict
	return &cp
}

// Failures returns how many reads have failed since start.
func (r *Reporter) Failures() int64 {
	return r.failures.Load()
}

// ComputeSummary fetches all rows and folds them into a summary.
func (r *Reporter) ComputeSummary(ctx context.Context) (core.Summary, error) {
	rows, err := r.fetcher.FetchAll(ctx)
	if err != nil {
		r.failures.Add(1)
		var le *core.LoadError
		if !errors.As(err, &le) {
			err = core.NewStorageError("fetch", err)
		}
		if r.policy == Strict {
			return core.Summary{}, err
		}
		r.logger.LogFetchFailure(ctx, err, r.policy.String())
		return core.Summary{}, nil
	}
	return core.Summarize(rows), nil
}
