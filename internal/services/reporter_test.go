package services

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tracker/internal/core"
	"tracker/internal/store"
	"tracker/internal/store/memory"
)

func record(name string, typ core.ContributionType, amount float64, ts string) core.Record {
	t, err := time.Parse(core.TimestampLayout, ts)
	if err != nil {
		panic(err)
	}
	return core.Record{Timestamp: t, Name: name, Type: typ, Amount: amount}
}

func TestComputeSummaryEmptyStore(t *testing.T) {
	sum, err := NewReporter(memory.New()).ComputeSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalHours != 0 || sum.TotalMoney != 0 || sum.TotalParticipants != 0 {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestComputeSummaryTotals(t *testing.T) {
	mem := memory.New(
		record("Alice", core.VolunteerHours, 2.0, "2026-01-01 09:00:00"),
		record("Alice", core.VolunteerHours, 3.0, "2026-01-01 11:00:00"),
		record("Bob", core.MonetaryDonation, 10.0, "2026-01-02 10:00:00"),
	)
	sum, err := NewReporter(mem).ComputeSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalHours != 5.0 || sum.TotalMoney != 10.0 || sum.TotalParticipants != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	want := []core.DayCount{{Date: "2026-01-01", Count: 2}, {Date: "2026-01-02", Count: 1}}
	if !reflect.DeepEqual(sum.DailyCounts, want) {
		t.Fatalf("daily counts: got %v, want %v", sum.DailyCounts, want)
	}
}

func TestComputeSummaryUnknownType(t *testing.T) {
	mem := memory.NewFromRows(
		record("Alice", core.VolunteerHours, 2.0, "2026-01-01 09:00:00").Row(),
		core.RawRow{core.ColumnDate: "2026-01-01 10:00:00", core.ColumnName: "Zed", core.ColumnType: "Other", core.ColumnAmount: 7.0},
	)
	sum, _ := NewReporter(mem).ComputeSummary(context.Background())
	if sum.TotalHours != 2.0 || sum.TotalMoney != 0 || sum.TotalParticipants != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestComputeSummaryIsIdempotent(t *testing.T) {
	mem := memory.New(
		record("Alice", core.VolunteerHours, 0.1, "2026-01-01 09:00:00"),
		record("Bob", core.MonetaryDonation, 0.2, "2026-01-03 09:00:00"),
	)
	r := NewReporter(mem)
	a, _ := r.ComputeSummary(context.Background())
	b, _ := r.ComputeSummary(context.Background())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("summaries differ: %+v vs %+v", a, b)
	}
	if _, fetches := mem.Calls(); fetches != 2 {
		t.Fatalf("each call must read the store, got %d fetches", fetches)
	}
}

func TestComputeSummaryFailSoft(t *testing.T) {
	mem := memory.New(record("Alice", core.VolunteerHours, 2, "2026-01-01 09:00:00"))
	mem.FailWith(errors.New("unauthorized"))
	r := NewReporter(mem)

	sum, err := r.ComputeSummary(context.Background())
	if err != nil {
		t.Fatalf("fail-soft must not return an error, got %v", err)
	}
	if !reflect.DeepEqual(sum, core.Summary{}) {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
	if r.Failures() != 1 {
		t.Fatalf("failure must be counted, got %d", r.Failures())
	}
}

func TestComputeSummaryStrict(t *testing.T) {
	mem := memory.New()
	cause := errors.New("unreachable")
	mem.FailWith(cause)
	r := NewReporter(mem)

	_, err := r.Strict().ComputeSummary(context.Background())
	var le *core.LoadError
	if !errors.As(err, &le) || !errors.Is(err, cause) {
		t.Fatalf("expected LoadError wrapping cause, got %v", err)
	}
	if r.Policy() != FailSoft || r.Strict().Policy() != Strict {
		t.Fatalf("Strict must not change the original policy")
	}
	if r.Failures() != 1 {
		t.Fatalf("strict failures share the counter, got %d", r.Failures())
	}
}

// blockingFetcher holds every FetchAll until release is closed or the
// caller gives up, and counts calls.
type blockingFetcher struct {
	calls   atomic.Int32
	release chan struct{}
	rows    []core.RawRow
}

func (b *blockingFetcher) FetchAll(ctx context.Context) ([]store.RawRow, error) {
	b.calls.Add(1)
	select {
	case <-b.release:
		return b.rows, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestComputeSummaryConcurrentCallsReadIndependently(t *testing.T) {
	f := &blockingFetcher{
		release: make(chan struct{}),
		rows:    []core.RawRow{record("Alice", core.VolunteerHours, 1, "2026-01-01 09:00:00").Row()},
	}
	r := NewReporter(f)

	const callers = 5
	var wg sync.WaitGroup
	results := make([]core.Summary, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.ComputeSummary(context.Background())
		}(i)
	}
	close(f.release)
	wg.Wait()

	if n := f.calls.Load(); n != callers {
		t.Fatalf("every call must do its own read, got %d reads for %d calls", n, callers)
	}
	for i, s := range results {
		if s.TotalHours != 1 || s.TotalParticipants != 1 {
			t.Fatalf("caller %d got %+v", i, s)
		}
	}

	// Nothing is kept once the read completes.
	f.rows = nil
	sum, _ := r.ComputeSummary(context.Background())
	if sum.TotalParticipants != 0 {
		t.Fatalf("results must not be cached, got %+v", sum)
	}
}

// staleFirstRead serves its first FetchAll from a snapshot taken on entry
// and holds it until released; later calls read the store directly.
type staleFirstRead struct {
	*memory.Store
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *staleFirstRead) FetchAll(ctx context.Context) ([]store.RawRow, error) {
	first := false
	s.once.Do(func() { first = true })
	if !first {
		return s.Store.FetchAll(ctx)
	}
	rows, err := s.Store.FetchAll(ctx)
	close(s.entered)
	<-s.release
	return rows, err
}

func TestComputeSummaryReadAfterWrite(t *testing.T) {
	st := &staleFirstRead{
		Store:   memory.New(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	r := NewReporter(st)
	sub := NewSubmitter(st)

	slow := make(chan core.Summary, 1)
	go func() {
		s, _ := r.ComputeSummary(context.Background())
		slow <- s
	}()
	<-st.entered

	if _, err := sub.Submit(context.Background(), Submission{Name: "Alice", Type: core.VolunteerHours, Amount: 2}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	fresh := make(chan core.Summary, 1)
	go func() {
		s, _ := r.ComputeSummary(context.Background())
		fresh <- s
	}()

	var got core.Summary
	select {
	case got = <-fresh:
	case <-time.After(2 * time.Second):
		close(st.release)
		got = <-fresh
		t.Fatalf("read started after the append waited on an earlier read")
	}
	close(st.release)
	<-slow

	if got.TotalHours != 2 || got.TotalParticipants != 1 {
		t.Fatalf("read started after a completed append must include it, got %+v", got)
	}
}

func TestComputeSummaryCallerCanceled(t *testing.T) {
	f := &blockingFetcher{release: make(chan struct{})}
	defer close(f.release)
	r := NewReporter(f, WithPolicy(Strict))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.ComputeSummary(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
