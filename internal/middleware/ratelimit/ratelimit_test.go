package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(perMinute int, clock *time.Time) *Limiter {
	rl := NewLimiter(Config{RequestsPerMinute: perMinute, CleanupInterval: time.Hour})
	rl.now = func() time.Time { return *clock }
	return rl
}

func TestAllow(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, &now)
	defer rl.Stop()

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("a") {
		t.Fatal("third request in the window should be limited")
	}
	if !rl.Allow("b") {
		t.Fatal("other clients are counted separately")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Fatal("a new window should reset the counter")
	}

	if m := rl.GetMetrics(); m.TotalHits != 1 || m.ClientCount != 2 {
		t.Fatalf("unexpected metrics %+v", m)
	}
}

func TestWindowDoesNotSlide(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, &now)
	defer rl.Stop()

	rl.Allow("a")
	for i := 0; i < 5; i++ {
		now = now.Add(10 * time.Second)
		rl.Allow("a")
	}
	// 60s after the window opened, even though the client kept calling.
	now = now.Add(10 * time.Second)
	if !rl.Allow("a") {
		t.Fatal("steady traffic must not extend the window forever")
	}
}

func TestCleanupStaleEntries(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, &now)
	defer rl.Stop()

	rl.Allow("a")
	now = now.Add(11 * time.Minute)
	rl.Allow("b")
	rl.cleanupStaleEntries()

	if m := rl.GetMetrics(); m.ClientCount != 1 {
		t.Fatalf("expected only the recent client to remain, got %d", m.ClientCount)
	}
}

func TestMiddleware(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, &now)
	defer rl.Stop()

	h := rl.Middleware(func(*http.Request) string { return "ip" }, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("first request: got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "60" {
		t.Fatalf("Retry-After = %q", rr.Header().Get("Retry-After"))
	}
}

func TestStopIsIdempotent(t *testing.T) {
	rl := NewLimiter(Config{})
	rl.Stop()
	rl.Stop()
	if rl.requestsPerMinute != 30 {
		t.Fatalf("default limit = %d", rl.requestsPerMinute)
	}
}
