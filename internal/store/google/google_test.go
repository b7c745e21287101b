package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"tracker/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// fakeSheets emulates the subset of the Sheets values API the client uses.
type fakeSheets struct {
	mu       sync.Mutex
	values   [][]any
	appends  []appendCall
	failWith int
}

type appendCall struct {
	path  string
	query string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != 0 {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, f.failWith)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
		var vr gsheet.ValueRange
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &vr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.appends = append(f.appends, appendCall{path: r.URL.Path, query: r.URL.RawQuery})
		for _, row := range vr.Values {
			f.values = append(f.values, row)
		}
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPut:
		var vr gsheet.ValueRange
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &vr)
		f.values = append(vr.Values, f.values...)
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodGet:
		values := f.values
		if strings.Contains(r.URL.Path, "A1:E1") && len(values) > 1 {
			values = values[:1]
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"values": values})
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, f *fakeSheets) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication(),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return NewWithService(svc, "sheet-id", "Sheet1")
}

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{})
	if err == nil || err.Error() != "missing spreadsheet id" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	_, err := New(context.Background(), Options{SpreadsheetID: "x"})
	if err == nil || !strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_UnreadableCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Options{SpreadsheetID: "x", CredentialsFile: "/nonexistent/sa.json"})
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_AppendThenFetch(t *testing.T) {
	f := &fakeSheets{}
	c := newTestClient(t, f)
	ctx := context.Background()

	if err := c.EnsureHeader(ctx); err != nil {
		t.Fatalf("ensure header: %v", err)
	}
	r := core.Record{
		Timestamp: time.Date(2026, 2, 1, 9, 15, 0, 0, time.UTC),
		Name:      "=HYPERLINK(\"x\")",
		Type:      core.VolunteerHours,
		Amount:    2.5,
		Notes:     "shelter",
	}
	if err := c.Append(ctx, r); err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(f.appends) != 1 || !strings.Contains(f.appends[0].query, "valueInputOption=RAW") {
		t.Fatalf("append must use RAW input, got %+v", f.appends)
	}

	// A second EnsureHeader must not duplicate the header.
	if err := c.EnsureHeader(ctx); err != nil {
		t.Fatalf("ensure header: %v", err)
	}

	rows, err := c.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
	if rows[0].Text(core.ColumnName) != r.Name {
		t.Fatalf("name must round-trip verbatim, got %q", rows[0].Text(core.ColumnName))
	}
	if d, ok := rows[0].Date(); !ok || d != "2026-02-01" {
		t.Fatalf("date: got %q %v", d, ok)
	}
}

func TestClient_FetchError(t *testing.T) {
	f := &fakeSheets{failWith: http.StatusForbidden}
	c := newTestClient(t, f)
	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if err := c.Append(context.Background(), core.Record{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_NotInitialized(t *testing.T) {
	c := &Client{spreadsheetID: "test"}
	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error for nil service")
	}
}
