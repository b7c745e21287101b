package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"tracker/internal/core"
	"tracker/internal/store"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// DefaultSheetName is the worksheet a new spreadsheet starts with.
const DefaultSheetName = "Sheet1"

// Options configures a Sheets-backed store.
type Options struct {
	SpreadsheetID string
	SheetName     string

	// Service account credentials: inline JSON wins over a file path.
	CredentialsJSON string
	CredentialsFile string
}

// Client stores contributions as rows of one worksheet. The first row holds
// the column headers; every other row is one record.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheet         string
}

var _ store.Store = (*Client)(nil)

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	id := strings.TrimSpace(opts.SpreadsheetID)
	if id == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheet := strings.TrimSpace(opts.SheetName)
	if sheet == "" {
		sheet = DefaultSheetName
	}

	svc, err := newSheetsService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, id, sheet), nil
}

// NewWithService wraps an already configured Sheets service.
func NewWithService(svc *gsheet.Service, spreadsheetID, sheet string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheet: sheet}
}

// newSheetsService initializes a Sheets service from service account
// credentials, falling back to GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context, opts Options) (*gsheet.Service, error) {
	inline := strings.TrimSpace(opts.CredentialsJSON)
	file := strings.TrimSpace(opts.CredentialsFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inline != "":
		slog.DebugContext(ctx, "Using inline service account credentials")
		credentialsJSON = []byte(inline)
	case file != "":
		slog.DebugContext(ctx, "Reading service account credentials", "path", file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// Append adds the record as a new row after the last non-empty one. Values
// are written RAW so names and notes are never interpreted as formulas.
func (c *Client) Append(ctx context.Context, r core.Record) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:%s", quoteSheet(c.sheet), lastColumn())
	vr := &gsheet.ValueRange{Values: [][]any{r.Values()}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", c.sheet, err)
	}
	return nil
}

// FetchAll reads the whole worksheet and returns the data rows keyed by
// header. Numbers come back unformatted; dates as their displayed string.
func (c *Client) FetchAll(ctx context.Context) ([]store.RawRow, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, quoteSheet(c.sheet)).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.sheet, err)
	}
	return parseRows(resp.Values), nil
}

// EnsureHeader writes the column headers to the first row when the worksheet
// is empty. A sheet that already has a header is left untouched.
func (c *Client) EnsureHeader(ctx context.Context) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A1:%s1", quoteSheet(c.sheet), lastColumn())
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", c.sheet, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}
	header := make([]any, len(core.Columns))
	for i, col := range core.Columns {
		header[i] = col
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: [][]any{header}}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header of %s: %w", c.sheet, err)
	}
	slog.InfoContext(ctx, "Wrote header row", "sheet", c.sheet)
	return nil
}

// quoteSheet quotes a worksheet title for A1 notation.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func lastColumn() string {
	return string(rune('A' + len(core.Columns) - 1))
}
