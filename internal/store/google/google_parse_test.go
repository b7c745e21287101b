package google

import (
	"testing"

	"tracker/internal/core"
)

func TestParseRows_HeaderIndexed(t *testing.T) {
	values := [][]any{
		{"Date", "Name", "Type", "Amount", "Notes"},
		{"2026-02-01 09:15:00", "Alice", "Volunteer Hours", 2.5, "food bank"},
		{"2026-02-01 10:00:00", "Bob", "Monetary Donation ($)", 20.0},
		{},
		{"", " ", nil},
		{"2026-02-02 12:00:00", "Carol", "Legacy", "n/a", ""},
	}
	rows := parseRows(values)
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	if rows[0].Text(core.ColumnName) != "Alice" {
		t.Fatalf("name: got %q", rows[0].Text(core.ColumnName))
	}
	if amt, ok := rows[0].Amount(); !ok || amt != 2.5 {
		t.Fatalf("amount: got %v %v", amt, ok)
	}
	if notes, ok := rows[1][core.ColumnNotes]; !ok || notes != "" {
		t.Fatalf("short row must be padded, got %v", rows[1])
	}

	s := core.Summarize(rows)
	if s.TotalHours != 2.5 || s.TotalMoney != 20 || s.TotalParticipants != 3 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestParseRows_TimestampHeaderAndEmptyHeader(t *testing.T) {
	values := [][]any{
		{"Timestamp", "Name", "", "Type", "Amount"},
		{"2026-02-03 08:00:00", "Dan", "ignored", "Volunteer Hours", "3"},
	}
	rows := parseRows(values)
	if len(rows) != 1 {
		t.Fatalf("rows: got %d", len(rows))
	}
	if _, ok := rows[0][""]; ok {
		t.Fatalf("empty header must not produce a key")
	}
	if d, ok := rows[0].Date(); !ok || d != "2026-02-03" {
		t.Fatalf("date: got %q %v", d, ok)
	}
}

func TestParseRows_HeaderOnly(t *testing.T) {
	if rows := parseRows([][]any{{"Date", "Name"}}); len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
	if rows := parseRows(nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestQuoteSheet(t *testing.T) {
	cases := map[string]string{
		"Sheet1":       "'Sheet1'",
		"Mission 2026": "'Mission 2026'",
		"Bob's":        "'Bob''s'",
	}
	for in, want := range cases {
		if got := quoteSheet(in); got != want {
			t.Fatalf("quoteSheet(%q) = %q, want %q", in, got, want)
		}
	}
	if lastColumn() != "E" {
		t.Fatalf("lastColumn: got %q", lastColumn())
	}
}
