package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRow is one stored row keyed by column header. Stores return rows in this
// loosely typed form because the sheet schema is external and may hold legacy
// or hand-edited values.
type RawRow map[string]any

// dateLayouts are tried in order when reading the date column.
var dateLayouts = []string{
	TimestampLayout,
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

// Text returns the cell as a string, "" when absent. No trimming is applied.
func (r RawRow) Text(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Amount returns the numeric value of the amount cell. Cells that are absent
// or do not parse as a finite number yield (0, false).
func (r RawRow) Amount() (float64, bool) {
	v, ok := r[ColumnAmount]
	if !ok || v == nil {
		return 0, false
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		s := normalizeDecimal(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Date returns the calendar date of the row as "YYYY-MM-DD". The wall-clock
// date is taken as written; no timezone conversion happens.
func (r RawRow) Date() (string, bool) {
	for _, col := range []string{ColumnDate, ColumnTimestamp} {
		v, ok := r[col]
		if !ok || v == nil {
			continue
		}
		if t, ok := v.(time.Time); ok {
			return t.Format("2006-01-02"), true
		}
		s := strings.TrimSpace(r.Text(col))
		if s == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("2006-01-02"), true
			}
		}
	}
	return "", false
}
