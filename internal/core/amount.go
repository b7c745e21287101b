// Package core provides amount parsing and display formatting.
//
// Amounts are entered as decimal strings from the form and carried as float64:
// the store keeps plain numbers and totals are advisory, so exact decimal
// arithmetic is not needed.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseAmount converts a form value to a number.
//
// Both dot (12.5) and a lone decimal comma (12,5) are accepted; other commas
// are thousands separators (1,234.5). Sign is kept:
// whether the value is acceptable is decided by validation, not here.
//
// Examples:
//
//	ParseAmount("2")     -> 2, nil
//	ParseAmount("12,5")  -> 12.5, nil
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = normalizeDecimal(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidAmount
	}
	return f, nil
}

// normalizeDecimal rewrites s for strconv.ParseFloat. A single comma with no
// dot is the decimal separator; any other comma is a thousands separator.
func normalizeDecimal(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		return strings.Replace(s, ",", ".", 1)
	}
	return strings.ReplaceAll(s, ",", "")
}

// FormatHours renders a total number of hours, e.g. "1,234.5 hrs".
func FormatHours(h float64) string {
	return humanize.FormatFloat("#,###.#", h) + " hrs"
}

// FormatMoney renders a donation total, e.g. "$1,234.50".
func FormatMoney(m float64) string {
	if m < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -m)
	}
	return "$" + humanize.FormatFloat("#,###.##", m)
}

// FormatAmount renders a single submitted amount without trailing zeros.
func FormatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
