package core

import "sort"

// DayCount is the number of records logged on one calendar date.
type DayCount struct {
	Date  string // YYYY-MM-DD
	Count int
}

// Summary holds the team-wide totals derived from every stored record.
// It is never persisted and is recomputed on every read.
type Summary struct {
	TotalHours        float64
	TotalMoney        float64
	TotalParticipants int
	DailyCounts       []DayCount // ascending by date
	Records           int
}

// IsEmpty reports whether the summary was built from no records at all.
func (s Summary) IsEmpty() bool {
	return s.Records == 0
}

// MaxDailyCount returns the largest per-day count, 0 when there are none.
func (s Summary) MaxDailyCount() int {
	max := 0
	for _, d := range s.DailyCounts {
		if d.Count > max {
			max = d.Count
		}
	}
	return max
}

// Summarize folds rows into team totals.
//
// Rows are partitioned on exact equality of the Type cell; rows whose type
// matches neither enumerated value add to no sum but still count towards
// participants and daily counts. Amounts are added in row order. Participants
// are distinct Name cells compared byte for byte, so "Alice", "alice" and
// "Alice " are three people. Rows without a parseable date are left out of
// the daily counts only.
func Summarize(rows []RawRow) Summary {
	var s Summary
	names := make(map[string]struct{})
	days := make(map[string]int)

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		s.Records++
		names[row.Text(ColumnName)] = struct{}{}

		switch ContributionType(row.Text(ColumnType)) {
		case VolunteerHours:
			if amt, ok := row.Amount(); ok {
				s.TotalHours += amt
			}
		case MonetaryDonation:
			if amt, ok := row.Amount(); ok {
				s.TotalMoney += amt
			}
		}

		if day, ok := row.Date(); ok {
			days[day]++
		}
	}

	s.TotalParticipants = len(names)
	if len(days) > 0 {
		s.DailyCounts = make([]DayCount, 0, len(days))
		for day, n := range days {
			s.DailyCounts = append(s.DailyCounts, DayCount{Date: day, Count: n})
		}
		// YYYY-MM-DD sorts chronologically as a string.
		sort.Slice(s.DailyCounts, func(i, j int) bool {
			return s.DailyCounts[i].Date < s.DailyCounts[j].Date
		})
	}
	return s
}
