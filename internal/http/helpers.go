package http

import (
	"encoding/json"
	"net/http"

	"tracker/internal/core"
)

// summaryView is what summary.html renders.
type summaryView struct {
	Hours        string
	Money        string
	Participants int
	Days         []dayBar
	Empty        bool
}

type dayBar struct {
	Date    string
	Count   int
	Percent int // bar width relative to the busiest day
}

func newSummaryView(s core.Summary) summaryView {
	v := summaryView{
		Hours:        core.FormatHours(s.TotalHours),
		Money:        core.FormatMoney(s.TotalMoney),
		Participants: s.TotalParticipants,
		Empty:        s.IsEmpty(),
	}
	max := s.MaxDailyCount()
	for _, d := range s.DailyCounts {
		pct := 0
		if max > 0 {
			pct = d.Count * 100 / max
		}
		v.Days = append(v.Days, dayBar{Date: d.Date, Count: d.Count, Percent: pct})
	}
	return v
}

// summaryJSON is the /api/summary payload.
type summaryJSON struct {
	TotalHours        float64         `json:"total_hours"`
	TotalMoney        float64         `json:"total_money"`
	TotalParticipants int             `json:"total_participants"`
	DailyCounts       []dailyCountDTO `json:"daily_counts"`
	Empty             bool            `json:"empty"`
}

type dailyCountDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func newSummaryJSON(s core.Summary) summaryJSON {
	out := summaryJSON{
		TotalHours:        s.TotalHours,
		TotalMoney:        s.TotalMoney,
		TotalParticipants: s.TotalParticipants,
		DailyCounts:       make([]dailyCountDTO, 0, len(s.DailyCounts)),
		Empty:             s.IsEmpty(),
	}
	for _, d := range s.DailyCounts {
		out.DailyCounts = append(out.DailyCounts, dailyCountDTO{Date: d.Date, Count: d.Count})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
