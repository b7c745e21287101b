// Package report renders a team summary for a terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracker/internal/core"
)

// maxBar is the width of the longest daily bar, in cells.
const maxBar = 30

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(14)
	valueStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// Render lays out the three totals and the per-day bars inside a box.
func Render(title string, s core.Summary) string {
	metrics := lipgloss.JoinVertical(lipgloss.Left,
		metric("Hours", core.FormatHours(s.TotalHours)),
		metric("Donations", core.FormatMoney(s.TotalMoney)),
		metric("Participants", fmt.Sprint(s.TotalParticipants)),
	)

	parts := []string{titleStyle.Render(title), "", metrics}
	switch {
	case s.IsEmpty():
		parts = append(parts, "", "Waiting for the first entry.")
	case len(s.DailyCounts) > 0:
		parts = append(parts, "", bars(s))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func metric(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func bars(s core.Summary) string {
	max := s.MaxDailyCount()
	lines := make([]string, 0, len(s.DailyCounts))
	for _, d := range s.DailyCounts {
		n := d.Count * maxBar / max
		if n == 0 {
			n = 1
		}
		lines = append(lines, fmt.Sprintf("%s %s %d", d.Date, barStyle.Render(strings.Repeat("█", n)), d.Count))
	}
	return strings.Join(lines, "\n")
}
