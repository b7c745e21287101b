package google

import (
	"fmt"
	"strings"

	"tracker/internal/core"
)

// parseRows converts a values matrix (as returned by the Sheets API) into rows
// keyed by the headers in the first row. Short rows are padded with "", cells
// under an empty header are dropped and fully blank rows are skipped.
func parseRows(values [][]any) []core.RawRow {
	if len(values) < 2 {
		return nil
	}
	headers := toStrings(values[0])
	out := make([]core.RawRow, 0, len(values)-1)
	for _, cells := range values[1:] {
		if isBlank(cells) {
			continue
		}
		row := make(core.RawRow, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) && cells[i] != nil {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return out
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func isBlank(cells []any) bool {
	for _, v := range cells {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return false
	}
	return true
}
