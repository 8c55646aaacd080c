// Package pricing contains the pure parsing and offer-calculation logic for the
// wholesale pricing sheet ingestion pipeline. Nothing in this package performs
// I/O; every function is deterministic and safe for concurrent use.
package pricing

import (
	"strings"
)

// ParseDelimited splits a raw comma-delimited text blob into rows of trimmed
// cells. A cell wrapped in double quotes may contain literal commas: the quote
// flag toggles on every quote character and commas seen while it is set are
// treated as content. Doubled quotes are not unescaped, which is a known
// simplification that matches the sheet export we consume. Empty input yields
// no rows; blank lines are dropped. Malformed lines degrade to rows of junk
// cells that the classifier rejects downstream.
func ParseDelimited(raw string) [][]string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitDelimitedLine(line))
	}
	return rows
}

func splitDelimitedLine(line string) []string {
	var cells []string
	var cell strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))

	return cells
}
