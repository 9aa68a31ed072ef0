// Package csvtable parses the dashboard CSV artifacts into ordered rows.
//
// The format is deliberately looser than RFC 4180: double quotes only toggle
// whether a comma separates fields and are dropped from the value, so `""`
// never yields a literal quote.
package csvtable

import (
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

// Parse turns delimited text into rows keyed by the header line.
// Input with fewer than two lines yields an empty slice.
func Parse(text string) []domain.Row {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return []domain.Row{}
	}

	headers := strings.Split(lines[0], ",")
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]domain.Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := SplitLine(line)
		row := domain.NewRow(headers)
		for i, h := range headers {
			if i < len(values) {
				row.Values[h] = values[i]
			} else {
				row.Values[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ParseReader reads r fully and parses it.
func ParseReader(r io.Reader) ([]domain.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return Parse(string(data)), nil
}

// SplitLine splits one line on commas outside quote pairs and trims each field.
func SplitLine(line string) []string {
	var (
		values  []string
		current strings.Builder
		quoted  bool
	)

	for _, ch := range line {
		switch {
		case ch == '"':
			quoted = !quoted
		case ch == ',' && !quoted:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	return append(values, strings.TrimSpace(current.String()))
}
