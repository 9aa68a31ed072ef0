package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	RegionColumn    = "Provincie"
	YearColumn      = "Jaar"
	YearMonthColumn = "Jaar-Maand"
	MissingValue    = "-"
	GewestColumn    = "Gewest"
)

// Row is a single CSV record. Columns keeps the header order, Values holds the cells.
type Row struct {
	Columns []string
	Values  map[string]string
}

func NewRow(columns []string) Row {
	return Row{
		Columns: slices.Clone(columns),
		Values:  make(map[string]string, len(columns)),
	}
}

func (r Row) Get(col string) string {
	return r.Values[col]
}

func (r Row) Has(col string) bool {
	_, ok := r.Values[col]
	return ok
}

// Set assigns a value; unknown columns are appended to the column order.
func (r *Row) Set(col, value string) {
	if r.Values == nil {
		r.Values = make(map[string]string)
	}
	if _, ok := r.Values[col]; !ok {
		r.Columns = append(r.Columns, col)
	}
	r.Values[col] = value
}

// Float parses the cell as a number. Empty cells and the "-" sentinel are not numbers.
func (r Row) Float(col string) (float64, bool) {
	return ParseNumber(r.Values[col])
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := NewRow(r.Columns)
	for k, v := range r.Values {
		out.Values[k] = v
	}
	return out
}

// WithLeading returns a copy with col placed first. An existing col is moved.
func (r Row) WithLeading(col, value string) Row {
	out := Row{
		Columns: make([]string, 0, len(r.Columns)+1),
		Values:  make(map[string]string, len(r.Values)+1),
	}
	out.Columns = append(out.Columns, col)
	out.Values[col] = value
	for _, c := range r.Columns {
		if c == col {
			continue
		}
		out.Columns = append(out.Columns, c)
		out.Values[c] = r.Values[c]
	}
	return out
}

func (r Row) String() string {
	parts := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		parts = append(parts, fmt.Sprintf("%s:%q", c, r.Values[c]))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// ParseNumber parses a metric cell, rejecting blanks and the "-" sentinel.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == MissingValue {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PeriodColumn returns the period column used by rows: Jaar-Maand if present, else Jaar.
func PeriodColumn(rows []Row) string {
	for _, r := range rows {
		if r.Has(YearMonthColumn) {
			return YearMonthColumn
		}
	}
	return YearColumn
}

// SortRows orders rows by period ascending and region name secondary.
func SortRows(rows []Row, periodCol string) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := strings.Compare(a.Get(periodCol), b.Get(periodCol)); c != 0 {
			return c
		}
		return strings.Compare(a.Get(RegionColumn), b.Get(RegionColumn))
	})
}

// ValidateUnique reports the first duplicated (region, period) pair.
func ValidateUnique(rows []Row, periodCol string) error {
	seen := make(map[[2]string]struct{}, len(rows))
	for _, r := range rows {
		key := [2]string{r.Get(RegionColumn), r.Get(periodCol)}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate row for region %q and period %q", key[0], key[1])
		}
		seen[key] = struct{}{}
	}
	return nil
}
