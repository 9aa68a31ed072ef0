package aggregate

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

// Mode selects how sub-region values of one period combine into a region value.
type Mode string

const (
	ModeSum  Mode = "sum"  // counts: starters, bankruptcies
	ModeMean Mode = "mean" // rates and indices
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSum, ModeMean:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown aggregation mode %q", s)
	}
}

// Result is a synthesized region series plus the constituents that had no data.
type Result struct {
	Region  string
	Rows    []domain.Row
	Missing []string
}

type accumulator struct {
	sum   float64
	count int
}

// Aggregate rolls the rows of several sub-regions up into one series for region.
// Rows are grouped on the exact period string; metric columns are every column
// other than the region and period columns, collected by name across all inputs.
// Nothing is emitted when no sub-region has rows.
func Aggregate(region string, mode Mode, sources map[string][]domain.Row, periodCol string) []domain.Row {
	names := make([]string, 0, len(sources))
	for name, rows := range sources {
		if len(rows) > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	var metrics []string
	groups := make(map[string]map[string]*accumulator)

	for _, name := range names {
		for _, row := range sources[name] {
			period, ok := row.Values[periodCol]
			if !ok {
				continue
			}
			group, ok := groups[period]
			if !ok {
				group = make(map[string]*accumulator)
				groups[period] = group
			}

			for _, col := range row.Columns {
				if col == periodCol || col == domain.RegionColumn {
					continue
				}
				if !slices.Contains(metrics, col) {
					metrics = append(metrics, col)
				}
				acc, ok := group[col]
				if !ok {
					acc = &accumulator{}
					group[col] = acc
				}
				if v, ok := row.Float(col); ok {
					acc.sum += v
					acc.count++
				}
			}
		}
	}

	periods := make([]string, 0, len(groups))
	for p := range groups {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	out := make([]domain.Row, 0, len(periods))
	for _, period := range periods {
		row := domain.NewRow(nil)
		row.Set(domain.RegionColumn, region)
		row.Set(periodCol, period)
		for _, col := range metrics {
			row.Set(col, format(mode, groups[period][col]))
		}
		out = append(out, row)
	}
	return out
}

// Rollup aggregates the constituents of region that are present in byRegion and
// records those that are absent. Partial input still produces a series.
func Rollup(region string, mode Mode, constituents []string, byRegion map[string][]domain.Row) Result {
	sources := make(map[string][]domain.Row, len(constituents))
	var missing []string
	for _, c := range constituents {
		rows, ok := byRegion[c]
		if !ok || len(rows) == 0 {
			missing = append(missing, c)
			continue
		}
		sources[c] = rows
	}

	var periodCol string
	for _, rows := range sources {
		if domain.PeriodColumn(rows) == domain.YearMonthColumn {
			periodCol = domain.YearMonthColumn
			break
		}
	}
	if periodCol == "" {
		periodCol = domain.YearColumn
	}

	return Result{
		Region:  region,
		Rows:    Aggregate(region, mode, sources, periodCol),
		Missing: missing,
	}
}

func format(mode Mode, acc *accumulator) string {
	if acc == nil || acc.count == 0 {
		return domain.MissingValue
	}
	if mode == ModeMean {
		return strconv.FormatFloat(acc.sum/float64(acc.count), 'f', 2, 64)
	}
	return strconv.FormatFloat(acc.sum, 'f', -1, 64)
}
