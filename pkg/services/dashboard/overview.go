package dashboard

import (
	"fmt"
	"maps"
	"slices"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/models/store"
)

const averageRow = "Gemiddelde"

// OverviewRow holds the plan period amounts of one province and the change
// between consecutive periods in percent. Amounts that are not positive are
// absent, and a change is only present when both of its amounts are.
type OverviewRow struct {
	Province string
	Amounts  []domain.Value
	Changes  []domain.Value
}

// Overview is the provincial comparison table with its averages row.
type Overview struct {
	Rows    []OverviewRow
	Average OverviewRow
}

// ProvincialOverview compares the provinces over ProvincialPeriods. The
// averages only count positive amounts and present changes; a column without
// any stays absent.
func ProvincialOverview(totals store.ProvinceTotals) Overview {
	n := len(ProvincialPeriods)
	amountSums, changeSums := make([]float64, n), make([]float64, n-1)
	amountCounts, changeCounts := make([]int, n), make([]int, n-1)

	var o Overview
	for _, province := range slices.Sorted(maps.Keys(totals)) {
		row := OverviewRow{
			Province: province,
			Amounts:  make([]domain.Value, n),
			Changes:  make([]domain.Value, n-1),
		}
		for i, p := range ProvincialPeriods {
			if v := totals[province][p]; v > 0 {
				row.Amounts[i] = domain.Some(v)
				amountSums[i] += v
				amountCounts[i]++
			}
		}
		for i := range row.Changes {
			from, to := row.Amounts[i], row.Amounts[i+1]
			if !from.Present || !to.Present {
				continue
			}
			change := (to.Amount - from.Amount) / from.Amount * 100
			row.Changes[i] = domain.Some(change)
			changeSums[i] += change
			changeCounts[i]++
		}
		o.Rows = append(o.Rows, row)
	}

	o.Average = OverviewRow{
		Province: averageRow,
		Amounts:  averages(amountSums, amountCounts),
		Changes:  averages(changeSums, changeCounts),
	}
	return o
}

func averages(sums []float64, counts []int) []domain.Value {
	out := make([]domain.Value, len(sums))
	for i, sum := range sums {
		if counts[i] > 0 {
			out[i] = domain.Some(sum / float64(counts[i]))
		}
	}
	return out
}

// Report interleaves amounts and changes: period, change, period, change, period.
func (o Overview) Report() domain.Report {
	periods := make([]string, 0, 2*len(ProvincialPeriods)-1)
	for i, p := range ProvincialPeriods {
		if i > 0 {
			periods = append(periods, fmt.Sprintf("Evolutie %d", i))
		}
		periods = append(periods, p)
	}

	section := domain.ReportSection{Title: "Overzicht per provincie"}
	for _, row := range append(slices.Clone(o.Rows), o.Average) {
		section.Rows = append(section.Rows, domain.ReportRow{
			Name:   row.Province,
			Values: row.interleaved(),
		})
	}
	section.Summary = map[string]any{}
	for i, c := range o.Average.Changes {
		section.Summary[fmt.Sprintf("Gemiddelde evolutie %d", i+1)] = FormatChange(c)
	}
	section.Notes = []string{"Evolutie in procent, enkel wanneer beide periodes een bedrag hebben."}

	return domain.Report{
		Title:    "Investeringen per provincie",
		Unit:     perInhabitant,
		Periods:  periods,
		Sections: []domain.ReportSection{section},
	}
}

func (r OverviewRow) interleaved() []domain.Value {
	out := make([]domain.Value, 0, len(r.Amounts)+len(r.Changes))
	for i, a := range r.Amounts {
		if i > 0 {
			out = append(out, r.Changes[i-1])
		}
		out = append(out, a)
	}
	return out
}

// FormatChange renders a signed percentage with one decimal, "-" when absent.
func FormatChange(v domain.Value) string {
	if !v.Present {
		return domain.MissingValue
	}
	return fmt.Sprintf("%+.1f%%", v.Amount)
}
