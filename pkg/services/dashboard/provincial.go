package dashboard

import (
	"fmt"
	"maps"
	"slices"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/de-tools/invest-atlas/pkg/services/loader"
	"github.com/de-tools/invest-atlas/pkg/services/ranking"
	"github.com/de-tools/invest-atlas/pkg/services/selection"
)

// ProvincialPeriods are the multi-year plan periods of the provinces.
var ProvincialPeriods = []string{"2014-2019", "2020-2025", "2026-2031"}

const (
	otherRowFormat = "Overige (%d items)"
	totalRow       = "Totaal"
)

// ProvincialPanels builds a panel per province over the plan periods, in
// alphabetical order. Adjusted amounts use the mean CPI of each period. In
// stacked mode the panels split into the top policy domains.
func ProvincialPanels(state *selection.State, a *loader.Artifacts, adj *inflation.Adjuster, rk Ranking) Chart {
	chart := Chart{
		Title:   state.ProvincialSubtitle(),
		Unit:    perInhabitant,
		Periods: ProvincialPeriods,
		Stacked: state.ShowStacked(),
	}

	if !state.ShowStacked() {
		for _, province := range slices.Sorted(maps.Keys(a.ProvinceTotals)) {
			nominal := yearValues(a.ProvinceTotals[province], ProvincialPeriods)
			chart.Panels = append(chart.Panels, Panel{
				Title:  province,
				Series: withViews(state, adj, province, nominal, ProvincialPeriods),
			})
		}
		return chart
	}

	for _, province := range slices.Sorted(maps.Keys(a.ProvinceDetailed)) {
		perDomain := splitByDomain(a.ProvinceDetailed[province])
		ranked := ranking.TopNOverPresent(perDomain, ProvincialPeriods, rk.TopN)
		chart.Panels = append(chart.Panels, Panel{
			Title:  province,
			Series: stackSeries(state, adj, ranked, ProvincialPeriods, rk.LabelWidth),
		})
	}
	return chart
}

// ProvincialTable lists the top n items of one province by their largest
// period amount, followed by an "Overige" row for the rest and the declared
// totals. Zero amounts are shown as absent.
func ProvincialTable(detail map[string]map[string]domain.ProvincePeriod, province string, n int) (domain.ReportSection, bool) {
	section := domain.ReportSection{Title: province}

	periods, ok := detail[province]
	if !ok {
		section.Notes = []string{"Geen data beschikbaar voor deze provincie."}
		return section, false
	}

	series := ranking.FromYearMap(splitByDomain(periods), ProvincialPeriods)
	top, rest := ranking.TopByMax(series, n)

	for _, s := range top {
		section.Rows = append(section.Rows, domain.ReportRow{Name: s.Domain, Values: nonzero(s.Amounts)})
	}
	if rest.Count > 0 {
		section.Rows = append(section.Rows, domain.ReportRow{
			Name:   fmt.Sprintf(otherRowFormat, rest.Count),
			Values: nonzero(rest.Amounts),
		})
	}

	totals := make([]float64, len(ProvincialPeriods))
	for i, p := range ProvincialPeriods {
		totals[i] = periods[p].Total
	}
	section.Rows = append(section.Rows, domain.ReportRow{Name: totalRow, Values: nonzero(totals)})

	section.Summary = map[string]any{"items": len(series)}
	section.Notes = []string{fmt.Sprintf(
		"Bedragen in euro per inwoner voor de hele periode van het meerjarenplan. Getoond worden de top %d posten, gesorteerd op hoogste waarde.", n)}
	return section, true
}

// ProvincialTables renders ProvincialTable for every province, alphabetically.
func ProvincialTables(detail map[string]map[string]domain.ProvincePeriod, title string, n int) domain.Report {
	r := domain.Report{
		Title:   title,
		Unit:    perInhabitant,
		Periods: ProvincialPeriods,
	}
	for _, province := range slices.Sorted(maps.Keys(detail)) {
		section, _ := ProvincialTable(detail, province, n)
		r.Sections = append(r.Sections, section)
	}
	return r
}

func splitByDomain(periods map[string]domain.ProvincePeriod) map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	for _, period := range ProvincialPeriods {
		p, ok := periods[period]
		if !ok {
			continue
		}
		for name, amount := range p.PerDomain {
			if out[name] == nil {
				out[name] = make(map[string]float64)
			}
			out[name][period] = amount
		}
	}
	return out
}

func nonzero(amounts []float64) []domain.Value {
	out := make([]domain.Value, len(amounts))
	for i, a := range amounts {
		if a != 0 {
			out[i] = domain.Some(a)
		}
	}
	return out
}
