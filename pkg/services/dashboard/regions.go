package dashboard

import (
	"slices"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/de-tools/invest-atlas/pkg/services/loader"
	"github.com/de-tools/invest-atlas/pkg/services/selection"
)

const (
	flandersAverageTitle = "Vlaanderen (gemiddelde)"
	perInhabitant        = "€ per inwoner"
)

// SmallMultiples builds one panel per selected region: Flanders first, then
// provinces, then municipalities, each group in selection order. Regions
// without data are skipped.
func SmallMultiples(state *selection.State, a *loader.Artifacts, adj *inflation.Adjuster, years []string) Chart {
	chart := Chart{
		Title:   state.Subtitle(),
		Unit:    perInhabitant,
		Periods: years,
	}

	if state.Has(domain.Flanders()) && a.Averages != nil && a.Averages.Vlaanderen != nil {
		nominal := yearValues(a.Averages.Vlaanderen, years)
		chart.Panels = append(chart.Panels, Panel{
			Title:  flandersAverageTitle,
			Series: withViews(state, adj, flandersAverageTitle, nominal, years),
		})
	}

	for _, r := range state.RegionsOf(domain.RegionProvince) {
		if a.Averages == nil {
			break
		}
		perYear, ok := a.Averages.Provincies[r.Name]
		if !ok {
			continue
		}
		chart.Panels = append(chart.Panels, Panel{
			Title:  r.Name,
			Series: withViews(state, adj, r.Name, yearValues(perYear, years), years),
		})
	}

	for _, r := range state.RegionsOf(domain.RegionMunicipality) {
		m, ok := a.Municipality(r.Name)
		if !ok {
			continue
		}
		chart.Panels = append(chart.Panels, Panel{
			Title:  r.Name,
			Series: withViews(state, adj, r.Name, yearValues(m.PerYear, years), years),
		})
	}

	return chart
}

// DatasetChart shapes one CSV dataset: a panel per region, a series per metric column.
func DatasetChart(ds domain.RegionDataset, id domain.DatasetID, regions []string) Chart {
	chart := Chart{Title: string(id)}

	var all []domain.Row
	for _, region := range regions {
		rows, _ := ds.Get(id, region)
		all = append(all, rows...)
	}
	periodCol := domain.PeriodColumn(all)

	seen := make(map[string]struct{})
	for _, r := range all {
		p := r.Get(periodCol)
		if _, ok := seen[p]; ok || p == "" {
			continue
		}
		seen[p] = struct{}{}
		chart.Periods = append(chart.Periods, p)
	}
	slices.Sort(chart.Periods)

	for _, region := range regions {
		rows, ok := ds.Get(id, region)
		if !ok || len(rows) == 0 {
			continue
		}
		byPeriod := make(map[string]domain.Row, len(rows))
		for _, r := range rows {
			byPeriod[r.Get(periodCol)] = r
		}

		panel := Panel{Title: region}
		for _, col := range metricColumns(rows, periodCol) {
			values := make([]domain.Value, len(chart.Periods))
			for i, p := range chart.Periods {
				if r, ok := byPeriod[p]; ok {
					values[i] = ParseSeriesValue(r.Get(col))
				}
			}
			panel.Series = append(panel.Series, Series{Label: col, Values: values})
		}
		chart.Panels = append(chart.Panels, panel)
	}
	return chart
}

func metricColumns(rows []domain.Row, periodCol string) []string {
	var cols []string
	for _, r := range rows {
		for _, c := range r.Columns {
			if c == periodCol || c == domain.RegionColumn || c == domain.YearColumn || c == domain.YearMonthColumn {
				continue
			}
			if !slices.Contains(cols, c) {
				cols = append(cols, c)
			}
		}
	}
	return cols
}

func yearValues(perYear map[string]float64, years []string) []domain.Value {
	out := make([]domain.Value, len(years))
	for i, y := range years {
		if v, ok := perYear[y]; ok {
			out[i] = domain.Some(v)
		}
	}
	return out
}
