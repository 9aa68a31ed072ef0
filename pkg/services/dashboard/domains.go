package dashboard

import (
	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/models/store"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/de-tools/invest-atlas/pkg/services/loader"
	"github.com/de-tools/invest-atlas/pkg/services/ranking"
	"github.com/de-tools/invest-atlas/pkg/services/selection"
)

const domainTotalsUnit = "€ x 1000"

// Ranking sets how many domains are kept and how labels are shortened.
type Ranking struct {
	TopN       int
	LabelWidth int
}

func DefaultRanking() Ranking {
	return Ranking{TopN: ranking.DefaultTopN, LabelWidth: ranking.DefaultLabelWidth}
}

// DomainSeries keeps the top n policy domains plus Other, ranked on the mean
// of the years each domain reports, and lays them out over years.
func DomainSeries(totals store.DomainTotals, years []string, n int) []domain.DomainSeries {
	return ranking.TopNOverPresent(totals, years, n)
}

// StackedDomains builds the stacked policy-domain chart. A single selection
// gets one panel; with several selected regions every municipality with a
// policy breakdown gets its own panel over the same domain totals.
func StackedDomains(state *selection.State, a *loader.Artifacts, adj *inflation.Adjuster, years []string, rk Ranking) Chart {
	chart := Chart{
		Title:   state.Subtitle(),
		Unit:    domainTotalsUnit,
		Periods: years,
		Stacked: true,
	}
	if a.DomainTotals == nil {
		return chart
	}

	series := stackSeries(state, adj, DomainSeries(a.DomainTotals, years, rk.TopN), years, rk.LabelWidth)

	if state.Branch() != selection.BranchStackedMultiple {
		title := state.SelectedLabel()
		if regions := state.Regions(); len(regions) == 1 {
			title = regions[0].Name
		}
		chart.Panels = []Panel{{Title: title, Series: series}}
		return chart
	}

	for _, r := range state.RegionsOf(domain.RegionMunicipality) {
		m, ok := a.Municipality(r.Name)
		if !ok || m.PolicyBreakdown == nil {
			continue
		}
		chart.Panels = append(chart.Panels, Panel{Title: r.Name, Series: series})
	}
	return chart
}

func stackSeries(state *selection.State, adj *inflation.Adjuster, ranked []domain.DomainSeries, periods []string, width int) []Series {
	var out []Series
	for _, d := range ranked {
		label := ranking.TruncateLabel(d.Domain, width)
		nominal := domain.Values(d.Amounts)
		if state.ShowNominal() {
			out = append(out, Series{Label: label, Kind: Nominal, Values: nominal})
		}
		if state.ShowAdjusted() {
			out = append(out, Series{Label: label, Kind: Adjusted, Values: adjustValues(adj, nominal, periods)})
		}
	}
	return out
}
