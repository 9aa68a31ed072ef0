package dashboard

import (
	"fmt"
	"strconv"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/de-tools/invest-atlas/pkg/services/selection"
)

const (
	FirstYear = 2014
	LastYear  = 2024
)

type SeriesKind int

const (
	Nominal SeriesKind = iota
	Adjusted
)

func (k SeriesKind) String() string {
	if k == Adjusted {
		return "adjusted"
	}
	return "nominal"
}

// Series is one labelled line or bar stack over the chart periods.
type Series struct {
	Label  string
	Kind   SeriesKind
	Values []domain.Value
}

// Panel is one small-multiple chart.
type Panel struct {
	Title  string
	Series []Series
}

// Chart is the shaped input of one dashboard view.
type Chart struct {
	Title   string
	Unit    string
	Periods []string
	Stacked bool
	Panels  []Panel
}

// Years returns the year labels from..to inclusive.
func Years(from, to int) []string {
	if to < from {
		return nil
	}
	out := make([]string, 0, to-from+1)
	for y := from; y <= to; y++ {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

// DefaultYears is the 2014..2024 axis of the municipal charts.
func DefaultYears() []string {
	return Years(FirstYear, LastYear)
}

// ParseSeriesValue reads a CSV cell; blanks and "-" are absent.
func ParseSeriesValue(s string) domain.Value {
	v, ok := domain.ParseNumber(s)
	if !ok {
		return domain.None()
	}
	return domain.Some(v)
}

// Report flattens the chart into a report with one section per panel.
func (c Chart) Report() domain.Report {
	r := domain.Report{
		Title:   c.Title,
		Unit:    c.Unit,
		Periods: c.Periods,
	}
	for _, p := range c.Panels {
		section := domain.ReportSection{Title: p.Title}
		for _, s := range p.Series {
			section.Rows = append(section.Rows, domain.ReportRow{
				Name:        s.Label,
				Values:      s.Values,
				Description: s.Kind.String(),
			})
		}
		r.Sections = append(r.Sections, section)
	}
	return r
}

// withViews expands a nominal series into the nominal and/or adjusted series the state asks for.
func withViews(state *selection.State, adj *inflation.Adjuster, name string, nominal []domain.Value, periods []string) []Series {
	var out []Series
	both := state.ShowBoth()
	if state.ShowNominal() {
		label := name
		if both {
			label = "Nominaal"
		}
		out = append(out, Series{Label: label, Kind: Nominal, Values: nominal})
	}
	if state.ShowAdjusted() {
		label := name
		if both {
			label = fmt.Sprintf("%d €", adj.ReferenceYear())
		}
		out = append(out, Series{Label: label, Kind: Adjusted, Values: adjustValues(adj, nominal, periods)})
	}
	return out
}

func adjustValues(adj *inflation.Adjuster, values []domain.Value, periods []string) []domain.Value {
	out := make([]domain.Value, len(values))
	for i, v := range values {
		if !v.Present || i >= len(periods) {
			continue
		}
		out[i] = domain.Some(adj.Adjust(v.Amount, periods[i]))
	}
	return out
}
