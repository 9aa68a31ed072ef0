package dashboard

import (
	"math"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

// Six bands from high (red) to low (blue).
const (
	BandTop10      = "#d73027"
	Band70to90     = "#f46d43"
	Band50to70     = "#fdae61"
	Band30to50     = "#abd9e9"
	Band10to30     = "#74add1"
	BandBottom10   = "#4575b4"
	UnreliableFill = "#999999"
)

// ColorBand maps value onto the six-band scale between min and max.
// A flat range (max == min) and NaN values fall into the lowest band.
func ColorBand(value, min, max float64) string {
	if max == min || math.IsNaN(value) {
		return BandBottom10
	}
	t := (value - min) / (max - min)
	switch {
	case t >= 0.9:
		return BandTop10
	case t >= 0.7:
		return Band70to90
	case t >= 0.5:
		return Band50to70
	case t >= 0.3:
		return Band30to50
	case t >= 0.1:
		return Band10to30
	default:
		return BandBottom10
	}
}

// MapEntry is the fill of one municipality on the choropleth.
type MapEntry struct {
	Municipality string
	Province     string
	Value        domain.Value
	Color        string
}

// Legend holds the band thresholds as fractions of the maximum.
type Legend struct {
	Min, Max float64
	Bounds   []float64 // 90%, 70%, 50%, 30%, 10% of Max
}

// Choropleth colours every municipality by its amount for year. Unreliable
// municipalities get a neutral fill.
func Choropleth(ms []domain.Municipality, year string) ([]MapEntry, Legend) {
	var (
		legend Legend
		seen   bool
	)
	for _, m := range ms {
		v, ok := m.PerYear[year]
		if !ok || math.IsNaN(v) {
			continue
		}
		if !seen {
			legend.Min, legend.Max, seen = v, v, true
			continue
		}
		legend.Min = math.Min(legend.Min, v)
		legend.Max = math.Max(legend.Max, v)
	}
	for _, f := range []float64{0.9, 0.7, 0.5, 0.3, 0.1} {
		legend.Bounds = append(legend.Bounds, legend.Max*f)
	}

	entries := make([]MapEntry, 0, len(ms))
	for _, m := range ms {
		e := MapEntry{Municipality: m.Name, Province: m.Province}
		v, ok := m.PerYear[year]
		if ok {
			e.Value = domain.Some(v)
		}
		switch {
		case IsUnreliable(m.Name):
			e.Color = UnreliableFill
		case ok:
			e.Color = ColorBand(v, legend.Min, legend.Max)
		default:
			e.Color = BandBottom10
		}
		entries = append(entries, e)
	}
	return entries, legend
}

// DomainPalette colours stacked domains in rank order.
var DomainPalette = []string{
	"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00",
	"#ffff33", "#a65628", "#f781bf", "#999999", "#66c2a5",
}

// RegionPalette colours region series: Flanders first, then provinces in turn.
var RegionPalette = []string{
	"#e63946",
	"#2a9d8f", "#d62828", "#003049", "#f77f00", "#06a77d", "#6c5ce7",
}

// ChoroplethReport lists the map fills, one row per municipality.
func ChoroplethReport(entries []MapEntry, legend Legend, year string) domain.Report {
	section := domain.ReportSection{
		Title: "Gemeenten",
		Summary: map[string]any{
			"min": FormatCurrency(legend.Min),
			"max": FormatCurrency(legend.Max),
		},
	}
	for _, e := range entries {
		section.Rows = append(section.Rows, domain.ReportRow{
			Name:        e.Municipality,
			Values:      []domain.Value{e.Value},
			Description: e.Color,
		})
	}
	return domain.Report{
		Title:    "Investeringsuitgaven per inwoner " + year,
		Unit:     perInhabitant,
		Periods:  []string{year},
		Sections: []domain.ReportSection{section},
	}
}
