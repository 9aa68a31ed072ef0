package domain

// Municipality is one GeoJSON feature of the enriched municipalities collection.
type Municipality struct {
	Name            string
	Province        string
	PerYear         map[string]float64 // "2014".."2024" → € per inhabitant
	PolicyBreakdown *Breakdown         // beleidsdomein_2024
	AccountDetail   *Breakdown         // detail_2024
}

// Breakdown is a declared total with its top-10 split.
type Breakdown struct {
	Total      float64
	Difference float64 // verschil_met_totaal
	Top        []BreakdownItem
}

type BreakdownItem struct {
	Code   string
	Name   string
	Amount float64
}

// ProvincePeriod is one multi-year plan period of a province.
type ProvincePeriod struct {
	Total     float64
	PerDomain map[string]float64
}
