package store

// CPIFact is one entry of cpi.json. Jaar arrives as a string or a number.
type CPIFact struct {
	Jaar                 YearValue `json:"Jaar"`
	Consumptieprijsindex float64   `json:"Consumptieprijsindex"`
}

type CPIFile struct {
	Facts []CPIFact `json:"facts"`
}

// Averages is averages.json: the Flemish average and per-province averages per year.
type Averages struct {
	Vlaanderen map[string]float64            `json:"Vlaanderen"`
	Provincies map[string]map[string]float64 `json:"Provincies"`
}

// DomainTotals is beleidsdomein_totals.json: policy domain → year → total.
type DomainTotals map[string]map[string]float64

// ProvinceTotals is provincie_totals.json: province → period → € per inhabitant.
type ProvinceTotals map[string]map[string]float64

// ProvinceDetailed is provincie_detailed.json and provincie_rekeningen_detailed.json.
type ProvinceDetailed map[string]map[string]ProvincePeriod

type ProvincePeriod struct {
	Totaal           *float64           `json:"totaal"`
	PerBeleidsdomein map[string]float64 `json:"per_beleidsdomein,omitempty"`
	PerRekening      map[string]float64 `json:"per_rekening,omitempty"`
}

// BreakdownProperty is the beleidsdomein_2024 / detail_2024 feature property.
type BreakdownProperty struct {
	TotaalBeleidsdomein *float64       `json:"totaal_beleidsdomein"`
	TotaalDetails       *float64       `json:"totaal_details"`
	VerschilMetTotaal   float64        `json:"verschil_met_totaal"`
	TopBeleidsvelden    []BreakdownRow `json:"top_beleidsvelden"`
	TopRekeningen       []BreakdownRow `json:"top_rekeningen"`
}

type BreakdownRow struct {
	Code   string  `json:"code"`
	Naam   string  `json:"naam"`
	Bedrag float64 `json:"bedrag"`
}
