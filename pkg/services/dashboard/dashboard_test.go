package dashboard

import (
	"fmt"
	"strings"
	"testing"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/models/store"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/de-tools/invest-atlas/pkg/services/loader"
	"github.com/de-tools/invest-atlas/pkg/services/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longDomain = "Mobiliteit en infrastructuurwerken in de gemeente"

func testAdjuster() *inflation.Adjuster {
	return inflation.NewAdjuster(domain.InflationIndex{
		Values:         map[int]float64{2014: 100, 2015: 110},
		ReferenceYear:  2014,
		ReferenceIndex: 100,
	})
}

func testArtifacts() *loader.Artifacts {
	return &loader.Artifacts{
		Municipalities: []domain.Municipality{
			{
				Name:     "Gent",
				Province: "Oost-Vlaanderen",
				PerYear:  map[string]float64{"2014": 300, "2015": 330},
				PolicyBreakdown: &domain.Breakdown{
					Total: 330,
					Top:   []domain.BreakdownItem{{Code: "0200", Name: "Wegen", Amount: 120}},
				},
			},
			{
				Name:     "Aalst",
				Province: "Oost-Vlaanderen",
				PerYear:  map[string]float64{"2014": 200},
			},
		},
		Averages: &store.Averages{
			Vlaanderen: map[string]float64{"2014": 250, "2015": 275},
			Provincies: map[string]map[string]float64{"Limburg": {"2015": 220}},
		},
		DomainTotals: store.DomainTotals{
			longDomain: {"2014": 100, "2015": 100},
			"Cultuur":  {"2014": 50, "2015": 70},
			"Sport":    {"2014": 10},
		},
		ProvinceTotals: store.ProvinceTotals{
			"Limburg":   {"2014-2019": 120},
			"Antwerpen": {"2014-2019": 90, "2020-2025": 95},
		},
		ProvinceDetailed: map[string]map[string]domain.ProvincePeriod{
			"Limburg": {
				"2014-2019": {Total: 100, PerDomain: map[string]float64{"Cultuur": 60, "Sport": 30, "Zorg": 10}},
				"2020-2025": {Total: 80, PerDomain: map[string]float64{"Cultuur": 50, "Sport": 20}},
			},
		},
	}
}

func TestSmallMultiples(t *testing.T) {
	// Given
	state := selection.New()
	state.Add(domain.MunicipalityRegion("Gent"))
	state.Add(domain.ProvinceRegion("Limburg"))
	state.Add(domain.MunicipalityRegion("Nergens"))
	state.SetAdjusted(true)
	years := Years(2014, 2015)

	// When
	chart := SmallMultiples(state, testArtifacts(), testAdjuster(), years)

	// Then
	require.Len(t, chart.Panels, 3)
	assert.Equal(t, "Vlaanderen (gemiddelde)", chart.Panels[0].Title)
	assert.Equal(t, "Limburg", chart.Panels[1].Title, "provinces come before municipalities")
	assert.Equal(t, "Gent", chart.Panels[2].Title)
	assert.Equal(t, "Investeringsuitgaven per inwoner (€) - beide weergaven getoond", chart.Title)

	gent := chart.Panels[2].Series
	require.Len(t, gent, 2)
	assert.Equal(t, "Nominaal", gent[0].Label)
	assert.Equal(t, "2014 €", gent[1].Label)
	assert.Equal(t, []domain.Value{domain.Some(300), domain.Some(330)}, gent[0].Values)
	assert.InDelta(t, 300.0, gent[1].Values[1].Amount, 1e-9)

	limburg := chart.Panels[1].Series[0]
	assert.False(t, limburg.Values[0].Present, "absent years stay absent")
}

func TestSmallMultiples_NominalOnlyUsesRegionName(t *testing.T) {
	chart := SmallMultiples(selection.New(), testArtifacts(), testAdjuster(), DefaultYears())

	require.Len(t, chart.Panels, 1)
	require.Len(t, chart.Panels[0].Series, 1)
	assert.Equal(t, "Vlaanderen (gemiddelde)", chart.Panels[0].Series[0].Label)
	assert.Len(t, chart.Periods, 11)
}

func TestStackedDomains_Single(t *testing.T) {
	state := selection.Empty()
	state.Add(domain.MunicipalityRegion("Gent"))
	state.SetStacked(true)

	chart := StackedDomains(state, testArtifacts(), testAdjuster(), Years(2014, 2015), Ranking{TopN: 2, LabelWidth: 30})

	require.Len(t, chart.Panels, 1)
	assert.True(t, chart.Stacked)
	assert.Equal(t, "Gent", chart.Panels[0].Title)

	series := chart.Panels[0].Series
	require.Len(t, series, 3)
	assert.True(t, strings.HasSuffix(series[0].Label, "..."))
	assert.Len(t, []rune(series[0].Label), 30)
	assert.Equal(t, "Cultuur", series[1].Label)
	assert.Equal(t, domain.OtherDomain, series[2].Label)
	assert.Equal(t, []domain.Value{domain.Some(10), domain.Some(0)}, series[2].Values)
}

func TestDomainSeries_RanksOnReportedYears(t *testing.T) {
	totals := store.DomainTotals{
		"Nieuw": {"2024": 500},
		"Oud":   {},
	}
	for _, y := range DefaultYears() {
		totals["Oud"][y] = 100
	}

	got := DomainSeries(totals, DefaultYears(), 1)

	require.Len(t, got, 2)
	assert.Equal(t, "Nieuw", got[0].Domain)
	assert.Equal(t, 500.0, got[0].Amounts[len(got[0].Amounts)-1])
	assert.Zero(t, got[0].Amounts[0], "years without data are drawn as zero")
	assert.Equal(t, domain.OtherDomain, got[1].Domain)
}

func TestProvincialPanels_StackedRanksOnReportedPeriods(t *testing.T) {
	a := testArtifacts()
	a.ProvinceDetailed = map[string]map[string]domain.ProvincePeriod{
		"Luik": {
			"2014-2019": {PerDomain: map[string]float64{"Oud": 40}},
			"2020-2025": {PerDomain: map[string]float64{"Oud": 40}},
			"2026-2031": {PerDomain: map[string]float64{"Oud": 40, "Nieuw": 90}},
		},
	}
	state := selection.New()
	state.SetStacked(true)

	chart := ProvincialPanels(state, a, testAdjuster(), Ranking{TopN: 1, LabelWidth: 30})

	require.Len(t, chart.Panels, 1)
	series := chart.Panels[0].Series
	require.Len(t, series, 2)
	assert.Equal(t, "Nieuw", series[0].Label)
	assert.Equal(t, domain.OtherDomain, series[1].Label)
}

func TestStackedDomains_Multiple(t *testing.T) {
	state := selection.Empty()
	state.Add(domain.MunicipalityRegion("Gent"))
	state.Add(domain.MunicipalityRegion("Aalst"))
	state.SetStacked(true)
	state.SetAdjusted(true)

	chart := StackedDomains(state, testArtifacts(), testAdjuster(), Years(2014, 2015), DefaultRanking())

	require.Len(t, chart.Panels, 1, "municipalities without a policy breakdown are skipped")
	assert.Equal(t, "Gent", chart.Panels[0].Title)
	assert.Len(t, chart.Panels[0].Series, 6, "three domains in both views")
}

func TestProvincialPanels_Adjusted(t *testing.T) {
	state := selection.New()
	state.SetAdjusted(true)
	state.SetNominal(false)

	chart := ProvincialPanels(state, testArtifacts(), testAdjuster(), Ranking{TopN: 8, LabelWidth: 30})

	require.Len(t, chart.Panels, 2)
	assert.Equal(t, "Antwerpen", chart.Panels[0].Title)
	limburg := chart.Panels[1].Series
	require.Len(t, limburg, 1)
	assert.Equal(t, Adjusted, limburg[0].Kind)
	// Mean CPI over 2014-2019 is (100 + 110) / 2.
	assert.InDelta(t, 120*100/105.0, limburg[0].Values[0].Amount, 1e-9)
	assert.False(t, limburg[0].Values[1].Present)
}

func TestProvincialPanels_Stacked(t *testing.T) {
	state := selection.New()
	state.SetStacked(true)

	chart := ProvincialPanels(state, testArtifacts(), testAdjuster(), Ranking{TopN: 2, LabelWidth: 30})

	require.Len(t, chart.Panels, 1)
	series := chart.Panels[0].Series
	require.Len(t, series, 3)
	assert.Equal(t, "Cultuur", series[0].Label)
	assert.Equal(t, "Sport", series[1].Label)
	assert.Equal(t, domain.OtherDomain, series[2].Label)
	assert.Equal(t, 10.0, series[2].Values[0].Amount)
}

func TestProvincialTable(t *testing.T) {
	perDomain := make(map[string]float64)
	for i := 1; i <= 17; i++ {
		perDomain[fmt.Sprintf("D%02d", i)] = float64(i * 10)
	}
	detail := map[string]map[string]domain.ProvincePeriod{
		"Luik": {"2014-2019": {Total: 1530, PerDomain: perDomain}},
	}

	t.Run("top rows, rest and total", func(t *testing.T) {
		section, ok := ProvincialTable(detail, "Luik", 15)
		require.True(t, ok)
		require.Len(t, section.Rows, 17)

		assert.Equal(t, "D17", section.Rows[0].Name)
		assert.Equal(t, "D03", section.Rows[14].Name)

		other := section.Rows[15]
		assert.Equal(t, "Overige (2 items)", other.Name)
		assert.Equal(t, domain.Some(30), other.Values[0])
		assert.False(t, other.Values[1].Present)

		total := section.Rows[16]
		assert.Equal(t, "Totaal", total.Name)
		assert.Equal(t, domain.Some(1530), total.Values[0])
		assert.False(t, total.Values[2].Present)
	})

	t.Run("no other row when everything fits", func(t *testing.T) {
		section, ok := ProvincialTable(detail, "Luik", 20)
		require.True(t, ok)
		assert.Len(t, section.Rows, 18)
	})

	t.Run("unknown province", func(t *testing.T) {
		section, ok := ProvincialTable(detail, "Namen", 15)
		assert.False(t, ok)
		assert.Empty(t, section.Rows)
		assert.NotEmpty(t, section.Notes)
	})

	t.Run("report over all provinces", func(t *testing.T) {
		r := ProvincialTables(detail, "Per beleidsdomein", 15)
		require.Len(t, r.Sections, 1)
		assert.Equal(t, ProvincialPeriods, r.Periods)
	})
}

func TestProvincialOverview(t *testing.T) {
	// Given
	totals := store.ProvinceTotals{
		"Limburg":   {"2014-2019": 100, "2020-2025": 150, "2026-2031": 120},
		"Antwerpen": {"2014-2019": 200, "2020-2025": 0, "2026-2031": 300},
		"Namen":     {"2014-2019": 50, "2020-2025": 100},
	}

	// When
	o := ProvincialOverview(totals)

	// Then
	require.Len(t, o.Rows, 3)
	antwerpen, limburg, namen := o.Rows[0], o.Rows[1], o.Rows[2]
	assert.Equal(t, "Antwerpen", antwerpen.Province)

	assert.False(t, antwerpen.Amounts[1].Present, "zero amounts are absent")
	assert.False(t, antwerpen.Changes[0].Present, "no change next to a zero period")
	assert.False(t, antwerpen.Changes[1].Present)

	assert.InDelta(t, 50.0, limburg.Changes[0].Amount, 1e-9)
	assert.InDelta(t, -20.0, limburg.Changes[1].Amount, 1e-9)
	assert.InDelta(t, 100.0, namen.Changes[0].Amount, 1e-9)
	assert.False(t, namen.Amounts[2].Present)

	avg := o.Average
	assert.Equal(t, "Gemiddelde", avg.Province)
	assert.InDelta(t, 350/3.0, avg.Amounts[0].Amount, 1e-9)
	assert.InDelta(t, 125.0, avg.Amounts[1].Amount, 1e-9, "zero periods are left out of the mean")
	assert.InDelta(t, 210.0, avg.Amounts[2].Amount, 1e-9)
	assert.InDelta(t, 75.0, avg.Changes[0].Amount, 1e-9)
	assert.InDelta(t, -20.0, avg.Changes[1].Amount, 1e-9)

	r := o.Report()
	assert.Equal(t, []string{"2014-2019", "Evolutie 1", "2020-2025", "Evolutie 2", "2026-2031"}, r.Periods)
	require.Len(t, r.Sections[0].Rows, 4)
	assert.Len(t, r.Sections[0].Rows[3].Values, 5)
	assert.Equal(t, "+75.0%", r.Sections[0].Summary["Gemiddelde evolutie 1"])
	assert.Equal(t, "-20.0%", r.Sections[0].Summary["Gemiddelde evolutie 2"])
}

func TestProvincialOverview_AllZero(t *testing.T) {
	o := ProvincialOverview(store.ProvinceTotals{
		"Luik":    {"2014-2019": 0, "2020-2025": 0, "2026-2031": 0},
		"Limburg": {},
	})

	require.Len(t, o.Rows, 2)
	for _, v := range append(o.Average.Amounts, o.Average.Changes...) {
		assert.False(t, v.Present, "averages without data stay absent")
	}

	r := o.Report()
	assert.Equal(t, "-", r.Sections[0].Summary["Gemiddelde evolutie 1"])
	assert.Equal(t, "Gemiddelde", r.Sections[0].Rows[2].Name)
}

func TestProvincialOverview_Empty(t *testing.T) {
	o := ProvincialOverview(nil)

	assert.Empty(t, o.Rows)
	assert.Len(t, o.Average.Amounts, 3)
	assert.Len(t, o.Average.Changes, 2)
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+12.5%", FormatChange(domain.Some(12.5)))
	assert.Equal(t, "+0.0%", FormatChange(domain.Some(0)))
	assert.Equal(t, "-3.3%", FormatChange(domain.Some(-3.333)))
	assert.Equal(t, "-", FormatChange(domain.None()))
}

func TestMunicipalityDetail(t *testing.T) {
	base := domain.Municipality{
		Name:     "Lier",
		Province: "Antwerpen",
		PerYear:  map[string]float64{"2024": 1000},
		PolicyBreakdown: &domain.Breakdown{
			Total:      995,
			Difference: 5,
			Top:        []domain.BreakdownItem{{Code: "0200", Name: "Wegen", Amount: 400}},
		},
		AccountDetail: &domain.Breakdown{
			Total:      950,
			Difference: 50,
			Top:        []domain.BreakdownItem{{Code: "220000", Name: "220000 - Gebouwen", Amount: 300}},
		},
	}

	t.Run("policy view warns on account difference", func(t *testing.T) {
		d := MunicipalityDetail(base, ViewPolicyField)
		assert.Equal(t, "Top 10 per beleidsveld", d.Title)
		require.Len(t, d.Items, 1)
		assert.Equal(t, "Wegen", d.Items[0].Name)
		assert.Equal(t, differenceWarning, d.Warning)
		assert.Empty(t, d.Placeholder)
	})

	t.Run("account view strips codes", func(t *testing.T) {
		d := MunicipalityDetail(base, ViewAccount)
		assert.Equal(t, "Rekening", d.Column)
		require.Len(t, d.Items, 1)
		assert.Equal(t, "Gebouwen", d.Items[0].Name)
		assert.Equal(t, "220000", d.Items[0].Code)
	})

	t.Run("small differences do not warn", func(t *testing.T) {
		m := base
		m.AccountDetail = nil
		d := MunicipalityDetail(m, ViewPolicyField)
		assert.Empty(t, d.Warning)
		assert.Equal(t, "geen data", differenceLabel(d.AccountTotal, d.AccountDifference))
	})

	t.Run("missing breakdown gives a placeholder", func(t *testing.T) {
		m := base
		m.AccountDetail = nil
		d := MunicipalityDetail(m, ViewAccount)
		assert.Empty(t, d.Items)
		assert.Empty(t, d.Warning)
		assert.Equal(t, "Geen gedetailleerde data beschikbaar voor deze gemeente", d.Placeholder)
	})

	t.Run("zero total does not divide", func(t *testing.T) {
		m := base
		m.PerYear = map[string]float64{}
		d := MunicipalityDetail(m, ViewPolicyField)
		assert.Empty(t, d.Warning)
		assert.False(t, d.Total2024.Present)
	})

	t.Run("unreliable municipality", func(t *testing.T) {
		m := base
		m.Name = "Kaprijke"
		m.Province = ""
		d := MunicipalityDetail(m, ViewPolicyField)
		assert.True(t, d.Unreliable)
		assert.Equal(t, unreliableWarning, d.Warning)
		assert.Equal(t, "Provincie onbekend", d.Province)

		r := d.Report()
		assert.Contains(t, r.Title, "onbetrouwbaar")
		assert.Equal(t, "€ 1000.00", r.Sections[0].Summary["Totaal 2024"])
	})
}

func TestParseDetailView(t *testing.T) {
	v, err := ParseDetailView(" Uitgavenpost ")
	require.NoError(t, err)
	assert.Equal(t, ViewAccount, v)

	_, err = ParseDetailView("rekening")
	assert.Error(t, err)
}

func TestStripCode(t *testing.T) {
	tests := []struct {
		name, code, want string
	}{
		{"220000 - Gebouwen", "220000", "Gebouwen"},
		{"220000 Gebouwen", "220000", "Gebouwen"},
		{"Gebouwen 220000", "220000", "Gebouwen 220000"},
		{"Gebouwen", "", "Gebouwen"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripCode(tt.name, tt.code), tt.name)
	}
}

func TestColorBand(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{100, BandTop10},
		{90, BandTop10},
		{75, Band70to90},
		{50, Band50to70},
		{30, Band30to50},
		{10, Band10to30},
		{5, BandBottom10},
		{0, BandBottom10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColorBand(tt.value, 0, 100), "value %v", tt.value)
	}
	assert.Equal(t, BandBottom10, ColorBand(5, 5, 5), "flat range")
}

func TestChoropleth(t *testing.T) {
	ms := []domain.Municipality{
		{Name: "Gent", PerYear: map[string]float64{"2024": 1000}},
		{Name: "Aalst", PerYear: map[string]float64{"2024": 100}},
		{Name: "Kaprijke", PerYear: map[string]float64{"2024": 5000}},
		{Name: "Nevele", PerYear: map[string]float64{}},
	}

	entries, legend := Choropleth(ms, "2024")

	require.Len(t, entries, 4)
	assert.Equal(t, 100.0, legend.Min)
	assert.Equal(t, 5000.0, legend.Max)
	assert.InDeltaSlice(t, []float64{4500, 3500, 2500, 1500, 500}, legend.Bounds, 1e-9)
	assert.Equal(t, UnreliableFill, entries[2].Color)
	assert.Equal(t, BandBottom10, entries[1].Color)
	assert.False(t, entries[3].Value.Present)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "€ 1.234.567", FormatCurrency(1234567.4))
	assert.Equal(t, "€ 999", FormatCurrency(999))
	assert.Equal(t, "-", FormatCurrency(0))
	assert.Equal(t, "€3M", FormatCurrencyShort(3_400_000))
	assert.Equal(t, "€12K", FormatCurrencyShort(12_345))
	assert.Equal(t, "€0", FormatCurrencyShort(0))
	assert.Equal(t, "€ -", FormatAmount(domain.None()))
	assert.Equal(t, "€ 12.50", FormatAmount(domain.Some(12.5)))
}

func TestDatasetChart(t *testing.T) {
	row := func(region, year, amount string) domain.Row {
		r := domain.NewRow(nil)
		r.Set(domain.RegionColumn, region)
		r.Set(domain.YearColumn, year)
		r.Set("Aantal", amount)
		return r
	}
	ds := domain.RegionDataset{}
	ds.Put("starters.csv", "Antwerpen", []domain.Row{row("Antwerpen", "2020", "10"), row("Antwerpen", "2021", "12")})
	ds.Put("starters.csv", "Luik", []domain.Row{row("Luik", "2021", "-")})

	chart := DatasetChart(ds, "starters.csv", []string{"Antwerpen", "Luik", "Namen"})

	assert.Equal(t, []string{"2020", "2021"}, chart.Periods)
	require.Len(t, chart.Panels, 2)
	assert.Equal(t, []domain.Value{domain.Some(10), domain.Some(12)}, chart.Panels[0].Series[0].Values)
	assert.Equal(t, []domain.Value{domain.None(), domain.None()}, chart.Panels[1].Series[0].Values)

	r := chart.Report()
	require.Len(t, r.Sections, 2)
	assert.Equal(t, "Aantal", r.Sections[0].Rows[0].Name)
}
