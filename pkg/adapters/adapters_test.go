package adapters

import (
	"encoding/json"
	"testing"

	"github.com/de-tools/invest-atlas/pkg/models/store"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCPIFactsToIndex(t *testing.T) {
	var file store.CPIFile
	require.NoError(t, json.Unmarshal([]byte(`{"facts": [
		{"Jaar": "2014", "Consumptieprijsindex": 100.34},
		{"Jaar": 2015, "Consumptieprijsindex": 100.9},
		{"Jaar": "2015", "Consumptieprijsindex": 150}
	]}`), &file))

	index := MapCPIFactsToIndex(file.Facts, 2014, 99)

	assert.Equal(t, 100.34, index.ReferenceIndex)
	assert.Equal(t, 2014, index.ReferenceYear)
	assert.Equal(t, 100.9, index.Values[2015], "first value for a year wins")
	assert.Len(t, index.Values, 2)
}

func TestMapCPIFactsToIndex_Fallback(t *testing.T) {
	index := MapCPIFactsToIndex([]store.CPIFact{{Jaar: 2020, Consumptieprijsindex: 110}}, 2014, 100.34)

	assert.Equal(t, 100.34, index.ReferenceIndex)
	assert.Equal(t, 110.0, index.Values[2020])
}

func TestYearValue_Invalid(t *testing.T) {
	var fact store.CPIFact
	assert.Error(t, json.Unmarshal([]byte(`{"Jaar": "twintig"}`), &fact))
}

func TestMapFeatureToMunicipality(t *testing.T) {
	f := geojson.NewFeature(orb.Point{3.72, 51.05})
	f.Properties["municipality"] = "Gent"
	f.Properties["province"] = "Oost-Vlaanderen"
	f.Properties["2014"] = 300.0
	f.Properties["2024"] = 400.0
	f.Properties["inwoners"] = 260000.0
	f.Properties["beleidsdomein_2024"] = map[string]any{
		"totaal_beleidsdomein": 390.0,
		"verschil_met_totaal":  10.0,
		"top_beleidsvelden": []any{
			map[string]any{"code": "0200", "naam": "Wegen", "bedrag": 150.0},
		},
	}
	f.Properties["detail_2024"] = map[string]any{
		"totaal_details":      400.0,
		"verschil_met_totaal": 0.0,
		"top_rekeningen": []any{
			map[string]any{"code": "2210", "naam": "Gebouwen", "bedrag": 120.0},
		},
	}

	m, err := MapFeatureToMunicipality(f)

	require.NoError(t, err)
	assert.Equal(t, "Gent", m.Name)
	assert.Equal(t, "Oost-Vlaanderen", m.Province)
	assert.Equal(t, map[string]float64{"2014": 300, "2024": 400}, m.PerYear)

	require.NotNil(t, m.PolicyBreakdown)
	assert.Equal(t, 390.0, m.PolicyBreakdown.Total)
	assert.Equal(t, 10.0, m.PolicyBreakdown.Difference)
	require.Len(t, m.PolicyBreakdown.Top, 1)
	assert.Equal(t, "0200", m.PolicyBreakdown.Top[0].Code)

	require.NotNil(t, m.AccountDetail)
	assert.Equal(t, "Gebouwen", m.AccountDetail.Top[0].Name)
}

func TestMapFeatureToMunicipality_Errors(t *testing.T) {
	_, err := MapFeatureToMunicipality(nil)
	assert.Error(t, err)

	unnamed := geojson.NewFeature(orb.Point{4, 51})
	_, err = MapFeatureToMunicipality(unnamed)
	assert.Error(t, err)

	broken := geojson.NewFeature(orb.Point{4, 51})
	broken.Properties["municipality"] = "Kaprijke"
	broken.Properties["beleidsdomein_2024"] = map[string]any{"top_beleidsvelden": "geen lijst"}
	_, err = MapFeatureToMunicipality(broken)
	assert.Error(t, err)
}

func TestMapFeatureToMunicipality_WithoutBreakdown(t *testing.T) {
	f := geojson.NewFeature(orb.Point{4, 51})
	f.Properties["municipality"] = "Lier"
	f.Properties["beleidsdomein_2024"] = map[string]any{"verschil_met_totaal": 0.0}

	m, err := MapFeatureToMunicipality(f)

	require.NoError(t, err)
	assert.Nil(t, m.PolicyBreakdown, "a breakdown without total is ignored")
	assert.Nil(t, m.AccountDetail)
	assert.Empty(t, m.PerYear)
}

func TestMapProvinceDetailedToDomain(t *testing.T) {
	total := 100.0
	detailed := store.ProvinceDetailed{
		"Limburg": {
			"2014-2019": {
				Totaal:           &total,
				PerBeleidsdomein: map[string]float64{"Cultuur": 60},
				PerRekening:      map[string]float64{"Gebouwen": 80},
			},
			"2020-2025": {PerBeleidsdomein: map[string]float64{"Sport": 5}},
		},
	}

	byDomain := MapProvinceDetailedToDomain(detailed, false)
	byAccount := MapProvinceDetailedToDomain(detailed, true)

	assert.Equal(t, 100.0, byDomain["Limburg"]["2014-2019"].Total)
	assert.Equal(t, map[string]float64{"Cultuur": 60}, byDomain["Limburg"]["2014-2019"].PerDomain)
	assert.Equal(t, 0.0, byDomain["Limburg"]["2020-2025"].Total, "missing totaal reads as zero")
	assert.Equal(t, map[string]float64{"Gebouwen": 80}, byAccount["Limburg"]["2014-2019"].PerDomain)
	assert.Nil(t, byAccount["Limburg"]["2020-2025"].PerDomain)
}
