package adapters

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/models/store"
	"github.com/paulmach/orb/geojson"
)

const (
	policyBreakdownKey = "beleidsdomein_2024"
	accountDetailKey   = "detail_2024"
)

func MapFeatureToMunicipality(f *geojson.Feature) (domain.Municipality, error) {
	if f == nil {
		return domain.Municipality{}, fmt.Errorf("feature is nil")
	}

	name := f.Properties.MustString("municipality", "")
	if name == "" {
		return domain.Municipality{}, fmt.Errorf("feature %v has no municipality name", f.ID)
	}

	m := domain.Municipality{
		Name:     name,
		Province: f.Properties.MustString("province", ""),
		PerYear:  make(map[string]float64),
	}

	for key, raw := range f.Properties {
		if !isYearKey(key) {
			continue
		}
		if v, ok := raw.(float64); ok {
			m.PerYear[key] = v
		}
	}

	policy, err := decodeBreakdown(f.Properties[policyBreakdownKey])
	if err != nil {
		return domain.Municipality{}, fmt.Errorf("failed to decode %s of %s: %w", policyBreakdownKey, name, err)
	}
	if policy != nil && policy.TotaalBeleidsdomein != nil {
		m.PolicyBreakdown = MapBreakdownToDomain(*policy.TotaalBeleidsdomein, policy.VerschilMetTotaal, policy.TopBeleidsvelden)
	}

	detail, err := decodeBreakdown(f.Properties[accountDetailKey])
	if err != nil {
		return domain.Municipality{}, fmt.Errorf("failed to decode %s of %s: %w", accountDetailKey, name, err)
	}
	if detail != nil && detail.TotaalDetails != nil {
		m.AccountDetail = MapBreakdownToDomain(*detail.TotaalDetails, detail.VerschilMetTotaal, detail.TopRekeningen)
	}

	return m, nil
}

func MapBreakdownToDomain(total, difference float64, rows []store.BreakdownRow) *domain.Breakdown {
	b := &domain.Breakdown{
		Total:      total,
		Difference: difference,
		Top:        make([]domain.BreakdownItem, 0, len(rows)),
	}
	for _, r := range rows {
		b.Top = append(b.Top, domain.BreakdownItem{Code: r.Code, Name: r.Naam, Amount: r.Bedrag})
	}
	return b
}

func decodeBreakdown(raw any) (*store.BreakdownProperty, error) {
	if raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var prop store.BreakdownProperty
	if err := json.Unmarshal(data, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

func isYearKey(key string) bool {
	if len(key) != 4 {
		return false
	}
	_, err := strconv.Atoi(key)
	return err == nil
}
