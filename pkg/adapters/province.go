package adapters

import (
	"maps"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/models/store"
)

// MapProvinceDetailedToDomain converts per-domain or per-account provincial detail.
// byAccount selects per_rekening over per_beleidsdomein.
func MapProvinceDetailedToDomain(detailed store.ProvinceDetailed, byAccount bool) map[string]map[string]domain.ProvincePeriod {
	out := make(map[string]map[string]domain.ProvincePeriod, len(detailed))
	for province, periods := range detailed {
		out[province] = make(map[string]domain.ProvincePeriod, len(periods))
		for period, p := range periods {
			split := p.PerBeleidsdomein
			if byAccount {
				split = p.PerRekening
			}
			var total float64
			if p.Totaal != nil {
				total = *p.Totaal
			}
			out[province][period] = domain.ProvincePeriod{
				Total:     total,
				PerDomain: maps.Clone(split),
			}
		}
	}
	return out
}
