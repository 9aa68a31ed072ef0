package adapters

import (
	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/models/store"
)

// MapCPIFactsToIndex keeps the first index value seen for each year.
// The reference index falls back to fallback when the reference year is not listed.
func MapCPIFactsToIndex(facts []store.CPIFact, referenceYear int, fallback float64) domain.InflationIndex {
	values := make(map[int]float64, len(facts))
	for _, fact := range facts {
		year := int(fact.Jaar)
		if _, exists := values[year]; exists {
			continue
		}
		values[year] = fact.Consumptieprijsindex
	}

	reference, ok := values[referenceYear]
	if !ok || reference == 0 {
		reference = fallback
	}

	return domain.InflationIndex{
		Values:         values,
		ReferenceYear:  referenceYear,
		ReferenceIndex: reference,
	}
}
