package inflation

import (
	"testing"

	"github.com/de-tools/invest-atlas/pkg/adapters"
	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
)

func newTestAdjuster() *Adjuster {
	return NewAdjuster(domain.InflationIndex{
		Values:         map[int]float64{2014: 100, 2020: 110, 2021: 120},
		ReferenceYear:  2014,
		ReferenceIndex: 100,
	})
}

func TestAdjust_ZeroAmount(t *testing.T) {
	a := newTestAdjuster()
	for _, period := range []string{"2014", "2020-2025", "bogus", ""} {
		assert.Equal(t, 0.0, a.Adjust(0, period), period)
	}
}

func TestAdjust_ReferenceYearIsIdentity(t *testing.T) {
	a := newTestAdjuster()
	assert.InDelta(t, 123.45, a.Adjust(123.45, "2014"), 1e-9)
	assert.InDelta(t, 123.45, a.AdjustYear(123.45, 2014), 1e-9)
}

func TestAdjust_RangeUsesKnownYearsOnly(t *testing.T) {
	a := newTestAdjuster()

	assert.InDelta(t, 115.0, a.PeriodIndex("2020-2022"), 1e-9)
	assert.InDelta(t, 100.0, a.Adjust(115, "2020-2022"), 1e-9)
}

func TestAdjust_UnknownPeriodFallsBack(t *testing.T) {
	a := newTestAdjuster()

	assert.Equal(t, 100.0, a.PeriodIndex("2026-2031"))
	assert.Equal(t, 42.0, a.Adjust(42, "2026-2031"))
	assert.Equal(t, 42.0, a.Adjust(42, "not-a-year"))
}

func TestAdjust_FromCPIFacts(t *testing.T) {
	index := adapters.MapCPIFactsToIndex([]store.CPIFact{
		{Jaar: 2014, Consumptieprijsindex: 100},
		{Jaar: 2020, Consumptieprijsindex: 110},
		{Jaar: 2020, Consumptieprijsindex: 999},
	}, 2014, DefaultReferenceIndex)

	a := NewAdjuster(index)

	assert.InDelta(t, 100.0, a.AdjustYear(110, 2020), 1e-9)
}

func TestPeriodIndex_ClampsToKnownYears(t *testing.T) {
	a := newTestAdjuster()

	assert.InDelta(t, 110.0, a.PeriodIndex("1-2000000000"), 1e-9, "mean of 100, 110 and 120")
	assert.InDelta(t, 115.0, a.PeriodIndex("2020-2000000000"), 1e-9)
	assert.Equal(t, 100.0, a.PeriodIndex("3000-2000000000"), "range past the known years")

	empty := NewAdjuster(domain.InflationIndex{ReferenceYear: 2014, ReferenceIndex: 100.34})
	assert.Equal(t, 100.34, empty.PeriodIndex("1-2000000000"))
}

func TestAdjustSeries(t *testing.T) {
	a := newTestAdjuster()
	got := a.AdjustSeries([]float64{100, 110, 0}, []string{"2014", "2020", "2021"})
	assert.InDeltaSlice(t, []float64{100, 100, 0}, got, 1e-9)
}

func TestNewAdjuster_FallbackReference(t *testing.T) {
	a := NewAdjuster(domain.InflationIndex{ReferenceYear: 2014})
	assert.Equal(t, DefaultReferenceIndex, a.ReferenceIndex())
	assert.Equal(t, 2014, a.ReferenceYear())
}
