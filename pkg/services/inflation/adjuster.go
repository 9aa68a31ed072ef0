package inflation

import (
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

const (
	DefaultReferenceYear  = 2014
	DefaultReferenceIndex = 100.34
)

// Adjuster converts nominal amounts to reference-year prices.
// The reference year and index are fixed for the adjuster's lifetime.
type Adjuster struct {
	values         map[int]float64
	first, last    int // known index years; empty when first > last
	referenceYear  int
	referenceIndex float64
}

func NewAdjuster(index domain.InflationIndex) *Adjuster {
	values := make(map[int]float64, len(index.Values))
	first, last := math.MaxInt, math.MinInt
	for y, v := range index.Values {
		values[y] = v
		first, last = min(first, y), max(last, y)
	}
	reference := index.ReferenceIndex
	if reference == 0 {
		reference = DefaultReferenceIndex
	}
	return &Adjuster{
		values:         values,
		first:          first,
		last:           last,
		referenceYear:  index.ReferenceYear,
		referenceIndex: reference,
	}
}

func (a *Adjuster) ReferenceYear() int { return a.referenceYear }

func (a *Adjuster) ReferenceIndex() float64 { return a.referenceIndex }

// Adjust returns amount * referenceIndex / periodIndex. period is "2020" or "2020-2025".
// Zero amounts adjust to zero without a lookup.
func (a *Adjuster) Adjust(amount float64, period string) float64 {
	if amount == 0 || math.IsNaN(amount) {
		return 0
	}
	return amount * (a.referenceIndex / a.PeriodIndex(period))
}

func (a *Adjuster) AdjustYear(amount float64, year int) float64 {
	return a.Adjust(amount, strconv.Itoa(year))
}

// AdjustSeries adjusts values[i] for periods[i].
func (a *Adjuster) AdjustSeries(values []float64, periods []string) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if i < len(periods) {
			out[i] = a.Adjust(v, periods[i])
		}
	}
	return out
}

// PeriodIndex is the mean index over the known years of the inclusive range.
// Unknown or unparseable periods fall back to the reference index.
func (a *Adjuster) PeriodIndex(period string) float64 {
	start, end, ok := parsePeriod(period)
	if !ok {
		return a.referenceIndex
	}
	start, end = max(start, a.first), min(end, a.last)

	var (
		sum   float64
		count int
	)
	for year := start; year <= end; year++ {
		if v, ok := a.values[year]; ok && v != 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return a.referenceIndex
	}
	return sum / float64(count)
}

func parsePeriod(period string) (int, int, bool) {
	first, last, isRange := strings.Cut(strings.TrimSpace(period), "-")
	start, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, false
	}
	if !isRange {
		return start, start, true
	}
	end, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil || end < start {
		return 0, 0, false
	}
	return start, end, true
}
