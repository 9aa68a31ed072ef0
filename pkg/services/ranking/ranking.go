package ranking

import (
	"slices"
	"sort"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

const (
	DefaultTopN       = 10
	ProvincialTopN    = 8
	TableTopN         = 15
	DefaultLabelWidth = 30
)

// TopN keeps the n domains with the highest mean amount and folds the rest into
// an Other series. Ties keep input order. Other is only added when it carries a
// nonzero amount in some period.
func TopN(series []domain.DomainSeries, n int) []domain.DomainSeries {
	return collapse(series, n, domain.DomainSeries.Mean)
}

// TopNOverPresent ranks like TopN, but each domain is scored on the mean of the
// entries it has in data rather than over the whole axis, so a domain that only
// reports recent years is not diluted by the empty ones. The kept series are
// aligned to periods with missing periods as 0.
func TopNOverPresent(data map[string]map[string]float64, periods []string, n int) []domain.DomainSeries {
	means := make(map[string]float64, len(data))
	for _, m := range MeanOverPresent(data) {
		means[m.Domain] = m.Amount
	}
	return collapse(FromYearMap(data, periods), n, func(s domain.DomainSeries) float64 {
		return means[s.Domain]
	})
}

func collapse(series []domain.DomainSeries, n int, score func(domain.DomainSeries) float64) []domain.DomainSeries {
	ranked := slices.Clone(series)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})

	if n < 0 {
		n = 0
	}
	if n >= len(ranked) {
		return ranked
	}

	out := ranked[:n:n]
	other := sumSeries(domain.OtherDomain, ranked[n:])
	if hasNonzero(other.Amounts) {
		out = append(out, other)
	}
	return out
}

// Rest summarises the rows cut from a ranked table.
type Rest struct {
	Count   int
	Amounts []float64
}

// TopByMax ranks by the largest amount over all periods, the ordering used by
// the provincial detail tables, and returns the remainder separately.
func TopByMax(series []domain.DomainSeries, n int) ([]domain.DomainSeries, Rest) {
	ranked := slices.Clone(series)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Max() > ranked[j].Max()
	})
	if n < 0 {
		n = 0
	}
	if n >= len(ranked) {
		return ranked, Rest{}
	}
	rest := sumSeries(domain.OtherDomain, ranked[n:])
	return ranked[:n:n], Rest{Count: len(ranked) - n, Amounts: rest.Amounts}
}

// FromYearMap builds series over periods from domain → period → amount.
// Domains are emitted in sorted order, missing periods are 0.
func FromYearMap(data map[string]map[string]float64, periods []string) []domain.DomainSeries {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.DomainSeries, 0, len(names))
	for _, name := range names {
		amounts := make([]float64, len(periods))
		for i, p := range periods {
			amounts[i] = data[name][p]
		}
		out = append(out, domain.DomainSeries{Domain: name, Amounts: amounts})
	}
	return out
}

// MeanOverPresent ranks on the mean of the values actually present for each
// domain, as the year-keyed totals do, rather than over a fixed axis.
func MeanOverPresent(data map[string]map[string]float64) []domain.DomainAmount {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.DomainAmount, 0, len(names))
	for _, name := range names {
		var sum float64
		for _, v := range data[name] {
			sum += v
		}
		var avg float64
		if len(data[name]) > 0 {
			avg = sum / float64(len(data[name]))
		}
		out = append(out, domain.DomainAmount{Domain: name, Amount: avg})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

func sumSeries(name string, series []domain.DomainSeries) domain.DomainSeries {
	var width int
	for _, s := range series {
		width = max(width, len(s.Amounts))
	}
	amounts := make([]float64, width)
	for _, s := range series {
		for i, a := range s.Amounts {
			amounts[i] += a
		}
	}
	return domain.DomainSeries{Domain: name, Amounts: amounts}
}

func hasNonzero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return true
		}
	}
	return false
}
