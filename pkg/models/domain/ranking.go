package domain

const OtherDomain = "Other"

type DomainAmount struct {
	Domain string
	Amount float64
}

// DomainSeries holds one domain's amounts aligned to a shared period axis.
type DomainSeries struct {
	Domain  string
	Amounts []float64
}

func (s DomainSeries) Mean() float64 {
	if len(s.Amounts) == 0 {
		return 0
	}
	var sum float64
	for _, a := range s.Amounts {
		sum += a
	}
	return sum / float64(len(s.Amounts))
}

func (s DomainSeries) Max() float64 {
	var m float64
	for _, a := range s.Amounts {
		if a > m {
			m = a
		}
	}
	return m
}
