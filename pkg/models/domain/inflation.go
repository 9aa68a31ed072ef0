package domain

// InflationIndex maps year → consumer price index.
type InflationIndex struct {
	Values         map[int]float64
	ReferenceYear  int     // 2014
	ReferenceIndex float64 // Values[ReferenceYear], or a configured fallback
}
