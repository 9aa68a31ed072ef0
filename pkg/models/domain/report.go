package domain

// Report is a rendered view of shaped data: one or more tables sharing a period axis.
type Report struct {
	Title    string
	Subtitle string
	Unit     string   // € per inwoner
	Periods  []string // column headers
	Sections []ReportSection
}

// ReportSection is one table (a panel, a province, a detail view).
type ReportSection struct {
	Title   string
	Summary map[string]any
	Rows    []ReportRow
	Notes   []string
}

// ReportRow is a labelled series within a section.
type ReportRow struct {
	Name        string
	Values      []Value
	Description string
}

// Value is a cell that may be absent; absent cells render as "-".
type Value struct {
	Amount  float64
	Present bool
}

func Some(v float64) Value { return Value{Amount: v, Present: true} }

func None() Value { return Value{} }

// Values wraps a dense series.
func Values(amounts []float64) []Value {
	out := make([]Value, len(amounts))
	for i, a := range amounts {
		out[i] = Some(a)
	}
	return out
}
