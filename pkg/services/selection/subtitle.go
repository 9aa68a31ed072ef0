package selection

import "fmt"

// Subtitle is the chart subtitle for the municipal dashboard.
func (s *State) Subtitle() string {
	switch s.Branch() {
	case BranchStackedSingle:
		return s.pick(
			"Totale investeringen per beleidsdomein (nominaal & reëel 2014)",
			"Totale investeringen per beleidsdomein (reëel, 2014 prijzen)",
			"Totale investeringen per beleidsdomein (nominaal)",
		)
	case BranchStackedMultiple:
		return s.pick(
			"Investeringen per beleidsdomein per gemeente (nominaal & reëel 2014)",
			"Investeringen per beleidsdomein per gemeente (reëel, 2014 prijzen)",
			"Investeringen per beleidsdomein per gemeente (nominaal)",
		)
	default:
		return s.pick(
			"Investeringsuitgaven per inwoner (€) - beide weergaven getoond",
			"Investeringsuitgaven per inwoner (€, reëel 2014 prijzen)",
			"Investeringsuitgaven per inwoner (€, nominaal)",
		)
	}
}

// ProvincialSubtitle is the subtitle of the provincial plan charts.
func (s *State) ProvincialSubtitle() string {
	if s.stacked {
		return s.pick(
			"Geplande investeringen per beleidsdomein per provincie (nominaal & reëel 2014)",
			"Geplande investeringen per beleidsdomein per provincie (reëel, 2014 prijzen)",
			"Geplande investeringen per beleidsdomein per provincie (nominaal)",
		)
	}
	return s.pick(
		"Geplande investeringsuitgaven per inwoner per provincie (€) - beide weergaven",
		"Geplande investeringsuitgaven per inwoner per provincie (€, reëel 2014 prijzen)",
		"Geplande investeringsuitgaven per inwoner per provincie (€, nominaal)",
	)
}

// SelectedLabel summarises the selection count.
func (s *State) SelectedLabel() string {
	if len(s.regions) == 0 {
		return "Selecteer een regio"
	}
	return fmt.Sprintf("%d regio('s) geselecteerd", len(s.regions))
}

func (s *State) pick(both, adjusted, nominal string) string {
	switch {
	case s.ShowBoth():
		return both
	case s.adjusted:
		return adjusted
	default:
		return nominal
	}
}
