package selection

import (
	"slices"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

// Branch is the rendering path selected by the current state.
type Branch int

const (
	BranchSmallMultiples Branch = iota
	BranchStackedSingle
	BranchStackedMultiple
)

func (b Branch) String() string {
	switch b {
	case BranchStackedSingle:
		return "stacked-single"
	case BranchStackedMultiple:
		return "stacked-multiple"
	default:
		return "small-multiples"
	}
}

// State holds the selected regions and display flags.
// At least one of ShowNominal and ShowAdjusted is always true.
type State struct {
	regions  []domain.Region
	nominal  bool
	adjusted bool
	stacked  bool
}

// New returns the initial state: Flanders selected, nominal amounts shown.
func New() *State {
	return &State{
		regions: []domain.Region{domain.Flanders()},
		nominal: true,
	}
}

// Empty returns a state without any selected region.
func Empty() *State {
	return &State{nominal: true}
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.regions = slices.Clone(s.regions)
	return &c
}

func (s *State) Has(r domain.Region) bool {
	return slices.Contains(s.regions, r)
}

func (s *State) Add(r domain.Region) {
	if !s.Has(r) {
		s.regions = append(s.regions, r)
	}
}

func (s *State) Remove(r domain.Region) {
	s.regions = slices.DeleteFunc(s.regions, func(x domain.Region) bool { return x == r })
}

// Toggle flips membership of r and reports whether it is selected afterwards.
func (s *State) Toggle(r domain.Region) bool {
	if s.Has(r) {
		s.Remove(r)
		return false
	}
	s.Add(r)
	return true
}

// Regions returns the selection in insertion order.
func (s *State) Regions() []domain.Region {
	return slices.Clone(s.regions)
}

// RegionsOf filters the selection by kind, keeping insertion order.
func (s *State) RegionsOf(kind domain.RegionKind) []domain.Region {
	var out []domain.Region
	for _, r := range s.regions {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func (s *State) Count() int { return len(s.regions) }

func (s *State) ShowNominal() bool { return s.nominal }

func (s *State) ShowAdjusted() bool { return s.adjusted }

func (s *State) ShowStacked() bool { return s.stacked }

func (s *State) ShowBoth() bool { return s.nominal && s.adjusted }

// SetNominal switches nominal amounts; turning both views off re-enables adjusted.
func (s *State) SetNominal(on bool) {
	s.nominal = on
	if !s.nominal && !s.adjusted {
		s.adjusted = true
	}
}

// SetAdjusted switches adjusted amounts; turning both views off re-enables nominal.
func (s *State) SetAdjusted(on bool) {
	s.adjusted = on
	if !s.nominal && !s.adjusted {
		s.nominal = true
	}
}

func (s *State) SetStacked(on bool) { s.stacked = on }

func (s *State) Branch() Branch {
	switch {
	case s.stacked && len(s.regions) == 1:
		return BranchStackedSingle
	case s.stacked && len(s.regions) > 1:
		return BranchStackedMultiple
	default:
		return BranchSmallMultiples
	}
}
