package domain

import (
	"fmt"
	"strings"
)

type RegionKind int

const (
	RegionFlanders RegionKind = iota
	RegionProvince
	RegionMunicipality
	RegionMacro
)

const (
	flandersID   = "vlaanderen"
	provincePref = "prov:"
	municipPref  = "mun:"
	macroPref    = "region:"
)

func (k RegionKind) String() string {
	switch k {
	case RegionFlanders:
		return "flanders"
	case RegionProvince:
		return "province"
	case RegionMunicipality:
		return "municipality"
	case RegionMacro:
		return "region"
	default:
		return fmt.Sprintf("RegionKind(%d)", int(k))
	}
}

// Region identifies a selectable administrative area.
type Region struct {
	Kind RegionKind
	Name string
}

func Flanders() Region { return Region{Kind: RegionFlanders, Name: "Vlaanderen"} }

func ProvinceRegion(name string) Region { return Region{Kind: RegionProvince, Name: name} }

func MunicipalityRegion(name string) Region { return Region{Kind: RegionMunicipality, Name: name} }

func MacroRegion(name string) Region { return Region{Kind: RegionMacro, Name: name} }

// String renders the selection identifier: "vlaanderen", "prov:<name>", "mun:<name>" or "region:<name>".
func (r Region) String() string {
	switch r.Kind {
	case RegionFlanders:
		return flandersID
	case RegionProvince:
		return provincePref + r.Name
	case RegionMunicipality:
		return municipPref + r.Name
	default:
		return macroPref + r.Name
	}
}

// ParseRegion is the inverse of Region.String.
func ParseRegion(id string) (Region, error) {
	if id == flandersID {
		return Flanders(), nil
	}

	for prefix, kind := range map[string]RegionKind{
		provincePref: RegionProvince,
		municipPref:  RegionMunicipality,
		macroPref:    RegionMacro,
	} {
		if name, ok := strings.CutPrefix(id, prefix); ok {
			name = strings.TrimSpace(name)
			if name == "" {
				return Region{}, fmt.Errorf("empty region name in %q", id)
			}
			return Region{Kind: kind, Name: name}, nil
		}
	}

	return Region{}, fmt.Errorf("unknown region identifier %q", id)
}
