package catalog

import (
	"fmt"
	"slices"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/aggregate"
)

const (
	Flanders = "Vlaanderen"
	Wallonia = "Wallonië"
	Brussels = "Brussel"
)

// Dataset describes how one CSV artifact is located and rolled up.
type Dataset struct {
	ID              domain.DatasetID
	Mode            aggregate.Mode
	FlandersVariant string // regional file used for Vlaanderen instead of a rollup
	GewestFiltered  bool   // shared root file filtered on its Gewest column
	TrendIndex      bool   // shared root file with "<Gewest> - Bouwsector" columns
	WalloniaRollup  bool   // summed from the Walloon provinces
}

// MacroRegion is a composite region and its constituent provinces.
type MacroRegion struct {
	Name      string
	Gewest    string
	Folder    string
	Provinces []string
}

type Catalog struct {
	Root     string
	Datasets []Dataset
	Regions  []MacroRegion
}

func (c Catalog) Dataset(id domain.DatasetID) (Dataset, bool) {
	for _, d := range c.Datasets {
		if d.ID == id {
			return d, true
		}
	}
	return Dataset{}, false
}

func (c Catalog) Region(name string) (MacroRegion, bool) {
	for _, r := range c.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return MacroRegion{}, false
}

// Provinces lists every constituent province in catalog order.
func (c Catalog) Provinces() []string {
	var out []string
	for _, r := range c.Regions {
		for _, p := range r.Provinces {
			if !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// RollupDatasets are the datasets summed for Wallonia.
func (c Catalog) RollupDatasets() []Dataset {
	var out []Dataset
	for _, d := range c.Datasets {
		if d.WalloniaRollup {
			out = append(out, d)
		}
	}
	return out
}

func (c Catalog) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("catalog has no datasets")
	}
	seen := make(map[domain.DatasetID]struct{}, len(c.Datasets))
	for _, d := range c.Datasets {
		if d.ID == "" {
			return fmt.Errorf("dataset without a file name")
		}
		if _, ok := seen[d.ID]; ok {
			return fmt.Errorf("dataset %q declared twice", d.ID)
		}
		seen[d.ID] = struct{}{}
		if _, err := aggregate.ParseMode(string(d.Mode)); err != nil {
			return fmt.Errorf("dataset %q: %w", d.ID, err)
		}
		if d.GewestFiltered && d.TrendIndex {
			return fmt.Errorf("dataset %q cannot be both gewest-filtered and a trend index", d.ID)
		}
	}
	for _, r := range c.Regions {
		if r.Name == "" {
			return fmt.Errorf("region without a name")
		}
	}
	return nil
}
