package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/aggregate"
	"gopkg.in/ini.v1"
)

const (
	datasetPrefix = "dataset "
	regionPrefix  = "region "
)

// Load reads a catalog from an INI file or raw INI bytes.
//
//	root = data/data-grafieken
//
//	[region Wallonië]
//	gewest    = Waals Gewest
//	provinces = Waals-Brabant, Henegouwen, Luik, Luxemburg, Namen
//
//	[dataset Faillissementen bouwsector.csv]
//	mode             = sum
//	flanders_variant = Faillissementen Vlaamse bouwsector.csv
//	wallonia_rollup  = true
func Load(source any) (Catalog, error) {
	cfg, err := ini.Load(source)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	cat := Catalog{
		Root: cfg.Section(ini.DefaultSection).Key("root").String(),
	}

	for _, section := range cfg.Sections() {
		name := section.Name()
		switch {
		case strings.HasPrefix(name, datasetPrefix):
			mode, err := aggregate.ParseMode(section.Key("mode").MustString(string(aggregate.ModeSum)))
			if err != nil {
				return Catalog{}, fmt.Errorf("section %q: %w", name, err)
			}
			cat.Datasets = append(cat.Datasets, Dataset{
				ID:              domain.DatasetID(strings.TrimSpace(strings.TrimPrefix(name, datasetPrefix))),
				Mode:            mode,
				FlandersVariant: section.Key("flanders_variant").String(),
				GewestFiltered:  section.Key("gewest_filtered").MustBool(false),
				TrendIndex:      section.Key("trend_index").MustBool(false),
				WalloniaRollup:  section.Key("wallonia_rollup").MustBool(false),
			})
		case strings.HasPrefix(name, regionPrefix):
			cat.Regions = append(cat.Regions, MacroRegion{
				Name:      strings.TrimSpace(strings.TrimPrefix(name, regionPrefix)),
				Gewest:    section.Key("gewest").String(),
				Folder:    section.Key("folder").String(),
				Provinces: section.Key("provinces").Strings(","),
			})
		}
	}

	if err := cat.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}

// WriteTo serialises the catalog in the format Load reads.
func (c Catalog) WriteTo(w io.Writer) (int64, error) {
	f := ini.Empty()

	if _, err := f.Section(ini.DefaultSection).NewKey("root", c.Root); err != nil {
		return 0, err
	}

	for _, r := range c.Regions {
		sec, err := f.NewSection(regionPrefix + r.Name)
		if err != nil {
			return 0, fmt.Errorf("failed to add region %s: %w", r.Name, err)
		}
		keys := [][2]string{
			{"gewest", r.Gewest},
			{"folder", r.Folder},
			{"provinces", strings.Join(r.Provinces, ", ")},
		}
		if err := addKeys(sec, keys); err != nil {
			return 0, err
		}
	}

	for _, d := range c.Datasets {
		sec, err := f.NewSection(datasetPrefix + string(d.ID))
		if err != nil {
			return 0, fmt.Errorf("failed to add dataset %s: %w", d.ID, err)
		}
		keys := [][2]string{
			{"mode", string(d.Mode)},
			{"flanders_variant", d.FlandersVariant},
			{"gewest_filtered", strconv.FormatBool(d.GewestFiltered)},
			{"trend_index", strconv.FormatBool(d.TrendIndex)},
			{"wallonia_rollup", strconv.FormatBool(d.WalloniaRollup)},
		}
		if err := addKeys(sec, keys); err != nil {
			return 0, err
		}
	}

	return f.WriteTo(w)
}

func addKeys(sec *ini.Section, keys [][2]string) error {
	for _, kv := range keys {
		if kv[1] == "" {
			continue
		}
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to write key %s: %w", kv[0], err)
		}
	}
	return nil
}
