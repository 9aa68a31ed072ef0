package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/de-tools/invest-atlas/pkg/services/loader"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type LoadCmd struct {
	env       *Env
	provinces []string
	regions   []string
	dataset   string
}

func NewLoadCmd(env *Env) *cobra.Command {
	lc := &LoadCmd{env: env}
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the CSV datasets of provinces and regions",
		RunE:  lc.run,
	}

	cmd.Flags().StringSliceVarP(&lc.provinces, "province", "p", nil, "Provinces to load")
	cmd.Flags().StringSliceVarP(&lc.regions, "region", "r", nil, "Regions to load (Vlaanderen, Wallonië, Brussel)")
	cmd.Flags().StringVarP(&lc.dataset, "dataset", "d", "", "Show the series of one dataset instead of a summary")

	return cmd
}

func (lc *LoadCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if len(lc.provinces) == 0 && len(lc.regions) == 0 {
		return fmt.Errorf("select at least one --province or --region")
	}

	src, err := lc.env.Source(ctx)
	if err != nil {
		return err
	}
	cat, err := lc.env.Catalog()
	if err != nil {
		return err
	}

	l := loader.New(src, cat)
	ds, err := l.Load(ctx, lc.provinces, lc.regions)
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	zerolog.Ctx(ctx).Info().Int("datasets", len(ds)).Msg("datasets loaded")

	if lc.dataset != "" {
		id := domain.DatasetID(lc.dataset)
		if _, ok := cat.Dataset(id); !ok {
			return fmt.Errorf("unknown dataset %q", lc.dataset)
		}
		regions := append(slices.Clone(lc.provinces), lc.regions...)
		return lc.env.Emit(dashboard.DatasetChart(ds, id, regions).Report())
	}

	return lc.env.Emit(loadSummary(ds, l.Incomplete()))
}

// loadSummary counts the rows per dataset and region.
func loadSummary(ds domain.RegionDataset, incomplete map[domain.DatasetID][]string) domain.Report {
	r := domain.Report{
		Title:   "Geladen datasets",
		Periods: []string{"rijen"},
	}
	ids := make([]domain.DatasetID, 0, len(ds))
	for id := range ds {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		section := domain.ReportSection{Title: string(id)}
		regions := ds.Regions(id)
		slices.Sort(regions)
		for _, region := range regions {
			rows, _ := ds.Get(id, region)
			section.Rows = append(section.Rows, domain.ReportRow{
				Name:   region,
				Values: []domain.Value{domain.Some(float64(len(rows)))},
			})
		}
		if missing := incomplete[id]; len(missing) > 0 {
			section.Notes = append(section.Notes, "Zonder data: "+strings.Join(missing, ", "))
		}
		r.Sections = append(r.Sections, section)
	}
	return r
}
