package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/aggregate"
	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/de-tools/invest-atlas/pkg/services/loader"
	"github.com/spf13/cobra"
)

type AggregateCmd struct {
	env     *Env
	dataset string
	region  string
	mode    string
}

func NewAggregateCmd(env *Env) *cobra.Command {
	ac := &AggregateCmd{env: env}
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate a dataset over the provinces of a region",
		RunE:  ac.run,
	}

	cmd.Flags().StringVarP(&ac.dataset, "dataset", "d", "", "Dataset file name")
	cmd.Flags().StringVarP(&ac.region, "region", "r", "", "Region whose provinces are aggregated")
	cmd.Flags().StringVarP(&ac.mode, "mode", "m", "", "sum or mean (default: the dataset's mode)")

	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}

func (ac *AggregateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cat, err := ac.env.Catalog()
	if err != nil {
		return err
	}
	id := domain.DatasetID(ac.dataset)
	dataset, ok := cat.Dataset(id)
	if !ok {
		return fmt.Errorf("unknown dataset %q", ac.dataset)
	}
	macro, ok := cat.Region(ac.region)
	if !ok {
		return fmt.Errorf("unknown region %q", ac.region)
	}

	mode := dataset.Mode
	if ac.mode != "" {
		if mode, err = aggregate.ParseMode(ac.mode); err != nil {
			return err
		}
	}

	src, err := ac.env.Source(ctx)
	if err != nil {
		return err
	}
	ds, err := loader.New(src, cat).Load(ctx, macro.Provinces, nil)
	if err != nil {
		return fmt.Errorf("failed to load provinces of %s: %w", macro.Name, err)
	}

	res := aggregate.Rollup(macro.Name, mode, macro.Provinces, ds[id])

	out := domain.RegionDataset{}
	out.Put(id, macro.Name, res.Rows)
	report := dashboard.DatasetChart(out, id, []string{macro.Name}).Report()
	report.Subtitle = fmt.Sprintf("%s van %s", mode, strings.Join(macro.Provinces, ", "))
	if len(res.Missing) > 0 && len(report.Sections) > 0 {
		report.Sections[0].Notes = append(report.Sections[0].Notes, "Zonder data: "+strings.Join(res.Missing, ", "))
	}
	return ac.env.Emit(report)
}
