package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/invest-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/de-tools/invest-atlas/pkg/services/selection"
	"github.com/spf13/cobra"
)

const (
	plotSeries    = "series"
	plotDomains   = "domains"
	plotProvinces = "provinces"
)

type PlotCmd struct {
	env   *Env
	view  viewFlags
	chart string
	out   string
}

func NewPlotCmd(env *Env) *cobra.Command {
	pc := &PlotCmd{env: env}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw a dashboard chart to a png, svg or pdf file",
		RunE:  pc.run,
	}

	pc.view.register(cmd, true)
	cmd.Flags().StringVar(&pc.chart, "chart", plotSeries, "series, domains or provinces")
	cmd.Flags().StringVar(&pc.out, "file", "chart.png", "Output file; the extension selects the format")

	return cmd
}

func (pc *PlotCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	state, err := pc.view.state()
	if err != nil {
		return err
	}
	a, err := pc.env.Artifacts(ctx)
	if err != nil {
		return err
	}

	adj := inflation.NewAdjuster(a.Index)
	years := dashboard.DefaultYears()
	cfg := pc.env.Config.Ranking

	var chart dashboard.Chart
	switch pc.chart {
	case plotSeries:
		chart = municipalChart(state, a, pc.env.Ranking(), years)
	case plotDomains:
		chart = dashboard.StackedDomains(stackedOf(state), a, adj, years, pc.env.Ranking())
	case plotProvinces:
		chart = dashboard.ProvincialPanels(state, a, adj, dashboard.Ranking{TopN: cfg.ProvincialTopN, LabelWidth: cfg.LabelWidth})
	default:
		return fmt.Errorf("unknown chart %q", pc.chart)
	}

	format, err := export.PlotFormat(filepath.Ext(pc.out))
	if err != nil {
		return err
	}
	f, err := os.Create(pc.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", pc.out, err)
	}
	defer f.Close()

	pw, err := export.NewPlotWriter(f, format)
	if err != nil {
		return err
	}
	return pw.Write(chart)
}

// stackedOf returns a copy of state with the stacked view switched on.
func stackedOf(state *selection.State) *selection.State {
	stacked := state.Clone()
	stacked.SetStacked(true)
	return stacked
}
