package commands

import (
	"fmt"

	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/de-tools/invest-atlas/pkg/services/loader"
	"github.com/de-tools/invest-atlas/pkg/services/selection"
	"github.com/spf13/cobra"
)

type SeriesCmd struct {
	env  *Env
	view viewFlags
	from int
	to   int
}

func NewSeriesCmd(env *Env) *cobra.Command {
	sc := &SeriesCmd{env: env}
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Show investment per inhabitant for the selected regions",
		RunE:  sc.run,
	}

	sc.view.register(cmd, true)
	cmd.Flags().IntVar(&sc.from, "from", dashboard.FirstYear, "First year")
	cmd.Flags().IntVar(&sc.to, "to", dashboard.LastYear, "Last year")

	return cmd
}

func (sc *SeriesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	state, err := sc.view.state()
	if err != nil {
		return err
	}
	years := dashboard.Years(sc.from, sc.to)
	if len(years) == 0 {
		return fmt.Errorf("invalid year range %d-%d", sc.from, sc.to)
	}

	a, err := sc.env.Artifacts(ctx)
	if err != nil {
		return err
	}

	report := municipalChart(state, a, sc.env.Ranking(), years).Report()
	report.Subtitle = state.SelectedLabel()
	return sc.env.Emit(report)
}

// municipalChart picks the chart the selection state asks for.
func municipalChart(state *selection.State, a *loader.Artifacts, rk dashboard.Ranking, years []string) dashboard.Chart {
	adj := inflation.NewAdjuster(a.Index)
	if state.Branch() == selection.BranchSmallMultiples {
		return dashboard.SmallMultiples(state, a, adj, years)
	}
	return dashboard.StackedDomains(state, a, adj, years, rk)
}
