package commands

import (
	"fmt"

	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/spf13/cobra"
)

const (
	tableOverview = "overzicht"
	tablePolicy   = "beleidsdomein"
	tableAccount  = "rekening"
)

type ProvincesCmd struct {
	env   *Env
	view  viewFlags
	table string
}

func NewProvincesCmd(env *Env) *cobra.Command {
	pc := &ProvincesCmd{env: env}
	cmd := &cobra.Command{
		Use:   "provinces",
		Short: "Show the planned investments of the provinces per plan period",
		RunE:  pc.run,
	}

	pc.view.register(cmd, false)
	cmd.Flags().StringVarP(&pc.table, "table", "t", "", "Show a table instead of the panels: overzicht, beleidsdomein or rekening")

	return cmd
}

func (pc *ProvincesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := pc.env.Artifacts(ctx)
	if err != nil {
		return err
	}

	switch pc.table {
	case "":
	case tableOverview:
		return pc.env.Emit(dashboard.ProvincialOverview(a.ProvinceTotals).Report())
	case tablePolicy:
		return pc.env.Emit(dashboard.ProvincialTables(a.ProvinceDetailed, "Per beleidsdomein", pc.env.Config.Ranking.TableTopN))
	case tableAccount:
		return pc.env.Emit(dashboard.ProvincialTables(a.ProvinceAccounts, "Per rekening", pc.env.Config.Ranking.TableTopN))
	default:
		return fmt.Errorf("unknown table %q, expected %s, %s or %s", pc.table, tableOverview, tablePolicy, tableAccount)
	}

	state, err := pc.view.state()
	if err != nil {
		return err
	}
	rk := dashboard.Ranking{TopN: pc.env.Config.Ranking.ProvincialTopN, LabelWidth: pc.env.Config.Ranking.LabelWidth}
	chart := dashboard.ProvincialPanels(state, a, inflation.NewAdjuster(a.Index), rk)
	return pc.env.Emit(chart.Report())
}
