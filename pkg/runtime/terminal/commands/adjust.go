package commands

import (
	"fmt"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/de-tools/invest-atlas/pkg/services/loader"
	"github.com/spf13/cobra"
)

type AdjustCmd struct {
	env     *Env
	amount  float64
	periods []string
}

func NewAdjustCmd(env *Env) *cobra.Command {
	ac := &AdjustCmd{env: env}
	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Express an amount in reference-year prices",
		RunE:  ac.run,
	}

	cmd.Flags().Float64VarP(&ac.amount, "amount", "a", 0, "Nominal amount")
	cmd.Flags().StringSliceVarP(&ac.periods, "period", "p", nil, "Years or year ranges, e.g. 2020 or 2020-2025")

	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func (ac *AdjustCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	src, err := ac.env.Source(ctx)
	if err != nil {
		return err
	}
	index, err := loader.LoadIndex(ctx, src, ac.env.Config.Artifacts.CPI, ac.env.Config.Inflation)
	if err != nil {
		return err
	}
	adj := inflation.NewAdjuster(index)

	ref := fmt.Sprintf("Reëel %d", adj.ReferenceYear())
	section := domain.ReportSection{
		Title:   "Inflatiecorrectie",
		Summary: map[string]any{"Referentie-index": fmt.Sprintf("%.2f", adj.ReferenceIndex())},
	}
	for _, p := range ac.periods {
		section.Rows = append(section.Rows, domain.ReportRow{
			Name: p,
			Values: []domain.Value{
				domain.Some(ac.amount),
				domain.Some(adj.PeriodIndex(p)),
				domain.Some(adj.Adjust(ac.amount, p)),
			},
		})
	}

	return ac.env.Emit(domain.Report{
		Title:    "Inflatiecorrectie",
		Periods:  []string{"Nominaal", "CPI", ref},
		Sections: []domain.ReportSection{section},
	})
}
