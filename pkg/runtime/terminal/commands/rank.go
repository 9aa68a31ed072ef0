package commands

import (
	"fmt"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/de-tools/invest-atlas/pkg/services/ranking"
	"github.com/spf13/cobra"
)

type RankCmd struct {
	env  *Env
	top  int
	from int
	to   int
}

func NewRankCmd(env *Env) *cobra.Command {
	rc := &RankCmd{env: env}
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank policy domains by their mean yearly investment",
		RunE:  rc.run,
	}

	cmd.Flags().IntVarP(&rc.top, "top", "n", 0, "Number of domains to keep (default from config)")
	cmd.Flags().IntVar(&rc.from, "from", dashboard.FirstYear, "First year")
	cmd.Flags().IntVar(&rc.to, "to", dashboard.LastYear, "Last year")

	return cmd
}

func (rc *RankCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	years := dashboard.Years(rc.from, rc.to)
	if len(years) == 0 {
		return fmt.Errorf("invalid year range %d-%d", rc.from, rc.to)
	}
	top := rc.top
	if !cmd.Flags().Changed("top") {
		top = rc.env.Config.Ranking.TopN
	}

	a, err := rc.env.Artifacts(ctx)
	if err != nil {
		return err
	}
	if a.DomainTotals == nil {
		return fmt.Errorf("no policy domain totals available")
	}

	section := domain.ReportSection{Title: fmt.Sprintf("Top %d beleidsdomeinen", top)}
	for _, s := range dashboard.DomainSeries(a.DomainTotals, years, top) {
		section.Rows = append(section.Rows, domain.ReportRow{
			Name:        ranking.TruncateLabel(s.Domain, rc.env.Config.Ranking.LabelWidth),
			Values:      domain.Values(s.Amounts),
			Description: fmt.Sprintf("gem. %.0f", s.Mean()),
		})
	}

	return rc.env.Emit(domain.Report{
		Title:    "Totale investeringen per beleidsdomein",
		Unit:     "€ x 1000",
		Periods:  years,
		Sections: []domain.ReportSection{section},
	})
}
