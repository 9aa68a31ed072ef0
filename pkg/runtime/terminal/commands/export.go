package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/de-tools/invest-atlas/pkg/services/inflation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	env  *Env
	view viewFlags
	dir  string
	year int
}

func NewExportCmd(env *Env) *cobra.Command {
	ec := &ExportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every dashboard view to XLSX workbooks",
		RunE:  ec.run,
	}

	ec.view.register(cmd, true)
	cmd.Flags().StringVar(&ec.dir, "dir", ".", "Directory for the workbooks")
	cmd.Flags().IntVar(&ec.year, "year", dashboard.LastYear, "Year shown on the map")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	state, err := ec.view.state()
	if err != nil {
		return err
	}
	a, err := ec.env.Artifacts(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(ec.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", ec.dir, err)
	}

	cfg := ec.env.Config.Ranking
	adj := inflation.NewAdjuster(a.Index)
	years := dashboard.DefaultYears()
	year := strconv.Itoa(ec.year)
	entries, legend := dashboard.Choropleth(a.Municipalities, year)

	reports := map[string]domain.Report{
		"gemeenten.xlsx":                municipalChart(state, a, ec.env.Ranking(), years).Report(),
		"beleidsdomeinen.xlsx":          dashboard.StackedDomains(stackedOf(state), a, adj, years, ec.env.Ranking()).Report(),
		"provincies.xlsx":               dashboard.ProvincialPanels(state, a, adj, dashboard.Ranking{TopN: cfg.ProvincialTopN, LabelWidth: cfg.LabelWidth}).Report(),
		"provincies_overzicht.xlsx":     dashboard.ProvincialOverview(a.ProvinceTotals).Report(),
		"provincies_beleidsdomein.xlsx": dashboard.ProvincialTables(a.ProvinceDetailed, "Per beleidsdomein", cfg.TableTopN),
		"provincies_rekening.xlsx":      dashboard.ProvincialTables(a.ProvinceAccounts, "Per rekening", cfg.TableTopN),
		"kaart.xlsx":                    dashboard.ChoroplethReport(entries, legend, year),
	}

	for name, report := range reports {
		path := filepath.Join(ec.dir, name)
		if err := writeWorkbook(path, report); err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("sections", len(report.Sections)).Msg("workbook written")
	}
	return nil
}

func writeWorkbook(path string, report domain.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.NewXLSXWriter(f).Handle(&report); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
