package commands

import (
	"fmt"

	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/spf13/cobra"
)

type DetailCmd struct {
	env          *Env
	municipality string
	view         string
}

func NewDetailCmd(env *Env) *cobra.Command {
	dc := &DetailCmd{env: env}
	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Show the 2024 breakdown of a municipality",
		RunE:  dc.run,
	}

	cmd.Flags().StringVarP(&dc.municipality, "municipality", "m", "", "Municipality name")
	cmd.Flags().StringVarP(&dc.view, "view", "v", string(dashboard.ViewPolicyField), "beleidsveld or uitgavenpost")

	_ = cmd.MarkFlagRequired("municipality")

	return cmd
}

func (dc *DetailCmd) run(cmd *cobra.Command, _ []string) error {
	view, err := dashboard.ParseDetailView(dc.view)
	if err != nil {
		return err
	}

	a, err := dc.env.Artifacts(cmd.Context())
	if err != nil {
		return err
	}
	m, ok := a.Municipality(dc.municipality)
	if !ok {
		return fmt.Errorf("municipality %q not found", dc.municipality)
	}

	return dc.env.Emit(dashboard.MunicipalityDetail(m, view).Report())
}
