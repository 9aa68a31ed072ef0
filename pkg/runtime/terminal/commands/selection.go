package commands

import (
	"fmt"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/selection"
	"github.com/spf13/cobra"
)

// viewFlags are the display switches shared by the chart commands.
type viewFlags struct {
	selected []string
	nominal  bool
	adjusted bool
	stacked  bool
}

func (v *viewFlags) register(cmd *cobra.Command, withSelection bool) {
	if withSelection {
		cmd.Flags().StringSliceVarP(&v.selected, "select", "s", nil,
			"Regions to show: vlaanderen, prov:<name> or mun:<name> (default vlaanderen)")
	}
	cmd.Flags().BoolVar(&v.nominal, "nominal", true, "Show nominal amounts")
	cmd.Flags().BoolVar(&v.adjusted, "adjusted", false, "Show inflation adjusted amounts")
	cmd.Flags().BoolVar(&v.stacked, "stacked", false, "Split amounts per policy domain")
}

// state builds the selection. Switching both views off keeps the adjusted view.
func (v *viewFlags) state() (*selection.State, error) {
	state := selection.New()
	if len(v.selected) > 0 {
		state = selection.Empty()
		for _, id := range v.selected {
			r, err := domain.ParseRegion(id)
			if err != nil {
				return nil, fmt.Errorf("invalid selection: %w", err)
			}
			state.Add(r)
		}
	}
	state.SetAdjusted(v.adjusted)
	state.SetNominal(v.nominal)
	state.SetStacked(v.stacked)
	return state, nil
}
