package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type CatalogCmd struct {
	env *Env
}

func NewCatalogCmd(env *Env) *cobra.Command {
	cc := &CatalogCmd{env: env}
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the dataset catalog as INI",
		RunE:  cc.run,
	}
}

func (cc *CatalogCmd) run(cmd *cobra.Command, _ []string) error {
	cat, err := cc.env.Catalog()
	if err != nil {
		return err
	}
	if _, err := cat.WriteTo(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
