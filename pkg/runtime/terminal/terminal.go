package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/invest-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/invest-atlas/pkg/store/source"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	// Registry overrides the source registry built from the configuration.
	Registry source.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		env: &commands.Env{
			Registry: opts.Registry,
			Output:   opts.Output,
		},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs replaces the command-line arguments, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Municipal and provincial investment dashboard data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.env.Init(cmd)
		},
	}
	cmd.SetOut(cli.env.Output)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.env.ConfigPath, "config", "c", "", "Path to the config file")
	flags.StringVarP(&cli.env.Format, "format", "f", commands.FormatTable, "Output format: table, list or xlsx")
	flags.StringVarP(&cli.env.OutPath, "out", "o", "", "Write the report to a file instead of stdout")
	flags.StringVar(&cli.env.LogLevel, "log-level", "", "Log level (default from config)")

	cmd.AddCommand(commands.NewLoadCmd(cli.env))
	cmd.AddCommand(commands.NewAggregateCmd(cli.env))
	cmd.AddCommand(commands.NewAdjustCmd(cli.env))
	cmd.AddCommand(commands.NewRankCmd(cli.env))
	cmd.AddCommand(commands.NewSeriesCmd(cli.env))
	cmd.AddCommand(commands.NewProvincesCmd(cli.env))
	cmd.AddCommand(commands.NewDetailCmd(cli.env))
	cmd.AddCommand(commands.NewExportCmd(cli.env))
	cmd.AddCommand(commands.NewPlotCmd(cli.env))
	cmd.AddCommand(commands.NewCatalogCmd(cli.env))

	return cmd
}
