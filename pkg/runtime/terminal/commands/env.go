package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/invest-atlas/pkg/services/catalog"
	"github.com/de-tools/invest-atlas/pkg/services/config"
	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/de-tools/invest-atlas/pkg/services/loader"
	"github.com/de-tools/invest-atlas/pkg/store/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	FormatTable = "table"
	FormatList  = "list"
	FormatXLSX  = "xlsx"
)

// Env is the state shared by all commands: flags of the root command and
// everything derived from the loaded configuration.
type Env struct {
	ConfigPath string
	Format     string
	OutPath    string
	LogLevel   string

	Config   *config.Config
	Registry source.Registry
	Output   io.Writer
}

// Init loads the configuration and attaches a leveled logger to the command context.
func (e *Env) Init(cmd *cobra.Command) error {
	cfg, err := config.Load(e.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	e.Config = cfg

	levelName := cfg.LogLevel
	if e.LogLevel != "" {
		levelName = e.LogLevel
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	logger := zerolog.Ctx(cmd.Context()).Level(level)
	cmd.SetContext(logger.WithContext(cmd.Context()))

	if e.Registry == nil {
		e.Registry = source.DefaultRegistry(cfg.Source.S3, cfg.Source.Azure, cfg.Source.Timeout)
	}
	if e.Output == nil {
		e.Output = os.Stdout
	}
	return nil
}

func (e *Env) Source(ctx context.Context) (source.Source, error) {
	src, err := e.Registry.Create(ctx, e.Config.Source.Kind, e.Config.Source.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s source: %w", e.Config.Source.Kind, err)
	}
	return src, nil
}

// Catalog returns the configured INI catalog, or the built-in one.
func (e *Env) Catalog() (catalog.Catalog, error) {
	if e.Config.Catalog == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(e.Config.Catalog)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return catalog.Catalog{}, fmt.Errorf("invalid catalog %s: %w", e.Config.Catalog, err)
	}
	return cat, nil
}

func (e *Env) Artifacts(ctx context.Context) (*loader.Artifacts, error) {
	src, err := e.Source(ctx)
	if err != nil {
		return nil, err
	}
	return loader.LoadArtifacts(ctx, src, e.Config.Artifacts, e.Config.Inflation)
}

func (e *Env) Ranking() dashboard.Ranking {
	return dashboard.Ranking{TopN: e.Config.Ranking.TopN, LabelWidth: e.Config.Ranking.LabelWidth}
}

// Emit writes the report in the selected format to --out, or to the command output.
func (e *Env) Emit(report domain.Report) error {
	w := e.Output
	if e.OutPath != "" {
		f, err := os.Create(e.OutPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", e.OutPath, err)
		}
		defer f.Close()
		w = f
	}

	handler, err := e.handler(w)
	if err != nil {
		return err
	}
	return handler.Handle(&report)
}

func (e *Env) handler(w io.Writer) (export.Handler, error) {
	switch e.Format {
	case "", FormatTable:
		return export.NewReporter(w), nil
	case FormatList:
		return export.NewListReporter(w), nil
	case FormatXLSX:
		return export.NewXLSXWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", e.Format)
	}
}
