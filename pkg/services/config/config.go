package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/invest-atlas/pkg/store/source"
	"github.com/spf13/viper"
)

const EnvPrefix = "ATLAS"

type Config struct {
	Source    SourceConfig    `mapstructure:"source"`
	Catalog   string          `mapstructure:"catalog"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Inflation InflationConfig `mapstructure:"inflation"`
	Ranking   RankingConfig   `mapstructure:"ranking"`
	LogLevel  string          `mapstructure:"log_level"`
}

type SourceConfig struct {
	Kind     string             `mapstructure:"kind" validate:"required"`
	Location string             `mapstructure:"location" validate:"required"`
	Timeout  time.Duration      `mapstructure:"timeout"`
	S3       source.S3Config    `mapstructure:"s3"`
	Azure    source.AzureConfig `mapstructure:"azure"`
}

// ArtifactsConfig holds the paths of the JSON artifacts, relative to the source.
type ArtifactsConfig struct {
	Municipalities   string `mapstructure:"municipalities"`
	Averages         string `mapstructure:"averages"`
	CPI              string `mapstructure:"cpi"`
	DomainTotals     string `mapstructure:"domain_totals"`
	ProvinceTotals   string `mapstructure:"province_totals"`
	ProvinceDetailed string `mapstructure:"province_detailed"`
	ProvinceAccounts string `mapstructure:"province_accounts"`
}

type InflationConfig struct {
	ReferenceYear int     `mapstructure:"reference_year"`
	FallbackIndex float64 `mapstructure:"fallback_index"`
}

type RankingConfig struct {
	TopN           int `mapstructure:"top_n"`
	ProvincialTopN int `mapstructure:"provincial_top_n"`
	TableTopN      int `mapstructure:"table_top_n"`
	LabelWidth     int `mapstructure:"label_width"`
}

var defaults = map[string]any{
	"source.kind":                 "dir",
	"source.location":             ".",
	"source.timeout":              30 * time.Second,
	"source.s3.bucket":            "",
	"source.s3.prefix":            "",
	"source.s3.region":            source.DefaultRegion,
	"source.s3.profile":           "",
	"source.azure.service_url":    "",
	"source.azure.container":      "",
	"source.azure.prefix":         "",
	"source.azure.anonymous":      false,
	"catalog":                     "",
	"artifacts.municipalities":    "municipalities_enriched.geojson",
	"artifacts.averages":          "averages.json",
	"artifacts.cpi":               "cpi.json",
	"artifacts.domain_totals":     "beleidsdomein_totals.json",
	"artifacts.province_totals":   "provincie_totals.json",
	"artifacts.province_detailed": "provincie_detailed.json",
	"artifacts.province_accounts": "provincie_rekeningen_detailed.json",
	"inflation.reference_year":    2014,
	"inflation.fallback_index":    100.34,
	"ranking.top_n":               10,
	"ranking.provincial_top_n":    8,
	"ranking.table_top_n":         15,
	"ranking.label_width":         30,
	"log_level":                   "info",
}

// Load reads the configuration file at path (when set) over the defaults.
// Every key can be overridden from the environment, e.g. ATLAS_SOURCE_KIND.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Source.Kind == "" {
		return fmt.Errorf("source.kind is required")
	}
	remote := c.Source.Kind == "s3" || c.Source.Kind == "azblob"
	if !remote && c.Source.Location == "" {
		return fmt.Errorf("source.location is required")
	}
	if c.Inflation.ReferenceYear <= 0 {
		return fmt.Errorf("inflation.reference_year must be positive")
	}
	if c.Ranking.TopN < 0 || c.Ranking.ProvincialTopN < 0 || c.Ranking.TableTopN < 0 {
		return fmt.Errorf("ranking sizes cannot be negative")
	}
	return nil
}
