package loader

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/invest-atlas/pkg/adapters"
	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/models/store"
	"github.com/de-tools/invest-atlas/pkg/services/config"
	"github.com/de-tools/invest-atlas/pkg/store/source"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Artifacts holds the precomputed JSON artifacts. A field is nil when its file
// could not be loaded.
type Artifacts struct {
	Municipalities   []domain.Municipality
	Averages         *store.Averages
	DomainTotals     store.DomainTotals
	ProvinceTotals   store.ProvinceTotals
	ProvinceDetailed map[string]map[string]domain.ProvincePeriod
	ProvinceAccounts map[string]map[string]domain.ProvincePeriod
	Index            domain.InflationIndex
}

// Municipality looks a municipality up by name.
func (a *Artifacts) Municipality(name string) (domain.Municipality, bool) {
	for _, m := range a.Municipalities {
		if m.Name == name {
			return m, true
		}
	}
	return domain.Municipality{}, false
}

// LoadArtifacts fetches every artifact concurrently. Failures are logged and
// leave the artifact empty; the CPI index then falls back to the reference index.
func LoadArtifacts(ctx context.Context, src source.Source, paths config.ArtifactsConfig, infl config.InflationConfig) (*Artifacts, error) {
	logger := zerolog.Ctx(ctx)

	a := &Artifacts{}
	var (
		cpi      store.CPIFile
		detailed store.ProvinceDetailed
		accounts store.ProvinceDetailed
	)

	g, gctx := errgroup.WithContext(ctx)
	load := func(p string, decode func([]byte) error) {
		g.Go(func() error {
			if p == "" {
				return nil
			}
			data, err := src.Fetch(gctx, p)
			if err == nil {
				err = decode(data)
			}
			if err != nil {
				logger.Error().Err(err).Str("path", p).Msg("failed to load artifact")
			}
			return nil
		})
	}

	load(paths.Municipalities, func(data []byte) error {
		ms, err := decodeMunicipalities(ctx, data)
		a.Municipalities = ms
		return err
	})
	load(paths.Averages, func(data []byte) error {
		var avg store.Averages
		if err := json.Unmarshal(data, &avg); err != nil {
			return fmt.Errorf("failed to decode averages: %w", err)
		}
		a.Averages = &avg
		return nil
	})
	load(paths.DomainTotals, func(data []byte) error {
		return decodeInto(data, &a.DomainTotals)
	})
	load(paths.ProvinceTotals, func(data []byte) error {
		return decodeInto(data, &a.ProvinceTotals)
	})
	load(paths.ProvinceDetailed, func(data []byte) error {
		return decodeInto(data, &detailed)
	})
	load(paths.ProvinceAccounts, func(data []byte) error {
		return decodeInto(data, &accounts)
	})
	load(paths.CPI, func(data []byte) error {
		return decodeInto(data, &cpi)
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("artifact load cancelled: %w", err)
	}

	if detailed != nil {
		a.ProvinceDetailed = adapters.MapProvinceDetailedToDomain(detailed, false)
	}
	if accounts != nil {
		a.ProvinceAccounts = adapters.MapProvinceDetailedToDomain(accounts, true)
	}
	a.Index = adapters.MapCPIFactsToIndex(cpi.Facts, infl.ReferenceYear, infl.FallbackIndex)
	if len(cpi.Facts) == 0 {
		logger.Warn().Float64("reference_index", a.Index.ReferenceIndex).Msg("no CPI data, adjusted amounts use the reference index")
	}

	return a, nil
}

// decodeInto sets *dst only when data decodes cleanly.
func decodeInto[T any](data []byte, dst *T) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}

func decodeMunicipalities(ctx context.Context, data []byte) ([]domain.Municipality, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode municipalities: %w", err)
	}
	out := make([]domain.Municipality, 0, len(fc.Features))
	for _, f := range fc.Features {
		m, err := adapters.MapFeatureToMunicipality(f)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("skipping municipality feature")
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// LoadIndex fetches only the CPI artifact. Unlike LoadArtifacts it fails when the file cannot be read.
func LoadIndex(ctx context.Context, src source.Source, path string, infl config.InflationConfig) (domain.InflationIndex, error) {
	data, err := src.Fetch(ctx, path)
	if err != nil {
		return domain.InflationIndex{}, fmt.Errorf("failed to fetch CPI data: %w", err)
	}
	var cpi store.CPIFile
	if err := json.Unmarshal(data, &cpi); err != nil {
		return domain.InflationIndex{}, fmt.Errorf("failed to decode CPI data: %w", err)
	}
	return adapters.MapCPIFactsToIndex(cpi.Facts, infl.ReferenceYear, infl.FallbackIndex), nil
}
