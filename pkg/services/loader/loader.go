package loader

import (
	"context"
	"fmt"
	"path"
	"slices"
	"sync"

	"github.com/de-tools/invest-atlas/pkg/csvtable"
	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/aggregate"
	"github.com/de-tools/invest-atlas/pkg/services/catalog"
	"github.com/de-tools/invest-atlas/pkg/store/source"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// transform reshapes the rows of a fetched file before they are stored.
type transform func(rows []domain.Row) []domain.Row

type task struct {
	path    string
	region  string
	dataset domain.DatasetID
	reshape transform
}

// Loader fetches the CSV datasets for a selection of provinces and regions.
// Each Load builds a fresh dataset that replaces the previous one.
type Loader struct {
	src         source.Source
	cat         catalog.Catalog
	concurrency int

	mu      sync.RWMutex
	current domain.RegionDataset
	missing map[domain.DatasetID][]string
}

func New(src source.Source, cat catalog.Catalog) *Loader {
	return &Loader{
		src:         src,
		cat:         cat,
		concurrency: defaultConcurrency,
		current:     domain.RegionDataset{},
	}
}

// WithConcurrency bounds the number of fetches in flight.
func (l *Loader) WithConcurrency(n int) *Loader {
	if n > 0 {
		l.concurrency = n
	}
	return l
}

// Current returns the dataset of the last completed load.
func (l *Loader) Current() domain.RegionDataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Incomplete lists, per rolled-up dataset, the constituent provinces that had
// no data. The result is a copy.
func (l *Loader) Incomplete() map[domain.DatasetID][]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[domain.DatasetID][]string, len(l.missing))
	for id, provinces := range l.missing {
		out[id] = slices.Clone(provinces)
	}
	return out
}

// Load fetches every dataset for the given provinces and macro-regions.
// A fetch that fails is logged and leaves its file absent; only context
// cancellation is returned as an error.
func (l *Loader) Load(ctx context.Context, provinces, regions []string) (domain.RegionDataset, error) {
	logger := zerolog.Ctx(ctx)

	tasks := l.plan(provinces, regions)
	logger.Debug().Int("files", len(tasks)).Strs("provinces", provinces).Strs("regions", regions).Msg("loading datasets")

	var (
		mu sync.Mutex
		ds = domain.RegionDataset{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for _, t := range tasks {
		g.Go(func() error {
			rows, err := l.fetch(gctx, t)
			if err != nil {
				logger.Error().Err(err).
					Str("path", t.path).
					Str("region", t.region).
					Msg("failed to load dataset")
				return nil
			}
			mu.Lock()
			ds.Put(t.dataset, t.region, rows)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load cancelled: %w", err)
	}

	missing := make(map[domain.DatasetID][]string)
	if slices.Contains(regions, catalog.Wallonia) {
		l.rollup(ctx, ds, catalog.Wallonia, missing)
	}

	for _, byRegion := range ds {
		for _, rows := range byRegion {
			domain.SortRows(rows, domain.PeriodColumn(rows))
		}
	}

	l.mu.Lock()
	l.current = ds
	l.missing = missing
	l.mu.Unlock()

	return ds, nil
}

func (l *Loader) fetch(ctx context.Context, t task) ([]domain.Row, error) {
	data, err := l.src.Fetch(ctx, t.path)
	if err != nil {
		return nil, err
	}
	rows := csvtable.Parse(string(data))
	if t.reshape != nil {
		rows = t.reshape(rows)
	}
	return rows, nil
}

// rollup sums the rollup datasets of region from its constituent provinces.
func (l *Loader) rollup(ctx context.Context, ds domain.RegionDataset, region string, missing map[domain.DatasetID][]string) {
	logger := zerolog.Ctx(ctx)

	macro, ok := l.cat.Region(region)
	if !ok {
		return
	}

	for _, d := range l.cat.RollupDatasets() {
		res := aggregate.Rollup(region, d.Mode, macro.Provinces, ds[d.ID])
		if len(res.Rows) == 0 {
			logger.Warn().Str("dataset", string(d.ID)).Str("region", region).Msg("no constituent data to aggregate")
			continue
		}
		if len(res.Missing) > 0 {
			missing[d.ID] = res.Missing
			logger.Warn().
				Str("dataset", string(d.ID)).
				Str("region", region).
				Strs("missing", res.Missing).
				Msg("aggregating with partial province data")
		}
		ds.Put(d.ID, region, res.Rows)
	}
}

// RegionAverage is the mean of the constituent provinces of region for one dataset.
func (l *Loader) RegionAverage(ds domain.RegionDataset, id domain.DatasetID, region string) aggregate.Result {
	macro, ok := l.cat.Region(region)
	if !ok {
		return aggregate.Result{Region: region}
	}
	return aggregate.Rollup(region, aggregate.ModeMean, macro.Provinces, ds[id])
}

func (l *Loader) plan(provinces, regions []string) []task {
	var tasks []task
	seen := make(map[string]struct{})
	add := func(t task) {
		key := t.path + "\x00" + t.region
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		tasks = append(tasks, t)
	}

	for _, province := range provinces {
		for _, d := range l.cat.Datasets {
			add(task{path: path.Join(l.cat.Root, province, string(d.ID)), region: province, dataset: d.ID})
		}
	}

	for _, region := range regions {
		macro, _ := l.cat.Region(region)
		for _, d := range l.cat.Datasets {
			switch {
			case d.GewestFiltered:
				add(task{
					path:    path.Join(l.cat.Root, string(d.ID)),
					region:  region,
					dataset: d.ID,
					reshape: filterGewest(region, macro.Gewest),
				})
			case d.TrendIndex:
				add(task{
					path:    path.Join(l.cat.Root, string(d.ID)),
					region:  region,
					dataset: d.ID,
					reshape: projectTrendIndex(region, macro.Gewest),
				})
			case region == catalog.Flanders && d.FlandersVariant != "":
				add(task{
					path:    path.Join(l.cat.Root, d.FlandersVariant),
					region:  region,
					dataset: d.ID,
					reshape: labelRegion(region),
				})
			case macro.Folder != "":
				add(task{path: path.Join(l.cat.Root, macro.Folder, string(d.ID)), region: region, dataset: d.ID})
			}
		}
	}

	if slices.Contains(regions, catalog.Wallonia) {
		macro, _ := l.cat.Region(catalog.Wallonia)
		for _, province := range macro.Provinces {
			for _, d := range l.cat.RollupDatasets() {
				add(task{path: path.Join(l.cat.Root, province, string(d.ID)), region: province, dataset: d.ID})
			}
		}
	}

	return tasks
}
