package loader

import "github.com/de-tools/invest-atlas/pkg/models/domain"

const (
	trendConstruction    = "Bouwsector (index)"
	trendNonConstruction = "Niet-bouwsector (index)"
)

// labelRegion prepends the region column to rows of a region-level file.
func labelRegion(region string) transform {
	return func(rows []domain.Row) []domain.Row {
		out := make([]domain.Row, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.WithLeading(domain.RegionColumn, region))
		}
		return out
	}
}

// filterGewest keeps the rows of one Gewest and replaces that column by the region column.
func filterGewest(region, gewest string) transform {
	return func(rows []domain.Row) []domain.Row {
		var out []domain.Row
		for _, r := range rows {
			if r.Get(domain.GewestColumn) != gewest {
				continue
			}
			row := domain.NewRow(nil)
			row.Set(domain.RegionColumn, region)
			for _, c := range r.Columns {
				if c == domain.GewestColumn {
					continue
				}
				row.Set(c, r.Get(c))
			}
			out = append(out, row)
		}
		return out
	}
}

// projectTrendIndex picks the "<Gewest> - Bouwsector" and "<Gewest> - Niet-bouwsector"
// columns of the shared trend file. Absent cells become "-".
func projectTrendIndex(region, gewest string) transform {
	construction := gewest + " - Bouwsector"
	other := gewest + " - Niet-bouwsector"
	return func(rows []domain.Row) []domain.Row {
		out := make([]domain.Row, 0, len(rows))
		for _, r := range rows {
			row := domain.NewRow(nil)
			row.Set(domain.RegionColumn, region)
			row.Set(domain.YearMonthColumn, r.Get(domain.YearMonthColumn))
			row.Set(trendConstruction, orMissing(r.Get(construction)))
			row.Set(trendNonConstruction, orMissing(r.Get(other)))
			out = append(out, row)
		}
		return out
	}
}

func orMissing(v string) string {
	if v == "" {
		return domain.MissingValue
	}
	return v
}
