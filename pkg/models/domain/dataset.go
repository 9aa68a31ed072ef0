package domain

// DatasetID names one of the known CSV artifacts, e.g. "Faillissementen bouwsector.csv".
type DatasetID string

// RegionDataset maps dataset → region name → rows sorted by period.
type RegionDataset map[DatasetID]map[string][]Row

func (d RegionDataset) Put(id DatasetID, region string, rows []Row) {
	if d[id] == nil {
		d[id] = make(map[string][]Row)
	}
	d[id][region] = rows
}

func (d RegionDataset) Get(id DatasetID, region string) ([]Row, bool) {
	byRegion, ok := d[id]
	if !ok {
		return nil, false
	}
	rows, ok := byRegion[region]
	return rows, ok
}

// Regions returns the regions with data for the dataset.
func (d RegionDataset) Regions(id DatasetID) []string {
	regions := make([]string, 0, len(d[id]))
	for r := range d[id] {
		regions = append(regions, r)
	}
	return regions
}
