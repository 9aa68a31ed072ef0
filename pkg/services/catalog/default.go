package catalog

import "github.com/de-tools/invest-atlas/pkg/services/aggregate"

const (
	SurvivalOneYear          = "Overlevingskans na 1 jaar.csv"
	SurvivalThreeYears       = "Overlevingskans na 3 jaar.csv"
	ConstructionStarters     = "Nieuwe starters bouwsector.csv"
	ConstructionBankruptcies = "Faillissementen bouwsector.csv"
	BankruptcyTrendIndex     = "12-maandelijkse trend faillissementen (index 2008 = 100).csv"
	BankruptcyTrendAbsolute  = "12-maandelijkse trend faillissementen bouwsector (absolute cijfers).csv"
	StartersIndex            = "Nieuwe starters (index 2008 = 100).csv"
	YearlyConstruction       = "Jaarlijkse cijfers bouwsector (sinds 2016).csv"
)

// Default is the catalog of the published dashboard data.
func Default() Catalog {
	return Catalog{
		Root: "data/data-grafieken",
		Datasets: []Dataset{
			{ID: SurvivalOneYear, Mode: aggregate.ModeMean, GewestFiltered: true},
			{ID: SurvivalThreeYears, Mode: aggregate.ModeMean, GewestFiltered: true},
			{
				ID:              ConstructionStarters,
				Mode:            aggregate.ModeSum,
				FlandersVariant: "Nieuwe starters Vlaamse bouwsector.csv",
				WalloniaRollup:  true,
			},
			{
				ID:              ConstructionBankruptcies,
				Mode:            aggregate.ModeSum,
				FlandersVariant: "Faillissementen Vlaamse bouwsector.csv",
				WalloniaRollup:  true,
			},
			{ID: BankruptcyTrendIndex, Mode: aggregate.ModeMean, TrendIndex: true},
			{
				ID:              BankruptcyTrendAbsolute,
				Mode:            aggregate.ModeSum,
				FlandersVariant: "12-maandelijkse trend faillissementen Vlaamse bouwsector (absolute cijfers).csv",
				WalloniaRollup:  true,
			},
			{ID: StartersIndex, Mode: aggregate.ModeMean, GewestFiltered: true},
			{
				ID:              YearlyConstruction,
				Mode:            aggregate.ModeSum,
				FlandersVariant: "Jaarlijkse cijfers Vlaanderen bouwsector (sinds 2016).csv",
			},
		},
		Regions: []MacroRegion{
			{
				Name:      Flanders,
				Gewest:    "Vlaams Gewest",
				Provinces: []string{"Antwerpen", "Vlaams-Brabant", "West-Vlaanderen", "Oost-Vlaanderen", "Limburg"},
			},
			{
				Name:      Wallonia,
				Gewest:    "Waals Gewest",
				Provinces: []string{"Waals-Brabant", "Henegouwen", "Luik", "Luxemburg", "Namen"},
			},
			{
				Name:      Brussels,
				Gewest:    "Brussels Gewest",
				Folder:    "Brussels",
				Provinces: []string{"Brussels"},
			},
		},
	}
}
