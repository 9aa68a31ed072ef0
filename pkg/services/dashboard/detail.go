package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

// DetailView selects the breakdown shown in the municipality detail.
type DetailView string

const (
	ViewPolicyField DetailView = "beleidsveld"
	ViewAccount     DetailView = "uitgavenpost"
)

func ParseDetailView(s string) (DetailView, error) {
	switch DetailView(strings.ToLower(strings.TrimSpace(s))) {
	case ViewPolicyField:
		return ViewPolicyField, nil
	case ViewAccount:
		return ViewAccount, nil
	default:
		return "", fmt.Errorf("unknown detail view %q, expected %s or %s", s, ViewPolicyField, ViewAccount)
	}
}

const (
	unknownProvince  = "Provincie onbekend"
	noData           = "geen data"
	warnThresholdPct = 1.0

	differenceWarning = "Er is een verschil tussen de som van de details en het totaal. " +
		"Dit kan duiden op ontbrekende rekeningen in de gedetailleerde data."
	unreliableWarning = "Data onbetrouwbaar: Het verschil tussen de verschillende totalen is extreem groot (> 80%). " +
		"De getoonde investeringsgegevens voor deze gemeente zijn niet betrouwbaar en mogen niet gebruikt worden voor analyses."
)

// unreliable municipalities have breakdown totals that cannot be reconciled.
var unreliable = map[string]bool{
	"Kaprijke": true,
}

// IsUnreliable reports whether the data of the municipality is flagged as unusable.
func IsUnreliable(name string) bool {
	return unreliable[name]
}

// Detail is the detail panel of one municipality.
type Detail struct {
	Name       string
	Province   string
	Unreliable bool

	Total2024         domain.Value
	PolicyTotal       domain.Value
	PolicyDifference  domain.Value
	AccountTotal      domain.Value
	AccountDifference domain.Value
	View              DetailView
	Title             string
	Column            string
	Items             []domain.BreakdownItem
	Warning           string
	Placeholder       string
}

// MunicipalityDetail shapes the 2024 breakdown of m for the chosen view. An
// absent breakdown yields a placeholder instead of items. The warning is set
// when either breakdown differs from the 2024 total by more than 1%.
func MunicipalityDetail(m domain.Municipality, view DetailView) Detail {
	d := Detail{
		Name:       m.Name,
		Province:   m.Province,
		Unreliable: IsUnreliable(m.Name),
		View:       view,
	}
	if d.Province == "" {
		d.Province = unknownProvince
	}

	total, hasTotal := m.PerYear["2024"]
	if hasTotal && total != 0 {
		d.Total2024 = domain.Some(total)
	}
	if b := m.PolicyBreakdown; b != nil {
		d.PolicyTotal = domain.Some(b.Total)
		d.PolicyDifference = domain.Some(b.Difference)
	}
	if b := m.AccountDetail; b != nil {
		d.AccountTotal = domain.Some(b.Total)
		d.AccountDifference = domain.Some(b.Difference)
	}

	primary, secondary := m.PolicyBreakdown, m.AccountDetail
	switch view {
	case ViewAccount:
		d.Title, d.Column = "Top 10 per uitgavenpost", "Rekening"
		primary, secondary = m.AccountDetail, m.PolicyBreakdown
	default:
		d.View = ViewPolicyField
		d.Title, d.Column = "Top 10 per beleidsveld", "Beleidsveld"
	}

	if primary == nil {
		if d.View == ViewAccount {
			d.Placeholder = "Geen gedetailleerde data beschikbaar voor deze gemeente"
		} else {
			d.Placeholder = "Geen beleidsdomein data beschikbaar voor deze gemeente"
		}
		return d
	}

	switch {
	case d.Unreliable:
		d.Warning = unreliableWarning
	case exceeds(primary, total) || exceeds(secondary, total):
		d.Warning = differenceWarning
	}

	if len(primary.Top) == 0 {
		if d.View == ViewAccount {
			d.Placeholder = "Geen gedetailleerde rekeningen beschikbaar"
		} else {
			d.Placeholder = "Geen beleidsdomein data beschikbaar"
		}
		return d
	}

	d.Items = make([]domain.BreakdownItem, 0, len(primary.Top))
	for _, item := range primary.Top {
		if d.View == ViewAccount {
			item.Name = StripCode(item.Name, item.Code)
		}
		d.Items = append(d.Items, item)
	}
	return d
}

// DifferencePercent is |difference / total| in percent, 0 when total is 0.
func DifferencePercent(difference, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Abs(difference / total * 100)
}

func exceeds(b *domain.Breakdown, total float64) bool {
	return b != nil && DifferencePercent(b.Difference, total) > warnThresholdPct
}

// StripCode removes a leading account code and separator dash from name.
func StripCode(name, code string) string {
	if code == "" || !strings.HasPrefix(name, code) {
		return name
	}
	rest := strings.TrimSpace(strings.TrimPrefix(name, code))
	if strings.HasPrefix(rest, "-") {
		rest = strings.TrimSpace(rest[1:])
	}
	return rest
}

// Report renders the detail as a single-section report.
func (d Detail) Report() domain.Report {
	title := d.Name
	if d.Unreliable {
		title += " (data onbetrouwbaar)"
	}

	section := domain.ReportSection{
		Title: d.Title,
		Summary: map[string]any{
			"Provincie":                d.Province,
			"Totaal 2024":              FormatAmount(d.Total2024),
			"Som beleidsdomeinen":      FormatAmount(d.PolicyTotal),
			"Verschil beleidsdomeinen": differenceLabel(d.PolicyTotal, d.PolicyDifference),
			"Som rekeningen":           FormatAmount(d.AccountTotal),
			"Verschil rekeningen":      differenceLabel(d.AccountTotal, d.AccountDifference),
		},
	}
	for _, item := range d.Items {
		section.Rows = append(section.Rows, domain.ReportRow{
			Name:        item.Name,
			Values:      []domain.Value{domain.Some(item.Amount)},
			Description: item.Code,
		})
	}
	if d.Warning != "" {
		section.Notes = append(section.Notes, d.Warning)
	}
	if d.Placeholder != "" {
		section.Notes = append(section.Notes, d.Placeholder)
	}

	return domain.Report{
		Title:    title,
		Subtitle: d.Column,
		Unit:     "€",
		Periods:  []string{"2024"},
		Sections: []domain.ReportSection{section},
	}
}

func differenceLabel(total, difference domain.Value) string {
	if !total.Present {
		return noData
	}
	return "verschil: " + FormatAmount(difference)
}
