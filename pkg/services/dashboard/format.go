package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

// FormatAmount renders "€ 1234.56", or "€ -" for an absent value.
func FormatAmount(v domain.Value) string {
	if !v.Present || math.IsNaN(v.Amount) {
		return "€ -"
	}
	return fmt.Sprintf("€ %.2f", v.Amount)
}

// FormatCurrency renders whole euros with Belgian thousand separators, "-" for zero.
func FormatCurrency(amount float64) string {
	if amount == 0 || math.IsNaN(amount) {
		return "-"
	}
	return "€ " + groupThousands(math.Round(amount))
}

// FormatCurrencyShort abbreviates to K and M.
func FormatCurrencyShort(amount float64) string {
	switch {
	case amount == 0 || math.IsNaN(amount):
		return "€0"
	case amount >= 1_000_000:
		return fmt.Sprintf("€%.0fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("€%.0fK", amount/1_000)
	default:
		return fmt.Sprintf("€%.0f", amount)
	}
}

func groupThousands(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 0, 64)
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String()
}
