// Package format renders amounts, percentages and ratios for display.
package format

import (
	"math"

	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Amount returns a monetary amount with thousands separators and two
// decimals, e.g. "-1,234.56". Amounts are in the plan's implied currency.
func Amount(amount float64) string {
	return printer.Sprintf("%.2f", normalize(mathutil.Round(amount)))
}

// Units returns an amount rounded to whole currency units, e.g. "173,327".
func Units(amount float64) string {
	return printer.Sprintf("%.0f", normalize(mathutil.RoundUnits(amount)))
}

// Percent renders a value already expressed out of 100, e.g. "12.50%".
func Percent(value float64) string {
	return printer.Sprintf("%.2f%%", normalize(mathutil.Round(value)))
}

// Rate renders a decimal rate as a percentage, e.g. 0.125 as "12.50%".
func Rate(rate float64) string {
	return Percent(rate * constants.PercentageMultiplier)
}

// Ratio renders a multiple, e.g. "1.35x".
func Ratio(value float64) string {
	return printer.Sprintf("%.2fx", normalize(mathutil.Round(value)))
}

// Years renders a 1-based year count, or "not reached" for the sentinel.
func Years(years int) string {
	if years == constants.NotReached {
		return "not reached"
	}
	if years == 1 {
		return "1 year"
	}
	return printer.Sprintf("%d years", years)
}

// Months renders a month count with one decimal, or "not reached".
func Months(months float64) string {
	if months == constants.NotReached {
		return "not reached"
	}
	return printer.Sprintf("%.1f months", normalize(mathutil.RoundPlaces(months, 1)))
}

// normalize turns negative zero into zero so it never prints as "-0.00".
func normalize(v float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
