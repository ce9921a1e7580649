// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero.
func Round(val float64) float64 {
	return RoundPlaces(val, constants.DecimalPrecision)
}

// RoundPlaces rounds a value to the given number of decimal places.
func RoundPlaces(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	rounded, _ := decimal.NewFromFloat(val).Round(places).Float64()
	return rounded
}

// RoundUnits rounds a value to whole currency units.
func RoundUnits(val float64) float64 {
	return RoundPlaces(val, 0)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// IsNegative checks if a value is negative (less than negative tolerance)
func IsNegative(val float64) bool {
	return val < -constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// SafeDiv divides numerator by denominator and returns 0 instead of NaN or
// Inf when the denominator is zero or the result is not finite.
func SafeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// SafePercent returns value as a percentage of total, 0 when total is zero.
func SafePercent(value, total float64) float64 {
	return SafeDiv(value, total) * constants.PercentageMultiplier
}

// GrowthFactor returns (1+rate)^years. A rate below -1 is treated as -1 so
// the factor never turns negative.
func GrowthFactor(rate float64, years int) float64 {
	return math.Pow(math.Max(0, 1+rate), float64(years))
}

// Sum adds all values.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	return SafeDiv(Sum(values), float64(len(values)))
}

// Cumulative returns the running sum of values.
func Cumulative(values []float64) []float64 {
	out := make([]float64, len(values))
	running := 0.0
	for i, v := range values {
		running += v
		out[i] = running
	}
	return out
}
