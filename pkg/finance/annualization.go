package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/mathutil"
)

// SeasonalityFactor returns the mean of the monthly multipliers. An empty
// vector means no seasonal skew.
func SeasonalityFactor(seasonality []float64) float64 {
	if len(seasonality) == 0 {
		return 1
	}
	return mathutil.Mean(seasonality)
}

// seasonalMultiplier returns the multiplier for a 0-based month.
func seasonalMultiplier(seasonality []float64, month int) float64 {
	if len(seasonality) == 0 {
		return 1
	}
	return seasonality[month%len(seasonality)]
}

// ValidateSeasonality checks that a non-empty vector has exactly twelve
// finite, non-negative entries.
func ValidateSeasonality(seasonality []float64) error {
	if len(seasonality) == 0 {
		return nil
	}
	if len(seasonality) != constants.MonthsPerYear {
		return fmt.Errorf("%w: got %d entries", ErrInvalidSeasonality, len(seasonality))
	}
	for i, m := range seasonality {
		if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return fmt.Errorf("%w: month %d is %v", ErrInvalidSeasonality, i+1, m)
		}
	}
	return nil
}

// AnnualRevenue returns the revenue of a stream for a 0-based year.
func AnnualRevenue(stream RevenueStream, year int) float64 {
	base := stream.UnitPrice * stream.MonthlyQuantity * constants.MonthsPerYear
	return base * mathutil.GrowthFactor(stream.GrowthRate, year) * SeasonalityFactor(stream.Seasonality)
}

// MonthlyRevenue returns the revenue of a stream for a 0-based month of a
// 0-based year.
func MonthlyRevenue(stream RevenueStream, year, month int) float64 {
	return stream.UnitPrice * stream.MonthlyQuantity *
		seasonalMultiplier(stream.Seasonality, month) *
		mathutil.GrowthFactor(stream.GrowthRate, year)
}

// AnnualCost returns the cost of an item for a 0-based year.
func AnnualCost(item CostItem, year int) float64 {
	return item.Amount * item.Frequency.PeriodsPerYear() * mathutil.GrowthFactor(item.GrowthRate, year)
}

// MonthlyCost returns the cash paid for an item in a 0-based month of a
// 0-based year. Quarterly items fall due in the first month of each quarter
// and yearly items in the first month of the year.
func MonthlyCost(item CostItem, year, month int) float64 {
	growth := mathutil.GrowthFactor(item.GrowthRate, year)
	switch item.Frequency.normalize() {
	case FrequencyQuarterly:
		if month%(constants.MonthsPerYear/constants.QuartersPerYear) != 0 {
			return 0
		}
	case FrequencyYearly:
		if month != 0 {
			return 0
		}
	}
	return item.Amount * growth
}

// TotalRevenue sums every stream for each year of the horizon.
func TotalRevenue(streams []RevenueStream, years int) []float64 {
	totals := make([]float64, years)
	for y := range totals {
		for _, stream := range streams {
			totals[y] += AnnualRevenue(stream, y)
		}
	}
	return totals
}
