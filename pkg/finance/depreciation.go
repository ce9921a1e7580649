package finance

import "github.com/iwvelando/finance-projection/pkg/mathutil"

// AnnualDepreciation returns the straight-line depreciation of an investment
// for a 0-based year. Items without a depreciation horizon fall back to
// fallbackRate applied to the depreciable base until it is exhausted.
// Financial assets are not depreciated.
func AnnualDepreciation(item InvestmentItem, year int, fallbackRate float64) float64 {
	if year < 0 || item.Category.Normalize() == InvestmentFinancial {
		return 0
	}
	base := item.Amount - item.ResidualValue
	if base <= 0 {
		return 0
	}

	if item.DepreciationYears >= 1 {
		if year >= item.DepreciationYears {
			return 0
		}
		return base / float64(item.DepreciationYears)
	}

	if fallbackRate <= 0 {
		return 0
	}
	annual := base * fallbackRate
	remaining := base - annual*float64(year)
	if !mathutil.IsPositive(remaining) {
		return 0
	}
	if remaining < annual {
		return remaining
	}
	return annual
}

// fixedAssets holds the gross and depreciation figures of the investment set.
type fixedAssets struct {
	gross        float64
	depreciation []float64
	net          []float64
}

func buildFixedAssets(items []InvestmentItem, years int, fallbackRate float64) fixedAssets {
	fa := fixedAssets{
		depreciation: make([]float64, years),
		net:          make([]float64, years),
	}
	for _, item := range items {
		fa.gross += item.Amount
	}

	accumulated := 0.0
	for y := 0; y < years; y++ {
		for _, item := range items {
			fa.depreciation[y] += AnnualDepreciation(item, y, fallbackRate)
		}
		accumulated += fa.depreciation[y]
		fa.net[y] = fa.gross - accumulated
	}
	return fa
}
