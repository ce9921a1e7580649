package finance

import (
	"math"
	"testing"
)

func TestAnnualDepreciation(t *testing.T) {
	tests := []struct {
		name  string
		item  InvestmentItem
		rate  float64
		years []float64
	}{
		{
			name:  "Straight line",
			item:  InvestmentItem{Amount: 1000, DepreciationYears: 4},
			years: []float64{250, 250, 250, 250, 0},
		},
		{
			name:  "Residual value is not depreciated",
			item:  InvestmentItem{Amount: 1000, ResidualValue: 200, DepreciationYears: 2},
			years: []float64{400, 400, 0},
		},
		{
			name:  "Fallback rate exhausts the base",
			item:  InvestmentItem{Amount: 1000},
			rate:  0.3,
			years: []float64{300, 300, 300, 100, 0},
		},
		{
			name:  "Horizon wins over the rate",
			item:  InvestmentItem{Amount: 1000, DepreciationYears: 2},
			rate:  0.1,
			years: []float64{500, 500, 0},
		},
		{
			name:  "No horizon and no rate",
			item:  InvestmentItem{Amount: 1000},
			years: []float64{0, 0},
		},
		{
			name:  "Financial assets",
			item:  InvestmentItem{Amount: 1000, DepreciationYears: 2, Category: InvestmentFinancial},
			years: []float64{0, 0},
		},
		{
			name:  "Residual above amount",
			item:  InvestmentItem{Amount: 1000, ResidualValue: 1500, DepreciationYears: 2},
			years: []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for y, expected := range tt.years {
				if result := AnnualDepreciation(tt.item, y, tt.rate); math.Abs(result-expected) > 1e-6 {
					t.Errorf("year %d depreciation = %.4f, expected %.4f", y, result, expected)
				}
			}
		})
	}
}

func TestBuildFixedAssets(t *testing.T) {
	items := []InvestmentItem{
		{Name: "Machine", Amount: 1200, DepreciationYears: 3},
		{Name: "Land", Amount: 500, Category: InvestmentFinancial},
	}
	fa := buildFixedAssets(items, 4, 0)

	if fa.gross != 1700 {
		t.Errorf("gross = %.2f, expected 1700", fa.gross)
	}
	expectedNet := []float64{1300, 900, 500, 500}
	for y, expected := range expectedNet {
		if math.Abs(fa.net[y]-expected) > 1e-9 {
			t.Errorf("year %d net fixed assets = %.2f, expected %.2f", y, fa.net[y], expected)
		}
	}
}
