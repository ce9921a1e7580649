// Package testutil provides common utility functions and fixtures for testing.
package testutil

import (
	"github.com/iwvelando/finance-projection/internal/projection"
	"github.com/iwvelando/finance-projection/pkg/finance"
	"github.com/iwvelando/finance-projection/pkg/loans"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the projection if found, nil otherwise.
func FindScenario(results []projection.Projection, name string) *projection.Projection {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// EndToEndInputs is a single product business funded by one bank loan: 100
// units a month at 20,000 growing 10% a year, 10,000,000 of yearly charges
// growing 5%, and 8,000,000 borrowed at 8% over seven years.
func EndToEndInputs() finance.FinancialInputs {
	return finance.FinancialInputs{
		Revenues: []finance.RevenueStream{
			{Name: "Product", UnitPrice: 20000, MonthlyQuantity: 100, GrowthRate: 0.10, Category: finance.RevenueProduct},
		},
		Costs: []finance.CostItem{
			{Name: "Operating charges", Amount: 10000000, Frequency: finance.FrequencyYearly, GrowthRate: 0.05},
		},
		Loans: []finance.LoanItem{
			{Source: "Bank", Principal: 8000000, AnnualRate: 0.08, TermYears: 7},
		},
		Years:        3,
		TaxRate:      0.30,
		DiscountRate: 0.10,
	}
}

// FullInputs exercises every input: seasonality, every cost line, fixed and
// variable behavior, depreciation by horizon and by rate, grants, grace
// periods, every amortization method and working capital.
func FullInputs() finance.FinancialInputs {
	return finance.FinancialInputs{
		Revenues: []finance.RevenueStream{
			{
				Name: "Bakery", UnitPrice: 1500, MonthlyQuantity: 3000, GrowthRate: 0.08,
				Seasonality: []float64{0.8, 0.8, 0.9, 1, 1, 1.1, 1.3, 1.3, 1, 0.9, 0.9, 1.2},
				Category:    finance.RevenueProduct,
			},
			{Name: "Catering", UnitPrice: 250000, MonthlyQuantity: 4, GrowthRate: 0.05, Category: finance.RevenueService},
		},
		Costs: []finance.CostItem{
			{Name: "Flour", Amount: 1200000, Frequency: finance.FrequencyMonthly, GrowthRate: 0.06, Category: finance.CostPurchases, Behavior: finance.CostVariable},
			{Name: "Rent", Amount: 600000, Frequency: finance.FrequencyMonthly, GrowthRate: 0.03, Category: finance.CostExternalCharges, Behavior: finance.CostFixed},
			{Name: "Staff", Amount: 1500000, Frequency: finance.FrequencyMonthly, GrowthRate: 0.04, Category: finance.CostPersonnel, Behavior: finance.CostFixed},
			{Name: "Local tax", Amount: 450000, Frequency: finance.FrequencyYearly, Category: finance.CostTaxes},
			{Name: "Insurance", Amount: 300000, Frequency: finance.FrequencyQuarterly, GrowthRate: 0.02, Category: "misc"},
		},
		Investments: []finance.InvestmentItem{
			{Name: "Oven", Amount: 18000000, Category: finance.InvestmentTangible, DepreciationYears: 5, ResidualValue: 3000000},
			{Name: "Fit-out", Amount: 6000000, Category: finance.InvestmentTangible},
			{Name: "Software", Amount: 1200000, Category: finance.InvestmentIntangible, DepreciationYears: 3},
			{Name: "Deposit", Amount: 1800000, Category: finance.InvestmentFinancial},
		},
		Loans: []finance.LoanItem{
			{Source: "Bank", Principal: 15000000, AnnualRate: 0.11, TermYears: 5, GraceMonths: 6},
			{Source: "Microfinance", Principal: 3000000, AnnualRate: 0.14, TermYears: 2, Method: loans.MethodLinear},
			{Source: "Family", Principal: 2000000, AnnualRate: 0.05, TermYears: 3, Method: loans.MethodInFine},
		},
		Grants: []finance.GrantItem{
			{Source: "Regional fund", Amount: 3000000, Schedule: []float64{2000000, 1000000}},
			{Source: "Startup prize", Amount: 500000},
		},
		OwnFunds:         8000000,
		Years:            5,
		StartYear:        2026,
		TaxRate:          0.25,
		DiscountRate:     0.12,
		DepreciationRate: 0.20,
		SocialChargeRate: 0.35,
		WorkingCapital:   finance.WorkingCapitalDays{Receivable: 30, Payable: 60, Inventory: 15},
	}
}

// UnderfundedInputs buys more than it raises so the treasury runs into
// overdraft.
func UnderfundedInputs() finance.FinancialInputs {
	return finance.FinancialInputs{
		Revenues: []finance.RevenueStream{
			{Name: "Sales", UnitPrice: 100, MonthlyQuantity: 1000},
		},
		Costs: []finance.CostItem{
			{Name: "Stock", Amount: 60000, Frequency: finance.FrequencyMonthly, Category: finance.CostPurchases, Behavior: finance.CostVariable},
			{Name: "Wages", Amount: 50000, Frequency: finance.FrequencyMonthly, Category: finance.CostPersonnel},
		},
		Investments: []finance.InvestmentItem{
			{Name: "Truck", Amount: 2000000, DepreciationYears: 4},
		},
		OwnFunds:       500000,
		Years:          3,
		TaxRate:        0.3,
		DiscountRate:   0.1,
		WorkingCapital: finance.WorkingCapitalDays{Receivable: 60, Payable: 30, Inventory: 45},
	}
}
