package finance

import (
	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/mathutil"
)

// Receivables returns the customer credit outstanding at year end.
func Receivables(revenue, days float64) float64 {
	return revenue / constants.DaysPerYear * days
}

// Payables returns the supplier credit outstanding at year end.
func Payables(purchases, days float64) float64 {
	return purchases / constants.DaysPerYear * days
}

// Inventory returns the stock held at year end.
func Inventory(purchases, days float64) float64 {
	return purchases / constants.DaysPerYear * days
}

// buildWorkingCapital computes the operating working-capital lines. FDR and
// TN need the balance sheet and are filled by completeFunding.
func buildWorkingCapital(revenue, purchases []float64, days WorkingCapitalDays) WorkingCapital {
	years := len(revenue)
	wc := WorkingCapital{
		Receivables: make([]float64, years),
		Payables:    make([]float64, years),
		Inventory:   make([]float64, years),
		BFR:         make([]float64, years),
		DeltaBFR:    make([]float64, years),
		BFRDays:     make([]float64, years),
		FDR:         make([]float64, years),
		TN:          make([]float64, years),
	}

	for y := 0; y < years; y++ {
		wc.Receivables[y] = Receivables(revenue[y], days.Receivable)
		wc.Payables[y] = Payables(purchases[y], days.Payable)
		wc.Inventory[y] = Inventory(purchases[y], days.Inventory)
		wc.BFR[y] = wc.Inventory[y] + wc.Receivables[y] - wc.Payables[y]
		wc.BFRDays[y] = mathutil.SafeDiv(wc.BFR[y], revenue[y]) * constants.DaysPerYear
		if y == 0 {
			wc.DeltaBFR[y] = wc.BFR[y]
		} else {
			wc.DeltaBFR[y] = wc.BFR[y] - wc.BFR[y-1]
		}
	}
	return wc
}

// completeFunding derives permanent funding and net treasury from the
// balance sheet. TN is computed as FDR - BFR and nothing else.
func completeFunding(wc *WorkingCapital, sheet []BalanceSheetYear) {
	for y, bs := range sheet {
		wc.FDR[y] = bs.Equity + bs.LongTermDebt - bs.NetFixedAssets
		wc.TN[y] = wc.FDR[y] - wc.BFR[y]
	}
}
