package finance

import (
	"math"

	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/mathutil"
)

// buildBalanceSheet closes every year. Treasury is the cumulative cash flow
// net of the working-capital requirement; a negative treasury is carried as
// a bank overdraft.
func buildBalanceSheet(inputs FinancialInputs, fa fixedAssets, wc WorkingCapital, cf CashFlowStatement, debt debtService, is IncomeStatement) []BalanceSheetYear {
	years := len(cf.Net)
	sheet := make([]BalanceSheetYear, years)

	grants, retained := 0.0, 0.0
	for y := 0; y < years; y++ {
		grants += cf.Grants[y]
		retained += is.NetProfit[y]
		treasury := cf.Cumulative[y] - wc.BFR[y]

		bs := BalanceSheetYear{
			Year:             y,
			NetFixedAssets:   fa.net[y],
			Inventory:        wc.Inventory[y],
			Receivables:      wc.Receivables[y],
			Cash:             math.Max(0, treasury),
			LongTermDebt:     debt.closing[y],
			Payables:         wc.Payables[y],
			Overdraft:        math.Max(0, -treasury),
			OwnFunds:         inputs.OwnFunds,
			Grants:           grants,
			RetainedEarnings: retained,
		}
		bs.Assets = bs.NetFixedAssets + bs.Inventory + bs.Receivables + bs.Cash
		bs.Liabilities = bs.LongTermDebt + bs.Payables + bs.Overdraft
		bs.Equity = bs.OwnFunds + bs.Grants + bs.RetainedEarnings
		sheet[y] = bs
	}
	return sheet
}

// Reconcile checks assets against liabilities plus equity for every year. A
// gap that is not a number counts as unbalanced.
func Reconcile(sheet []BalanceSheetYear) Reconciliation {
	rec := Reconciliation{
		Imbalance: make([]float64, len(sheet)),
		Balanced:  true,
	}
	for y, bs := range sheet {
		gap := bs.Assets - (bs.Liabilities + bs.Equity)
		rec.Imbalance[y] = gap
		if math.Abs(gap) > rec.MaxImbalance {
			rec.MaxImbalance = math.Abs(gap)
		}
		if !mathutil.WithinTolerance(bs.Assets, bs.Liabilities+bs.Equity, constants.BalanceTolerance) {
			rec.Balanced = false
		}
	}
	return rec
}
