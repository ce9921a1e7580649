package finance

import "github.com/iwvelando/finance-projection/pkg/mathutil"

func buildRatios(is IncomeStatement, d DetailedIncomeStatement, sheet []BalanceSheetYear, wc WorkingCapital, taxRate float64) Ratios {
	years := len(sheet)
	r := Ratios{
		GrossMargin:      make([]float64, years),
		NetMargin:        make([]float64, years),
		EBITDAMargin:     make([]float64, years),
		ROE:              make([]float64, years),
		ROCE:             make([]float64, years),
		CurrentRatio:     make([]float64, years),
		QuickRatio:       make([]float64, years),
		DebtToEquity:     make([]float64, years),
		NetGearing:       make([]float64, years),
		DebtToEBITDA:     make([]float64, years),
		InterestCoverage: make([]float64, years),
		AssetTurnover:    make([]float64, years),
	}

	for y, bs := range sheet {
		revenue := is.Revenue[y]
		currentLiabilities := bs.Payables + bs.Overdraft
		nopat := d.EBIT[y] * (1 - taxRate)

		r.GrossMargin[y] = mathutil.SafePercent(is.GrossProfit[y], revenue)
		r.NetMargin[y] = mathutil.SafePercent(is.NetProfit[y], revenue)
		r.EBITDAMargin[y] = mathutil.SafePercent(d.EBITDA[y], revenue)
		r.ROE[y] = mathutil.SafePercent(is.NetProfit[y], bs.Equity)
		r.ROCE[y] = mathutil.SafePercent(nopat, bs.NetFixedAssets+wc.BFR[y])
		r.CurrentRatio[y] = mathutil.SafeDiv(bs.Inventory+bs.Receivables+bs.Cash, currentLiabilities)
		r.QuickRatio[y] = mathutil.SafeDiv(bs.Receivables+bs.Cash, currentLiabilities)
		r.DebtToEquity[y] = mathutil.SafeDiv(bs.LongTermDebt, bs.Equity)
		r.NetGearing[y] = mathutil.SafeDiv(bs.LongTermDebt+bs.Overdraft-bs.Cash, bs.Equity)
		r.DebtToEBITDA[y] = mathutil.SafeDiv(bs.LongTermDebt, d.EBITDA[y])
		r.InterestCoverage[y] = mathutil.SafeDiv(d.EBIT[y], d.FinancialCharges[y])
		r.AssetTurnover[y] = mathutil.SafeDiv(revenue, bs.Assets)
	}
	return r
}
