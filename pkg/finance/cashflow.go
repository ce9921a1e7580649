package finance

import (
	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/loans"
)

// debtService aggregates every loan schedule by projection year.
type debtService struct {
	principal []float64
	interest  []float64
	total     []float64
	closing   []float64
	raised    float64
}

func aggregateDebt(schedules []*loans.Schedule, years int) debtService {
	ds := debtService{
		principal: make([]float64, years),
		interest:  make([]float64, years),
		total:     make([]float64, years),
		closing:   make([]float64, years),
	}
	for _, s := range schedules {
		ds.raised += s.Principal
		for y := 0; y < years; y++ {
			summary := s.YearSummary(y)
			ds.principal[y] += summary.Principal
			ds.interest[y] += summary.Interest
			ds.total[y] += summary.DebtService
			ds.closing[y] += summary.ClosingBalance
		}
	}
	return ds
}

// GrantsByYear spreads every grant over the horizon. A grant without a
// schedule is received in full in year 0.
func GrantsByYear(grants []GrantItem, years int) []float64 {
	out := make([]float64, years)
	if years == 0 {
		return out
	}
	for _, g := range grants {
		if len(g.Schedule) == 0 {
			out[0] += g.Amount
			continue
		}
		for y, amount := range g.Schedule {
			if y < years {
				out[y] += amount
			}
		}
	}
	return out
}

// buildCashFlow derives operating, investment and financing flows and their
// running total. The identities net = operating + investment + financing and
// cumulative[y] = cumulative[y-1] + net[y] hold exactly.
func buildCashFlow(inputs FinancialInputs, is IncomeStatement, depreciation []float64, debt debtService, grossInvestment float64) CashFlowStatement {
	years := len(is.NetProfit)
	cf := CashFlowStatement{
		Operating:              make([]float64, years),
		Investment:             make([]float64, years),
		Financing:              make([]float64, years),
		Net:                    make([]float64, years),
		Cumulative:             make([]float64, years),
		Grants:                 GrantsByYear(inputs.Grants, years),
		DebtService:            append([]float64(nil), debt.total...),
		FreeCashFlow:           make([]float64, years),
		CumulativeFreeCashFlow: make([]float64, years),
	}

	for y := 0; y < years; y++ {
		cf.Operating[y] = is.NetProfit[y] + depreciation[y] + debt.interest[y]

		financing := cf.Grants[y] - debt.total[y]
		if y == 0 {
			cf.Investment[y] = -grossInvestment
			financing += inputs.OwnFunds + debt.raised
		}
		cf.Financing[y] = financing

		cf.Net[y] = cf.Operating[y] + cf.Investment[y] + cf.Financing[y]
		cf.FreeCashFlow[y] = cf.Operating[y] + cf.Investment[y]
		if y == 0 {
			cf.Cumulative[y] = cf.Net[y]
			cf.CumulativeFreeCashFlow[y] = cf.FreeCashFlow[y]
		} else {
			cf.Cumulative[y] = cf.Cumulative[y-1] + cf.Net[y]
			cf.CumulativeFreeCashFlow[y] = cf.CumulativeFreeCashFlow[y-1] + cf.FreeCashFlow[y]
		}
	}
	return cf
}

// buildMonthlyCashPlan lays out the first year month by month. Corporate tax
// is spread evenly and debt service follows the loan schedules, so the
// closing cumulative equals the first-year cumulative cash flow.
func buildMonthlyCashPlan(inputs FinancialInputs, schedules []*loans.Schedule, firstYearTax, grossInvestment float64) MonthlyCashPlan {
	opening := inputs.OwnFunds - grossInvestment
	for _, s := range schedules {
		opening += s.Principal
	}
	opening += GrantsByYear(inputs.Grants, 1)[0]

	plan := MonthlyCashPlan{
		OpeningCash: opening,
		Months:      make([]MonthlyCashPosition, constants.MonthsPerYear),
	}

	running := opening
	for m := 0; m < constants.MonthsPerYear; m++ {
		pos := MonthlyCashPosition{Month: m + 1}
		for _, stream := range inputs.Revenues {
			pos.Receipts += MonthlyRevenue(stream, 0, m)
		}
		for _, item := range inputs.Costs {
			amount := MonthlyCost(item, 0, m)
			if item.Category.Normalize() == CostPersonnel {
				amount *= 1 + inputs.SocialChargeRate
			}
			pos.Disbursements += amount
		}
		for _, s := range schedules {
			if m < len(s.Periods) {
				pos.DebtService += s.Periods[m].Payment
			}
		}
		pos.Tax = firstYearTax / constants.MonthsPerYear
		pos.Net = pos.Receipts - pos.Disbursements - pos.Tax - pos.DebtService
		running += pos.Net
		pos.Cumulative = running
		plan.Months[m] = pos
	}
	return plan
}
