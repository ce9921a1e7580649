package validation

import (
	"fmt"

	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/finance"
	"github.com/iwvelando/finance-projection/pkg/loans"
	"github.com/iwvelando/finance-projection/pkg/mathutil"
)

// CheckInputs returns a warning for every assumption the engine would accept
// but that is probably a mistake, and for every definition it would reject.
func CheckInputs(in finance.FinancialInputs) []string {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if in.Years < 1 {
		warn("projection horizon of %d years is invalid", in.Years)
	}
	if in.TaxRate < 0 || in.TaxRate > 1 {
		warn("tax rate %.4f is outside [0, 1]", in.TaxRate)
	}
	if in.SocialChargeRate < 0 {
		warn("social charge rate %.4f is negative", in.SocialChargeRate)
	}
	if in.DiscountRate <= constants.IRRMinRate {
		warn("discount rate %.4f is at or below %.2f", in.DiscountRate, constants.IRRMinRate)
	}
	wc := in.WorkingCapital
	if wc.Receivable < 0 || wc.Payable < 0 || wc.Inventory < 0 {
		warn("working capital days must not be negative")
	}

	if len(in.Revenues) == 0 {
		warn("no revenue streams defined")
	}
	for _, r := range in.Revenues {
		if r.UnitPrice < 0 || r.MonthlyQuantity < 0 {
			warn("Revenue '%s' has a negative price or quantity", r.Name)
		}
		if r.GrowthRate <= -1 {
			warn("Revenue '%s' growth rate %.4f wipes out revenue", r.Name, r.GrowthRate)
		}
		if err := finance.ValidateSeasonality(r.Seasonality); err != nil {
			warn("Revenue '%s': %v", r.Name, err)
		}
	}

	for _, c := range in.Costs {
		if mathutil.IsNegative(c.Amount) {
			warn("Cost '%s' has a negative amount", c.Name)
		}
		if c.GrowthRate < -1 {
			warn("Cost '%s' growth rate %.4f is floored at -100%%", c.Name, c.GrowthRate)
		}
		if !c.Frequency.Valid() {
			warn("Cost '%s' has unknown frequency %q, treated as monthly", c.Name, c.Frequency)
		}
	}

	for _, inv := range in.Investments {
		if mathutil.IsNegative(inv.Amount) {
			warn("Investment '%s' has a negative amount", inv.Name)
		}
		if inv.ResidualValue > inv.Amount {
			warn("Investment '%s' residual value exceeds its amount", inv.Name)
		}
		if inv.DepreciationYears < 1 && in.DepreciationRate <= 0 &&
			inv.Category.Normalize() != finance.InvestmentFinancial {
			warn("Investment '%s' has no depreciation horizon and will not be depreciated", inv.Name)
		}
	}

	for _, l := range in.Loans {
		loan := loans.Loan{
			Name:        l.Source,
			Principal:   l.Principal,
			AnnualRate:  l.AnnualRate,
			TermMonths:  l.TermYears * constants.MonthsPerYear,
			GraceMonths: l.GraceMonths,
			Method:      l.Method,
		}
		if err := loan.Validate(); err != nil {
			warn("Loan '%s' is invalid: %v", l.Source, err)
			continue
		}
		if l.GraceMonths >= loan.TermMonths {
			warn("Loan '%s' grace period covers its term and will be repaid in fine", l.Source)
		}
	}

	for _, g := range in.Grants {
		if len(g.Schedule) == 0 {
			continue
		}
		scheduled := 0.0
		for _, amount := range g.Schedule {
			scheduled += amount
		}
		if !mathutil.IsZero(scheduled - g.Amount) {
			warn("Grant '%s' schedule totals %.2f but the grant is %.2f", g.Source, scheduled, g.Amount)
		}
		if len(g.Schedule) > in.Years {
			warn("Grant '%s' is disbursed beyond the projection horizon", g.Source)
		}
	}

	return warnings
}

// CheckProjections flags results a lender would question.
func CheckProjections(p *finance.FinancialProjections) []string {
	var warnings []string
	if p == nil {
		return warnings
	}
	if !p.Reconciliation.Balanced {
		warnings = append(warnings, fmt.Sprintf("balance sheet is off by up to %.2f", p.Reconciliation.MaxImbalance))
	}
	for y, dscr := range p.Appraisal.DSCR {
		if mathutil.IsPositive(p.CashFlow.DebtService[y]) && dscr < constants.ViableDSCR {
			warnings = append(warnings, fmt.Sprintf("year %d DSCR %.2f is below %.2f", p.YearLabel(y), dscr, constants.ViableDSCR))
		}
	}
	if !p.Appraisal.IRR.Converged {
		warnings = append(warnings, "IRR could not be determined")
	}
	if p.Appraisal.PaybackYears == constants.NotReached {
		warnings = append(warnings, "investment is not paid back within the horizon")
	}
	return warnings
}
