package finance

import (
	"fmt"

	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/loans"
	"go.uber.org/zap"
)

// Engine computes financial projections. It holds no state between runs and
// is safe for concurrent use.
type Engine struct {
	logger    *zap.Logger
	schedules *loans.ScheduleGenerator
}

// NewEngine creates an engine logging to logger. A nil logger is replaced by
// a no-op logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:    logger,
		schedules: loans.NewScheduleGenerator(logger),
	}
}

// Compute runs the engine with a silent logger.
func Compute(inputs FinancialInputs) (*FinancialProjections, error) {
	return NewEngine(nil).Compute(inputs)
}

// Compute builds a fresh set of projections from inputs. The inputs are only
// read. Errors are returned for definitions that cannot be projected: a
// horizon under one year, a malformed seasonality vector or an invalid loan.
func (e *Engine) Compute(inputs FinancialInputs) (*FinancialProjections, error) {
	years := inputs.Years
	if years < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, years)
	}
	for _, stream := range inputs.Revenues {
		if err := ValidateSeasonality(stream.Seasonality); err != nil {
			return nil, fmt.Errorf("revenue stream %s: %w", stream.Name, err)
		}
	}

	schedules, err := e.buildSchedules(inputs.Loans)
	if err != nil {
		return nil, err
	}

	revenue := TotalRevenue(inputs.Revenues, years)
	costs := buildCostLayers(inputs.Costs, years, inputs.SocialChargeRate)
	assets := buildFixedAssets(inputs.Investments, years, inputs.DepreciationRate)
	debt := aggregateDebt(schedules, years)

	p := &FinancialProjections{
		Years:        make([]int, years),
		StartYear:    inputs.StartYear,
		Depreciation: assets.depreciation,
		Schedules:    schedules,
	}
	for y := range p.Years {
		p.Years[y] = y
	}

	p.IncomeStatement = buildIncomeStatement(revenue, costs, assets.depreciation, debt.interest, inputs.TaxRate)
	p.DetailedIncomeStatement = buildDetailedIncomeStatement(revenue, costs, assets.depreciation, debt.interest, inputs.TaxRate)
	p.CashFlow = buildCashFlow(inputs, p.IncomeStatement, assets.depreciation, debt, assets.gross)
	p.MonthlyCashPlan = buildMonthlyCashPlan(inputs, schedules, p.IncomeStatement.Tax[0], assets.gross)

	p.WorkingCapital = buildWorkingCapital(revenue, costs.purchases, inputs.WorkingCapital)
	p.BalanceSheet = buildBalanceSheet(inputs, assets, p.WorkingCapital, p.CashFlow, debt, p.IncomeStatement)
	completeFunding(&p.WorkingCapital, p.BalanceSheet)

	p.Reconciliation = Reconcile(p.BalanceSheet)
	if !p.Reconciliation.Balanced {
		e.logger.Warn("balance sheet does not reconcile",
			zap.String("op", "finance.Compute"),
			zap.Float64("maxImbalance", p.Reconciliation.MaxImbalance),
			zap.Float64s("imbalance", p.Reconciliation.Imbalance),
		)
	}

	p.Appraisal = e.appraise(inputs, p, costs, assets, debt)
	p.Ratios = buildRatios(p.IncomeStatement, p.DetailedIncomeStatement, p.BalanceSheet, p.WorkingCapital, inputs.TaxRate)

	e.logger.Debug("computed projections",
		zap.String("op", "finance.Compute"),
		zap.Int("years", years),
		zap.Int("loans", len(schedules)),
		zap.Float64("npv", p.Appraisal.NPV),
		zap.Int("paybackYears", p.Appraisal.PaybackYears),
	)

	return p, nil
}

func (e *Engine) buildSchedules(items []LoanItem) ([]*loans.Schedule, error) {
	schedules := make([]*loans.Schedule, 0, len(items))
	for _, item := range items {
		schedule, err := e.schedules.Generate(loans.Loan{
			Name:        item.Source,
			Principal:   item.Principal,
			AnnualRate:  item.AnnualRate,
			TermMonths:  item.TermYears * constants.MonthsPerYear,
			GraceMonths: item.GraceMonths,
			Method:      item.Method,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build amortization schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}

func (e *Engine) appraise(inputs FinancialInputs, p *FinancialProjections, costs costLayers, assets fixedAssets, debt debtService) Appraisal {
	fcf := p.CashFlow.FreeCashFlow
	npv := NPV(inputs.DiscountRate, fcf)

	irr := IRR(fcf)
	if irr.Converged {
		e.logger.Debug("IRR converged",
			zap.String("op", "finance.appraise"),
			zap.String("method", irr.Method),
			zap.Int("iterations", irr.Iterations),
			zap.Float64("rate", irr.Rate),
		)
	} else {
		e.logger.Debug("IRR did not converge",
			zap.String("op", "finance.appraise"),
			zap.Float64s("freeCashFlow", fcf),
		)
	}

	is := p.IncomeStatement
	return Appraisal{
		DiscountRate:           inputs.DiscountRate,
		NPV:                    npv,
		IRR:                    irr,
		PaybackYears:           PaybackYears(p.CashFlow.CumulativeFreeCashFlow),
		DiscountedPaybackYears: DiscountedPaybackYears(fcf, inputs.DiscountRate),
		ProfitabilityIndex:     ProfitabilityIndex(npv, assets.gross),
		BreakEven:              BreakEvenPoint(is.Revenue[0], costs.variable[0], is.FixedCosts[0]),
		DSCR:                   DSCR(p.CashFlow.Operating, debt.total),
	}
}
