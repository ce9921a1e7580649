package finance

import (
	"math"

	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/mathutil"
)

const (
	irrMethodNewton    = "newton"
	irrMethodBisection = "bisection"

	bisectionMaxIterations = 200
)

// NPV discounts flows at rate, year 0 undiscounted.
func NPV(rate float64, flows []float64) float64 {
	total := 0.0
	for y, cf := range flows {
		total += cf / math.Pow(1+rate, float64(y))
	}
	return total
}

func npvDerivative(rate float64, flows []float64) float64 {
	total := 0.0
	for y, cf := range flows {
		if y == 0 {
			continue
		}
		total -= float64(y) * cf / math.Pow(1+rate, float64(y+1))
	}
	return total
}

// irrScale is the magnitude the NPV tolerance is measured against: the sum
// of the outflows, at least one currency unit.
func irrScale(flows []float64) float64 {
	outlay := 0.0
	for _, cf := range flows {
		if cf < 0 {
			outlay -= cf
		}
	}
	return math.Max(1, outlay)
}

func hasSignChange(flows []float64) bool {
	var pos, neg bool
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		} else if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

func clampRate(rate float64) float64 {
	return math.Min(constants.IRRMaxRate, math.Max(constants.IRRMinRate, rate))
}

// IRR finds the rate at which the NPV of flows is zero. Newton-Raphson runs
// first from the initial guess with candidates clamped to the allowed range;
// if it stalls, bisection is tried over the whole range when the NPV changes
// sign across it. Flows without both an inflow and an outflow have no IRR.
func IRR(flows []float64) IRRResult {
	if !hasSignChange(flows) {
		return IRRResult{}
	}
	tolerance := constants.IRRTolerance * irrScale(flows)

	rate := constants.IRRInitialGuess
	for i := 1; i <= constants.IRRMaxIterations; i++ {
		value := NPV(rate, flows)
		if math.Abs(value) <= tolerance {
			return IRRResult{Rate: rate, Converged: true, Iterations: i, Method: irrMethodNewton}
		}
		slope := npvDerivative(rate, flows)
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			break
		}
		next := clampRate(rate - value/slope)
		if math.IsNaN(next) || next == rate {
			break
		}
		rate = next
	}

	return bisectIRR(flows, tolerance)
}

func bisectIRR(flows []float64, tolerance float64) IRRResult {
	lo, hi := constants.IRRMinRate, constants.IRRMaxRate
	fLo, fHi := NPV(lo, flows), NPV(hi, flows)
	if math.IsNaN(fLo) || math.IsNaN(fHi) || fLo*fHi > 0 {
		return IRRResult{}
	}

	for i := 1; i <= bisectionMaxIterations; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, flows)
		if math.Abs(fMid) <= tolerance || (hi-lo)/2 < 1e-12 {
			return IRRResult{Rate: mid, Converged: true, Iterations: i, Method: irrMethodBisection}
		}
		if (fMid < 0) == (fLo < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return IRRResult{Iterations: bisectionMaxIterations}
}

// PaybackYears returns the 1-based year in which the cumulative series first
// turns non-negative, or NotReached.
func PaybackYears(cumulative []float64) int {
	for y, c := range cumulative {
		if c >= 0 {
			return y + 1
		}
	}
	return constants.NotReached
}

// DiscountedPaybackYears is PaybackYears over the discounted flows.
func DiscountedPaybackYears(flows []float64, rate float64) int {
	discounted := make([]float64, len(flows))
	for y, cf := range flows {
		discounted[y] = cf / math.Pow(1+rate, float64(y))
	}
	return PaybackYears(mathutil.Cumulative(discounted))
}

// ProfitabilityIndex is the present value returned per unit invested, 0
// without investment.
func ProfitabilityIndex(npv, outlay float64) float64 {
	if !mathutil.IsPositive(outlay) {
		return 0
	}
	return mathutil.SafeDiv(npv+outlay, outlay)
}

// BreakEvenPoint computes the break-even revenue and month from one year of
// revenue, variable cost and fixed cost.
func BreakEvenPoint(revenue, variable, fixed float64) BreakEven {
	be := BreakEven{
		ContributionMarginRate: mathutil.SafeDiv(revenue-variable, revenue),
		Revenue:                constants.NotReached,
		Months:                 constants.NotReached,
	}
	if be.ContributionMarginRate > 0 {
		be.Revenue = fixed / be.ContributionMarginRate
	}
	if mathutil.IsPositive(revenue - variable - fixed) {
		be.Months = constants.MonthsPerYear * fixed / (revenue - variable)
	}
	return be
}

// DSCR divides operating cash flow by debt service for every year. Years
// without debt service report 0.
func DSCR(operating, debtService []float64) []float64 {
	out := make([]float64, len(operating))
	for y := range operating {
		out[y] = mathutil.SafeDiv(operating[y], debtService[y])
	}
	return out
}
