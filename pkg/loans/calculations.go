// Package loans provides loan amortization schedule generation.
package loans

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-projection/pkg/constants"
	"go.uber.org/zap"
)

// Method selects how principal is repaid over the term.
type Method string

const (
	// MethodAnnuity repays with a constant monthly payment.
	MethodAnnuity Method = "annuity"
	// MethodLinear repays a constant share of principal every month.
	MethodLinear Method = "linear"
	// MethodInFine pays interest only and the whole principal in the final month.
	MethodInFine Method = "in_fine"
)

// ParseMethod maps a configuration string onto a Method. An empty string
// selects the constant annuity.
func ParseMethod(value string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "annuity", "constant_annuity", "constant":
		return MethodAnnuity, nil
	case "linear", "equal_principal":
		return MethodLinear, nil
	case "in_fine", "infine", "bullet", "interest_only":
		return MethodInFine, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, value)
	}
}

// Loan holds the parameters needed to build a schedule. AnnualRate is a
// decimal (0.12 = 12%).
type Loan struct {
	Name        string
	Principal   float64
	AnnualRate  float64
	TermMonths  int
	GraceMonths int
	Method      Method
}

// Period holds the values for a given monthly payment.
type Period struct {
	Period       int     `json:"period"`
	Principal    float64 `json:"principal"`
	Interest     float64 `json:"interest"`
	Payment      float64 `json:"payment"`
	BalanceAfter float64 `json:"balanceAfter"`
}

// Schedule is the full monthly amortization schedule of one loan.
type Schedule struct {
	Name           string   `json:"name"`
	Method         Method   `json:"method"`
	Principal      float64  `json:"principal"`
	AnnualRate     float64  `json:"annualRate"`
	GraceMonths    int      `json:"graceMonths"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	TotalInterest  float64  `json:"totalInterest"`
	TotalRepaid    float64  `json:"totalRepaid"`
	Periods        []Period `json:"periods"`
}

// YearSummary aggregates one projection year of a schedule.
type YearSummary struct {
	Principal      float64
	Interest       float64
	DebtService    float64
	ClosingBalance float64
}

// CalculateMonthlyPayment calculates the constant monthly payment for a loan
// using the standard annuity formula.
func CalculateMonthlyPayment(principal, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualRate == 0 {
		return principal / float64(termMonths)
	}

	periodicRate := annualRate / constants.MonthsPerYear
	power := math.Pow(1+periodicRate, float64(termMonths))
	return principal * periodicRate * power / (power - 1)
}

// CalculateInterestPayment calculates the interest due for one month.
func CalculateInterestPayment(remainingPrincipal, annualRate float64) float64 {
	return remainingPrincipal * annualRate / constants.MonthsPerYear
}

// Validate rejects loan definitions that cannot produce a schedule.
func (l Loan) Validate() error {
	if !(l.Principal > 0) {
		return fmt.Errorf("%s: %w", l.Name, ErrInvalidPrincipal)
	}
	if l.TermMonths <= 0 {
		return fmt.Errorf("%s: %w", l.Name, ErrInvalidTerm)
	}
	if math.IsNaN(l.AnnualRate) || math.IsInf(l.AnnualRate, 0) || l.AnnualRate < 0 {
		return fmt.Errorf("%s: %w", l.Name, ErrInvalidRate)
	}
	if l.GraceMonths < 0 {
		return fmt.Errorf("%s: %w", l.Name, ErrInvalidGrace)
	}
	if _, err := ParseMethod(string(l.Method)); err != nil {
		return fmt.Errorf("%s: %w", l.Name, err)
	}
	return nil
}

// ScheduleGenerator builds amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate creates the complete monthly schedule for a loan.
//
// During the first GraceMonths the principal is deferred while interest is
// paid on the original balance; the principal is then amortized over the
// remaining months. A grace period covering the whole term turns the loan
// into an in-fine loan.
func (g *ScheduleGenerator) Generate(loan Loan) (*Schedule, error) {
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	method, _ := ParseMethod(string(loan.Method))

	n := loan.TermMonths
	grace := loan.GraceMonths
	if grace >= n && method != MethodInFine {
		g.logger.Debug(fmt.Sprintf("grace period of %d months covers the %d month term of %s, repaying in fine",
			grace, n, loan.Name),
			zap.String("op", "loans.Generate"),
		)
		method = MethodInFine
	}
	if method == MethodInFine {
		grace = 0
	}

	amortizingMonths := n - grace
	rate := loan.AnnualRate
	annuity := CalculateMonthlyPayment(loan.Principal, rate, amortizingMonths)
	linearPrincipal := loan.Principal / float64(amortizingMonths)

	schedule := &Schedule{
		Name:        loan.Name,
		Method:      method,
		Principal:   loan.Principal,
		AnnualRate:  rate,
		GraceMonths: grace,
		Periods:     make([]Period, 0, n),
	}

	balance := loan.Principal
	for p := 1; p <= n; p++ {
		interest := CalculateInterestPayment(balance, rate)

		var principal float64
		switch {
		case p == n:
			principal = balance
		case p <= grace:
			principal = 0
		case method == MethodAnnuity:
			principal = annuity - interest
		case method == MethodLinear:
			principal = linearPrincipal
		default:
			principal = 0
		}

		balance -= principal
		if p == n {
			// Avoid carrying machine error past maturity.
			balance = 0
		}

		period := Period{
			Period:       p,
			Principal:    principal,
			Interest:     interest,
			Payment:      principal + interest,
			BalanceAfter: balance,
		}
		schedule.Periods = append(schedule.Periods, period)
		schedule.TotalInterest += interest
		schedule.TotalRepaid += period.Payment
	}

	switch method {
	case MethodAnnuity:
		schedule.MonthlyPayment = annuity
	case MethodLinear:
		schedule.MonthlyPayment = linearPrincipal + CalculateInterestPayment(loan.Principal, rate)
	default:
		schedule.MonthlyPayment = CalculateInterestPayment(loan.Principal, rate)
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.Generate"),
		zap.String("loan", loan.Name),
		zap.String("method", string(method)),
		zap.Int("periods", len(schedule.Periods)),
		zap.Float64("monthlyPayment", schedule.MonthlyPayment),
		zap.Float64("totalInterest", schedule.TotalInterest),
	)

	return schedule, nil
}

// BalanceAfter returns the outstanding principal once the given number of
// periods has been paid. Zero periods returns the original principal.
func (s *Schedule) BalanceAfter(periods int) float64 {
	if periods <= 0 {
		return s.Principal
	}
	if periods >= len(s.Periods) {
		return 0
	}
	return s.Periods[periods-1].BalanceAfter
}

// YearSummary sums the principal and interest paid during a 0-based year
// counted from the first payment.
func (s *Schedule) YearSummary(year int) YearSummary {
	var summary YearSummary
	if year < 0 {
		summary.ClosingBalance = s.Principal
		return summary
	}
	start := year * constants.MonthsPerYear
	end := start + constants.MonthsPerYear
	for i := start; i < end && i < len(s.Periods); i++ {
		summary.Principal += s.Periods[i].Principal
		summary.Interest += s.Periods[i].Interest
	}
	summary.DebtService = summary.Principal + summary.Interest
	summary.ClosingBalance = s.BalanceAfter(end)
	return summary
}
