package loans

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
)

// closedFormAnnuity mirrors M = P*i(1+i)^n/((1+i)^n-1).
func closedFormAnnuity(principal, annualRate float64, months int) float64 {
	i := annualRate / 12
	power := math.Pow(1+i, float64(months))
	return principal * i * power / (power - 1)
}

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		termMonths int
		expected   float64
		tolerance  float64
	}{
		{
			name:       "Five million at 15% over 36 months",
			principal:  5000000,
			annualRate: 0.15,
			termMonths: 36,
			expected:   closedFormAnnuity(5000000, 0.15, 36),
			tolerance:  1,
		},
		{
			name:       "Five million at 15% rounds to the unit",
			principal:  5000000,
			annualRate: 0.15,
			termMonths: 36,
			expected:   173327,
			tolerance:  1,
		},
		{
			name:       "Zero interest loan",
			principal:  12000,
			annualRate: 0,
			termMonths: 60,
			expected:   200,
			tolerance:  0.001,
		},
		{
			name:       "Invalid term",
			principal:  12000,
			annualRate: 0.05,
			termMonths: 0,
			expected:   0,
			tolerance:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualRate, tt.termMonths)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualRate         float64
		expected           float64
	}{
		{"Standard interest", 200000, 0.06, 1000.0},
		{"Zero interest", 10000, 0, 0},
		{"High interest", 5000, 0.24, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, tt.annualRate)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected Method
		wantErr  bool
	}{
		{"", MethodAnnuity, false},
		{"Annuity", MethodAnnuity, false},
		{"linear", MethodLinear, false},
		{"bullet", MethodInFine, false},
		{"in_fine", MethodInFine, false},
		{"balloon-ish", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			method, err := ParseMethod(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedMethod) {
					t.Fatalf("ParseMethod(%q) error = %v, expected ErrUnsupportedMethod", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) error = %v", tt.input, err)
			}
			if method != tt.expected {
				t.Errorf("ParseMethod(%q) = %s, expected %s", tt.input, method, tt.expected)
			}
		})
	}
}

func TestGenerateRejectsInvalidLoans(t *testing.T) {
	generator := NewScheduleGenerator(nil)

	tests := []struct {
		name    string
		loan    Loan
		wantErr error
	}{
		{"Zero principal", Loan{Name: "a", Principal: 0, AnnualRate: 0.1, TermMonths: 12}, ErrInvalidPrincipal},
		{"Negative principal", Loan{Name: "b", Principal: -1, AnnualRate: 0.1, TermMonths: 12}, ErrInvalidPrincipal},
		{"Zero term", Loan{Name: "c", Principal: 1000, AnnualRate: 0.1, TermMonths: 0}, ErrInvalidTerm},
		{"Negative rate", Loan{Name: "d", Principal: 1000, AnnualRate: -0.1, TermMonths: 12}, ErrInvalidRate},
		{"NaN rate", Loan{Name: "e", Principal: 1000, AnnualRate: math.NaN(), TermMonths: 12}, ErrInvalidRate},
		{"Negative grace", Loan{Name: "f", Principal: 1000, AnnualRate: 0.1, TermMonths: 12, GraceMonths: -1}, ErrInvalidGrace},
		{"Unknown method", Loan{Name: "g", Principal: 1000, AnnualRate: 0.1, TermMonths: 12, Method: "weird"}, ErrUnsupportedMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := generator.Generate(tt.loan)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Generate() error = %v, expected %v", err, tt.wantErr)
			}
			if schedule != nil {
				t.Errorf("Generate() returned a schedule for an invalid loan")
			}
		})
	}
}

func TestGenerateAnnuity(t *testing.T) {
	generator := NewScheduleGenerator(zap.NewNop())

	schedule, err := generator.Generate(Loan{Name: "Equipment", Principal: 10000000, AnnualRate: 0.12, TermMonths: 60})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(schedule.Periods) != 60 {
		t.Fatalf("expected 60 periods, got %d", len(schedule.Periods))
	}
	if schedule.TotalRepaid <= 10000000 || schedule.TotalRepaid >= 15000000 {
		t.Errorf("TotalRepaid = %.2f, expected between 10,000,000 and 15,000,000", schedule.TotalRepaid)
	}
	if math.Abs(schedule.TotalRepaid-schedule.TotalInterest-10000000) > 0.01 {
		t.Errorf("TotalRepaid - TotalInterest = %.2f, expected principal", schedule.TotalRepaid-schedule.TotalInterest)
	}

	expected := closedFormAnnuity(10000000, 0.12, 60)
	for _, period := range schedule.Periods {
		if math.Abs(period.Payment-expected) > 0.01 {
			t.Fatalf("period %d payment %.2f, expected constant %.2f", period.Period, period.Payment, expected)
		}
	}
}

func TestGenerateLinear(t *testing.T) {
	generator := NewScheduleGenerator(zap.NewNop())

	schedule, err := generator.Generate(Loan{Name: "Van", Principal: 1200000, AnnualRate: 0.12, TermMonths: 12, Method: MethodLinear})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for i, period := range schedule.Periods {
		if math.Abs(period.Principal-100000) > 0.01 {
			t.Errorf("period %d principal = %.2f, expected 100000", period.Period, period.Principal)
		}
		if i > 0 && period.Payment >= schedule.Periods[i-1].Payment {
			t.Errorf("linear payments should decline: period %d %.2f >= %.2f",
				period.Period, period.Payment, schedule.Periods[i-1].Payment)
		}
	}
	if math.Abs(schedule.Periods[0].Interest-12000) > 0.01 {
		t.Errorf("first interest = %.2f, expected 12000", schedule.Periods[0].Interest)
	}
}

func TestGenerateInFine(t *testing.T) {
	generator := NewScheduleGenerator(zap.NewNop())

	schedule, err := generator.Generate(Loan{Name: "Bridge", Principal: 600000, AnnualRate: 0.06, TermMonths: 24, Method: MethodInFine})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, period := range schedule.Periods[:23] {
		if period.Principal != 0 {
			t.Errorf("period %d principal = %.2f, expected 0", period.Period, period.Principal)
		}
		if math.Abs(period.Interest-3000) > 0.001 {
			t.Errorf("period %d interest = %.2f, expected 3000", period.Period, period.Interest)
		}
	}
	last := schedule.Periods[23]
	if last.Principal != 600000 || last.BalanceAfter != 0 {
		t.Errorf("final period principal = %.2f balance = %.2f, expected 600000 and 0", last.Principal, last.BalanceAfter)
	}
}

func TestGenerateGracePeriod(t *testing.T) {
	generator := NewScheduleGenerator(zap.NewNop())

	schedule, err := generator.Generate(Loan{Name: "Startup", Principal: 1000000, AnnualRate: 0.12, TermMonths: 36, GraceMonths: 6})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, period := range schedule.Periods[:6] {
		if period.Principal != 0 {
			t.Errorf("grace period %d principal = %.2f, expected 0", period.Period, period.Principal)
		}
		if math.Abs(period.Interest-10000) > 0.001 {
			t.Errorf("grace period %d interest = %.2f, expected interest on the original balance", period.Period, period.Interest)
		}
		if period.BalanceAfter != 1000000 {
			t.Errorf("grace period %d balance = %.2f, expected unchanged", period.Period, period.BalanceAfter)
		}
	}

	expected := closedFormAnnuity(1000000, 0.12, 30)
	if math.Abs(schedule.Periods[6].Payment-expected) > 0.01 {
		t.Errorf("first amortizing payment = %.2f, expected %.2f", schedule.Periods[6].Payment, expected)
	}
	if math.Abs(schedule.MonthlyPayment-expected) > 0.01 {
		t.Errorf("MonthlyPayment = %.2f, expected %.2f", schedule.MonthlyPayment, expected)
	}
	if schedule.Periods[35].BalanceAfter != 0 {
		t.Errorf("loan not repaid at maturity: %.2f", schedule.Periods[35].BalanceAfter)
	}
}

func TestGenerateGraceCoveringTermDegeneratesToInFine(t *testing.T) {
	generator := NewScheduleGenerator(zap.NewNop())

	schedule, err := generator.Generate(Loan{Name: "Deferred", Principal: 500000, AnnualRate: 0.1, TermMonths: 12, GraceMonths: 12, Method: MethodLinear})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if schedule.Method != MethodInFine {
		t.Errorf("Method = %s, expected %s", schedule.Method, MethodInFine)
	}
	if schedule.Periods[11].Principal != 500000 {
		t.Errorf("final principal = %.2f, expected 500000", schedule.Periods[11].Principal)
	}
}

func TestYearSummary(t *testing.T) {
	generator := NewScheduleGenerator(zap.NewNop())

	schedule, err := generator.Generate(Loan{Name: "Two years", Principal: 240000, AnnualRate: 0, TermMonths: 24, Method: MethodLinear})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tests := []struct {
		year      int
		principal float64
		closing   float64
	}{
		{-1, 0, 240000},
		{0, 120000, 120000},
		{1, 120000, 0},
		{2, 0, 0},
	}

	for _, tt := range tests {
		summary := schedule.YearSummary(tt.year)
		if math.Abs(summary.Principal-tt.principal) > 0.001 {
			t.Errorf("YearSummary(%d).Principal = %.2f, expected %.2f", tt.year, summary.Principal, tt.principal)
		}
		if math.Abs(summary.ClosingBalance-tt.closing) > 0.001 {
			t.Errorf("YearSummary(%d).ClosingBalance = %.2f, expected %.2f", tt.year, summary.ClosingBalance, tt.closing)
		}
		if summary.DebtService != summary.Principal+summary.Interest {
			t.Errorf("YearSummary(%d).DebtService inconsistent", tt.year)
		}
	}

	if got := schedule.BalanceAfter(0); got != 240000 {
		t.Errorf("BalanceAfter(0) = %.2f, expected 240000", got)
	}
}
