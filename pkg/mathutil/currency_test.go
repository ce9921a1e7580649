package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round up", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundUnits(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Annuity payment", 173326.6425, 173327},
		{"Half rounds away from zero", 2.5, 3},
		{"Negative half", -2.5, -3},
		{"NaN becomes zero", math.NaN(), 0},
		{"Inf becomes zero", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundUnits(tt.input); got != tt.expected {
				t.Errorf("RoundUnits(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Just below negative tolerance", -0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Exactly negative tolerance", -0.01, true},
		{"Large positive", 100.0, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsPositiveAndNegative(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		positive bool
		negative bool
	}{
		{"Large positive", 100.0, true, false},
		{"Exactly tolerance", 0.01, false, false},
		{"Zero", 0.0, false, false},
		{"Exactly negative tolerance", -0.01, false, false},
		{"Large negative", -100.0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPositive(tt.input); got != tt.positive {
				t.Errorf("IsPositive(%v) = %v, expected %v", tt.input, got, tt.positive)
			}
			if got := IsNegative(tt.input); got != tt.negative {
				t.Errorf("IsNegative(%v) = %v, expected %v", tt.input, got, tt.negative)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Exactly equal", 1.0, 1.0, 0.1, true},
		{"Within tolerance", 1.0, 1.05, 0.1, true},
		{"Outside tolerance", 1.0, 1.15, 0.1, false},
		{"Zero tolerance exact match", 1.0, 1.0, 0.0, true},
		{"Zero tolerance no match", 1.0, 1.001, 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		expected    float64
	}{
		{"Regular division", 10, 4, 2.5},
		{"Zero denominator", 10, 0, 0},
		{"Zero over zero", 0, 0, 0},
		{"Negative denominator", 10, -2, -5},
		{"Overflow to Inf", math.MaxFloat64, 1e-300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeDiv(tt.numerator, tt.denominator)
			if math.IsNaN(result) || math.IsInf(result, 0) {
				t.Fatalf("SafeDiv(%v, %v) returned non-finite %v", tt.numerator, tt.denominator, result)
			}
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("SafeDiv(%v, %v) = %v, expected %v", tt.numerator, tt.denominator, result, tt.expected)
			}
		})
	}
}

func TestSafePercent(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"25% of 200", 50.0, 200.0, 25.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Negative total", 50.0, -100.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafePercent(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("SafePercent(%v, %v) = %v, expected %v", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestGrowthFactor(t *testing.T) {
	if got := GrowthFactor(0.10, 2); math.Abs(got-1.21) > 1e-12 {
		t.Errorf("GrowthFactor(0.10, 2) = %v, expected 1.21", got)
	}
	if got := GrowthFactor(-0.5, 1); got != 0.5 {
		t.Errorf("GrowthFactor(-0.5, 1) = %v, expected 0.5", got)
	}
	if got := GrowthFactor(0.3, 0); got != 1 {
		t.Errorf("GrowthFactor(0.3, 0) = %v, expected 1", got)
	}
	for years := 1; years <= 4; years++ {
		if got := GrowthFactor(-1.5, years); got != 0 {
			t.Errorf("GrowthFactor(-1.5, %d) = %v, expected 0", years, got)
		}
	}
}

func TestSumMeanCumulative(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	if got := Sum(values); got != 10 {
		t.Errorf("Sum() = %v, expected 10", got)
	}
	if got := Mean(values); got != 2.5 {
		t.Errorf("Mean() = %v, expected 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, expected 0", got)
	}
	cum := Cumulative(values)
	expected := []float64{1, 3, 6, 10}
	for i := range expected {
		if cum[i] != expected[i] {
			t.Errorf("Cumulative()[%d] = %v, expected %v", i, cum[i], expected[i])
		}
	}
}
