package server

import (
	"testing"

	"github.com/iwvelando/finance-projection/internal/projection"
	"github.com/iwvelando/finance-projection/pkg/finance"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveProjections(t *testing.T) {
	healthy := &finance.FinancialProjections{
		Reconciliation: finance.Reconciliation{Balanced: true},
		Appraisal:      finance.Appraisal{IRR: finance.IRRResult{Rate: 0.1, Converged: true}},
	}
	unbalanced := &finance.FinancialProjections{
		Reconciliation: finance.Reconciliation{Imbalance: []float64{2}, MaxImbalance: 2, Balanced: false},
		Appraisal:      finance.Appraisal{IRR: finance.IRRResult{Rate: 0.1, Converged: true}},
	}
	stuck := &finance.FinancialProjections{
		Reconciliation: finance.Reconciliation{Balanced: true},
	}

	tests := []struct {
		name               string
		results            []projection.Projection
		expectedScenarios  float64
		expectedUnbalanced float64
		expectedIRR        float64
	}{
		{
			name:              "Healthy scenario",
			results:           []projection.Projection{{Name: "Base", Projections: healthy}},
			expectedScenarios: 1,
		},
		{
			name:               "Unbalanced sheet",
			results:            []projection.Projection{{Name: "Base", Projections: healthy}, {Name: "Off", Projections: unbalanced}},
			expectedScenarios:  2,
			expectedUnbalanced: 1,
		},
		{
			name:              "IRR not converged",
			results:           []projection.Projection{{Name: "Stuck", Projections: stuck}},
			expectedScenarios: 1,
			expectedIRR:       1,
		},
		{
			name:              "Missing projections",
			results:           []projection.Projection{{Name: "Empty"}},
			expectedScenarios: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics()
			m.ObserveProjections(tt.results)

			if got := promtest.ToFloat64(m.scenarios); got != tt.expectedScenarios {
				t.Errorf("scenarios = %v, expected %v", got, tt.expectedScenarios)
			}
			if got := promtest.ToFloat64(m.unbalanced); got != tt.expectedUnbalanced {
				t.Errorf("unbalanced = %v, expected %v", got, tt.expectedUnbalanced)
			}
			if got := promtest.ToFloat64(m.irrUnconverged); got != tt.expectedIRR {
				t.Errorf("irr unconverged = %v, expected %v", got, tt.expectedIRR)
			}
		})
	}
}

func TestSetCacheEntries(t *testing.T) {
	m := NewMetrics()
	m.SetCacheEntries(3)
	m.SetCacheEntries(1)
	if got := promtest.ToFloat64(m.cacheEntries); got != 1 {
		t.Errorf("cache entries = %v, expected 1", got)
	}
}
