package projection

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/iwvelando/finance-projection/internal/config"
	"github.com/iwvelando/finance-projection/pkg/finance"
	"github.com/iwvelando/finance-projection/pkg/loans"
	"go.uber.org/zap"
)

func loadPlan(t *testing.T) config.Configuration {
	t.Helper()
	conf, err := config.LoadConfiguration(filepath.Join("..", "config", "testdata", "plan.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return *conf
}

func TestGetProjections(t *testing.T) {
	results, err := GetProjections(context.Background(), zap.NewNop(), loadPlan(t))
	if err != nil {
		t.Fatalf("GetProjections() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 active scenarios, got %d", len(results))
	}
	if results[0].Name != "Base" || results[1].Name != "Financed" {
		t.Errorf("results out of order: %s, %s", results[0].Name, results[1].Name)
	}

	seen := map[string]bool{}
	for _, r := range results {
		if _, err := uuid.Parse(r.RunID); err != nil {
			t.Errorf("%s: RunID %q is not a UUID", r.Name, r.RunID)
		}
		if seen[r.RunID] {
			t.Errorf("duplicate RunID %s", r.RunID)
		}
		seen[r.RunID] = true

		if r.Projections == nil {
			t.Fatalf("%s: nil projections", r.Name)
		}
		if !r.Projections.Reconciliation.Balanced {
			t.Errorf("%s: balance sheet does not reconcile", r.Name)
		}
	}

	if got := results[1].Projections.Horizon(); got != 6 {
		t.Errorf("Financed horizon = %d, expected 6", got)
	}
	if len(results[1].Projections.Schedules) != 1 {
		t.Errorf("Financed should carry one loan schedule")
	}
	if results[1].Inputs.TaxRate != 0 {
		t.Errorf("Financed inputs should carry the tax override")
	}
}

func TestGetProjectionsNilLogger(t *testing.T) {
	if _, err := GetProjections(context.Background(), nil, loadPlan(t)); err != nil {
		t.Fatalf("GetProjections() error = %v", err)
	}
}

func TestGetProjectionsNoActiveScenarios(t *testing.T) {
	conf := config.Configuration{Scenarios: []config.Scenario{{Name: "Off"}}}
	results, err := GetProjections(context.Background(), zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("GetProjections() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestGetProjectionsPropagatesErrors(t *testing.T) {
	conf := loadPlan(t)
	conf.Scenarios = append(conf.Scenarios, config.Scenario{
		Name:   "Bad loan",
		Active: true,
		Loans:  []finance.LoanItem{{Source: "Shark", Principal: 1000, AnnualRate: 0.2, TermYears: 0}},
	})

	results, err := GetProjections(context.Background(), zap.NewNop(), conf)
	if !errors.Is(err, loans.ErrInvalidTerm) {
		t.Fatalf("GetProjections() error = %v, expected ErrInvalidTerm", err)
	}
	if results != nil {
		t.Errorf("expected nil results on error")
	}
}

func TestGetProjectionsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GetProjections(ctx, zap.NewNop(), loadPlan(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("GetProjections() error = %v, expected context.Canceled", err)
	}
}
