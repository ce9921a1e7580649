// Package projection defines the result of projecting a scenario and runs the
// engine for every active scenario of a plan.
package projection

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/iwvelando/finance-projection/internal/config"
	"github.com/iwvelando/finance-projection/pkg/finance"
	"github.com/iwvelando/finance-projection/pkg/validation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Projection holds the outcome of one scenario.
type Projection struct {
	Name        string                        `json:"name"`
	RunID       string                        `json:"runId"`
	Inputs      finance.FinancialInputs       `json:"inputs"`
	Projections *finance.FinancialProjections `json:"projections"`
	Warnings    []string                      `json:"warnings,omitempty"`
}

// GetProjections computes every active scenario concurrently. Results keep
// the scenario order of the configuration. The first failing scenario
// cancels the rest and its error is returned.
func GetProjections(ctx context.Context, logger *zap.Logger, conf config.Configuration) ([]Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "projection.GetProjections"),
			)
		}
	}

	scenarios := conf.ActiveScenarios()
	results := make([]Projection, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, scenario := range scenarios {
		i, scenario := i, scenario
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			inputs := conf.Inputs(scenario)
			runID := uuid.NewString()
			scenarioLogger := logger.With(zap.String("scenario", scenario.Name), zap.String("runId", runID))

			projections, err := finance.NewEngine(scenarioLogger).Compute(inputs)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", scenario.Name, err)
			}

			results[i] = Projection{
				Name:        scenario.Name,
				RunID:       runID,
				Inputs:      inputs,
				Projections: projections,
				Warnings:    validation.CheckProjections(projections),
			}
			scenarioLogger.Debug("projected scenario",
				zap.String("op", "projection.GetProjections"),
				zap.Int("years", projections.Horizon()),
				zap.Bool("balanced", projections.Reconciliation.Balanced),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
