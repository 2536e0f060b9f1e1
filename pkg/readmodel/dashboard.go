// Package readmodel implements spec.md §10's Read-Model Services: the
// dashboard summary (all eight indicators run concurrently and merged
// with the Case Engine's stats) and the raw-data query surface backing
// §6.2's `/indicators/{name}/rawdata` endpoint. Grounded on
// original_source/app/services/indicator_service.py's "run every
// evaluator, collect into one dict" shape, generalised from sequential
// awaits to a concurrent fan-out.
package readmodel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/cases"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/indicators"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/metrics"
)

// DashboardSummary is the combined view a maintenance's dashboard page
// renders in one call: every indicator's evaluation alongside the case
// board's aggregate counts.
type DashboardSummary struct {
	MaintenanceID string                                 `json:"maintenance_id"`
	Indicators    map[string]indicators.EvaluationResult `json:"indicators"`
	CaseStats     cases.CaseStats                        `json:"case_stats"`
}

// DashboardService aggregates the indicator evaluators and the Case
// Engine into spec.md §10's dashboard read surface.
type DashboardService struct {
	evaluators []indicators.Evaluator
	cases      *cases.Service
}

func NewDashboardService(evaluators []indicators.Evaluator, caseService *cases.Service) *DashboardService {
	return &DashboardService{evaluators: evaluators, cases: caseService}
}

// GetSummary runs every registered evaluator concurrently (one bad
// evaluator doesn't block the others, mirroring indicator_service.py's
// per-indicator try/except) and merges the results with the case board's
// stats.
func (d *DashboardService) GetSummary(ctx context.Context, maintenanceID string) (DashboardSummary, error) {
	results := make([]indicators.EvaluationResult, len(d.evaluators))
	errs := make([]error, len(d.evaluators))

	group, gctx := errgroup.WithContext(ctx)
	for i, evaluator := range d.evaluators {
		i, evaluator := i, evaluator
		group.Go(func() error {
			result, err := evaluator.Evaluate(gctx, maintenanceID)
			results[i] = result
			errs[i] = err
			return nil // one evaluator's failure must never cancel the others
		})
	}
	if err := group.Wait(); err != nil {
		return DashboardSummary{}, fmt.Errorf("running indicator evaluators: %w", err)
	}

	byType := make(map[string]indicators.EvaluationResult, len(d.evaluators))
	for i, evaluator := range d.evaluators {
		if errs[i] != nil {
			byType[evaluator.IndicatorType()] = indicators.EvaluationResult{
				IndicatorType: evaluator.IndicatorType(),
				MaintenanceID: maintenanceID,
				Summary:       fmt.Sprintf("evaluation failed: %v", errs[i]),
			}
			continue
		}
		byType[evaluator.IndicatorType()] = results[i]
		metrics.IndicatorPassRate.WithLabelValues(evaluator.IndicatorType(), maintenanceID).Set(results[i].PassRatePercent())
	}

	stats, err := d.cases.GetCaseStats(ctx, maintenanceID)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("loading case stats: %w", err)
	}

	return DashboardSummary{
		MaintenanceID: maintenanceID,
		Indicators:    byType,
		CaseStats:     stats,
	}, nil
}
