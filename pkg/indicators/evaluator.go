package indicators

import "context"

// Evaluator is the capability every indicator exposes (spec.md §4.5).
type Evaluator interface {
	IndicatorType() string
	Evaluate(ctx context.Context, maintenanceID string) (EvaluationResult, error)
}
