package indicators

import (
	"context"
	"fmt"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

// PingEvaluator checks that every active device appears in the latest ping
// batch and was reachable. Ported from original_source/app/indicators/ping.py.
type PingEvaluator struct {
	store      *store.Store[models.PingRecord]
	collection models.CollectionType
}

// NewPingEvaluator builds either the device-ping or client-ping evaluator
// depending on which Store (ping_records keyed by ping_batch vs
// gnms_ping) is supplied.
func NewPingEvaluator(s *store.Store[models.PingRecord], collection models.CollectionType) *PingEvaluator {
	return &PingEvaluator{store: s, collection: collection}
}

// IndicatorType distinguishes the device-reachability evaluator ("ping")
// from the client-reachability one ("client_ping") so both can be
// registered side by side under distinct indicator keys.
func (e *PingEvaluator) IndicatorType() string {
	if e.collection == models.CollectionClientPing {
		return "client_ping"
	}
	return "ping"
}

func (e *PingEvaluator) Evaluate(ctx context.Context, maintenanceID string) (EvaluationResult, error) {
	records, err := e.store.GetLatestPerDevice(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	active, err := activeHostnames(ctx, e.store.DB(), maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}

	byHostname := make(map[string]models.PingRecord, len(records))
	for _, rec := range records {
		byHostname[rec.SwitchHostname] = rec
	}

	result := EvaluationResult{IndicatorType: e.IndicatorType(), MaintenanceID: maintenanceID}

	for hostname := range active {
		result.TotalCount++
		rec, ok := byHostname[hostname]
		switch {
		case !ok:
			result.Failures = append(result.Failures, Detail{
				Device: hostname,
				Reason: "Ping 採集失敗或無數據",
			})
		case !rec.IsReachable:
			var successRate float64
			if rec.SuccessRate != nil {
				successRate = *rec.SuccessRate
			}
			result.Failures = append(result.Failures, Detail{
				Device: hostname,
				Reason: fmt.Sprintf("Ping 失敗: %g%% (預期 >= %g%%)", successRate, pingSuccessRateThreshold),
				Data:   map[string]any{"success_rate": rec.SuccessRate},
			})
		default:
			result.PassCount++
			result.Passes = appendPass(result.Passes, Detail{
				Device: hostname,
				Data:   map[string]any{"success_rate": rec.SuccessRate},
			})
		}
	}

	result.FailCount = result.TotalCount - result.PassCount
	result.PassRates = map[string]float64{"reachable": percent(result.PassCount, result.TotalCount)}
	result.Summary = fmt.Sprintf("連通性檢查: %d/%d 設備可達", result.PassCount, result.TotalCount)
	return result, nil
}

// pingSuccessRateThreshold mirrors original_source/app/indicators/ping.py's
// SUCCESS_RATE_THRESHOLD.
const pingSuccessRateThreshold = 80.0
