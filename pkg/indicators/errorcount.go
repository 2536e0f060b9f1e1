package indicators

import (
	"context"
	"fmt"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

// ErrorCountEvaluator flags any interface whose CRC error counter grew
// between the last two change-point batches. Ported from
// original_source/app/indicators/error_count.py.
type ErrorCountEvaluator struct {
	store *store.Store[models.InterfaceErrorRecord]
}

func NewErrorCountEvaluator(s *store.Store[models.InterfaceErrorRecord]) *ErrorCountEvaluator {
	return &ErrorCountEvaluator{store: s}
}

func (e *ErrorCountEvaluator) IndicatorType() string { return "interface_error" }

func (e *ErrorCountEvaluator) Evaluate(ctx context.Context, maintenanceID string) (EvaluationResult, error) {
	records, err := e.store.GetLatestPerDevice(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	active, err := activeHostnames(ctx, e.store.DB(), maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}

	byHostname := make(map[string][]models.InterfaceErrorRecord)
	for _, rec := range records {
		if !active[rec.SwitchHostname] {
			continue
		}
		byHostname[rec.SwitchHostname] = append(byHostname[rec.SwitchHostname], rec)
	}

	result := EvaluationResult{IndicatorType: e.IndicatorType(), MaintenanceID: maintenanceID}

	for hostname, current := range byHostname {
		previous, err := e.store.GetPreviousBatchRows(ctx, maintenanceID, hostname)
		if err != nil {
			return EvaluationResult{}, err
		}
		previousByInterface := make(map[string]int64, len(previous))
		for _, rec := range previous {
			previousByInterface[rec.InterfaceName] = rec.CrcErrors
		}

		for _, rec := range current {
			result.TotalCount++
			detail := Detail{Device: hostname, Interface: rec.InterfaceName}

			prevCount, hadPrevious := previousByInterface[rec.InterfaceName]
			switch {
			case !hadPrevious:
				detail.Reason = "首次採集，無歷史比對"
				detail.Data = map[string]any{"current": rec.CrcErrors}
				result.PassCount++
				result.Passes = appendPass(result.Passes, detail)
			case rec.CrcErrors > prevCount:
				detail.Reason = fmt.Sprintf("CRC 增長 +%d (%d → %d)", rec.CrcErrors-prevCount, prevCount, rec.CrcErrors)
				detail.Data = map[string]any{"previous": prevCount, "current": rec.CrcErrors}
				result.Failures = append(result.Failures, detail)
			case rec.CrcErrors == prevCount:
				detail.Reason = "計數器未增長"
				detail.Data = map[string]any{"previous": prevCount, "current": rec.CrcErrors}
				result.PassCount++
				result.Passes = appendPass(result.Passes, detail)
			default:
				detail.Reason = "計數器已重置"
				detail.Data = map[string]any{"previous": prevCount, "current": rec.CrcErrors}
				result.PassCount++
				result.Passes = appendPass(result.Passes, detail)
			}
		}
	}

	result.FailCount = result.TotalCount - result.PassCount
	result.PassRates = map[string]float64{"no_growth": percent(result.PassCount, result.TotalCount)}
	if result.TotalCount == 0 {
		result.Summary = "無設備資料"
	} else {
		result.Summary = fmt.Sprintf("錯誤計數: %d/%d 介面通過", result.PassCount, result.TotalCount)
	}
	return result, nil
}
