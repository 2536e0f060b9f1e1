package indicators

import (
	"context"
	"fmt"
	"strings"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

// statusUnit names one fan or power-supply row so FanEvaluator/PowerEvaluator
// can share a single generic grouping+healthy-set check (spec.md §4.5:
// "a device passes iff all its fan (or PSU) rows pass").
type statusUnit struct {
	hostname string
	id       string
	status   string
}

func evaluateDeviceStatuses(hostname string, units []statusUnit, healthy map[string]bool, noneMessage, unitLabel string) (detail Detail, passed bool) {
	if len(units) == 0 {
		return Detail{Device: hostname, Reason: noneMessage}, false
	}
	var issues []string
	for _, u := range units {
		normalized := strings.ToLower(strings.TrimSpace(u.status))
		if !healthy[normalized] {
			issues = append(issues, fmt.Sprintf("%s %s: 狀態異常 (%s)", unitLabel, u.id, u.status))
		}
	}
	if len(issues) == 0 {
		return Detail{Device: hostname}, true
	}
	return Detail{Device: hostname, Reason: strings.Join(issues, " | ")}, false
}

// FanEvaluator ports original_source/app/indicators/fan.py.
type FanEvaluator struct {
	store      *store.Store[models.FanRecord]
	thresholds *ThresholdService
}

func NewFanEvaluator(s *store.Store[models.FanRecord], t *ThresholdService) *FanEvaluator {
	return &FanEvaluator{store: s, thresholds: t}
}

func (e *FanEvaluator) IndicatorType() string { return "fan" }

func (e *FanEvaluator) Evaluate(ctx context.Context, maintenanceID string) (EvaluationResult, error) {
	records, err := e.store.GetLatestPerDevice(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	snap, err := e.thresholds.Snapshot(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	active, err := activeHostnames(ctx, e.store.DB(), maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}

	byDevice := make(map[string][]statusUnit)
	for _, rec := range records {
		if !active[rec.SwitchHostname] {
			continue
		}
		if _, seen := byDevice[rec.SwitchHostname]; !seen {
			byDevice[rec.SwitchHostname] = nil
		}
		byDevice[rec.SwitchHostname] = append(byDevice[rec.SwitchHostname], statusUnit{hostname: rec.SwitchHostname, id: rec.FanID, status: rec.Status})
	}
	for hostname := range active {
		if _, ok := byDevice[hostname]; !ok {
			byDevice[hostname] = nil
		}
	}

	healthy := snap.HealthyStatuses()
	result := EvaluationResult{IndicatorType: e.IndicatorType(), MaintenanceID: maintenanceID}
	for hostname, units := range byDevice {
		result.TotalCount++
		detail, passed := evaluateDeviceStatuses(hostname, units, healthy, "未檢測到風扇", "Fan")
		if passed {
			result.PassCount++
			result.Passes = appendPass(result.Passes, detail)
		} else {
			result.Failures = append(result.Failures, detail)
		}
	}
	result.FailCount = result.TotalCount - result.PassCount
	result.PassRates = map[string]float64{"healthy": percent(result.PassCount, result.TotalCount)}
	result.Summary = fmt.Sprintf("風扇檢查: %d/%d 設備正常", result.PassCount, result.TotalCount)
	return result, nil
}

// PowerEvaluator ports original_source/app/indicators/power.py (same shape
// as fan.py, distinct table).
type PowerEvaluator struct {
	store      *store.Store[models.PowerRecord]
	thresholds *ThresholdService
}

func NewPowerEvaluator(s *store.Store[models.PowerRecord], t *ThresholdService) *PowerEvaluator {
	return &PowerEvaluator{store: s, thresholds: t}
}

func (e *PowerEvaluator) IndicatorType() string { return "power" }

func (e *PowerEvaluator) Evaluate(ctx context.Context, maintenanceID string) (EvaluationResult, error) {
	records, err := e.store.GetLatestPerDevice(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	snap, err := e.thresholds.Snapshot(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	active, err := activeHostnames(ctx, e.store.DB(), maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}

	byDevice := make(map[string][]statusUnit)
	for _, rec := range records {
		if !active[rec.SwitchHostname] {
			continue
		}
		byDevice[rec.SwitchHostname] = append(byDevice[rec.SwitchHostname], statusUnit{hostname: rec.SwitchHostname, id: rec.PsID, status: rec.Status})
	}
	for hostname := range active {
		if _, ok := byDevice[hostname]; !ok {
			byDevice[hostname] = nil
		}
	}

	healthy := snap.HealthyStatuses()
	result := EvaluationResult{IndicatorType: e.IndicatorType(), MaintenanceID: maintenanceID}
	for hostname, units := range byDevice {
		result.TotalCount++
		detail, passed := evaluateDeviceStatuses(hostname, units, healthy, "未檢測到電源供應器", "PS")
		if passed {
			result.PassCount++
			result.Passes = appendPass(result.Passes, detail)
		} else {
			result.Failures = append(result.Failures, detail)
		}
	}
	result.FailCount = result.TotalCount - result.PassCount
	result.PassRates = map[string]float64{"healthy": percent(result.PassCount, result.TotalCount)}
	result.Summary = fmt.Sprintf("電源檢查: %d/%d 設備正常", result.PassCount, result.TotalCount)
	return result, nil
}
