package indicators

import (
	"context"
	"fmt"
	"strings"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

// TransceiverEvaluator checks every optical channel's Tx/Rx power,
// temperature, and voltage against per-maintenance thresholds. Ported from
// original_source/app/indicators/transceiver.py.
type TransceiverEvaluator struct {
	store      *store.Store[models.TransceiverRecord]
	thresholds *ThresholdService
}

func NewTransceiverEvaluator(s *store.Store[models.TransceiverRecord], t *ThresholdService) *TransceiverEvaluator {
	return &TransceiverEvaluator{store: s, thresholds: t}
}

func (e *TransceiverEvaluator) IndicatorType() string { return "transceiver" }

func (e *TransceiverEvaluator) Evaluate(ctx context.Context, maintenanceID string) (EvaluationResult, error) {
	snap, err := e.thresholds.Snapshot(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	th := snap.Transceiver()

	records, err := e.store.GetLatestPerDevice(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	active, err := activeHostnames(ctx, e.store.DB(), maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}

	result := EvaluationResult{IndicatorType: e.IndicatorType(), MaintenanceID: maintenanceID}
	var txReported, txPass, rxReported, rxPass, tempReported, tempPass, voltReported, voltPass int

	for _, rec := range records {
		if !active[rec.SwitchHostname] {
			continue
		}
		result.TotalCount++

		if rec.TxPower != nil {
			txReported++
			if inRange(*rec.TxPower, th.TxPowerMin, th.TxPowerMax) {
				txPass++
			}
		}
		if rec.RxPower != nil {
			rxReported++
			if inRange(*rec.RxPower, th.RxPowerMin, th.RxPowerMax) {
				rxPass++
			}
		}
		if rec.Temperature != nil {
			tempReported++
			if inRange(*rec.Temperature, th.TemperatureMin, th.TemperatureMax) {
				tempPass++
			}
		}
		if rec.Voltage != nil {
			voltReported++
			if inRange(*rec.Voltage, th.VoltageMin, th.VoltageMax) {
				voltPass++
			}
		}

		reason, passed := evaluateTransceiverRecord(rec, th)
		detail := Detail{
			Device:    rec.SwitchHostname,
			Interface: rec.InterfaceName,
			Reason:    reason,
			Data:      transceiverData(rec),
		}
		if passed {
			result.PassCount++
			result.Passes = appendPass(result.Passes, detail)
		} else {
			result.Failures = append(result.Failures, detail)
		}
	}

	result.FailCount = result.TotalCount - result.PassCount
	result.PassRates = map[string]float64{
		"tx_power_ok":    percent(txPass, txReported),
		"rx_power_ok":    percent(rxPass, rxReported),
		"temperature_ok": percent(tempPass, tempReported),
		"voltage_ok":     percent(voltPass, voltReported),
	}
	result.Summary = fmt.Sprintf("光模塊驗收: %d/%d 通過 (%.1f%%)", result.PassCount, result.TotalCount, percent(result.PassCount, result.TotalCount))
	return result, nil
}

func evaluateTransceiverRecord(rec models.TransceiverRecord, th TransceiverThresholds) (reason string, passed bool) {
	if rec.TxPower == nil && rec.RxPower == nil && rec.Temperature == nil && rec.Voltage == nil {
		return "光模塊缺失或無法讀取", false
	}

	var reasons []string
	anyOutOfRange := false

	checkField := func(low, high string, value *float64, min, max float64) {
		if value == nil {
			return
		}
		if *value < min {
			anyOutOfRange = true
			reasons = append(reasons, fmt.Sprintf(low, *value, min, max))
		} else if *value > max {
			anyOutOfRange = true
			reasons = append(reasons, fmt.Sprintf(high, *value, min, max))
		}
	}
	checkField("Tx Power 過低: %g dBm (範圍: %g~%g)", "Tx Power 過高: %g dBm (範圍: %g~%g)", rec.TxPower, th.TxPowerMin, th.TxPowerMax)
	checkField("Rx Power 過低: %g dBm (範圍: %g~%g)", "Rx Power 過高: %g dBm (範圍: %g~%g)", rec.RxPower, th.RxPowerMin, th.RxPowerMax)
	checkField("溫度過低: %g°C (範圍: %g~%g°C)", "溫度過高: %g°C (範圍: %g~%g°C)", rec.Temperature, th.TemperatureMin, th.TemperatureMax)
	checkField("電壓過低: %gV (範圍: %g~%gV)", "電壓過高: %gV (範圍: %g~%gV)", rec.Voltage, th.VoltageMin, th.VoltageMax)

	if !anyOutOfRange {
		return "", true
	}
	return strings.Join(reasons, " | "), false
}

func transceiverData(rec models.TransceiverRecord) map[string]any {
	return map[string]any{
		"tx_power":    rec.TxPower,
		"rx_power":    rec.RxPower,
		"temperature": rec.Temperature,
		"voltage":     rec.Voltage,
	}
}

func inRange(v, min, max float64) bool {
	return v >= min && v <= max
}
