package indicators

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

// VersionEvaluator checks every device's collected firmware version against
// its expectation. Ported from original_source/app/indicators/version.py.
type VersionEvaluator struct {
	store *store.Store[models.VersionRecord]
}

func NewVersionEvaluator(s *store.Store[models.VersionRecord]) *VersionEvaluator {
	return &VersionEvaluator{store: s}
}

func (e *VersionEvaluator) IndicatorType() string { return "version" }

func versionExpectations(ctx context.Context, db *sqlx.DB, maintenanceID string) ([]models.VersionExpectation, error) {
	var rows []models.VersionExpectation
	err := db.SelectContext(ctx, &rows,
		`SELECT * FROM version_expectations WHERE maintenance_id = $1`, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("loading version expectations: %w", err)
	}
	return rows, nil
}

func (e *VersionEvaluator) Evaluate(ctx context.Context, maintenanceID string) (EvaluationResult, error) {
	expectations, err := versionExpectations(ctx, e.store.DB(), maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	records, err := e.store.GetLatestPerDevice(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	active, err := activeHostnames(ctx, e.store.DB(), maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}

	byHostname := make(map[string]models.VersionRecord, len(records))
	for _, rec := range records {
		byHostname[rec.SwitchHostname] = rec
	}
	expectedByHostname := make(map[string]models.VersionExpectation, len(expectations))
	for _, exp := range expectations {
		expectedByHostname[exp.Hostname] = exp
	}

	result := EvaluationResult{IndicatorType: e.IndicatorType(), MaintenanceID: maintenanceID}

	for hostname := range active {
		result.TotalCount++
		detail := Detail{Device: hostname}

		exp, hasExpectation := expectedByHostname[hostname]
		if !hasExpectation {
			detail.Reason = "未定義版本期望"
			result.Failures = append(result.Failures, detail)
			continue
		}
		rec, hasRecord := byHostname[hostname]
		if !hasRecord {
			detail.Reason = "版本不符"
			detail.Data = map[string]any{"expected": exp.ExpectedVersion, "actual": nil}
			result.Failures = append(result.Failures, detail)
			continue
		}
		if rec.Version != exp.ExpectedVersion {
			detail.Reason = "版本不符"
			detail.Data = map[string]any{"expected": exp.ExpectedVersion, "actual": rec.Version}
			result.Failures = append(result.Failures, detail)
			continue
		}

		result.PassCount++
		result.Passes = appendPass(result.Passes, detail)
	}

	result.FailCount = result.TotalCount - result.PassCount
	result.PassRates = map[string]float64{"matched": percent(result.PassCount, result.TotalCount)}
	if result.TotalCount > 0 {
		result.Summary = fmt.Sprintf("版本驗收: %d/%d 通過 (%.1f%%)", result.PassCount, result.TotalCount, percent(result.PassCount, result.TotalCount))
	} else {
		result.Summary = "無版本數據"
	}
	return result, nil
}
