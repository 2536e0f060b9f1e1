package indicators

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/ifname"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

// UplinkEvaluator checks that every expected neighbor relationship (LLDP/CDP)
// is confirmed by the latest collected neighbor table. Ported from
// original_source/app/indicators/uplink.py.
type UplinkEvaluator struct {
	store *store.Store[models.NeighborRecord]
}

func NewUplinkEvaluator(s *store.Store[models.NeighborRecord]) *UplinkEvaluator {
	return &UplinkEvaluator{store: s}
}

func (e *UplinkEvaluator) IndicatorType() string { return "uplink" }

func uplinkExpectations(ctx context.Context, db *sqlx.DB, maintenanceID string) ([]models.UplinkExpectation, error) {
	var rows []models.UplinkExpectation
	err := db.SelectContext(ctx, &rows,
		`SELECT * FROM uplink_expectations WHERE maintenance_id = $1`, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("loading uplink expectations: %w", err)
	}
	return rows, nil
}

func (e *UplinkEvaluator) Evaluate(ctx context.Context, maintenanceID string) (EvaluationResult, error) {
	expectations, err := uplinkExpectations(ctx, e.store.DB(), maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	records, err := e.store.GetLatestPerDevice(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}

	type neighborKey struct{ hostname, localInterface string }
	byInterface := make(map[neighborKey]models.NeighborRecord, len(records))
	for _, rec := range records {
		byInterface[neighborKey{rec.SwitchHostname, ifname.Canonicalize(rec.LocalInterface)}] = rec
	}

	result := EvaluationResult{IndicatorType: e.IndicatorType(), MaintenanceID: maintenanceID}

	for _, exp := range expectations {
		result.TotalCount++
		detail := Detail{Device: exp.Hostname, Interface: exp.LocalInterface}

		rec, ok := byInterface[neighborKey{exp.Hostname, ifname.Canonicalize(exp.LocalInterface)}]
		if !ok || rec.RemoteHostname == nil {
			detail.Reason = fmt.Sprintf("期望鄰居 '%s' 未找到。實際: []", exp.ExpectedNeighbor)
			result.Failures = append(result.Failures, detail)
			continue
		}
		if *rec.RemoteHostname != exp.ExpectedNeighbor {
			detail.Reason = fmt.Sprintf("期望鄰居 '%s' 未找到。實際: [%s]", exp.ExpectedNeighbor, *rec.RemoteHostname)
			result.Failures = append(result.Failures, detail)
			continue
		}
		if exp.ExpectedInterface != "" {
			actualRemote := ""
			if rec.RemoteInterface != nil {
				actualRemote = *rec.RemoteInterface
			}
			if ifname.Canonicalize(actualRemote) != ifname.Canonicalize(exp.ExpectedInterface) {
				detail.Reason = fmt.Sprintf("期望鄰居介面 '%s' 未找到。實際: [%s]", exp.ExpectedInterface, actualRemote)
				result.Failures = append(result.Failures, detail)
				continue
			}
		}

		result.PassCount++
		result.Passes = appendPass(result.Passes, detail)
	}

	result.FailCount = result.TotalCount - result.PassCount
	result.PassRates = map[string]float64{"matched": percent(result.PassCount, result.TotalCount)}
	if result.TotalCount > 0 {
		result.Summary = fmt.Sprintf("Uplink 驗收: %d/%d 通過 (%.1f%%)", result.PassCount, result.TotalCount, percent(result.PassCount, result.TotalCount))
	} else {
		result.Summary = "無 Uplink 數據"
	}
	return result, nil
}
