package indicators

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/ifname"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

// PortChannelEvaluator checks that every expected port-channel is present,
// up, and carries every expected member (extra members are tolerated),
// with every member itself up. Ported from original_source/app/indicators/port_channel.py.
type PortChannelEvaluator struct {
	channels *store.Store[models.PortChannelRecord]
	members  *store.Store[models.PortChannelMemberRecord]
}

func NewPortChannelEvaluator(channels *store.Store[models.PortChannelRecord], members *store.Store[models.PortChannelMemberRecord]) *PortChannelEvaluator {
	return &PortChannelEvaluator{channels: channels, members: members}
}

func (e *PortChannelEvaluator) IndicatorType() string { return "port_channel" }

func portChannelExpectations(ctx context.Context, db *sqlx.DB, maintenanceID string) ([]models.PortChannelExpectation, error) {
	var rows []models.PortChannelExpectation
	err := db.SelectContext(ctx, &rows,
		`SELECT * FROM port_channel_expectations WHERE maintenance_id = $1`, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("loading port-channel expectations: %w", err)
	}
	return rows, nil
}

func (e *PortChannelEvaluator) Evaluate(ctx context.Context, maintenanceID string) (EvaluationResult, error) {
	expectations, err := portChannelExpectations(ctx, e.channels.DB(), maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	channelRecords, err := e.channels.GetLatestPerDevice(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}
	memberRecords, err := e.members.GetLatestPerDevice(ctx, maintenanceID)
	if err != nil {
		return EvaluationResult{}, err
	}

	type channelKey struct{ hostname, portChannel string }
	byChannel := make(map[channelKey]models.PortChannelRecord, len(channelRecords))
	for _, rec := range channelRecords {
		byChannel[channelKey{rec.SwitchHostname, ifname.Canonicalize(rec.PortChannel)}] = rec
	}
	membersByChannel := make(map[channelKey][]models.PortChannelMemberRecord)
	for _, rec := range memberRecords {
		k := channelKey{rec.SwitchHostname, ifname.Canonicalize(rec.PortChannel)}
		membersByChannel[k] = append(membersByChannel[k], rec)
	}

	result := EvaluationResult{IndicatorType: e.IndicatorType(), MaintenanceID: maintenanceID}

	for _, exp := range expectations {
		result.TotalCount++
		k := channelKey{exp.Hostname, ifname.Canonicalize(exp.PortChannel)}
		detail := Detail{Device: exp.Hostname, Interface: exp.PortChannel}

		rec, ok := byChannel[k]
		switch {
		case !ok:
			detail.Reason = "無採集數據"
			result.Failures = append(result.Failures, detail)
			continue
		case rec.Status != "UP":
			detail.Reason = fmt.Sprintf("Port-Channel 狀態異常: %s", rec.Status)
			result.Failures = append(result.Failures, detail)
			continue
		}

		if missing := missingMembers(rec.MemberInterfaces, exp.MemberInterfaces); len(missing) > 0 {
			detail.Reason = fmt.Sprintf("成員缺失: %s", strings.Join(missing, ", "))
			result.Failures = append(result.Failures, detail)
			continue
		}

		if issues := memberStatusIssues(membersByChannel[k]); len(issues) > 0 {
			detail.Reason = fmt.Sprintf("成員狀態異常: %s", strings.Join(issues, ", "))
			result.Failures = append(result.Failures, detail)
			continue
		}

		result.PassCount++
		result.Passes = appendPass(result.Passes, detail)
	}

	result.FailCount = result.TotalCount - result.PassCount
	result.PassRates = map[string]float64{"healthy": percent(result.PassCount, result.TotalCount)}
	result.Summary = fmt.Sprintf("Port-Channel: %d/%d 通過", result.PassCount, result.TotalCount)
	return result, nil
}

// missingMembers returns the expected member interfaces absent from actual,
// canonicalized for comparison. Extra actual members beyond what's expected
// are tolerated (original_source/app/indicators/port_channel.py computes
// `missing = expected_members - actual_members` and never fails on
// `extra = actual_members - expected_members`).
func missingMembers(actual, expected []string) []string {
	actualSet := make(map[string]bool, len(actual))
	for _, m := range actual {
		actualSet[ifname.Canonicalize(m)] = true
	}
	var missing []string
	for _, m := range expected {
		if !actualSet[ifname.Canonicalize(m)] {
			missing = append(missing, m)
		}
	}
	return missing
}

// memberStatusIssues reports every member whose status isn't UP, formatted
// as "{interface}({status})" per original_source/app/indicators/port_channel.py.
func memberStatusIssues(members []models.PortChannelMemberRecord) []string {
	var issues []string
	for _, m := range members {
		if m.Status != "UP" {
			issues = append(issues, fmt.Sprintf("%s(%s)", m.InterfaceName, m.Status))
		}
	}
	return issues
}
