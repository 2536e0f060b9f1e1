package cases

import (
	"context"
	"fmt"
	"strings"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// SyncResult reports how many cases SyncCases created against the current
// tracked MAC list.
type SyncResult struct {
	Created int `json:"created"`
	Total   int `json:"total"`
}

// SyncCases creates a Case row for every MAC in the maintenance's tracked
// list that doesn't already have one, ported from
// case_service.py::sync_cases. A newly-created case's assignee falls back
// to the MAC's own default_assignee, then the lowest-id active ROOT user;
// with neither, the case starts UNASSIGNED (spec.md §4.7.1 / invariant P5).
func (s *Service) SyncCases(ctx context.Context, maintenanceID string) (SyncResult, error) {
	var macEntries []models.MacListEntry
	if err := s.db.SelectContext(ctx, &macEntries,
		`SELECT * FROM mac_list_entries WHERE maintenance_id = $1`, maintenanceID); err != nil {
		return SyncResult{}, fmt.Errorf("loading mac list: %w", err)
	}

	var existingMacs []string
	if err := s.db.SelectContext(ctx, &existingMacs,
		`SELECT mac_address FROM cases WHERE maintenance_id = $1`, maintenanceID); err != nil {
		return SyncResult{}, fmt.Errorf("loading existing case macs: %w", err)
	}
	existing := make(map[string]bool, len(existingMacs))
	for _, mac := range existingMacs {
		existing[strings.ToUpper(mac)] = true
	}

	var defaultRoot *string
	var defaultRootVal string
	if err := s.db.GetContext(ctx, &defaultRootVal,
		`SELECT username FROM users WHERE role = $1 AND is_active ORDER BY id LIMIT 1`, models.RoleRoot); err == nil {
		defaultRoot = &defaultRootVal
	}

	created := 0
	for _, mac := range macEntries {
		macUpper := strings.ToUpper(mac.MacAddress)
		if existing[macUpper] {
			continue
		}

		assignee := mac.DefaultAssignee
		if assignee == nil {
			assignee = defaultRoot
		}
		status := models.CaseUnassigned
		if assignee != nil {
			status = models.CaseAssigned
		}

		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO cases (maintenance_id, mac_address, status, assignee, change_flags)
			VALUES ($1, $2, $3, $4, '{}'::jsonb)`,
			maintenanceID, macUpper, status, assignee); err != nil {
			return SyncResult{}, fmt.Errorf("inserting case for %s: %w", macUpper, err)
		}
		created++
	}

	if created > 0 && s.logs != nil {
		s.logs.Info(ctx, "scheduler", "case_sync", fmt.Sprintf("自動同步案件: 新增 %d 筆", created), maintenanceID)
	}

	return SyncResult{Created: created, Total: len(macEntries)}, nil
}
