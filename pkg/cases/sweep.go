package cases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/notify"
)

type latestPing struct {
	MacAddress    string `db:"mac_address"`
	PingReachable *bool  `db:"ping_reachable"`
}

// UpdatePingStatus refreshes every case's last_ping_reachable and
// ping_reachable_since from each MAC's most recent ClientRecord, ported
// from case_service.py::update_ping_status. ping_reachable_since
// implements anti-flapping hysteresis:
//   - unreachable/unknown -> reachable: stamped with now
//   - reachable -> reachable: held at its original value
//   - anything -> unreachable/unknown: cleared to nil
func (s *Service) UpdatePingStatus(ctx context.Context, maintenanceID string) error {
	var latest []latestPing
	if err := s.db.SelectContext(ctx, &latest, `
		SELECT DISTINCT ON (mac_address) mac_address, ping_reachable
		FROM client_records
		WHERE maintenance_id = $1
		ORDER BY mac_address, collected_at DESC`, maintenanceID); err != nil {
		return fmt.Errorf("loading latest pings: %w", err)
	}

	type caseState struct {
		Reachable *bool      `db:"last_ping_reachable"`
		Since     *time.Time `db:"ping_reachable_since"`
	}
	rows, err := s.db.QueryxContext(ctx,
		`SELECT mac_address, last_ping_reachable, ping_reachable_since FROM cases WHERE maintenance_id = $1`, maintenanceID)
	if err != nil {
		return fmt.Errorf("loading case ping states: %w", err)
	}
	states := make(map[string]caseState)
	for rows.Next() {
		var mac string
		var st caseState
		if err := rows.Scan(&mac, &st.Reachable, &st.Since); err != nil {
			rows.Close()
			return fmt.Errorf("scanning case ping state: %w", err)
		}
		states[strings.ToUpper(mac)] = st
	}
	rows.Close()

	now := time.Now().UTC()
	for _, p := range latest {
		macUpper := strings.ToUpper(p.MacAddress)
		old := states[macUpper]

		var newSince *time.Time
		if p.PingReachable != nil && *p.PingReachable {
			if old.Reachable != nil && *old.Reachable && old.Since != nil {
				newSince = old.Since
			} else {
				newSince = &now
			}
		}

		if _, err := s.db.ExecContext(ctx, `
			UPDATE cases SET last_ping_reachable = $1, ping_reachable_since = $2
			WHERE maintenance_id = $3 AND mac_address = $4`,
			p.PingReachable, newSince, maintenanceID, macUpper); err != nil {
			return fmt.Errorf("updating ping status for %s: %w", macUpper, err)
		}
	}
	return nil
}

// AutoResolveReachable marks every reachable, non-terminal case RESOLVED
// for a maintenance once it has been continuously reachable
// (ping_reachable_since) for at least ten minutes, ported from
// case_service.py::auto_resolve_reachable.
// IN_PROGRESS and DISCUSSING cases are left alone — they're actively
// being worked and shouldn't be silently closed out from under a user.
func (s *Service) AutoResolveReachable(ctx context.Context, maintenanceID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE cases SET status = $1
		WHERE maintenance_id = $2 AND last_ping_reachable = true
			AND ping_reachable_since <= now() - interval '10 minutes'
			AND status NOT IN ($3, $4, $5)`,
		models.CaseResolved, maintenanceID, models.CaseResolved, models.CaseInProgress, models.CaseDiscussing)
	if err != nil {
		return 0, fmt.Errorf("auto-resolving cases: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	if affected > 0 {
		if s.logs != nil {
			s.logs.Info(ctx, "scheduler", "auto_resolve", fmt.Sprintf("自動結案 %d 筆（Ping 可達）", affected), maintenanceID)
		}
		if err := s.notifier.Notify(ctx, notify.Event{
			Type: notify.CaseAutoResolved, MaintenanceID: maintenanceID, Count: int(affected),
		}); err != nil {
			return int(affected), fmt.Errorf("notifying auto-resolve: %w", err)
		}
	}
	return int(affected), nil
}

// AutoReopenUnreachable reopens every RESOLVED case whose ping has gone
// unreachable (or unknown) back to ASSIGNED, ported from
// case_service.py::auto_reopen_unreachable. The assignee must re-accept
// the case before work resumes.
func (s *Service) AutoReopenUnreachable(ctx context.Context, maintenanceID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE cases SET status = $1
		WHERE maintenance_id = $2 AND status = $3
			AND (last_ping_reachable = false OR last_ping_reachable IS NULL)`,
		models.CaseAssigned, maintenanceID, models.CaseResolved)
	if err != nil {
		return 0, fmt.Errorf("auto-reopening cases: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	if affected > 0 {
		if s.logs != nil {
			s.logs.Warning(ctx, "scheduler", "auto_reopen", fmt.Sprintf("自動重開 %d 筆（Ping 變為不可達）", affected), maintenanceID)
		}
		if err := s.notifier.Notify(ctx, notify.Event{
			Type: notify.CaseAutoReopened, MaintenanceID: maintenanceID, Count: int(affected),
		}); err != nil {
			return int(affected), fmt.Errorf("notifying auto-reopen: %w", err)
		}
	}
	return int(affected), nil
}

// UpdateChangeFlags batch-recomputes every case's ChangeFlags from its
// MAC's full ClientRecord history in a single pass (avoiding N+1 queries),
// ported from case_service.py::update_change_flags.
func (s *Service) UpdateChangeFlags(ctx context.Context, maintenanceID string) (int, error) {
	type caseRow struct {
		ID         int64  `db:"id"`
		MacAddress string `db:"mac_address"`
	}
	var caseRows []caseRow
	if err := s.db.SelectContext(ctx, &caseRows,
		`SELECT id, mac_address FROM cases WHERE maintenance_id = $1`, maintenanceID); err != nil {
		return 0, fmt.Errorf("loading cases: %w", err)
	}
	if len(caseRows) == 0 {
		return 0, nil
	}

	var records []models.ClientRecord
	if err := s.db.SelectContext(ctx, &records, `
		SELECT * FROM client_records
		WHERE maintenance_id = $1
		ORDER BY mac_address, collected_at`, maintenanceID); err != nil {
		return 0, fmt.Errorf("loading client records: %w", err)
	}

	recordsByMac := make(map[string][]models.ClientRecord)
	for _, r := range records {
		key := strings.ToUpper(r.MacAddress)
		recordsByMac[key] = append(recordsByMac[key], r)
	}

	updated := 0
	for _, c := range caseRows {
		recs := recordsByMac[strings.ToUpper(c.MacAddress)]
		flags := make(models.JSONBoolMap, len(models.TrackedAttributes))
		for _, attr := range models.TrackedAttributes {
			flags[string(attr)] = detectChange(attributeValues(attr, recs))
		}

		encoded, err := json.Marshal(flags)
		if err != nil {
			return updated, fmt.Errorf("encoding change flags for case %d: %w", c.ID, err)
		}
		if _, err := s.db.ExecContext(ctx,
			`UPDATE cases SET change_flags = $1 WHERE id = $2`, encoded, c.ID); err != nil {
			return updated, fmt.Errorf("updating change flags for case %d: %w", c.ID, err)
		}
		updated++
	}

	return updated, nil
}
