package indicators

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// activeHostnames resolves a maintenance's device list down to the set of
// currently in-service hostnames, mirroring pkg/schedule.DeviceRepo's
// Active()-side resolution — every evaluator restricts its input to this
// set before counting anything (spec.md §4.5: "records for inactive
// devices are silently filtered out").
func activeHostnames(ctx context.Context, db *sqlx.DB, maintenanceID string) (map[string]bool, error) {
	var entries []models.DeviceListEntry
	err := db.SelectContext(ctx, &entries,
		`SELECT * FROM device_list_entries WHERE maintenance_id = $1`, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("listing device list for maintenance %q: %w", maintenanceID, err)
	}

	active := make(map[string]bool, len(entries))
	for _, e := range entries {
		hostname, _, _, _ := e.Active()
		if hostname != "" {
			active[hostname] = true
		}
	}
	return active, nil
}
