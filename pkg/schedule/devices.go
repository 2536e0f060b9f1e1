package schedule

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/fetch"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// DeviceRepo answers the two questions a collection tick needs before it
// can fetch anything: which maintenances are active, and which devices
// within a maintenance are currently in service (spec.md §4.2 step 1).
type DeviceRepo struct {
	db *sqlx.DB
}

func NewDeviceRepo(db *sqlx.DB) *DeviceRepo {
	return &DeviceRepo{db: db}
}

// ActiveMaintenanceIDs returns every maintenance currently flagged active.
// A collection job fans out over this list on every tick, so enabling a
// new maintenance is picked up without a restart (spec.md §4.4).
func (r *DeviceRepo) ActiveMaintenanceIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM maintenances WHERE is_active`); err != nil {
		return nil, fmt.Errorf("listing active maintenances: %w", err)
	}
	return ids, nil
}

// ActiveDeviceTargets resolves one maintenance's device list down to the
// in-service side of each entry (NEW if replaced, else OLD — spec.md §9b),
// skipping rows with neither side populated.
func (r *DeviceRepo) ActiveDeviceTargets(ctx context.Context, maintenanceID string) ([]fetch.DeviceTarget, error) {
	var entries []models.DeviceListEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM device_list_entries WHERE maintenance_id = $1`, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("listing device list for maintenance %q: %w", maintenanceID, err)
	}

	targets := make([]fetch.DeviceTarget, 0, len(entries))
	for _, e := range entries {
		hostname, ip, vendor, _ := e.Active()
		if hostname == "" {
			continue
		}
		targets = append(targets, fetch.DeviceTarget{Hostname: hostname, IP: ip, VendorOS: vendor})
	}
	return targets, nil
}
