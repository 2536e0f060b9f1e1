package api

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/internal/validation"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// ListsService implements spec.md §6.2's device-list and MAC-list CRUD,
// including the two-phase CSV bulk import. No original Python source file
// for device_mappings/mac_list survived retrieval intact enough to port
// line-by-line; the cross-row invariants come from
// internal/validation.DeviceListInvariants, already ported from
// spec.md §3 for this exact purpose.
type ListsService struct {
	db *sqlx.DB
}

func NewListsService(db *sqlx.DB) *ListsService {
	return &ListsService{db: db}
}

func (s *ListsService) ListDeviceEntries(ctx context.Context, maintenanceID string) ([]models.DeviceListEntry, error) {
	var rows []models.DeviceListEntry
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM device_list_entries WHERE maintenance_id = $1 ORDER BY id`, maintenanceID); err != nil {
		return nil, fmt.Errorf("listing device entries: %w", err)
	}
	return rows, nil
}

func (s *ListsService) CreateDeviceEntry(ctx context.Context, entry models.DeviceListEntry) (models.DeviceListEntry, error) {
	existing, err := s.ListDeviceEntries(ctx, entry.MaintenanceID)
	if err != nil {
		return models.DeviceListEntry{}, err
	}
	if err := validation.DeviceListInvariants(append(existing, entry)); err != nil {
		return models.DeviceListEntry{}, err
	}

	var created models.DeviceListEntry
	err = s.db.GetContext(ctx, &created, `
		INSERT INTO device_list_entries
			(maintenance_id, old_hostname, old_ip, old_vendor, new_hostname, new_ip, new_vendor,
			 use_same_port, tenant_group, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *`,
		entry.MaintenanceID, entry.OldHostname, entry.OldIP, entry.OldVendor,
		entry.NewHostname, entry.NewIP, entry.NewVendor, entry.UseSamePort,
		entry.TenantGroup, entry.Description)
	if err != nil {
		return models.DeviceListEntry{}, apperrors.Wrap(err, apperrors.ErrorTypeIntegrity, "creating device entry")
	}
	return created, nil
}

func (s *ListsService) UpdateDeviceEntry(ctx context.Context, id int64, entry models.DeviceListEntry) (*models.DeviceListEntry, error) {
	existing, err := s.ListDeviceEntries(ctx, entry.MaintenanceID)
	if err != nil {
		return nil, err
	}
	candidate := make([]models.DeviceListEntry, 0, len(existing))
	for _, e := range existing {
		if e.ID == id {
			continue
		}
		candidate = append(candidate, e)
	}
	entry.ID = id
	candidate = append(candidate, entry)
	if err := validation.DeviceListInvariants(candidate); err != nil {
		return nil, err
	}

	var updated models.DeviceListEntry
	err = s.db.GetContext(ctx, &updated, `
		UPDATE device_list_entries SET
			old_hostname = $1, old_ip = $2, old_vendor = $3,
			new_hostname = $4, new_ip = $5, new_vendor = $6,
			use_same_port = $7, tenant_group = $8, description = $9
		WHERE id = $10 AND maintenance_id = $11
		RETURNING *`,
		entry.OldHostname, entry.OldIP, entry.OldVendor,
		entry.NewHostname, entry.NewIP, entry.NewVendor,
		entry.UseSamePort, entry.TenantGroup, entry.Description,
		id, entry.MaintenanceID)
	if err != nil {
		return nil, nil //nolint:nilerr // not-found -> nil result
	}
	return &updated, nil
}

func (s *ListsService) DeleteDeviceEntry(ctx context.Context, id int64, maintenanceID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM device_list_entries WHERE id = $1 AND maintenance_id = $2`, id, maintenanceID)
	if err != nil {
		return false, fmt.Errorf("deleting device entry %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected > 0, nil
}

// ImportDeviceEntries implements the two-phase bulk replace: rows is the
// complete validated candidate set, already parsed and per-row-validated
// by the caller via pkg/api/csvimport. This phase re-validates the
// maintenance-wide invariants across the whole candidate set, then
// replaces the maintenance's device list atomically — the whole import
// commits or none of it does.
func (s *ListsService) ImportDeviceEntries(ctx context.Context, maintenanceID string, rows []models.DeviceListEntry) (int, error) {
	if err := validation.DeviceListInvariants(rows); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM device_list_entries WHERE maintenance_id = $1`, maintenanceID); err != nil {
		return 0, fmt.Errorf("clearing existing device list: %w", err)
	}
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO device_list_entries
				(maintenance_id, old_hostname, old_ip, old_vendor, new_hostname, new_ip, new_vendor,
				 use_same_port, tenant_group, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			maintenanceID, row.OldHostname, row.OldIP, row.OldVendor,
			row.NewHostname, row.NewIP, row.NewVendor, row.UseSamePort,
			row.TenantGroup, row.Description); err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrorTypeIntegrity, "inserting imported device entry")
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing device list import: %w", err)
	}
	return len(rows), nil
}

func (s *ListsService) ListMacEntries(ctx context.Context, maintenanceID string) ([]models.MacListEntry, error) {
	var rows []models.MacListEntry
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM mac_list_entries WHERE maintenance_id = $1 ORDER BY id`, maintenanceID); err != nil {
		return nil, fmt.Errorf("listing mac entries: %w", err)
	}
	return rows, nil
}

func (s *ListsService) CreateMacEntry(ctx context.Context, entry models.MacListEntry) (models.MacListEntry, error) {
	normalized, err := validation.NormalizeMAC(entry.MacAddress)
	if err != nil {
		return models.MacListEntry{}, err
	}

	var created models.MacListEntry
	err = s.db.GetContext(ctx, &created, `
		INSERT INTO mac_list_entries
			(maintenance_id, mac_address, description, default_assignee, ip_address, tenant_group)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *`,
		entry.MaintenanceID, normalized, entry.Description, entry.DefaultAssignee,
		entry.IPAddress, entry.TenantGroup)
	if err != nil {
		return models.MacListEntry{}, apperrors.Wrap(err, apperrors.ErrorTypeIntegrity, "creating mac entry")
	}
	return created, nil
}

func (s *ListsService) UpdateMacEntry(ctx context.Context, id int64, entry models.MacListEntry) (*models.MacListEntry, error) {
	normalized, err := validation.NormalizeMAC(entry.MacAddress)
	if err != nil {
		return nil, err
	}

	var updated models.MacListEntry
	err = s.db.GetContext(ctx, &updated, `
		UPDATE mac_list_entries SET
			mac_address = $1, description = $2, default_assignee = $3, ip_address = $4, tenant_group = $5
		WHERE id = $6 AND maintenance_id = $7
		RETURNING *`,
		normalized, entry.Description, entry.DefaultAssignee, entry.IPAddress, entry.TenantGroup,
		id, entry.MaintenanceID)
	if err != nil {
		return nil, nil //nolint:nilerr // not-found -> nil result
	}
	return &updated, nil
}

func (s *ListsService) DeleteMacEntry(ctx context.Context, id int64, maintenanceID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM mac_list_entries WHERE id = $1 AND maintenance_id = $2`, id, maintenanceID)
	if err != nil {
		return false, fmt.Errorf("deleting mac entry %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected > 0, nil
}

// ImportMacEntries replaces the maintenance's entire tracked MAC list in
// one transaction, mirroring ImportDeviceEntries' all-or-nothing commit.
func (s *ListsService) ImportMacEntries(ctx context.Context, maintenanceID string, rows []models.MacListEntry) (int, error) {
	normalized := make([]models.MacListEntry, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		mac, err := validation.NormalizeMAC(row.MacAddress)
		if err != nil {
			return 0, err
		}
		if seen[mac] {
			return 0, apperrors.NewValidationError("duplicate MAC address in import").WithDetailsf("mac %q", mac)
		}
		seen[mac] = true
		row.MacAddress = mac
		normalized[i] = row
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM mac_list_entries WHERE maintenance_id = $1`, maintenanceID); err != nil {
		return 0, fmt.Errorf("clearing existing mac list: %w", err)
	}
	for _, row := range normalized {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO mac_list_entries
				(maintenance_id, mac_address, description, default_assignee, ip_address, tenant_group)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			maintenanceID, row.MacAddress, row.Description, row.DefaultAssignee,
			row.IPAddress, row.TenantGroup); err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrorTypeIntegrity, "inserting imported mac entry")
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing mac list import: %w", err)
	}
	return len(normalized), nil
}
