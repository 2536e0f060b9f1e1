// Package models defines the domain types shared across the collection
// pipeline, indicator evaluators, and case engine (spec.md §3).
package models

import "time"

// Maintenance is a scheduled upgrade window — the unit of data isolation.
type Maintenance struct {
	ID                       string         `db:"id" json:"id"`
	Name                     string         `db:"name" json:"name"`
	IsActive                 bool           `db:"is_active" json:"is_active"`
	ActiveSecondsAccumulated int64          `db:"active_seconds_accumulated" json:"active_seconds_accumulated"`
	LastActivatedAt          *time.Time     `db:"last_activated_at" json:"last_activated_at,omitempty"`
	DeactivatedAt            *time.Time     `db:"deactivated_at" json:"deactivated_at,omitempty"`
	ConfigData               JSONMap        `db:"config_data" json:"config_data,omitempty"`
	CreatedAt                time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time      `db:"updated_at" json:"updated_at"`
}

// DeviceListEntry is one row of MaintenanceDeviceList: the OLD/NEW hostname,
// IP, and vendor pairing for a device undergoing replacement, or a
// single-sided entry when no replacement is involved.
type DeviceListEntry struct {
	ID            int64      `db:"id" json:"id"`
	MaintenanceID string     `db:"maintenance_id" json:"maintenance_id"`
	OldHostname   *string    `db:"old_hostname" json:"old_hostname,omitempty"`
	OldIP         *string    `db:"old_ip" json:"old_ip,omitempty"`
	OldVendor     *string    `db:"old_vendor" json:"old_vendor,omitempty"`
	NewHostname   *string    `db:"new_hostname" json:"new_hostname,omitempty"`
	NewIP         *string    `db:"new_ip" json:"new_ip,omitempty"`
	NewVendor     *string    `db:"new_vendor" json:"new_vendor,omitempty"`
	UseSamePort   bool       `db:"use_same_port" json:"use_same_port"`
	TenantGroup   *string    `db:"tenant_group" json:"tenant_group,omitempty"`
	IsReachable   *bool      `db:"is_reachable" json:"is_reachable,omitempty"`
	LastCheckAt   *time.Time `db:"last_check_at" json:"last_check_at,omitempty"`
	Description   *string    `db:"description" json:"description,omitempty"`
}

// ActiveSide names which of the OLD/NEW pair is the in-service device.
type ActiveSide int

const (
	ActiveSideOld ActiveSide = iota
	ActiveSideNew
)

// Active resolves spec.md §9(b): NEW wins whenever a NEW hostname is
// present (the device has been replaced); otherwise OLD is the device
// still in service.
func (e DeviceListEntry) Active() (hostname, ip, vendor string, side ActiveSide) {
	if e.NewHostname != nil && *e.NewHostname != "" {
		return deref(e.NewHostname), deref(e.NewIP), deref(e.NewVendor), ActiveSideNew
	}
	return deref(e.OldHostname), deref(e.OldIP), deref(e.OldVendor), ActiveSideOld
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// MacListEntry is one row of MaintenanceMacList: a tracked client endpoint.
type MacListEntry struct {
	ID              int64   `db:"id" json:"id"`
	MaintenanceID   string  `db:"maintenance_id" json:"maintenance_id"`
	MacAddress      string  `db:"mac_address" json:"mac_address"`
	Description     *string `db:"description" json:"description,omitempty"`
	DefaultAssignee *string `db:"default_assignee" json:"default_assignee,omitempty"`
	IPAddress       *string `db:"ip_address" json:"ip_address,omitempty"`
	TenantGroup     *string `db:"tenant_group" json:"tenant_group,omitempty"`
}
