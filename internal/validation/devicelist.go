package validation

import (
	"fmt"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// DeviceListInvariants checks the cross-row invariants spec.md §3 requires
// before any insert/update into MaintenanceDeviceList:
//   - OLD IPs unique across OLD entries within a maintenance.
//   - NEW IPs unique across NEW entries within a maintenance.
//   - OLD and NEW hostnames disjoint across all entries.
//   - no cross mapping: never both A→B and B→A.
//
// entries is the full resulting row set for the maintenance (existing rows
// plus the candidate insert/update), since every check is maintenance-wide.
func DeviceListInvariants(entries []models.DeviceListEntry) error {
	oldIPs := make(map[string]int)
	newIPs := make(map[string]int)
	oldHostnames := make(map[string]bool)
	newHostnames := make(map[string]bool)
	pairs := make(map[[2]string]bool)

	for _, e := range entries {
		if e.OldIP != nil && *e.OldIP != "" {
			oldIPs[*e.OldIP]++
		}
		if e.NewIP != nil && *e.NewIP != "" {
			newIPs[*e.NewIP]++
		}
		if e.OldHostname != nil && e.NewHostname != nil && *e.OldHostname != "" && *e.NewHostname != "" {
			forward := [2]string{*e.OldHostname, *e.NewHostname}
			reverse := [2]string{*e.NewHostname, *e.OldHostname}
			if pairs[reverse] {
				return apperrors.NewValidationError("偵測到交叉對應").
					WithDetailsf("%s <-> %s", *e.OldHostname, *e.NewHostname)
			}
			pairs[forward] = true
		}
		if e.OldHostname != nil && *e.OldHostname != "" {
			if newHostnames[*e.OldHostname] {
				return apperrors.NewValidationError("hostname appears on both OLD and NEW sides").
					WithDetailsf("hostname %q", *e.OldHostname)
			}
			oldHostnames[*e.OldHostname] = true
		}
		if e.NewHostname != nil && *e.NewHostname != "" {
			if oldHostnames[*e.NewHostname] {
				return apperrors.NewValidationError("hostname appears on both OLD and NEW sides").
					WithDetailsf("hostname %q", *e.NewHostname)
			}
			newHostnames[*e.NewHostname] = true
		}
	}

	for ip, count := range oldIPs {
		if count > 1 {
			return apperrors.NewValidationError("duplicate OLD IP within maintenance").WithDetailsf("ip %q", ip)
		}
	}
	for ip, count := range newIPs {
		if count > 1 {
			return apperrors.NewValidationError("duplicate NEW IP within maintenance").WithDetailsf("ip %q", ip)
		}
	}
	return nil
}

// CSVRowError annotates a two-phase CSV import failure with its 1-based
// row number (spec.md §6.4).
type CSVRowError struct {
	Row     int
	Message string
}

func (e CSVRowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}
