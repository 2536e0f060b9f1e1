package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/internal/validation"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/api/csvimport"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid id")
	}
	return id, nil
}

func (h *handlers) listDeviceEntries(w http.ResponseWriter, r *http.Request) {
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	rows, err := h.deps.Lists.ListDeviceEntries(r.Context(), maintenanceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *handlers) createDeviceEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.DeviceListEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, err)
		return
	}
	created, err := h.deps.Lists.CreateDeviceEntry(r.Context(), entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) updateDeviceEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var entry models.DeviceListEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.deps.Lists.UpdateDeviceEntry(r.Context(), id, entry)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeNotFound(w, "device list entry")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handlers) deleteDeviceEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	maintenanceID := r.URL.Query().Get("maintenance_id")
	ok, err := h.deps.Lists.DeleteDeviceEntry(r.Context(), id, maintenanceID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFound(w, "device list entry")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// importDeviceList implements spec.md §6.4's two-phase CSV import: every
// row is parsed and converted before any row is written.
func (h *handlers) importDeviceList(w http.ResponseWriter, r *http.Request) {
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	rows, failures, err := csvimport.Parse(r.Body, func(row []string, header map[string]int) (models.DeviceListEntry, error) {
		entry := models.DeviceListEntry{MaintenanceID: maintenanceID}
		entry.OldHostname = optionalColumn(row, header, "old_hostname")
		entry.OldIP = optionalColumn(row, header, "old_ip")
		entry.OldVendor = optionalColumn(row, header, "old_vendor")
		entry.NewHostname = optionalColumn(row, header, "new_hostname")
		entry.NewIP = optionalColumn(row, header, "new_ip")
		entry.NewVendor = optionalColumn(row, header, "new_vendor")
		entry.TenantGroup = optionalColumn(row, header, "tenant_group")
		entry.Description = optionalColumn(row, header, "description")
		entry.UseSamePort = csvimport.Column(row, header, "use_same_port") == "true"
		return entry, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if failures != nil {
		writeError(w, csvimport.RejectionError(failures))
		return
	}
	count, err := h.deps.Lists.ImportDeviceEntries(r.Context(), maintenanceID, rows)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}

func optionalColumn(row []string, header map[string]int, name string) *string {
	v := csvimport.Column(row, header, name)
	if v == "" {
		return nil
	}
	return &v
}

func (h *handlers) listMacEntries(w http.ResponseWriter, r *http.Request) {
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	rows, err := h.deps.Lists.ListMacEntries(r.Context(), maintenanceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *handlers) createMacEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.MacListEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, err)
		return
	}
	created, err := h.deps.Lists.CreateMacEntry(r.Context(), entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) updateMacEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var entry models.MacListEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.deps.Lists.UpdateMacEntry(r.Context(), id, entry)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeNotFound(w, "mac list entry")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handlers) deleteMacEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	maintenanceID := r.URL.Query().Get("maintenance_id")
	ok, err := h.deps.Lists.DeleteMacEntry(r.Context(), id, maintenanceID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFound(w, "mac list entry")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *handlers) importMacList(w http.ResponseWriter, r *http.Request) {
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	rows, failures, err := csvimport.Parse(r.Body, func(row []string, header map[string]int) (models.MacListEntry, error) {
		mac := csvimport.Column(row, header, "mac_address")
		if _, err := validation.NormalizeMAC(mac); err != nil {
			return models.MacListEntry{}, err
		}
		return models.MacListEntry{
			MaintenanceID:   maintenanceID,
			MacAddress:      mac,
			Description:     optionalColumn(row, header, "description"),
			DefaultAssignee: optionalColumn(row, header, "default_assignee"),
			IPAddress:       optionalColumn(row, header, "ip_address"),
			TenantGroup:     optionalColumn(row, header, "tenant_group"),
		}, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if failures != nil {
		writeError(w, csvimport.RejectionError(failures))
		return
	}
	count, err := h.deps.Lists.ImportMacEntries(r.Context(), maintenanceID, rows)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}
