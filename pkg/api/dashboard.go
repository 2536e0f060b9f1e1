package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/readmodel"
)

func (h *handlers) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	summary, err := h.deps.Dashboard.GetSummary(r.Context(), maintenanceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *handlers) indicatorRawData(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	filter := readmodel.RawDataFilter{
		SwitchHostname: r.URL.Query().Get("switch_hostname"),
		Query:          r.URL.Query().Get("q"),
		Page:           atoiDefault(r.URL.Query().Get("page"), 1),
		PageSize:       atoiDefault(r.URL.Query().Get("page_size"), 50),
	}
	result, err := h.deps.RawData.Query(r.Context(), maintenanceID, name, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) indicatorTimeseries(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	points, err := h.deps.RawData.TimeSeries(r.Context(), maintenanceID, name, r.URL.Query().Get("switch_hostname"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
