package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/internal/validation"
)

type createMaintenanceRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

func (h *handlers) createMaintenance(w http.ResponseWriter, r *http.Request) {
	var req createMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, err)
		return
	}
	m, err := h.deps.Maintenances.Create(r.Context(), req.ID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *handlers) listMaintenances(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Maintenances.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// deleteMaintenance implements spec.md §6.2's "explicit operator delete
// cascades all dependent data".
func (h *handlers) deleteMaintenance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance id"))
		return
	}
	if err := h.deps.Maintenances.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
