package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
)

func (h *handlers) listExpectations(w http.ResponseWriter, r *http.Request) {
	kind := ExpectationKind(chi.URLParam(r, "kind"))
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	rows, err := h.deps.Expectations.List(r.Context(), kind, maintenanceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *handlers) createExpectation(w http.ResponseWriter, r *http.Request) {
	kind := ExpectationKind(chi.URLParam(r, "kind"))
	var body map[string]any
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	row, err := h.deps.Expectations.Create(r.Context(), kind, body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (h *handlers) deleteExpectation(w http.ResponseWriter, r *http.Request) {
	kind := ExpectationKind(chi.URLParam(r, "kind"))
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ok, err := h.deps.Expectations.Delete(r.Context(), kind, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFound(w, string(kind)+" expectation")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
