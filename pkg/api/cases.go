package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/cases"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

func (h *handlers) listCases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	maintenanceID := q.Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	var pingReachable *bool
	if v := q.Get("ping_reachable"); v != "" {
		b := v == "true"
		pingReachable = &b
	}
	filter := cases.CaseListFilter{
		Assignee:        q.Get("assignee"),
		Status:          models.CaseStatus(q.Get("status")),
		PingReachable:   pingReachable,
		Search:          q.Get("search"),
		IncludeResolved: q.Get("include_resolved") == "true",
		Page:            atoiDefault(q.Get("page"), 1),
		PageSize:        atoiDefault(q.Get("page_size"), 50),
	}
	result, err := h.deps.Cases.GetCases(r.Context(), maintenanceID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) caseStats(w http.ResponseWriter, r *http.Request) {
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	stats, err := h.deps.Cases.GetCaseStats(r.Context(), maintenanceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *handlers) syncCases(w http.ResponseWriter, r *http.Request) {
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	result, err := h.deps.Cases.SyncCases(r.Context(), maintenanceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func caseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid case id")
	}
	return id, nil
}

func (h *handlers) caseDetail(w http.ResponseWriter, r *http.Request) {
	id, err := caseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	detail, err := h.deps.Cases.GetCaseDetail(r.Context(), id, maintenanceID)
	if err != nil {
		writeError(w, err)
		return
	}
	if detail == nil {
		writeNotFound(w, "case")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type updateCaseRequest struct {
	Summary  *string            `json:"summary"`
	Status   *models.CaseStatus `json:"status"`
	Assignee *string            `json:"assignee"`
}

func (h *handlers) updateCase(w http.ResponseWriter, r *http.Request) {
	id, err := caseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	maintenanceID := r.URL.Query().Get("maintenance_id")
	if maintenanceID == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id"))
		return
	}
	var req updateCaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	principal := principalFromContext(r.Context())
	result, err := h.deps.Cases.UpdateCase(r.Context(), id, maintenanceID, principal, cases.UpdateRequest{
		Summary: req.Summary, Status: req.Status, Assignee: req.Assignee,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		writeNotFound(w, "case")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) changeTimeline(w http.ResponseWriter, r *http.Request) {
	maintenanceID := r.URL.Query().Get("maintenance_id")
	macAddress := r.URL.Query().Get("mac_address")
	if maintenanceID == "" || macAddress == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id or mac_address"))
		return
	}
	attribute := models.TrackedAttribute(chi.URLParam(r, "attribute"))
	timeline, err := h.deps.Cases.GetChangeTimeline(r.Context(), maintenanceID, macAddress, attribute)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}

type noteRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *handlers) addNote(w http.ResponseWriter, r *http.Request) {
	id, err := caseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	maintenanceID := r.URL.Query().Get("maintenance_id")
	principal := principalFromContext(r.Context())
	if maintenanceID == "" || principal.Username == "" {
		writeError(w, apperrors.NewValidationError("missing maintenance_id or caller identity"))
		return
	}
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	note, err := h.deps.Cases.AddNote(r.Context(), id, maintenanceID, principal.Username, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	if note == nil {
		writeNotFound(w, "case")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func noteIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid note id")
	}
	return id, nil
}

func (h *handlers) updateNote(w http.ResponseWriter, r *http.Request) {
	caseID, err := caseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	noteID, err := noteIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	principal := principalFromContext(r.Context())
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	note, err := h.deps.Cases.UpdateNote(r.Context(), noteID, caseID, principal.Username, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	if note == nil {
		writeNotFound(w, "note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *handlers) deleteNote(w http.ResponseWriter, r *http.Request) {
	caseID, err := caseIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	noteID, err := noteIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	principal := principalFromContext(r.Context())
	ok, err := h.deps.Cases.DeleteNote(r.Context(), noteID, caseID, principal.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFound(w, "note")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
