// Package api implements spec.md §6.2's downstream HTTP contract: the
// read-model/dashboard/case/expectation/list endpoints a UI consumes.
// spec.md §1 names "HTTP/REST surface" and "authentication and RBAC
// middleware" as external collaborators — this router is the thin
// contract-level adapter those collaborators sit in front of, not a
// hardened edge server; principal extraction trusts headers a real
// gateway would have already verified (see principalMiddleware).
// Grounded on original_source/app/api/endpoints/*.py's route shapes,
// translated into a go-chi/chi/v5 mux the way the example pack wires
// chi routers (see cmd/hinter/main.go's middleware-chain style).
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/cases"
)

func asDenial(err error) (string, bool) {
	var denial *cases.DenialError
	if errors.As(err, &denial) {
		return denial.Reason, true
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError translates a service-layer error into spec.md §6.2's error
// taxonomy: an *errors.AppError carries its own HTTP status; a
// *cases.DenialError is a well-formed-but-not-permitted outcome (mapped to
// 403); anything else is an unexpected failure (500, recorded by the
// request-logging middleware).
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, errorBody{Error: appErr.Message, Details: appErr.Details})
		return
	}
	if denial, ok := asDenial(err); ok {
		writeJSON(w, http.StatusForbidden, errorBody{Error: denial})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

func writeNotFound(w http.ResponseWriter, resource string) {
	writeError(w, apperrors.NewNotFoundError(resource))
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.Wrap(err, apperrors.ErrorTypeValidation, "malformed request body")
	}
	return nil
}
