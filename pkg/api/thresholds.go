package api

import (
	"context"
	"fmt"
	"net/http"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/internal/validation"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/indicators"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// ThresholdsService writes spec.md §4.6's per-maintenance threshold
// overrides and invalidates the evaluator-facing cache immediately after,
// so "takes effect on the next evaluation" holds for the admin write path
// too (indicators.ThresholdService.InvalidateCache's own doc comment).
type ThresholdsService struct {
	db        dbExecer
	threshold *indicators.ThresholdService
}

type dbExecer interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

func NewThresholdsService(db dbExecer, threshold *indicators.ThresholdService) *ThresholdsService {
	return &ThresholdsService{db: db, threshold: threshold}
}

type setThresholdRequest struct {
	MaintenanceID string `json:"maintenance_id" validate:"required"`
	Key           string `json:"key" validate:"required"`
	Value         string `json:"value" validate:"required"`
}

func (s *ThresholdsService) Set(ctx context.Context, req setThresholdRequest) (models.ThresholdOverride, error) {
	var row models.ThresholdOverride
	if err := s.db.GetContext(ctx, &row, `
		INSERT INTO threshold_overrides (maintenance_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (maintenance_id, key) DO UPDATE SET value = EXCLUDED.value
		RETURNING *`, req.MaintenanceID, req.Key, req.Value); err != nil {
		return models.ThresholdOverride{}, apperrors.Wrap(err, apperrors.ErrorTypeIntegrity, "setting threshold override")
	}
	if err := s.threshold.InvalidateCache(ctx, req.MaintenanceID); err != nil {
		return models.ThresholdOverride{}, fmt.Errorf("invalidating threshold cache: %w", err)
	}
	return row, nil
}

func (h *handlers) setThresholdOverride(w http.ResponseWriter, r *http.Request) {
	var req setThresholdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, err)
		return
	}
	row, err := h.deps.Thresholds.Set(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}
