// Package maintenance implements spec.md §6.2's maintenance-window CRUD:
// create, list, and operator delete (which cascades every dependent row
// via the migrations' ON DELETE CASCADE chains). No original Python
// source survived retrieval for this concern specifically — maintenance
// lifecycle is assumed infrastructure in the original app, so this is
// grounded directly on spec.md §3's Maintenance shape and migration
// 00001's schema.
package maintenance

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

type Service struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, id, name string) (models.Maintenance, error) {
	var m models.Maintenance
	err := s.db.GetContext(ctx, &m, `
		INSERT INTO maintenances (id, name, is_active, last_activated_at)
		VALUES ($1, $2, true, now())
		RETURNING *`, id, name)
	if err != nil {
		return models.Maintenance{}, apperrors.Wrapf(err, apperrors.ErrorTypeConflict, "creating maintenance %q", id)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]models.Maintenance, error) {
	var rows []models.Maintenance
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM maintenances ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("listing maintenances: %w", err)
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Maintenance, error) {
	var m models.Maintenance
	if err := s.db.GetContext(ctx, &m, `SELECT * FROM maintenances WHERE id = $1`, id); err != nil {
		return nil, nil //nolint:nilerr // not-found -> nil result
	}
	return &m, nil
}

// Delete removes a maintenance and, via ON DELETE CASCADE, every
// dependent device-list/mac-list/collection/case row — spec.md §6.2's
// "explicit operator delete cascades all dependent data".
func (s *Service) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM maintenances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting maintenance %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("maintenance")
	}
	return nil
}

// Deactivate flips a maintenance inactive, starting the retention
// sweeper's grace-period clock (pkg/retention consults updated_at).
func (s *Service) Deactivate(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE maintenances SET is_active = false, deactivated_at = now(),
			active_seconds_accumulated = active_seconds_accumulated +
				EXTRACT(EPOCH FROM (now() - COALESCE(last_activated_at, now())))::bigint
		WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return fmt.Errorf("deactivating maintenance %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("active maintenance")
	}
	return nil
}
