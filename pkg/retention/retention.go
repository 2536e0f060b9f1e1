// Package retention implements spec.md §4.8's cleanup sweep: once a
// maintenance has been deactivated for longer than the configured grace
// period, its collection history is deleted so the basis+change-point
// storage strategy doesn't accumulate data for windows nobody is working
// anymore. Grounded on
// original_source/app/services/retention.py::RetentionService.cleanup_deactivated.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Stats reports how much a single sweep pass cleaned up.
type Stats struct {
	MaintenancesCleaned int `json:"maintenances_cleaned"`
	BatchesDeleted      int `json:"batches_deleted"`
	LatestDeleted       int `json:"latest_deleted"`
	ErrorsDeleted       int `json:"errors_deleted"`
}

// Sweeper deletes expired deactivated maintenances' collection data.
type Sweeper struct {
	db     *sqlx.DB
	grace  time.Duration
	logger *zap.Logger
}

func New(db *sqlx.DB, grace time.Duration, logger *zap.Logger) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{db: db, grace: grace, logger: logger}
}

// CleanupDeactivated deletes every collection_batches/latest_collection_batches/
// collection_errors row belonging to a maintenance that has been inactive
// for longer than the sweeper's grace period. collection_batches'
// ON DELETE CASCADE takes the typed per-record tables with it (§4.1);
// client_records and cases are untouched — §4.7/§4.8 keep the case
// history around after a maintenance closes out.
func (s *Sweeper) CleanupDeactivated(ctx context.Context) (Stats, error) {
	cutoff := time.Now().UTC().Add(-s.grace)

	var expiredIDs []string
	if err := s.db.SelectContext(ctx, &expiredIDs, `
		SELECT id FROM maintenances
		WHERE is_active = false AND updated_at <= $1`, cutoff); err != nil {
		return Stats{}, fmt.Errorf("finding expired maintenances: %w", err)
	}
	if len(expiredIDs) == 0 {
		return Stats{}, nil
	}

	s.logger.Info("retention cleanup: found deactivated maintenances to clean",
		zap.Int("count", len(expiredIDs)), zap.Strings("maintenance_ids", expiredIDs))

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("beginning retention cleanup transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query, args, err := sqlx.In(`DELETE FROM latest_collection_batches WHERE maintenance_id IN (?)`, expiredIDs)
	if err != nil {
		return Stats{}, fmt.Errorf("building latest-batch delete: %w", err)
	}
	latestResult, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return Stats{}, fmt.Errorf("deleting latest collection batches: %w", err)
	}
	latestDeleted, _ := latestResult.RowsAffected()

	query, args, err = sqlx.In(`DELETE FROM collection_batches WHERE maintenance_id IN (?)`, expiredIDs)
	if err != nil {
		return Stats{}, fmt.Errorf("building batch delete: %w", err)
	}
	batchResult, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return Stats{}, fmt.Errorf("deleting collection batches: %w", err)
	}
	batchesDeleted, _ := batchResult.RowsAffected()

	query, args, err = sqlx.In(`DELETE FROM collection_errors WHERE maintenance_id IN (?)`, expiredIDs)
	if err != nil {
		return Stats{}, fmt.Errorf("building error delete: %w", err)
	}
	errResult, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return Stats{}, fmt.Errorf("deleting collection errors: %w", err)
	}
	errorsDeleted, _ := errResult.RowsAffected()

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("committing retention cleanup: %w", err)
	}

	stats := Stats{
		MaintenancesCleaned: len(expiredIDs),
		BatchesDeleted:      int(batchesDeleted),
		LatestDeleted:       int(latestDeleted),
		ErrorsDeleted:       int(errorsDeleted),
	}
	s.logger.Info("retention cleanup done",
		zap.Int("maintenances_cleaned", stats.MaintenancesCleaned),
		zap.Int("batches_deleted", stats.BatchesDeleted),
		zap.Int("latest_deleted", stats.LatestDeleted),
		zap.Int("errors_deleted", stats.ErrorsDeleted))
	return stats, nil
}
