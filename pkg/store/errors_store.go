package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/metrics"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// ErrorStore persists CollectionError rows — one per device whose fetch or
// parse failed within a tick (spec.md §4.2 step 3: "a single bad device
// never aborts the batch").
type ErrorStore struct {
	db *sqlx.DB
}

func NewErrorStore(db *sqlx.DB) *ErrorStore {
	return &ErrorStore{db: db}
}

func (s *ErrorStore) RecordError(ctx context.Context, maintenanceID string, collectionType models.CollectionType, switchHostname, message string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collection_errors (maintenance_id, collection_type, switch_hostname, error_message, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`,
		maintenanceID, collectionType, switchHostname, message, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recording collection error: %w", err)
	}
	metrics.CollectionErrors.WithLabelValues(string(collectionType), switchHostname).Inc()
	return nil
}
