// Package store implements spec.md §4.1's Typed Record Store: one generic
// save_batch routine parameterised by a typed-row schema, mediating every
// write through a deterministic change-point hash so that "polled, no
// change" collapses to a single timestamp update instead of a fresh batch.
// Grounded on original_source/app/repositories/typed_records.py's
// TypedRecordRepository[RecordT] (save_batch/get_latest_per_device/
// get_change_history/get_all_changes_summary), generalised to a Go
// generic Store[T] per typed-record table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/hashutil"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// RowInserter writes one batch's worth of typed rows within tx. batchID,
// maintenanceID, switchHostname, and collectedAt are shared across every
// row; callers only need to bind their own columns.
type RowInserter[T any] func(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []T) error

// Store mediates all reads/writes for one typed-record table.
type Store[T any] struct {
	db             *sqlx.DB
	collectionType models.CollectionType
	tableName      string
	insert         RowInserter[T]
	maxRetries     uint64
	baseDelay      time.Duration
}

// New constructs a Store for one collection type. tableName must be a
// fixed, compile-time-known identifier (never derived from request input)
// — it is interpolated directly into read-query SQL.
func New[T any](db *sqlx.DB, collectionType models.CollectionType, tableName string, insert RowInserter[T]) *Store[T] {
	return &Store[T]{
		db:             db,
		collectionType: collectionType,
		tableName:      tableName,
		insert:         insert,
		maxRetries:     3,
		baseDelay:      50 * time.Millisecond,
	}
}

// DB exposes the underlying connection pool for callers (indicator
// evaluators, in particular) that need to join against tables outside this
// Store's own typed-record table, such as the active device list.
func (s *Store[T]) DB() *sqlx.DB { return s.db }

// SaveResult reports what SaveBatch actually did, mirroring the Python
// repository's "CollectionBatch | None" return (nil meaning "unchanged").
type SaveResult struct {
	Batch   *models.CollectionBatch
	Changed bool
}

// SaveBatch implements spec.md §4.1 steps 1-5, atomically per
// (maintenance_id, collection_type, switch_hostname), retried up to three
// times with exponential backoff on a Postgres serialization failure
// (SQLSTATE 40001) before surfacing to the caller.
func (s *Store[T]) SaveBatch(ctx context.Context, maintenanceID, switchHostname, rawData string, items []T) (SaveResult, error) {
	canonical := canonicalizeInterfaceNames(items)

	anyItems := make([]any, len(canonical))
	for i, item := range canonical {
		anyItems[i] = item
	}
	dataHash, err := hashutil.DataHash(anyItems)
	if err != nil {
		return SaveResult{}, apperrors.Wrap(err, apperrors.ErrorTypeInternal, "computing data hash")
	}

	var result SaveResult

	b := retry.NewExponential(s.baseDelay)
	b = retry.WithMaxRetries(s.maxRetries, b)

	err = retry.Do(ctx, b, func(ctx context.Context) error {
		res, txErr := s.saveBatchTx(ctx, maintenanceID, switchHostname, rawData, canonical, dataHash)
		if txErr != nil {
			if isSerializationFailure(txErr) {
				return retry.RetryableError(txErr)
			}
			return txErr
		}
		result = res
		return nil
	})
	if err != nil {
		return SaveResult{}, apperrors.Wrap(err, apperrors.ErrorTypeDatabase, "save_batch failed after retries")
	}
	return result, nil
}

func (s *Store[T]) saveBatchTx(ctx context.Context, maintenanceID, switchHostname, rawData string, items []T, dataHash string) (SaveResult, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return SaveResult{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()

	var latest models.LatestCollectionBatch
	err = tx.GetContext(ctx, &latest, `
		SELECT maintenance_id, collection_type, switch_hostname, batch_id, data_hash, collected_at, last_checked_at
		FROM latest_collection_batches
		WHERE maintenance_id = $1 AND collection_type = $2 AND switch_hostname = $3`,
		maintenanceID, s.collectionType, switchHostname)
	found := true
	if errors.Is(err, sql.ErrNoRows) {
		found = false
	} else if err != nil {
		return SaveResult{}, fmt.Errorf("looking up latest batch: %w", err)
	}

	if found && latest.DataHash == dataHash {
		if _, err := tx.ExecContext(ctx, `
			UPDATE latest_collection_batches SET last_checked_at = $1
			WHERE maintenance_id = $2 AND collection_type = $3 AND switch_hostname = $4`,
			now, maintenanceID, s.collectionType, switchHostname); err != nil {
			return SaveResult{}, fmt.Errorf("updating last_checked_at: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return SaveResult{}, fmt.Errorf("committing unchanged update: %w", err)
		}
		return SaveResult{Changed: false}, nil
	}

	var batchID int64
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO collection_batches (maintenance_id, collection_type, switch_hostname, raw_data, item_count, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		maintenanceID, s.collectionType, switchHostname, rawData, len(items), now).Scan(&batchID)
	if err != nil {
		return SaveResult{}, fmt.Errorf("inserting collection batch: %w", err)
	}

	if len(items) > 0 {
		if err := s.insert(ctx, tx, batchID, maintenanceID, switchHostname, now, items); err != nil {
			return SaveResult{}, fmt.Errorf("inserting typed rows: %w", err)
		}
	}

	if found {
		if _, err := tx.ExecContext(ctx, `
			UPDATE latest_collection_batches SET batch_id = $1, data_hash = $2, collected_at = $3, last_checked_at = $3
			WHERE maintenance_id = $4 AND collection_type = $5 AND switch_hostname = $6`,
			batchID, dataHash, now, maintenanceID, s.collectionType, switchHostname); err != nil {
			return SaveResult{}, fmt.Errorf("updating latest pointer: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO latest_collection_batches (maintenance_id, collection_type, switch_hostname, batch_id, data_hash, collected_at, last_checked_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)`,
			maintenanceID, s.collectionType, switchHostname, batchID, dataHash, now); err != nil {
			return SaveResult{}, fmt.Errorf("inserting latest pointer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("committing batch: %w", err)
	}

	return SaveResult{
		Changed: true,
		Batch: &models.CollectionBatch{
			ID:             batchID,
			MaintenanceID:  maintenanceID,
			CollectionType: s.collectionType,
			SwitchHostname: switchHostname,
			RawData:        rawData,
			ItemCount:      len(items),
			CollectedAt:    now,
		},
	}, nil
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001"
	}
	return false
}

// GetLatestPerDevice returns every device's latest typed rows for a
// maintenance, joined through LatestCollectionBatch for O(1) lookup of
// each device's current batch (spec.md §4.1 step 5c rationale).
func (s *Store[T]) GetLatestPerDevice(ctx context.Context, maintenanceID string) ([]T, error) {
	var rows []T
	query := fmt.Sprintf(`
		SELECT t.* FROM %s t
		JOIN latest_collection_batches l
			ON l.batch_id = t.batch_id
			AND l.maintenance_id = t.maintenance_id
		WHERE l.collection_type = $1 AND l.maintenance_id = $2`, s.tableName)
	if err := s.db.SelectContext(ctx, &rows, query, s.collectionType, maintenanceID); err != nil {
		return nil, fmt.Errorf("querying latest per device from %s: %w", s.tableName, err)
	}
	return rows, nil
}

// GetTimeSeriesRecords returns typed rows ordered newest-first, bounded by
// limit.
func (s *Store[T]) GetTimeSeriesRecords(ctx context.Context, maintenanceID string, limit int) ([]T, error) {
	var rows []T
	query := fmt.Sprintf(`
		SELECT * FROM %s WHERE maintenance_id = $1 ORDER BY collected_at DESC LIMIT $2`, s.tableName)
	if err := s.db.SelectContext(ctx, &rows, query, maintenanceID, limit); err != nil {
		return nil, fmt.Errorf("querying time series from %s: %w", s.tableName, err)
	}
	return rows, nil
}

// GetChangeHistory returns every change-point batch for one device, oldest
// first.
func (s *Store[T]) GetChangeHistory(ctx context.Context, maintenanceID, switchHostname string) ([]models.CollectionBatch, error) {
	var batches []models.CollectionBatch
	err := s.db.SelectContext(ctx, &batches, `
		SELECT id, maintenance_id, collection_type, switch_hostname, raw_data, item_count, collected_at
		FROM collection_batches
		WHERE collection_type = $1 AND maintenance_id = $2 AND switch_hostname = $3
		ORDER BY collected_at ASC`, s.collectionType, maintenanceID, switchHostname)
	if err != nil {
		return nil, fmt.Errorf("querying change history: %w", err)
	}
	return batches, nil
}

// GetPreviousBatchRows returns the typed rows of the change-point batch
// immediately preceding the device's current latest one, or an empty slice
// if the device has fewer than two recorded batches. Used by the
// error-count delta evaluator (spec.md §4.5) to diff CRC counters across
// the last two change points.
func (s *Store[T]) GetPreviousBatchRows(ctx context.Context, maintenanceID, switchHostname string) ([]T, error) {
	var rows []T
	query := fmt.Sprintf(`
		SELECT t.* FROM %s t
		JOIN (
			SELECT id FROM collection_batches
			WHERE collection_type = $1 AND maintenance_id = $2 AND switch_hostname = $3
			ORDER BY collected_at DESC
			OFFSET 1 LIMIT 1
		) prev ON prev.id = t.batch_id`, s.tableName)
	if err := s.db.SelectContext(ctx, &rows, query, s.collectionType, maintenanceID, switchHostname); err != nil {
		return nil, fmt.Errorf("querying previous batch rows from %s: %w", s.tableName, err)
	}
	return rows, nil
}

// ChangeSummary is one device's change-count summary within a maintenance.
type ChangeSummary struct {
	SwitchHostname string    `db:"switch_hostname"`
	ChangeCount    int64     `db:"change_count"`
	FirstChange    time.Time `db:"first_change"`
	LastChange     time.Time `db:"last_change"`
}

// GetAllChangesSummary reports how many change points each device has had,
// ordered by most recently changed first.
func (s *Store[T]) GetAllChangesSummary(ctx context.Context, maintenanceID string) ([]ChangeSummary, error) {
	var summaries []ChangeSummary
	err := s.db.SelectContext(ctx, &summaries, `
		SELECT switch_hostname, COUNT(*) AS change_count, MIN(collected_at) AS first_change, MAX(collected_at) AS last_change
		FROM collection_batches
		WHERE collection_type = $1 AND maintenance_id = $2
		GROUP BY switch_hostname
		ORDER BY MAX(collected_at) DESC`, s.collectionType, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("querying changes summary: %w", err)
	}
	return summaries, nil
}
