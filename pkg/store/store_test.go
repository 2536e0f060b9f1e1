package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/hashutil"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

type testItem struct {
	InterfaceName string
}

func testInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []testItem) error {
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO test_records (batch_id, interface_name) VALUES ($1, $2)`, batchID, item.InterfaceName); err != nil {
			return err
		}
	}
	return nil
}

func newMockStore(t *testing.T) (*Store[testItem], sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	s := New(db, models.CollectionInterfaceStatus, "test_records", testInserter)
	return s, mock
}

func TestSaveBatch_NewBatch(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM latest_collection_batches").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO collection_batches").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("INSERT INTO test_records").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO latest_collection_batches").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := s.SaveBatch(context.Background(), "m1", "sw1", "raw", []testItem{{InterfaceName: "GigabitEthernet1/0/1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Changed || result.Batch == nil {
		t.Fatalf("expected a new batch, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveBatch_Unchanged(t *testing.T) {
	s, mock := newMockStore(t)

	items := []testItem{{InterfaceName: "GigabitEthernet1/0/1"}}
	canonical := canonicalizeInterfaceNames(items)
	anyItems := make([]any, len(canonical))
	for i, it := range canonical {
		anyItems[i] = it
	}

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"maintenance_id", "collection_type", "switch_hostname", "batch_id", "data_hash", "collected_at", "last_checked_at"}).
		AddRow("m1", models.CollectionInterfaceStatus, "sw1", 7, mustHash(t, anyItems), time.Now(), time.Now())
	mock.ExpectQuery("SELECT .* FROM latest_collection_batches").WillReturnRows(rows)
	mock.ExpectExec("UPDATE latest_collection_batches SET last_checked_at").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := s.SaveBatch(context.Background(), "m1", "sw1", "raw", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Changed {
		t.Fatalf("expected unchanged result, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func mustHash(t *testing.T, items []any) string {
	t.Helper()
	h, err := hashutil.DataHash(items)
	if err != nil {
		t.Fatalf("hashing items: %v", err)
	}
	return h
}
