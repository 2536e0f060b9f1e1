package retention

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockSweeper(t *testing.T) (*Sweeper, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	return New(db, 30*24*time.Hour, nil), mock
}

func TestCleanupDeactivated_NoExpiredMaintenancesIsNoop(t *testing.T) {
	s, mock := newMockSweeper(t)

	mock.ExpectQuery(`SELECT id FROM maintenances`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	stats, err := s.CleanupDeactivated(context.Background())
	if err != nil {
		t.Fatalf("CleanupDeactivated returned error: %v", err)
	}
	if stats.MaintenancesCleaned != 0 {
		t.Fatalf("expected no maintenances cleaned, got %d", stats.MaintenancesCleaned)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCleanupDeactivated_DeletesExpiredMaintenanceData(t *testing.T) {
	s, mock := newMockSweeper(t)

	mock.ExpectQuery(`SELECT id FROM maintenances`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("maint-old"))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM latest_collection_batches`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM collection_batches`).
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec(`DELETE FROM collection_errors`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stats, err := s.CleanupDeactivated(context.Background())
	if err != nil {
		t.Fatalf("CleanupDeactivated returned error: %v", err)
	}
	if stats.MaintenancesCleaned != 1 || stats.BatchesDeleted != 12 || stats.LatestDeleted != 3 || stats.ErrorsDeleted != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
