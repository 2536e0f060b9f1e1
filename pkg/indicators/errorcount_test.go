package indicators

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

func TestErrorCountEvaluator_CrcGrowthFails(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	s := store.New[models.InterfaceErrorRecord](db, models.CollectionInterfaceError, "interface_error_records", nil)
	ev := NewErrorCountEvaluator(s)

	mock.ExpectQuery("SELECT t\\.\\* FROM interface_error_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "interface_name", "crc_errors"}).
			AddRow(1, 2, "m1", "sw1", time.Now(), "Gi1/0/1", int64(15)))
	mock.ExpectQuery("SELECT \\* FROM device_list_entries").
		WillReturnRows(sqlmock.NewRows([]string{"id", "maintenance_id", "old_hostname", "new_hostname"}).
			AddRow(1, "m1", "sw1", nil))
	mock.ExpectQuery("SELECT t\\.\\* FROM interface_error_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "interface_name", "crc_errors"}).
			AddRow(2, 1, "m1", "sw1", time.Now(), "Gi1/0/1", int64(10)))

	result, err := ev.Evaluate(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 1 || result.FailCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	want := "CRC 增長 +5 (10 → 15)"
	if got := result.Failures[0].Reason; got != want {
		t.Fatalf("expected reason %q, got %q", want, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
