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

func newMockPingStore(t *testing.T) (*store.Store[models.PingRecord], sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	s := store.New[models.PingRecord](db, models.CollectionPing, "ping_records", nil)
	return s, mock
}

func expectActiveDevices(mock sqlmock.Sqlmock, hostnames ...string) {
	rows := sqlmock.NewRows([]string{"id", "maintenance_id", "old_hostname", "new_hostname"})
	for i, h := range hostnames {
		rows.AddRow(int64(i+1), "m1", h, nil)
	}
	mock.ExpectQuery("SELECT \\* FROM device_list_entries").WillReturnRows(rows)
}

func TestPingEvaluator_ReachableAndMissing(t *testing.T) {
	s, mock := newMockPingStore(t)
	ev := NewPingEvaluator(s, models.CollectionPing)

	pingRows := sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "ip_address", "is_reachable", "success_rate", "last_check_at"}).
		AddRow(1, 1, "m1", "sw1", time.Now(), "10.0.0.1", true, 100.0, time.Now())
	mock.ExpectQuery("SELECT t\\.\\* FROM ping_records").WillReturnRows(pingRows)
	expectActiveDevices(mock, "sw1", "sw2")

	result, err := ev.Evaluate(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 2 || result.PassCount != 1 || result.FailCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Failures) != 1 || result.Failures[0].Device != "sw2" {
		t.Fatalf("expected sw2 to fail as missing, got %+v", result.Failures)
	}
	if ev.IndicatorType() != "ping" {
		t.Fatalf("expected IndicatorType ping, got %s", ev.IndicatorType())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPingEvaluator_ClientPingIndicatorType(t *testing.T) {
	s, _ := newMockPingStore(t)
	ev := NewPingEvaluator(s, models.CollectionClientPing)
	if ev.IndicatorType() != "client_ping" {
		t.Fatalf("expected client_ping, got %s", ev.IndicatorType())
	}
}
