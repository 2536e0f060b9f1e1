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

func newPortChannelTestRig(t *testing.T) (*PortChannelEvaluator, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	channels := store.New[models.PortChannelRecord](db, models.CollectionPortChannel, "port_channel_records", nil)
	members := store.New[models.PortChannelMemberRecord](db, models.CollectionPortChannel, "port_channel_member_records", nil)
	return NewPortChannelEvaluator(channels, members), mock
}

func TestPortChannelEvaluator_MemberMismatchFails(t *testing.T) {
	ev, mock := newPortChannelTestRig(t)

	mock.ExpectQuery("SELECT \\* FROM port_channel_expectations").
		WillReturnRows(sqlmock.NewRows([]string{"id", "maintenance_id", "hostname", "port_channel", "member_interfaces"}).
			AddRow(1, "m1", "sw1", "Po1", []byte(`["Gi1/0/1","Gi1/0/2"]`)))

	mock.ExpectQuery("SELECT t\\.\\* FROM port_channel_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "port_channel", "status", "member_interfaces"}).
			AddRow(1, 1, "m1", "sw1", time.Now(), "Po1", "UP", pq1("Gi1/0/1")))

	mock.ExpectQuery("SELECT t\\.\\* FROM port_channel_member_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "port_channel", "interface_name", "status"}))

	result, err := ev.Evaluate(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 1 || result.FailCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPortChannelEvaluator_ExtraMembersTolerated(t *testing.T) {
	ev, mock := newPortChannelTestRig(t)

	mock.ExpectQuery("SELECT \\* FROM port_channel_expectations").
		WillReturnRows(sqlmock.NewRows([]string{"id", "maintenance_id", "hostname", "port_channel", "member_interfaces"}).
			AddRow(1, "m1", "sw1", "Po1", []byte(`["Gi1/0/1"]`)))

	mock.ExpectQuery("SELECT t\\.\\* FROM port_channel_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "port_channel", "status", "member_interfaces"}).
			AddRow(1, 1, "m1", "sw1", time.Now(), "Po1", "UP", pq2("Gi1/0/1", "Gi1/0/2")))

	mock.ExpectQuery("SELECT t\\.\\* FROM port_channel_member_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "port_channel", "interface_name", "status"}).
			AddRow(1, 1, "m1", "sw1", time.Now(), "Po1", "Gi1/0/1", "UP").
			AddRow(2, 1, "m1", "sw1", time.Now(), "Po1", "Gi1/0/2", "UP"))

	result, err := ev.Evaluate(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PassCount != 1 || result.FailCount != 0 {
		t.Fatalf("expected extra actual member to be tolerated, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPortChannelEvaluator_HealthyPasses(t *testing.T) {
	ev, mock := newPortChannelTestRig(t)

	mock.ExpectQuery("SELECT \\* FROM port_channel_expectations").
		WillReturnRows(sqlmock.NewRows([]string{"id", "maintenance_id", "hostname", "port_channel", "member_interfaces"}).
			AddRow(1, "m1", "sw1", "Po1", []byte(`["Gi1/0/1","Gi1/0/2"]`)))

	mock.ExpectQuery("SELECT t\\.\\* FROM port_channel_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "port_channel", "status", "member_interfaces"}).
			AddRow(1, 1, "m1", "sw1", time.Now(), "Po1", "UP", pq2("Gi1/0/1", "Gi1/0/2")))

	mock.ExpectQuery("SELECT t\\.\\* FROM port_channel_member_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "port_channel", "interface_name", "status"}).
			AddRow(1, 1, "m1", "sw1", time.Now(), "Po1", "Gi1/0/1", "UP").
			AddRow(2, 1, "m1", "sw1", time.Now(), "Po1", "Gi1/0/2", "UP"))

	result, err := ev.Evaluate(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PassCount != 1 || result.FailCount != 0 {
		t.Fatalf("expected a pass, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func pq1(a string) string {
	return `{"` + a + `"}`
}

func pq2(a, b string) string {
	return `{"` + a + `","` + b + `"}`
}
