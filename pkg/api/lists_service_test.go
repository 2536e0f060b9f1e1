package api

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

func newMockListsService(t *testing.T) (*ListsService, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewListsService(db), mock
}

func TestCreateDeviceEntry_RejectsCrossMapping(t *testing.T) {
	svc, mock := newMockListsService(t)

	oldHost, newHost := "sw-old", "sw-new"
	mock.ExpectQuery(`SELECT \* FROM device_list_entries`).
		WithArgs("maint-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "maintenance_id", "old_hostname", "old_ip", "old_vendor",
			"new_hostname", "new_ip", "new_vendor", "use_same_port", "tenant_group",
			"is_reachable", "last_check_at", "description",
		}).AddRow(1, "maint-1", newHost, nil, nil, oldHost, nil, nil, false, nil, nil, nil, nil))

	_, err := svc.CreateDeviceEntry(context.Background(), models.DeviceListEntry{
		MaintenanceID: "maint-1",
		OldHostname:   &oldHost,
		NewHostname:   &newHost,
	})
	if err == nil {
		t.Fatal("expected cross-mapping rejection, got nil error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMacEntry_NormalizesAddress(t *testing.T) {
	svc, mock := newMockListsService(t)

	mock.ExpectQuery(`INSERT INTO mac_list_entries`).
		WithArgs("maint-1", "AA:BB:CC:DD:EE:FF", nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "maintenance_id", "mac_address", "description", "default_assignee", "ip_address", "tenant_group",
		}).AddRow(1, "maint-1", "AA:BB:CC:DD:EE:FF", nil, nil, nil, nil))

	created, err := svc.CreateMacEntry(context.Background(), models.MacListEntry{
		MaintenanceID: "maint-1",
		MacAddress:    "aa-bb-cc-dd-ee-ff",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.MacAddress != "AA:BB:CC:DD:EE:FF" {
		t.Fatalf("expected normalized MAC, got %q", created.MacAddress)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportMacEntries_RejectsDuplicateMAC(t *testing.T) {
	svc, _ := newMockListsService(t)

	_, err := svc.ImportMacEntries(context.Background(), "maint-1", []models.MacListEntry{
		{MaintenanceID: "maint-1", MacAddress: "AA:BB:CC:DD:EE:FF"},
		{MaintenanceID: "maint-1", MacAddress: "aa-bb-cc-dd-ee-ff"},
	})
	if err == nil {
		t.Fatal("expected duplicate MAC rejection, got nil error")
	}
}
