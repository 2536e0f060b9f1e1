package api

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockExpectationsService(t *testing.T) (*ExpectationsService, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewExpectationsService(db), mock
}

func TestCreateExpectation_UplinkRequiresLocalInterface(t *testing.T) {
	svc, _ := newMockExpectationsService(t)

	_, err := svc.Create(context.Background(), ExpectationUplink, map[string]any{
		"maintenance_id": "maint-1", "hostname": "sw1",
	})
	if err == nil {
		t.Fatal("expected validation error for missing local_interface")
	}
}

func TestCreateExpectation_VersionInsertsRow(t *testing.T) {
	svc, mock := newMockExpectationsService(t)

	mock.ExpectQuery(`INSERT INTO version_expectations`).
		WithArgs("maint-1", "sw1", "15.2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "maintenance_id", "hostname", "expected_version"}).
			AddRow(1, "maint-1", "sw1", "15.2"))

	_, err := svc.Create(context.Background(), ExpectationVersion, map[string]any{
		"maintenance_id": "maint-1", "hostname": "sw1", "expected_version": "15.2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteExpectation_UnknownKindRejected(t *testing.T) {
	svc, _ := newMockExpectationsService(t)

	_, err := svc.Delete(context.Background(), ExpectationKind("bogus"), 1)
	if err == nil {
		t.Fatal("expected error for unknown expectation kind")
	}
}
