package api

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/maintenance"
)

func newMockMaintenanceHandlers(t *testing.T) (*handlers, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	return &handlers{deps: Deps{Maintenances: maintenance.New(db)}}, mock
}

func TestCreateMaintenance_ReturnsCreatedRow(t *testing.T) {
	h, mock := newMockMaintenanceHandlers(t)

	mock.ExpectQuery(`INSERT INTO maintenances`).
		WithArgs("maint-1", "switch upgrade").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "is_active", "active_seconds_accumulated", "last_activated_at",
			"deactivated_at", "config_data", "created_at", "updated_at",
		}).AddRow("maint-1", "switch upgrade", true, int64(0), time.Now(), nil, []byte("{}"), time.Now(), time.Now()))

	req := httptest.NewRequest(http.MethodPost, "/api/maintenances",
		bytes.NewBufferString(`{"id":"maint-1","name":"switch upgrade"}`))
	w := httptest.NewRecorder()

	h.createMaintenance(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMaintenance_RejectsMissingFields(t *testing.T) {
	h, _ := newMockMaintenanceHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/maintenances", bytes.NewBufferString(`{"id":""}`))
	w := httptest.NewRecorder()

	h.createMaintenance(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteMaintenance_NotFoundReturns404(t *testing.T) {
	h, mock := newMockMaintenanceHandlers(t)

	mock.ExpectExec(`DELETE FROM maintenances`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodDelete, "/api/maintenances/missing", nil)
	req = withURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	h.deleteMaintenance(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMaintenanceService_GetNotFoundReturnsNilNil(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	svc := maintenance.New(db)

	mock.ExpectQuery(`SELECT \* FROM maintenances`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	got, err := svc.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil result, got %+v", got)
	}
}
