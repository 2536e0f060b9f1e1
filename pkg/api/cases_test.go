package api

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/cases"
)

func newMockCaseHandlers(t *testing.T) (*handlers, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	return &handlers{deps: Deps{Cases: cases.NewService(db, nil, nil, nil)}}, mock
}

func TestListCases_RequiresMaintenanceID(t *testing.T) {
	h, _ := newMockCaseHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	w := httptest.NewRecorder()

	h.listCases(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListCases_AppliesQueryFilters(t *testing.T) {
	h, mock := newMockCaseHandlers(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cases`).
		WithArgs("maint-1", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT c\.\*`).
		WithArgs("maint-1", "alice", 0, 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "maintenance_id", "mac_address", "status", "assignee", "summary",
			"last_ping_reachable", "ping_reachable_since", "change_flags", "created_at", "updated_at",
			"mac_ip_address", "mac_description", "mac_tenant_group",
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/cases?maintenance_id=maint-1&assignee=alice", nil)
	w := httptest.NewRecorder()

	h.listCases(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateCase_NotFoundReturns404(t *testing.T) {
	h, mock := newMockCaseHandlers(t)

	mock.ExpectQuery(`SELECT \* FROM cases`).
		WithArgs(int64(99), "maint-1").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodPut, "/api/cases/99?maintenance_id=maint-1",
		bytes.NewBufferString(`{"summary":"x"}`))
	req = withURLParam(req, "id", "99")
	w := httptest.NewRecorder()

	h.updateCase(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
