package cases

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetCaseStats_AggregatesCounts(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cases WHERE maintenance_id = \$1$`).
		WithArgs("maint-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	for range 5 {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cases WHERE maintenance_id = \$1 AND status = \$2`).
			WithArgs("maint-1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	}
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cases\s+WHERE maintenance_id = \$1 AND status <> 'RESOLVED'`).
		WithArgs("maint-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	stats, err := s.GetCaseStats(context.Background(), "maint-1")
	if err != nil {
		t.Fatalf("GetCaseStats returned error: %v", err)
	}
	if stats.Total != 10 {
		t.Fatalf("expected total 10, got %d", stats.Total)
	}
	if stats.Active != 9 {
		t.Fatalf("expected active = total - resolved = 9, got %d", stats.Active)
	}
	if stats.PingUnreachable != 2 {
		t.Fatalf("expected 2 unreachable cases, got %d", stats.PingUnreachable)
	}
}

func TestGetCaseDetail_NotFoundReturnsNilNil(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery(`SELECT c\.\*`).
		WithArgs(int64(99), "maint-1").
		WillReturnError(sql.ErrNoRows)

	detail, err := s.GetCaseDetail(context.Background(), 99, "maint-1")
	if err != nil {
		t.Fatalf("expected nil error for not-found case, got %v", err)
	}
	if detail != nil {
		t.Fatalf("expected nil detail for not-found case, got %+v", detail)
	}
}
