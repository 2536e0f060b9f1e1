package cases

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAutoResolveReachable_LogsAndReturnsCount(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectExec(`UPDATE cases SET status = \$1`).
		WithArgs("RESOLVED", "maint-1", "RESOLVED", "IN_PROGRESS", "DISCUSSING").
		WillReturnResult(sqlmock.NewResult(0, 2))

	resolved, err := s.AutoResolveReachable(context.Background(), "maint-1")
	if err != nil {
		t.Fatalf("AutoResolveReachable returned error: %v", err)
	}
	if resolved != 2 {
		t.Fatalf("expected 2 resolved cases, got %d", resolved)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAutoReopenUnreachable_ReturnsZeroWhenNoneMatch(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectExec(`UPDATE cases SET status = \$1`).
		WithArgs("ASSIGNED", "maint-1", "RESOLVED").
		WillReturnResult(sqlmock.NewResult(0, 0))

	reopened, err := s.AutoReopenUnreachable(context.Background(), "maint-1")
	if err != nil {
		t.Fatalf("AutoReopenUnreachable returned error: %v", err)
	}
	if reopened != 0 {
		t.Fatalf("expected 0 reopened cases, got %d", reopened)
	}
}

func TestUpdateChangeFlags_NoCasesIsNoop(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery(`SELECT id, mac_address FROM cases`).
		WithArgs("maint-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "mac_address"}))

	updated, err := s.UpdateChangeFlags(context.Background(), "maint-1")
	if err != nil {
		t.Fatalf("UpdateChangeFlags returned error: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected no cases updated, got %d", updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
