package cases

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

func nowStub() time.Time { return time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC) }

func newMockServiceWithPolicy(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	policy, err := NewPermissionChecker(context.Background())
	if err != nil {
		t.Fatalf("preparing policy: %v", err)
	}
	s, mock := newMockService(t)
	s.policy = policy
	return s, mock
}

func caseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "maintenance_id", "mac_address", "status", "assignee", "summary",
		"last_ping_reachable", "ping_reachable_since", "change_flags", "created_at", "updated_at",
	})
}

func TestUpdateCase_NonAssigneeCannotChangeSummary(t *testing.T) {
	s, mock := newMockServiceWithPolicy(t)

	mock.ExpectQuery(`SELECT \* FROM cases`).
		WithArgs(int64(1), "maint-1").
		WillReturnRows(caseRows().AddRow(1, "maint-1", "AA:BB:CC:DD:EE:01", "ASSIGNED", "alice", nil, nil, nil, []byte("{}"), nowStub(), nowStub()))

	newSummary := "trying to edit"
	_, err := s.UpdateCase(context.Background(), 1, "maint-1", models.Principal{Username: "bob", Role: models.RoleMember, Active: true},
		UpdateRequest{Summary: &newSummary})
	if _, ok := err.(*DenialError); !ok {
		t.Fatalf("expected a DenialError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateCase_ResolveBlockedWhenPingUnreachable(t *testing.T) {
	s, mock := newMockServiceWithPolicy(t)

	mock.ExpectQuery(`SELECT \* FROM cases`).
		WithArgs(int64(1), "maint-1").
		WillReturnRows(caseRows().AddRow(1, "maint-1", "AA:BB:CC:DD:EE:01", "ASSIGNED", "alice", nil, false, nil, []byte("{}"), nowStub(), nowStub()))

	resolved := models.CaseResolved
	_, err := s.UpdateCase(context.Background(), 1, "maint-1", models.Principal{Username: "alice", Role: models.RoleMember, Active: true},
		UpdateRequest{Status: &resolved})
	denial, ok := err.(*DenialError)
	if !ok {
		t.Fatalf("expected a DenialError, got %v", err)
	}
	if denial.Reason != "Ping 不可達時無法標記為已結案" {
		t.Fatalf("unexpected denial reason: %s", denial.Reason)
	}
}

func TestUpdateCase_UnassignedCaseRequiresRootOrPM(t *testing.T) {
	s, mock := newMockServiceWithPolicy(t)

	mock.ExpectQuery(`SELECT \* FROM cases`).
		WithArgs(int64(1), "maint-1").
		WillReturnRows(caseRows().AddRow(1, "maint-1", "AA:BB:CC:DD:EE:01", "UNASSIGNED", nil, nil, nil, nil, []byte("{}"), nowStub(), nowStub()))

	assignee := "carol"
	_, err := s.UpdateCase(context.Background(), 1, "maint-1", models.Principal{Username: "dave", Role: models.RoleMember, Active: true},
		UpdateRequest{Assignee: &assignee})
	if _, ok := err.(*DenialError); !ok {
		t.Fatalf("expected a DenialError for a MEMBER assigning an unassigned case, got %v", err)
	}
}
