package readmodel

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockRawDataService(t *testing.T) (*RawDataService, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	return NewRawDataService(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestRawDataService_QueryWithoutFilterReturnsAllRows(t *testing.T) {
	s, mock := newMockRawDataService(t)

	mock.ExpectQuery(`SELECT id, switch_hostname, raw_data, item_count, collected_at`).
		WithArgs("maint-1", "TRANSCEIVER", int64(0), int64(50)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "switch_hostname", "raw_data", "item_count", "collected_at"}).
			AddRow(1, "sw1", `{"interfaces":[{"status":"up"}]}`, 1, time.Now()))

	result, err := s.Query(context.Background(), "maint-1", "TRANSCEIVER", RawDataFilter{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("expected 1 row, got %d", result.Count)
	}
}

func TestRawDataService_QueryAppliesJqFilter(t *testing.T) {
	s, mock := newMockRawDataService(t)

	mock.ExpectQuery(`SELECT id, switch_hostname, raw_data, item_count, collected_at`).
		WithArgs("maint-1", "TRANSCEIVER", int64(0), int64(50)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "switch_hostname", "raw_data", "item_count", "collected_at"}).
			AddRow(1, "sw1", `{"status":"down"}`, 1, time.Now()).
			AddRow(2, "sw2", `{"status":"up"}`, 1, time.Now()))

	result, err := s.Query(context.Background(), "maint-1", "TRANSCEIVER", RawDataFilter{
		Query: `select(.status == "down")`,
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("expected exactly the down row to survive the filter, got %d", result.Count)
	}
	if result.Rows[0].SwitchHostname != "sw1" {
		t.Fatalf("expected sw1's row to survive, got %s", result.Rows[0].SwitchHostname)
	}
}
