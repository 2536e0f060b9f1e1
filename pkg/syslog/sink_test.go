package syslog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

func newMockSink(t *testing.T) (*Sink, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	return New(db, nil), mock
}

func TestSink_WriteSucceeds(t *testing.T) {
	sink, mock := newMockSink(t)
	mock.ExpectExec("INSERT INTO system_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	sink.Info(context.Background(), "scheduler", "case_sync", "synced 3 cases", "m1")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSink_WriteSwallowsDatabaseError(t *testing.T) {
	sink, mock := newMockSink(t)
	mock.ExpectExec("INSERT INTO system_logs").WillReturnError(errors.New("connection reset"))

	sink.Write(context.Background(), Entry{Level: models.LogLevelError, Source: "api", Summary: "boom"})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSink_TruncatesLongSummary(t *testing.T) {
	sink, mock := newMockSink(t)
	long := make([]byte, summaryMaxLen+50)
	for i := range long {
		long[i] = 'a'
	}

	mock.ExpectExec("INSERT INTO system_logs").WithArgs(
		models.LogLevelInfo, "api", nil, string(long[:summaryMaxLen]), nil, nil, nil, nil, nil, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	sink.Write(context.Background(), Entry{Level: models.LogLevelInfo, Source: "api", Summary: string(long)})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
