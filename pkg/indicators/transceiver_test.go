package indicators

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/internal/config"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

func newMockThresholdService(t *testing.T) (*ThresholdService, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	defaults := config.ThresholdDefaults{
		TransceiverTxPowerMin: -10, TransceiverTxPowerMax: 3,
		TransceiverRxPowerMin: -15, TransceiverRxPowerMax: 0,
		TransceiverTemperatureMin: 10, TransceiverTemperatureMax: 70,
		TransceiverVoltageMin: 3, TransceiverVoltageMax: 3.6,
		HealthyStatuses:    []string{"ok", "good", "normal", "active"},
		PingSuccessRateMin: 80,
	}
	return NewThresholdService(db, nil, defaults), mock
}

func f64(v float64) *float64 { return &v }

func TestTransceiverEvaluator_OutOfRangeFails(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	s := store.New[models.TransceiverRecord](db, models.CollectionTransceiver, "transceiver_records", nil)
	thresholds, thresholdMock := newMockThresholdService(t)

	ev := NewTransceiverEvaluator(s, thresholds)

	thresholdMock.ExpectQuery("SELECT \\* FROM threshold_overrides").
		WillReturnRows(sqlmock.NewRows([]string{"id", "maintenance_id", "key", "value"}))

	rows := sqlmock.NewRows([]string{"id", "batch_id", "maintenance_id", "switch_hostname", "collected_at", "interface_name", "tx_power", "rx_power", "temperature", "voltage"}).
		AddRow(1, 1, "m1", "sw1", time.Now(), "Gi1/0/1", f64(-20), f64(5), f64(80), f64(2))
	mock.ExpectQuery("SELECT t\\.\\* FROM transceiver_records").WillReturnRows(rows)

	activeRows := sqlmock.NewRows([]string{"id", "maintenance_id", "old_hostname", "new_hostname"}).
		AddRow(1, "m1", "sw1", nil)
	mock.ExpectQuery("SELECT \\* FROM device_list_entries").WillReturnRows(activeRows)

	result, err := ev.Evaluate(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 1 || result.FailCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected one failure, got %+v", result.Failures)
	}
	reason := result.Failures[0].Reason
	for _, want := range []string{"Tx Power 過低", "Rx Power 過高", "溫度過高", "電壓過低"} {
		if !strings.Contains(reason, want) {
			t.Fatalf("expected reason to contain %q, got %q", want, reason)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet store expectations: %v", err)
	}
	if err := thresholdMock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet threshold expectations: %v", err)
	}
}
