// Package metrics defines the Prometheus instrumentation carried
// alongside spec.md's collection/indicator/case pipelines (SPEC_FULL.md's
// ambient-stack expansion — the spec itself names no metrics, but the
// teacher's dependency pack carries prometheus/client_golang and every
// long-running job in this module is exactly the kind of thing an
// operator dashboards).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry is the module's single metrics registry; cmd/maintcore wires
// it to an HTTP handler for scraping.
var Registry = prometheus.NewRegistry()

var (
	// CollectionDuration times one pipeline tick, labelled by collection
	// type and outcome (spec.md §4.2).
	CollectionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maintcore_collection_duration_seconds",
		Help:    "Duration of one collection pipeline tick.",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection_type", "outcome"})

	// BatchChangeRate counts how often a tick produced a new CollectionBatch
	// versus a no-op (hash unchanged), per collection type (spec.md §4.1).
	BatchChangeRate = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maintcore_batch_change_total",
		Help: "Count of collection batches, split by whether the data hash changed.",
	}, []string{"collection_type", "changed"})

	// IndicatorPassRate records each evaluator run's pass rate (spec.md §4.5).
	IndicatorPassRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "maintcore_indicator_pass_rate",
		Help: "Most recent pass rate (0-100) for one indicator evaluator.",
	}, []string{"indicator_type", "maintenance_id"})

	// CasesByStatus tracks the case board's per-status counts (spec.md §4.7).
	CasesByStatus = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "maintcore_cases_by_status",
		Help: "Current case count by status, per maintenance.",
	}, []string{"status", "maintenance_id"})

	// CollectionErrors counts fetch/parse failures that were recorded and
	// skipped rather than aborting a tick (spec.md §4.2 steps 3-4).
	CollectionErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maintcore_collection_errors_total",
		Help: "Count of per-device collection errors recorded during a tick.",
	}, []string{"collection_type", "switch_hostname"})
)

func init() {
	Registry.MustRegister(CollectionDuration, BatchChangeRate, IndicatorPassRate, CasesByStatus, CollectionErrors)
}
