// Package indicators implements spec.md §4.5's eight evaluators
// (Transceiver, Fan, Power, PortChannel, Uplink, Version, ErrorCount,
// Ping). Each evaluator reads the latest typed rows for a maintenance
// through pkg/store, restricts itself to the maintenance's active device
// list, and compares against either §4.6 thresholds or expectation rows.
//
// Grounded on original_source/app/indicators/*.py: the per-evaluator
// semantics are ported 1:1 from transceiver.py, fan.py, power.py,
// port_channel.py, uplink.py, version.py, error_count.py, and ping.py;
// base.py's IndicatorEvaluationResult becomes EvaluationResult below.
package indicators

// Detail is one failing or passing record surfaced in an EvaluationResult.
type Detail struct {
	Device    string         `json:"device"`
	Interface string         `json:"interface,omitempty"`
	Reason    string         `json:"reason"`
	Data      map[string]any `json:"data,omitempty"`
}

// EvaluationResult is the outcome of one evaluator run (spec.md §4.5),
// ported from original_source/app/indicators/base.py's
// IndicatorEvaluationResult.
type EvaluationResult struct {
	IndicatorType string             `json:"indicator_type"`
	MaintenanceID string             `json:"maintenance_id"`
	TotalCount    int                `json:"total_count"`
	PassCount     int                `json:"pass_count"`
	FailCount     int                `json:"fail_count"`
	PassRates     map[string]float64 `json:"pass_rates"`
	Failures      []Detail           `json:"failures,omitempty"`
	Passes        []Detail           `json:"passes,omitempty"`
	Summary       string             `json:"summary,omitempty"`
}

// PassRatePercent is the overall pass rate, 0 when TotalCount is 0.
func (r EvaluationResult) PassRatePercent() float64 {
	if r.TotalCount == 0 {
		return 0
	}
	return float64(r.PassCount) / float64(r.TotalCount) * 100
}

// maxPasses caps the representative "passes" sample surfaced alongside the
// full failure list (spec.md §4.5: "passes truncated to at most 10
// representative entries").
const maxPasses = 10

func appendPass(passes []Detail, d Detail) []Detail {
	if len(passes) >= maxPasses {
		return passes
	}
	return append(passes, d)
}

func percent(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}
