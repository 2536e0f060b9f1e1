package models

// ThresholdOverride is a per-maintenance override of one process-config
// threshold default (spec.md §4.6). Unique on (maintenance_id, key).
type ThresholdOverride struct {
	ID            int64  `db:"id" json:"id"`
	MaintenanceID string `db:"maintenance_id" json:"maintenance_id"`
	Key           string `db:"key" json:"key"`
	Value         string `db:"value" json:"value"`
}
