package models

import "time"

// LogLevel mirrors the severities spec.md §7 maps error kinds onto.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARNING"
	LogLevelError   LogLevel = "ERROR"
)

// SystemLog is one structured log row written through the independent-
// session sink (spec.md §4.9), so it survives a caller's rolled-back
// transaction.
type SystemLog struct {
	ID            int64     `db:"id" json:"id"`
	Level         LogLevel  `db:"level" json:"level"`
	Source        string    `db:"source" json:"source"`
	Module        string    `db:"module" json:"module"`
	Summary       string    `db:"summary" json:"summary"`
	Detail        string    `db:"detail" json:"detail,omitempty"`
	User          *string   `db:"user" json:"user,omitempty"`
	MaintenanceID *string   `db:"maintenance_id" json:"maintenance_id,omitempty"`
	RequestPath   *string   `db:"request_path" json:"request_path,omitempty"`
	RequestMethod *string   `db:"request_method" json:"request_method,omitempty"`
	StatusCode    *int      `db:"status_code" json:"status_code,omitempty"`
	IPAddress     *string   `db:"ip_address" json:"ip_address,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// User is the minimal identity row the Case Engine consults when picking a
// default assignee (the "lowest-id ROOT user" rule, spec.md §4.7.1) and
// when validating reassignment targets (§4.7.6).
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Role     Role   `db:"role" json:"role"`
	IsActive bool   `db:"is_active" json:"is_active"`
}
