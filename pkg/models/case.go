package models

import "time"

// CaseStatus is one state of the per-MAC case state machine (spec.md §4.7).
type CaseStatus string

const (
	CaseUnassigned CaseStatus = "UNASSIGNED"
	CaseAssigned   CaseStatus = "ASSIGNED"
	CaseInProgress CaseStatus = "IN_PROGRESS"
	CaseDiscussing CaseStatus = "DISCUSSING"
	CaseResolved   CaseStatus = "RESOLVED"
)

// Case tracks one MAC's maintenance outcome. Unique on
// (maintenance_id, mac_address). Invariant P5: status=UNASSIGNED iff
// assignee is nil — every writer must preserve this.
type Case struct {
	ID                 int64            `db:"id" json:"id"`
	MaintenanceID      string           `db:"maintenance_id" json:"maintenance_id"`
	MacAddress         string           `db:"mac_address" json:"mac_address"`
	Status             CaseStatus       `db:"status" json:"status"`
	Assignee           *string          `db:"assignee" json:"assignee,omitempty"`
	Summary            *string          `db:"summary" json:"summary,omitempty"`
	LastPingReachable  *bool            `db:"last_ping_reachable" json:"last_ping_reachable,omitempty"`
	PingReachableSince *time.Time       `db:"ping_reachable_since" json:"ping_reachable_since,omitempty"`
	ChangeFlags        JSONBoolMap      `db:"change_flags" json:"change_flags"`
	CreatedAt          time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updated_at"`
}

// Unassigned reports whether the case satisfies the UNASSIGNED side of P5.
func (c Case) Unassigned() bool {
	return c.Status == CaseUnassigned && c.Assignee == nil
}

// CaseNote is a free-text annotation on a case, cascade-deleted with it.
type CaseNote struct {
	ID        int64     `db:"id" json:"id"`
	CaseID    int64     `db:"case_id" json:"case_id"`
	Author    string    `db:"author" json:"author"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Role is a user's authorization level for case update permission checks
// (spec.md §4.7.6), evaluated by the OPA policy in pkg/cases.
type Role string

const (
	RoleRoot   Role = "ROOT"
	RolePM     Role = "PM"
	RoleMember Role = "MEMBER"
)

// Principal is the pre-authenticated caller identity passed down from the
// HTTP layer's auth stub (see SPEC_FULL.md's Non-goals note on auth).
type Principal struct {
	Username string
	Role     Role
	Active   bool
}
