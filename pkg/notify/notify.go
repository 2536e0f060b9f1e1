// Package notify defines the Case Engine's notification boundary
// (spec.md §1 Out of scope: "email/chat notifications" is an external
// collaborator; the core only owns the interface it calls). No original
// Python source notifies on auto-resolve/auto-reopen — the Slack adapter
// is this port's concrete realisation of that boundary, chosen because
// slack-go/slack sits unused in the dependency pack otherwise.
package notify

import "context"

// EventType names a Case Engine lifecycle transition a Notifier cares
// about (spec.md §4.7.3/§4.7.4's auto-resolve/auto-reopen sweeps).
type EventType string

const (
	CaseAutoResolved EventType = "case_auto_resolved"
	CaseAutoReopened EventType = "case_auto_reopened"
)

// Event is one notification-worthy occurrence.
type Event struct {
	Type          EventType
	MaintenanceID string
	Count         int
	Message       string
}

// Notifier is the interface the Case Engine depends on; delivery itself
// is out of scope for the core (spec.md §1).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NoopNotifier discards every event — the default when no channel is
// configured, so the core never requires Slack to function.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Event) error { return nil }
