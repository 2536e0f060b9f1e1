// Package cases implements spec.md §4.7's Case Engine: syncing cases from
// the tracked MAC list, computing per-attribute change tags, the ping
// reachability hysteresis state machine, auto-resolve/auto-reopen sweeps,
// and the human-update permission matrix. Grounded throughout on
// original_source/app/services/case_service.py, generalised from
// SQLAlchemy ORM queries to sqlx raw SQL in the style pkg/store already
// establishes for this module.
package cases

import (
	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/notify"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/syslog"
)

// Service is the Case Engine's single entry point; every exported method
// corresponds to one CaseService method in the original.
type Service struct {
	db       *sqlx.DB
	policy   *PermissionChecker
	logs     *syslog.Sink
	notifier notify.Notifier
}

func NewService(db *sqlx.DB, policy *PermissionChecker, logs *syslog.Sink, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &Service{db: db, policy: policy, logs: logs, notifier: notifier}
}
