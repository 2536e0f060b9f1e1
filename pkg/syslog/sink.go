// Package syslog implements spec.md §4.9's System Log Sink: a best-effort
// write path for operator-facing events that must survive a caller's own
// transaction being rolled back. Grounded on
// original_source/app/services/system_log.py::write_log, which opens its
// own session specifically so a failed request doesn't also lose its log
// entry.
package syslog

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

const summaryMaxLen = 500

// Entry is one system log write request. Every field beyond the required
// three is optional context, matching write_log's keyword-only signature.
type Entry struct {
	Level         models.LogLevel
	Source        string
	Summary       string
	Detail        string
	Module        string
	User          string
	MaintenanceID string
	RequestPath   string
	RequestMethod string
	StatusCode    int
	IPAddress     string
}

// Sink writes Entry rows through a dedicated *sqlx.DB connection, never the
// caller's transaction — so a log survives even if the caller's own work
// rolls back. A write failure is logged to the fallback logger and
// swallowed; Write never returns an error a caller needs to check.
type Sink struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func New(db *sqlx.DB, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{db: db, logger: logger}
}

// Write persists one Entry. It never propagates a database error to the
// caller — only stderr/zap sees it, mirroring write_log's except-and-log
// fallback.
func (s *Sink) Write(ctx context.Context, e Entry) {
	summary := e.Summary
	if len(summary) > summaryMaxLen {
		summary = summary[:summaryMaxLen]
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO system_logs
			(level, source, module, summary, detail, "user", maintenance_id,
			 request_path, request_method, status_code, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.Level, e.Source, nullableString(e.Module), summary, nullableString(e.Detail),
		nullableString(e.User), nullableString(e.MaintenanceID), nullableString(e.RequestPath),
		nullableString(e.RequestMethod), nullableInt(e.StatusCode), nullableString(e.IPAddress),
		time.Now().UTC())
	if err != nil {
		s.logger.Error("failed to write system log",
			zap.String("source", e.Source), zap.String("summary", e.Summary), zap.Error(err))
	}
}

// Info/Warning/ErrorEvent are thin convenience wrappers over the scheduler's
// and case engine's most common write_log call shapes.
func (s *Sink) Info(ctx context.Context, source, module, summary, maintenanceID string) {
	s.Write(ctx, Entry{Level: models.LogLevelInfo, Source: source, Module: module, Summary: summary, MaintenanceID: maintenanceID})
}

func (s *Sink) Warning(ctx context.Context, source, module, summary, maintenanceID string) {
	s.Write(ctx, Entry{Level: models.LogLevelWarning, Source: source, Module: module, Summary: summary, MaintenanceID: maintenanceID})
}

func (s *Sink) ErrorEvent(ctx context.Context, source, module, summary, detail, maintenanceID string) {
	s.Write(ctx, Entry{Level: models.LogLevelError, Source: source, Module: module, Summary: summary, Detail: detail, MaintenanceID: maintenanceID})
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}
