package cases

import (
	"context"
	"fmt"
	"strings"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// UpdateResult is UpdateCase's success response, mirroring the subset of
// fields update_case returns on the happy path.
type UpdateResult struct {
	ID        int64             `json:"id"`
	Status    models.CaseStatus `json:"status"`
	Assignee  *string           `json:"assignee,omitempty"`
	Summary   *string           `json:"summary,omitempty"`
	UpdatedAt string            `json:"updated_at"`
}

// DenialError reports a permission or validation denial; callers that
// need an HTTP status should map it themselves (the original returns the
// same {"error": ...} shape regardless of cause).
type DenialError struct {
	Reason string
}

func (e *DenialError) Error() string { return e.Reason }

// UpdateCase applies a partial update to one case on behalf of principal,
// ported from case_service.py::update_case. Returns a *DenialError (not a
// plain error) when the operation is well-formed but not permitted or
// fails validation, so callers can distinguish "400-ish" outcomes from
// genuine infrastructure failures.
func (s *Service) UpdateCase(ctx context.Context, caseID int64, maintenanceID string, principal models.Principal, req UpdateRequest) (*UpdateResult, error) {
	var existing models.Case
	err := s.db.GetContext(ctx, &existing,
		`SELECT * FROM cases WHERE id = $1 AND maintenance_id = $2`, caseID, maintenanceID)
	if err != nil {
		return nil, nil //nolint:nilerr // not-found -> nil result, no error
	}

	if denyReason, err := s.policy.Check(ctx, existing, principal, req); err != nil {
		return nil, fmt.Errorf("checking update permission: %w", err)
	} else if denyReason != "" {
		return nil, &DenialError{Reason: denyReason}
	}

	newSummary := existing.Summary
	if req.Summary != nil {
		trimmed := strings.TrimSpace(*req.Summary)
		if trimmed == "" {
			newSummary = nil
		} else {
			newSummary = &trimmed
		}
	}

	newStatus := existing.Status
	if req.Status != nil {
		switch *req.Status {
		case models.CaseUnassigned, models.CaseAssigned, models.CaseInProgress, models.CaseDiscussing, models.CaseResolved:
		default:
			return nil, &DenialError{Reason: fmt.Sprintf("無效的狀態值: %s", *req.Status)}
		}
		if *req.Status == models.CaseResolved && (existing.LastPingReachable == nil || !*existing.LastPingReachable) {
			return nil, &DenialError{Reason: "Ping 不可達時無法標記為已結案"}
		}
		newStatus = *req.Status
	}

	newAssignee := existing.Assignee
	if req.Assignee != nil {
		if *req.Assignee != "" {
			var active bool
			err := s.db.GetContext(ctx, &active,
				`SELECT is_active FROM users WHERE username = $1`, *req.Assignee)
			if err != nil || !active {
				return nil, &DenialError{Reason: fmt.Sprintf("找不到使用者: %s", *req.Assignee)}
			}
			newAssignee = req.Assignee
			if newStatus == models.CaseUnassigned {
				newStatus = models.CaseAssigned
			}
		} else {
			newAssignee = nil
			newStatus = models.CaseUnassigned
		}
	}

	var updated models.Case
	if err := s.db.GetContext(ctx, &updated, `
		UPDATE cases SET summary = $1, status = $2, assignee = $3, updated_at = now()
		WHERE id = $4
		RETURNING *`, newSummary, newStatus, newAssignee, caseID); err != nil {
		return nil, fmt.Errorf("updating case %d: %w", caseID, err)
	}

	return &UpdateResult{
		ID:        updated.ID,
		Status:    updated.Status,
		Assignee:  updated.Assignee,
		Summary:   updated.Summary,
		UpdatedAt: updated.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// AddNote appends a discussion note; any logged-in user may add one,
// ported from case_service.py::add_note.
func (s *Service) AddNote(ctx context.Context, caseID int64, maintenanceID, author, content string) (*models.CaseNote, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM cases WHERE id = $1 AND maintenance_id = $2)`, caseID, maintenanceID); err != nil {
		return nil, fmt.Errorf("checking case exists: %w", err)
	}
	if !exists {
		return nil, nil
	}

	var note models.CaseNote
	if err := s.db.GetContext(ctx, &note, `
		INSERT INTO case_notes (case_id, author, content)
		VALUES ($1, $2, $3)
		RETURNING *`, caseID, author, strings.TrimSpace(content)); err != nil {
		return nil, fmt.Errorf("inserting note: %w", err)
	}
	return &note, nil
}

// UpdateNote edits a note's content; only the original author may do so,
// ported from case_service.py::update_note.
func (s *Service) UpdateNote(ctx context.Context, noteID, caseID int64, author, content string) (*models.CaseNote, error) {
	var note models.CaseNote
	if err := s.db.GetContext(ctx, &note,
		`SELECT * FROM case_notes WHERE id = $1 AND case_id = $2`, noteID, caseID); err != nil {
		return nil, nil //nolint:nilerr // not-found -> nil result, no error
	}
	if note.Author != author {
		return nil, &DenialError{Reason: "只有原作者可以修改筆記"}
	}

	if err := s.db.GetContext(ctx, &note, `
		UPDATE case_notes SET content = $1 WHERE id = $2
		RETURNING *`, strings.TrimSpace(content), noteID); err != nil {
		return nil, fmt.Errorf("updating note %d: %w", noteID, err)
	}
	return &note, nil
}

// DeleteNote removes a note; only the original author may do so, ported
// from case_service.py::delete_note.
func (s *Service) DeleteNote(ctx context.Context, noteID, caseID int64, author string) (bool, error) {
	var note models.CaseNote
	if err := s.db.GetContext(ctx, &note,
		`SELECT * FROM case_notes WHERE id = $1 AND case_id = $2`, noteID, caseID); err != nil {
		return false, nil //nolint:nilerr // not-found -> false, no error
	}
	if note.Author != author {
		return false, &DenialError{Reason: "只有原作者可以刪除筆記"}
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM case_notes WHERE id = $1`, noteID); err != nil {
		return false, fmt.Errorf("deleting note %d: %w", noteID, err)
	}
	return true, nil
}
