package cases

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

//go:embed policy/case_update.rego
var caseUpdatePolicy string

// UpdateRequest names which parts of a case a caller is attempting to
// change; nil fields are left untouched, mirroring update_case's
// Optional-parameter "only touch what was supplied" contract.
type UpdateRequest struct {
	Summary  *string
	Status   *models.CaseStatus
	Assignee *string // non-nil, empty string means "unassign"
}

// PermissionChecker evaluates spec.md §4.7.6's case-update permission
// matrix through an embedded OPA policy, so the matrix lives as
// declarative Rego rather than nested Go conditionals.
type PermissionChecker struct {
	query rego.PreparedEvalQuery
}

func NewPermissionChecker(ctx context.Context) (*PermissionChecker, error) {
	query, err := rego.New(
		rego.Query("data.case_update"),
		rego.Module("case_update.rego", caseUpdatePolicy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("preparing case update policy: %w", err)
	}
	return &PermissionChecker{query: query}, nil
}

// Check returns an empty string if req is permitted against existing,
// requested on behalf of principal, or a human-readable Chinese denial
// reason matching the original's error strings otherwise.
func (p *PermissionChecker) Check(ctx context.Context, existing models.Case, principal models.Principal, req UpdateRequest) (string, error) {
	input := map[string]any{
		"wants_content_change":  req.Summary != nil || req.Status != nil,
		"wants_assignee_change": req.Assignee != nil,
		"already_assigned":      existing.Assignee != nil,
		"is_assignee":           existing.Assignee != nil && *existing.Assignee == principal.Username,
		"is_root_or_pm":         principal.Role == models.RoleRoot || principal.Role == models.RolePM,
		"case_resolved":         existing.Status == models.CaseResolved,
	}

	results, err := p.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("evaluating case update policy: %w", err)
	}
	if len(results) == 0 {
		return "permission evaluation produced no result", nil
	}

	decision, ok := results[0].Expressions[0].Value.(map[string]any)
	if !ok {
		return "permission evaluation returned an unexpected shape", nil
	}

	if allow, _ := decision["allow"].(bool); allow {
		return "", nil
	}
	if reason, ok := decision["deny_reason"].(string); ok {
		return reason, nil
	}
	return "permission denied", nil
}
