package cases

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/metrics"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// CaseListFilter narrows GetCases; zero-value fields are "no filter".
type CaseListFilter struct {
	Assignee        string
	Status          models.CaseStatus
	PingReachable   *bool
	Search          string
	IncludeResolved bool
	Page            int
	PageSize        int
}

// CaseListItem is one row of GetCases's result, pre-joined with the mac
// list entry and pre-computed change tags.
type CaseListItem struct {
	models.Case
	IPAddress   *string     `json:"ip_address,omitempty"`
	Description *string     `json:"description,omitempty"`
	TenantGroup *string     `json:"tenant_group,omitempty"`
	ChangeTags  []ChangeTag `json:"change_tags"`
}

// CaseListResult is GetCases's paginated envelope.
type CaseListResult struct {
	Cases      []CaseListItem `json:"cases"`
	Count      int            `json:"count"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// GetCases lists cases for a maintenance with filtering, search, and
// pagination, ordered ping-unreachable-first (or changed-attributes-first
// when filtering on RESOLVED), ported from case_service.py::get_cases.
func (s *Service) GetCases(ctx context.Context, maintenanceID string, filter CaseListFilter) (CaseListResult, error) {
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var where strings.Builder
	where.WriteString("c.maintenance_id = $1")
	args := []any{maintenanceID}

	if filter.Assignee != "" {
		args = append(args, filter.Assignee)
		fmt.Fprintf(&where, " AND c.assignee = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&where, " AND c.status = $%d", len(args))
	} else if !filter.IncludeResolved {
		where.WriteString(" AND c.status <> 'RESOLVED'")
	}
	if filter.PingReachable != nil {
		if *filter.PingReachable {
			where.WriteString(" AND c.last_ping_reachable = true")
		} else {
			where.WriteString(" AND (c.last_ping_reachable = false OR c.last_ping_reachable IS NULL)")
		}
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		fmt.Fprintf(&where, " AND (c.mac_address ILIKE $%d OR m.ip_address ILIKE $%d OR m.description ILIKE $%d)", len(args), len(args), len(args))
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM cases c
		LEFT JOIN mac_list_entries m
			ON m.maintenance_id = c.maintenance_id AND m.mac_address = c.mac_address
		WHERE %s`, where.String())
	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return CaseListResult{}, fmt.Errorf("counting cases: %w", err)
	}

	orderBy := "(CASE WHEN c.last_ping_reachable IS NULL THEN 0 WHEN c.last_ping_reachable = false THEN 1 ELSE 2 END), c.mac_address"
	if filter.Status == models.CaseResolved {
		orderBy = "(CASE WHEN c.change_flags::text LIKE '%true%' THEN 0 ELSE 1 END), c.mac_address"
	}

	listQuery := fmt.Sprintf(`
		SELECT c.*, m.ip_address AS mac_ip_address, m.description AS mac_description, m.tenant_group AS mac_tenant_group
		FROM cases c
		LEFT JOIN mac_list_entries m
			ON m.maintenance_id = c.maintenance_id AND m.mac_address = c.mac_address
		WHERE %s
		ORDER BY %s
		OFFSET $%d LIMIT $%d`, where.String(), orderBy, len(args)+1, len(args)+2)
	args = append(args, (page-1)*pageSize, pageSize)

	type row struct {
		models.Case
		MacIPAddress   *string `db:"mac_ip_address"`
		MacDescription *string `db:"mac_description"`
		MacTenantGroup *string `db:"mac_tenant_group"`
	}
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return CaseListResult{}, fmt.Errorf("listing cases: %w", err)
	}

	macAddresses := make([]string, len(rows))
	for i, r := range rows {
		macAddresses[i] = r.MacAddress
	}
	recordsByMac, err := s.clientRecordsByMac(ctx, maintenanceID, macAddresses)
	if err != nil {
		return CaseListResult{}, err
	}

	items := make([]CaseListItem, len(rows))
	for i, r := range rows {
		items[i] = CaseListItem{
			Case:        r.Case,
			IPAddress:   r.MacIPAddress,
			Description: r.MacDescription,
			TenantGroup: r.MacTenantGroup,
			ChangeTags:  computeChangeTags(recordsByMac[strings.ToUpper(r.MacAddress)]),
		}
	}

	totalPages := 1
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return CaseListResult{
		Cases:      items,
		Count:      len(items),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) clientRecordsByMac(ctx context.Context, maintenanceID string, macAddresses []string) (map[string][]models.ClientRecord, error) {
	result := make(map[string][]models.ClientRecord)
	if len(macAddresses) == 0 {
		return result, nil
	}
	var records []models.ClientRecord
	query, args, err := sqlx.In(`
		SELECT * FROM client_records
		WHERE maintenance_id = ? AND mac_address IN (?)
		ORDER BY mac_address, collected_at`, maintenanceID, macAddresses)
	if err != nil {
		return nil, fmt.Errorf("building client records query: %w", err)
	}
	if err := s.db.SelectContext(ctx, &records, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("loading client records: %w", err)
	}
	for _, r := range records {
		key := strings.ToUpper(r.MacAddress)
		result[key] = append(result[key], r)
	}
	return result, nil
}

// CaseStats summarizes per-status counts for a maintenance's case board.
type CaseStats struct {
	Total           int `json:"total"`
	Unassigned      int `json:"unassigned"`
	Assigned        int `json:"assigned"`
	InProgress      int `json:"in_progress"`
	Discussing      int `json:"discussing"`
	Resolved        int `json:"resolved"`
	PingUnreachable int `json:"ping_unreachable"`
	Active          int `json:"active"`
}

// GetCaseStats ports case_service.py::get_case_stats.
func (s *Service) GetCaseStats(ctx context.Context, maintenanceID string) (CaseStats, error) {
	var stats CaseStats
	if err := s.db.GetContext(ctx, &stats.Total, `SELECT COUNT(*) FROM cases WHERE maintenance_id = $1`, maintenanceID); err != nil {
		return CaseStats{}, fmt.Errorf("counting cases: %w", err)
	}

	statusCounts := map[models.CaseStatus]*int{
		models.CaseUnassigned: &stats.Unassigned,
		models.CaseAssigned:   &stats.Assigned,
		models.CaseInProgress: &stats.InProgress,
		models.CaseDiscussing: &stats.Discussing,
		models.CaseResolved:   &stats.Resolved,
	}
	for status, dest := range statusCounts {
		if err := s.db.GetContext(ctx, dest,
			`SELECT COUNT(*) FROM cases WHERE maintenance_id = $1 AND status = $2`, maintenanceID, status); err != nil {
			return CaseStats{}, fmt.Errorf("counting %s cases: %w", status, err)
		}
	}

	if err := s.db.GetContext(ctx, &stats.PingUnreachable, `
		SELECT COUNT(*) FROM cases
		WHERE maintenance_id = $1 AND status <> 'RESOLVED'
			AND (last_ping_reachable = false OR last_ping_reachable IS NULL)`, maintenanceID); err != nil {
		return CaseStats{}, fmt.Errorf("counting unreachable cases: %w", err)
	}

	stats.Active = stats.Total - stats.Resolved

	metrics.CasesByStatus.WithLabelValues(string(models.CaseUnassigned), maintenanceID).Set(float64(stats.Unassigned))
	metrics.CasesByStatus.WithLabelValues(string(models.CaseAssigned), maintenanceID).Set(float64(stats.Assigned))
	metrics.CasesByStatus.WithLabelValues(string(models.CaseInProgress), maintenanceID).Set(float64(stats.InProgress))
	metrics.CasesByStatus.WithLabelValues(string(models.CaseDiscussing), maintenanceID).Set(float64(stats.Discussing))
	metrics.CasesByStatus.WithLabelValues(string(models.CaseResolved), maintenanceID).Set(float64(stats.Resolved))

	return stats, nil
}

// ComputeChangeTags ports case_service.py::compute_change_tags for a
// single MAC.
func (s *Service) ComputeChangeTags(ctx context.Context, maintenanceID, macAddress string) ([]ChangeTag, error) {
	var records []models.ClientRecord
	if err := s.db.SelectContext(ctx, &records, `
		SELECT * FROM client_records
		WHERE maintenance_id = $1 AND mac_address = $2
		ORDER BY collected_at`, maintenanceID, strings.ToUpper(macAddress)); err != nil {
		return nil, fmt.Errorf("loading client records: %w", err)
	}
	return computeChangeTags(records), nil
}

// ChangeTimelineEntry is one historical observation of a tracked
// attribute, newest first.
type ChangeTimelineEntry struct {
	Value          any     `json:"value"`
	CollectedAt    string  `json:"collected_at"`
	SwitchHostname *string `json:"switch_hostname,omitempty"`
}

// GetChangeTimeline ports case_service.py::get_change_timeline.
func (s *Service) GetChangeTimeline(ctx context.Context, maintenanceID, macAddress string, attribute models.TrackedAttribute) ([]ChangeTimelineEntry, error) {
	valid := false
	for _, a := range models.TrackedAttributes {
		if a == attribute {
			valid = true
			break
		}
	}
	if !valid {
		return nil, nil
	}

	var records []models.ClientRecord
	if err := s.db.SelectContext(ctx, &records, `
		SELECT * FROM client_records
		WHERE maintenance_id = $1 AND mac_address = $2
		ORDER BY collected_at DESC`, maintenanceID, strings.ToUpper(macAddress)); err != nil {
		return nil, fmt.Errorf("loading client records: %w", err)
	}

	timeline := make([]ChangeTimelineEntry, len(records))
	for i, r := range records {
		timeline[i] = ChangeTimelineEntry{
			Value:          derefAnyForAttribute(attribute, r),
			CollectedAt:    r.CollectedAt.Format("2006-01-02T15:04:05Z07:00"),
			SwitchHostname: r.SwitchHostname,
		}
	}
	return timeline, nil
}

func derefAnyForAttribute(attr models.TrackedAttribute, r models.ClientRecord) any {
	values := attributeValues(attr, []models.ClientRecord{r})
	return values[0]
}

// CaseDetail is GetCaseDetail's full response shape.
type CaseDetail struct {
	models.Case
	IPAddress        *string                   `json:"ip_address,omitempty"`
	Description      *string                   `json:"description,omitempty"`
	TenantGroup      *string                   `json:"tenant_group,omitempty"`
	ChangeTags       []ChangeTag               `json:"change_tags"`
	Notes            []models.CaseNote         `json:"notes"`
	CollectionErrors []models.CollectionError  `json:"collection_errors"`
	LatestSnapshot   *models.ClientRecord      `json:"latest_snapshot,omitempty"`
}

// GetCaseDetail ports case_service.py::get_case_detail.
func (s *Service) GetCaseDetail(ctx context.Context, caseID int64, maintenanceID string) (*CaseDetail, error) {
	type row struct {
		models.Case
		MacIPAddress   *string `db:"mac_ip_address"`
		MacDescription *string `db:"mac_description"`
		MacTenantGroup *string `db:"mac_tenant_group"`
	}
	var r row
	err := s.db.GetContext(ctx, &r, `
		SELECT c.*, m.ip_address AS mac_ip_address, m.description AS mac_description, m.tenant_group AS mac_tenant_group
		FROM cases c
		LEFT JOIN mac_list_entries m
			ON m.maintenance_id = c.maintenance_id AND m.mac_address = c.mac_address
		WHERE c.id = $1 AND c.maintenance_id = $2`, caseID, maintenanceID)
	if err != nil {
		return nil, nil //nolint:nilerr // not-found is a nil result, not an error (mirrors the original's None return)
	}

	changeTags, err := s.ComputeChangeTags(ctx, maintenanceID, r.MacAddress)
	if err != nil {
		return nil, err
	}

	var notes []models.CaseNote
	if err := s.db.SelectContext(ctx, &notes,
		`SELECT * FROM case_notes WHERE case_id = $1 ORDER BY created_at DESC`, caseID); err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}

	var collectionErrors []models.CollectionError
	if err := s.db.SelectContext(ctx, &collectionErrors,
		`SELECT * FROM collection_errors WHERE maintenance_id = $1`, maintenanceID); err != nil {
		return nil, fmt.Errorf("loading collection errors: %w", err)
	}

	var latest models.ClientRecord
	var latestSnapshot *models.ClientRecord
	err = s.db.GetContext(ctx, &latest, `
		SELECT * FROM client_records
		WHERE maintenance_id = $1 AND mac_address = $2
		ORDER BY collected_at DESC LIMIT 1`, maintenanceID, r.MacAddress)
	if err == nil {
		latestSnapshot = &latest
	}

	return &CaseDetail{
		Case:             r.Case,
		IPAddress:        r.MacIPAddress,
		Description:      r.MacDescription,
		TenantGroup:      r.MacTenantGroup,
		ChangeTags:       changeTags,
		Notes:            notes,
		CollectionErrors: collectionErrors,
		LatestSnapshot:   latestSnapshot,
	}, nil
}
