package api

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// ExpectationsService implements spec.md §6.2's "Expectation CRUD" line
// for all four expectation tables (spec.md §4.5's Uplink/Version/
// PortChannel/ArpSource indicators each read one of them). One generic
// shape per kind keeps the four near-identical tables from repeating four
// times over; each kind's row is still its own typed models.*Expectation.
type ExpectationsService struct {
	db *sqlx.DB
}

func NewExpectationsService(db *sqlx.DB) *ExpectationsService {
	return &ExpectationsService{db: db}
}

// ExpectationKind names one of the four expectation tables spec.md §3
// defines, keyed the way the `/expectations/{kind}` route names them.
type ExpectationKind string

const (
	ExpectationUplink      ExpectationKind = "uplink"
	ExpectationVersion     ExpectationKind = "version"
	ExpectationPortChannel ExpectationKind = "port_channel"
	ExpectationArpSource   ExpectationKind = "arp_source"
)

func (s *ExpectationsService) List(ctx context.Context, kind ExpectationKind, maintenanceID string) (any, error) {
	switch kind {
	case ExpectationUplink:
		var rows []models.UplinkExpectation
		err := s.db.SelectContext(ctx, &rows,
			`SELECT * FROM uplink_expectations WHERE maintenance_id = $1 ORDER BY id`, maintenanceID)
		return rows, err
	case ExpectationVersion:
		var rows []models.VersionExpectation
		err := s.db.SelectContext(ctx, &rows,
			`SELECT * FROM version_expectations WHERE maintenance_id = $1 ORDER BY id`, maintenanceID)
		return rows, err
	case ExpectationPortChannel:
		var rows []models.PortChannelExpectation
		err := s.db.SelectContext(ctx, &rows,
			`SELECT * FROM port_channel_expectations WHERE maintenance_id = $1 ORDER BY id`, maintenanceID)
		return rows, err
	case ExpectationArpSource:
		var rows []models.ArpSourceExpectation
		err := s.db.SelectContext(ctx, &rows,
			`SELECT * FROM arp_source_expectations WHERE maintenance_id = $1 ORDER BY id`, maintenanceID)
		return rows, err
	default:
		return nil, apperrors.Newf(apperrors.ErrorTypeValidation, "unknown expectation kind %q", kind)
	}
}

func (s *ExpectationsService) Create(ctx context.Context, kind ExpectationKind, body map[string]any) (any, error) {
	maintenanceID, _ := body["maintenance_id"].(string)
	hostname, _ := body["hostname"].(string)
	if maintenanceID == "" || hostname == "" {
		return nil, apperrors.NewValidationError("missing maintenance_id or hostname")
	}

	switch kind {
	case ExpectationUplink:
		localInterface, _ := body["local_interface"].(string)
		expectedNeighbor, _ := body["expected_neighbor"].(string)
		expectedInterface, _ := body["expected_interface"].(string)
		if localInterface == "" || expectedNeighbor == "" {
			return nil, apperrors.NewValidationError("missing local_interface or expected_neighbor")
		}
		var row models.UplinkExpectation
		err := s.db.GetContext(ctx, &row, `
			INSERT INTO uplink_expectations (maintenance_id, hostname, local_interface, expected_neighbor, expected_interface)
			VALUES ($1, $2, $3, $4, $5) RETURNING *`,
			maintenanceID, hostname, localInterface, expectedNeighbor, expectedInterface)
		return row, wrapIntegrity(err, kind)

	case ExpectationVersion:
		expectedVersion, _ := body["expected_version"].(string)
		if expectedVersion == "" {
			return nil, apperrors.NewValidationError("missing expected_version")
		}
		var row models.VersionExpectation
		err := s.db.GetContext(ctx, &row, `
			INSERT INTO version_expectations (maintenance_id, hostname, expected_version)
			VALUES ($1, $2, $3) RETURNING *`, maintenanceID, hostname, expectedVersion)
		return row, wrapIntegrity(err, kind)

	case ExpectationPortChannel:
		portChannel, _ := body["port_channel"].(string)
		if portChannel == "" {
			return nil, apperrors.NewValidationError("missing port_channel")
		}
		members := models.JSONStringSlice{}
		if raw, ok := body["member_interfaces"].([]any); ok {
			for _, m := range raw {
				if s, ok := m.(string); ok {
					members = append(members, s)
				}
			}
		}
		var row models.PortChannelExpectation
		err := s.db.GetContext(ctx, &row, `
			INSERT INTO port_channel_expectations (maintenance_id, hostname, port_channel, member_interfaces)
			VALUES ($1, $2, $3, $4) RETURNING *`, maintenanceID, hostname, portChannel, members)
		return row, wrapIntegrity(err, kind)

	case ExpectationArpSource:
		var row models.ArpSourceExpectation
		err := s.db.GetContext(ctx, &row, `
			INSERT INTO arp_source_expectations (maintenance_id, hostname)
			VALUES ($1, $2) RETURNING *`, maintenanceID, hostname)
		return row, wrapIntegrity(err, kind)

	default:
		return nil, apperrors.Newf(apperrors.ErrorTypeValidation, "unknown expectation kind %q", kind)
	}
}

func (s *ExpectationsService) Delete(ctx context.Context, kind ExpectationKind, id int64) (bool, error) {
	table, ok := tableFor(kind)
	if !ok {
		return false, apperrors.Newf(apperrors.ErrorTypeValidation, "unknown expectation kind %q", kind)
	}
	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id) //nolint:gosec // table is one of four compile-time-known constants, never request input
	if err != nil {
		return false, fmt.Errorf("deleting %s expectation %d: %w", kind, id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected > 0, nil
}

func tableFor(kind ExpectationKind) (string, bool) {
	switch kind {
	case ExpectationUplink:
		return "uplink_expectations", true
	case ExpectationVersion:
		return "version_expectations", true
	case ExpectationPortChannel:
		return "port_channel_expectations", true
	case ExpectationArpSource:
		return "arp_source_expectations", true
	default:
		return "", false
	}
}

func wrapIntegrity(err error, kind ExpectationKind) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrapf(err, apperrors.ErrorTypeIntegrity, "creating %s expectation", kind)
}
