package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap, JSONBoolMap, and JSONStringSlice implement the driver.Valuer/
// sql.Scanner pair a database/sql-mediated pgx connection needs to bind
// and scan a Postgres JSONB column holding an arbitrary/bool-valued map or
// a string array (Maintenance.config_data, Case.change_flags,
// PortChannelExpectation.member_interfaces) — mirroring
// pkg/models/records.go's pq.StringArray rationale for text[] columns.

type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(m))
}

func (m *JSONMap) Scan(src any) error {
	return scanJSON(src, m)
}

type JSONBoolMap map[string]bool

func (m JSONBoolMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]bool(m))
}

func (m *JSONBoolMap) Scan(src any) error {
	return scanJSON(src, m)
}

type JSONStringSlice []string

func (s JSONStringSlice) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

func (s *JSONStringSlice) Scan(src any) error {
	return scanJSON(src, s)
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", src)
	}
}
