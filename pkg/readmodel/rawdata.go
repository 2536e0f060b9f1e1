package readmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itchyny/gojq"
	"github.com/jmoiron/sqlx"
)

// RawDataFilter narrows RawDataService.Query; zero-value fields are "no
// filter". Query, when set, is a jq expression applied to each batch's
// raw_data (parsed as JSON) — rows whose raw_data isn't valid JSON, or
// whose filtered result is `null`/`false`, are dropped, letting an
// operator ask e.g. `.interfaces[] | select(.status != "up")` against a
// vendor API's response shape without the backend baking in every
// possible projection.
type RawDataFilter struct {
	SwitchHostname string
	Query          string
	Page           int
	PageSize       int
}

// RawDataRow is one CollectionBatch row, with its jq-filtered projection
// attached when a Query was supplied.
type RawDataRow struct {
	BatchID        int64     `json:"batch_id" db:"id"`
	SwitchHostname string    `json:"switch_hostname" db:"switch_hostname"`
	RawData        string    `json:"raw_data" db:"raw_data"`
	ItemCount      int       `json:"item_count" db:"item_count"`
	CollectedAt    time.Time `json:"collected_at" db:"collected_at"`
	Filtered       any       `json:"filtered,omitempty"`
}

// RawDataResult is RawDataService.Query's paginated envelope.
type RawDataResult struct {
	Rows  []RawDataRow `json:"rows"`
	Count int          `json:"count"`
	Page  int          `json:"page"`
}

// RawDataService backs spec.md §6.2's `/indicators/{name}/rawdata`
// endpoint: the latest CollectionBatch rows for one indicator, optionally
// narrowed to a device and filtered through an ad-hoc jq expression.
type RawDataService struct {
	db *sqlx.DB
}

func NewRawDataService(db *sqlx.DB) *RawDataService {
	return &RawDataService{db: db}
}

// Query returns the most recent CollectionBatch rows for a maintenance's
// indicator, newest first.
func (s *RawDataService) Query(ctx context.Context, maintenanceID, collectionType string, filter RawDataFilter) (RawDataResult, error) {
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var compiled *gojq.Code
	if filter.Query != "" {
		parsed, err := gojq.Parse(filter.Query)
		if err != nil {
			return RawDataResult{}, fmt.Errorf("parsing jq filter: %w", err)
		}
		compiled, err = gojq.Compile(parsed)
		if err != nil {
			return RawDataResult{}, fmt.Errorf("compiling jq filter: %w", err)
		}
	}

	query := `
		SELECT id, switch_hostname, raw_data, item_count, collected_at
		FROM collection_batches
		WHERE maintenance_id = $1 AND collection_type = $2`
	args := []any{maintenanceID, collectionType}
	if filter.SwitchHostname != "" {
		args = append(args, filter.SwitchHostname)
		query += fmt.Sprintf(" AND switch_hostname = $%d", len(args))
	}
	args = append(args, (page-1)*pageSize, pageSize)
	query += fmt.Sprintf(" ORDER BY collected_at DESC OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	var rows []RawDataRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return RawDataResult{}, fmt.Errorf("loading raw data rows: %w", err)
	}

	if compiled != nil {
		kept := rows[:0]
		for _, row := range rows {
			var doc any
			if err := json.Unmarshal([]byte(row.RawData), &doc); err != nil {
				continue
			}
			iter := compiled.Run(doc)
			value, ok := iter.Next()
			if !ok {
				continue
			}
			if err, isErr := value.(error); isErr {
				return RawDataResult{}, fmt.Errorf("applying jq filter: %w", err)
			}
			if value == nil || value == false {
				continue
			}
			row.Filtered = value
			kept = append(kept, row)
		}
		rows = kept
	}

	return RawDataResult{Rows: rows, Count: len(rows), Page: page}, nil
}

// TimeSeriesPoint is one CollectionBatch observation, reduced to the point
// a chart needs: when it landed and how many items it carried.
type TimeSeriesPoint struct {
	CollectedAt time.Time `json:"collected_at" db:"collected_at"`
	ItemCount   int       `json:"item_count" db:"item_count"`
}

// TimeSeries backs spec.md §6.2's `/indicators/{name}/timeseries`
// endpoint: every batch's item count over time for one maintenance's
// indicator, oldest first, optionally narrowed to a single device.
func (s *RawDataService) TimeSeries(ctx context.Context, maintenanceID, collectionType, switchHostname string) ([]TimeSeriesPoint, error) {
	query := `
		SELECT collected_at, item_count
		FROM collection_batches
		WHERE maintenance_id = $1 AND collection_type = $2`
	args := []any{maintenanceID, collectionType}
	if switchHostname != "" {
		args = append(args, switchHostname)
		query += fmt.Sprintf(" AND switch_hostname = $%d", len(args))
	}
	query += " ORDER BY collected_at ASC"

	var points []TimeSeriesPoint
	if err := s.db.SelectContext(ctx, &points, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("loading time series: %w", err)
	}
	return points, nil
}
