// Package csvimport implements spec.md §6.4's two-phase CSV import: every
// row is parsed and validated before any row is written, so a malformed
// row anywhere in the file rejects the whole import rather than leaving a
// partially-applied list. No original Python source file for the CSV
// endpoints survived retrieval; shaped directly from spec.md §6.4 and
// §6.2's "two-phase validation: every row passes or the whole import is
// rejected" line.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/internal/validation"
)

// Parse reads a CSV with a header row and converts each data row into a T
// via rowFn. Phase one: every row must parse and pass rowFn's own
// validation, or Parse returns the full list of per-row failures and no
// rows at all (callers must not act on a partial Parse result).
func Parse[T any](r io.Reader, rowFn func(row []string, header map[string]int) (T, error)) ([]T, []validation.CSVRowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, apperrors.NewValidationError("empty CSV file")
		}
		return nil, nil, apperrors.Wrap(err, apperrors.ErrorTypeValidation, "reading CSV header")
	}
	header := make(map[string]int, len(headerRow))
	for i, col := range headerRow {
		header[col] = i
	}

	var results []T
	var failures []validation.CSVRowError
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			failures = append(failures, validation.CSVRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		item, err := rowFn(row, header)
		if err != nil {
			failures = append(failures, validation.CSVRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		results = append(results, item)
	}

	if len(failures) > 0 {
		return nil, failures, nil
	}
	return results, nil, nil
}

// Column looks up a named column in row, returning "" for a column the
// header didn't declare or the row didn't reach.
func Column(row []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// RejectionError renders a failed import's row errors as one
// ErrorTypeValidation AppError, per spec.md §6.4's "every row passes or
// the whole import is rejected".
func RejectionError(failures []validation.CSVRowError) error {
	msg := fmt.Sprintf("%d row(s) failed validation", len(failures))
	details := ""
	for i, f := range failures {
		if i > 0 {
			details += "; "
		}
		details += f.Error()
	}
	return apperrors.NewValidationError(msg).WithDetails(details)
}
