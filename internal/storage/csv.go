// Package storage reads and writes the delimited flat files that back
// tables. A file is a header row naming columns followed by one data row
// per record. Field values are plain strings; type coercion is a caller
// concern.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/leengari/flatdb/internal/domain/data"
)

// ReadRows loads every record from the delimited file at path. The first
// row is the header; each following row becomes one data.Row keyed by the
// header columns. Load order is preserved.
func ReadRows(path string, delimiter rune) ([]string, []data.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open table file %s: %w", path, err)
	}
	defer f.Close()

	rdr := csv.NewReader(f)
	rdr.Comma = delimiter

	records, err := rdr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("table file %s has no header row", path)
	}

	columns := records[0]
	rows := make([]data.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(data.Row, len(columns))
		for i, col := range columns {
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

// WriteRows persists the row set to path as a full overwrite, writing the
// header then one line per row in slice order. The write goes to a temp
// file first and is moved into place with an atomic rename so a crashed
// save never leaves a truncated file behind.
func WriteRows(path string, delimiter rune, columns []string, rows []data.Row) error {
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = delimiter

	if err := w.Write(columns); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header for %s: %w", path, err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = formatCell(row[col])
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row for %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file into %s: %w", path, err)
	}

	return nil
}

// formatCell renders a cell value for the flat file. Values loaded from a
// file are already strings; callers may have set other scalar types.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
