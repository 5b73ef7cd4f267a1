package table

import (
	"fmt"

	"github.com/leengari/flatdb/internal/domain/data"
)

// FindByPrimaryKey returns the unique record whose key columns equal
// keyValues, projected to fields. By the key-uniqueness invariant at most
// one record can ever match, so the scan stops at the first hit.
func (t *CSVTable) FindByPrimaryKey(keyValues []any, fields []string) (data.Row, bool, error) {
	tpl, err := t.keyTemplate(keyValues)
	if err != nil {
		return nil, false, err
	}

	for _, row := range t.rows {
		if !data.Matches(row, tpl) {
			continue
		}
		projected, err := data.Project(row, fields)
		if err != nil {
			return nil, false, fmt.Errorf("table %s: %w", t.name, err)
		}
		return projected, true, nil
	}

	return nil, false, nil
}

// FindByTemplate returns every record matching the template, each
// projected to fields. Rows are scanned in the table's configured scan
// order (reverse of load order by default). Limit and Offset are honored;
// OrderBy is not supported and fails with *UnsupportedError.
func (t *CSVTable) FindByTemplate(tpl data.Template, fields []string, opts *FindOptions) ([]data.Row, error) {
	limit, offset := 0, 0
	if opts != nil {
		if opts.OrderBy != "" {
			return nil, &UnsupportedError{Table: t.name, Feature: "order_by"}
		}
		limit, offset = opts.Limit, opts.Offset
	}

	result := []data.Row{}
	skipped := 0
	for i := range t.rows {
		row := t.rowAt(i)
		if !data.Matches(row, tpl) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		projected, err := data.Project(row, fields)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.name, err)
		}
		result = append(result, projected)
		if limit > 0 && len(result) == limit {
			break
		}
	}

	return result, nil
}

// rowAt maps a scan position to a row index according to the configured
// scan order.
func (t *CSVTable) rowAt(i int) data.Row {
	if t.scanOrder == ScanForward {
		return t.rows[i]
	}
	return t.rows[len(t.rows)-1-i]
}

// findIndexByKey returns the position of the row holding the given key
// template, or -1.
func (t *CSVTable) findIndexByKey(tpl data.Template) int {
	for i, row := range t.rows {
		if data.Matches(row, tpl) {
			return i
		}
	}
	return -1
}
