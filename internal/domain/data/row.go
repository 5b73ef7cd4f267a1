package data

// Row represents a single table row
// Key = column name, Value = cell value
// Rows carry no enforced schema beyond what the owning table requires;
// non-key columns may vary from row to row.
type Row map[string]any

// Template is a partial column->value mapping used for equality-based
// row selection. A nil or empty template matches every row.
type Template map[string]any

// Copy creates a shallow copy of the row to prevent mutation
func (r Row) Copy() Row {
	copy := make(Row, len(r))
	for k, v := range r {
		copy[k] = v
	}
	return copy
}

// Matches reports whether the row satisfies the template: for every
// (column, value) pair in the template the row must have that column
// equal to that value. A template naming a column the row lacks matches
// nothing.
func Matches(row Row, tpl Template) bool {
	for k, want := range tpl {
		got, exists := row[k]
		if !exists || got != want {
			return false
		}
	}
	return true
}

// Project returns a new row containing only the requested columns.
// A nil field list means "all columns" and returns a copy of the row.
// Requesting a column the row does not have fails with FieldNotFoundError.
func Project(row Row, fields []string) (Row, error) {
	if fields == nil {
		return row.Copy(), nil
	}

	projected := make(Row, len(fields))
	for _, f := range fields {
		v, exists := row[f]
		if !exists {
			return nil, &FieldNotFoundError{Field: f}
		}
		projected[f] = v
	}
	return projected, nil
}

// Columns returns the row's column names in unspecified order.
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	return cols
}
