package table

import (
	"fmt"

	"github.com/leengari/flatdb/internal/domain/data"
)

// Insert adds a new record. The record must carry every key column, and
// its key tuple must not collide with an existing row; on any error the
// row set is left exactly as it was.
func (t *CSVTable) Insert(rec data.Row) error {
	for _, col := range t.keyColumns {
		if _, exists := rec[col]; !exists {
			return fmt.Errorf("table %s: record missing key column: %w",
				t.name, &data.FieldNotFoundError{Field: col})
		}
	}

	keyVals := t.keyValuesOf(rec)
	tpl, err := t.keyTemplate(keyVals)
	if err != nil {
		return err
	}
	if t.findIndexByKey(tpl) >= 0 {
		return newDuplicateKey(t.name, t.keyColumns, keyVals)
	}

	t.rows = append(t.rows, rec.Copy()) // prevent mutation of caller's data
	t.markDirty()
	t.notify(EventInsert, 1)
	return nil
}

// DeleteByKey removes the at-most-one record matching the key. Returns 1
// or 0.
func (t *CSVTable) DeleteByKey(keyValues []any) (int, error) {
	tpl, err := t.keyTemplate(keyValues)
	if err != nil {
		return 0, err
	}
	return t.DeleteByTemplate(tpl)
}

// DeleteByTemplate removes every record matching the template and returns
// the number removed.
func (t *CSVTable) DeleteByTemplate(tpl data.Template) (int, error) {
	var kept []data.Row
	deleted := 0
	for _, row := range t.rows {
		if data.Matches(row, tpl) {
			deleted++
		} else {
			kept = append(kept, row)
		}
	}

	if deleted > 0 {
		t.rows = kept
		t.markDirty()
		t.notify(EventDelete, deleted)
	}
	return deleted, nil
}

// UpdateByKey applies newValues to the single record matching the key.
// Returns the number of records changed (1 or 0). Fails with
// *DuplicateKeyError, changing nothing, if the update would make this
// record's key collide with a different record's key.
func (t *CSVTable) UpdateByKey(keyValues []any, newValues data.Row) (int, error) {
	tpl, err := t.keyTemplate(keyValues)
	if err != nil {
		return 0, err
	}
	return t.UpdateByTemplate(tpl, newValues)
}

// UpdateByTemplate applies newValues to every record matching the
// template. The batch is all-or-nothing: every candidate's post-update
// key is validated against the rest of the table (and against the other
// candidates) before any row is touched, so a mid-batch collision fails
// the whole call with *DuplicateKeyError and zero mutations.
func (t *CSVTable) UpdateByTemplate(tpl data.Template, newValues data.Row) (int, error) {
	var candidates []int
	for i, row := range t.rows {
		if data.Matches(row, tpl) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	if t.touchesKey(newValues) {
		if err := t.checkUpdateKeys(candidates, newValues); err != nil {
			return 0, err
		}
	}

	for _, i := range candidates {
		for col, val := range newValues {
			t.rows[i][col] = val
		}
	}

	t.markDirty()
	t.notify(EventUpdate, len(candidates))
	return len(candidates), nil
}

// touchesKey reports whether newValues assigns any key column.
func (t *CSVTable) touchesKey(newValues data.Row) bool {
	for _, col := range t.keyColumns {
		if _, exists := newValues[col]; exists {
			return true
		}
	}
	return false
}

// checkUpdateKeys simulates the post-update key of every candidate row
// and rejects the batch if any key would collide with a non-candidate row
// or with another candidate's post-update key.
func (t *CSVTable) checkUpdateKeys(candidates []int, newValues data.Row) error {
	isCandidate := make(map[int]bool, len(candidates))
	for _, i := range candidates {
		isCandidate[i] = true
	}

	existing := make(map[string]bool, len(t.rows))
	for i, row := range t.rows {
		if !isCandidate[i] {
			existing[t.keyString(row)] = true
		}
	}

	seen := make(map[string]bool, len(candidates))
	for _, i := range candidates {
		updated := t.rows[i].Copy()
		for col, val := range newValues {
			updated[col] = val
		}
		k := t.keyString(updated)
		if existing[k] || seen[k] {
			return newDuplicateKey(t.name, t.keyColumns, t.keyValuesOf(updated))
		}
		seen[k] = true
	}
	return nil
}
