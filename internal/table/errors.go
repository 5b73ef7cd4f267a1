package table

import (
	"fmt"
	"strings"
)

// ArityError reports a key-value list whose length does not match the
// table's key-column list.
type ArityError struct {
	Table      string
	KeyColumns []string
	Values     []any
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("table %s: key arity mismatch - %d key columns (%s), %d values given",
		e.Table, len(e.KeyColumns), strings.Join(e.KeyColumns, ", "), len(e.Values))
}

// DuplicateKeyError reports an insert or update that would violate the
// key-uniqueness invariant. The offending operation leaves the row set
// unchanged.
type DuplicateKeyError struct {
	Table      string
	KeyColumns []string
	KeyValues  []any
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("table %s: duplicate key (%s)=%v", e.Table,
		strings.Join(e.KeyColumns, ", "), e.KeyValues)
}

// EmptyTableError reports a save attempted with no rows in memory;
// writing a headerless file is refused.
type EmptyTableError struct {
	Table string
}

func (e *EmptyTableError) Error() string {
	return fmt.Sprintf("table %s: cannot save an empty table", e.Table)
}

// UnsupportedError reports a FindOptions feature this implementation
// deliberately does not honor.
type UnsupportedError struct {
	Table   string
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("table %s: %s is not supported by this implementation", e.Table, e.Feature)
}

func newDuplicateKey(table string, keyColumns []string, keyValues []any) *DuplicateKeyError {
	return &DuplicateKeyError{Table: table, KeyColumns: keyColumns, KeyValues: keyValues}
}

func newArityError(table string, keyColumns []string, values []any) *ArityError {
	return &ArityError{Table: table, KeyColumns: keyColumns, Values: values}
}
