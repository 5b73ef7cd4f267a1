package table

import "github.com/leengari/flatdb/internal/domain/data"

// DataTable is the contract every table-like store implements. Callers
// depend only on this interface, never on a concrete backend type, so a
// flat-file table and a relational adapter are interchangeable.
//
// Key values are always positional: they are zipped against the table's
// key-column list in order. "Not found" is never an error - lookups
// report absence through the ok return and the mutating operations
// through a zero count.
type DataTable interface {
	// FindByPrimaryKey returns the unique record whose key columns equal
	// keyValues (zipped positionally against KeyColumns), projected to
	// fields when non-nil. ok is false when no record matches.
	// Fails with *ArityError when len(keyValues) != len(KeyColumns()).
	FindByPrimaryKey(keyValues []any, fields []string) (row data.Row, ok bool, err error)

	// FindByTemplate returns every record matching the template, each
	// projected to fields when non-nil. A nil or empty template matches
	// all records. opts may be nil; see FindOptions for the support
	// level an implementation must document.
	FindByTemplate(tpl data.Template, fields []string, opts *FindOptions) ([]data.Row, error)

	// Insert adds a new record. Fails with *DuplicateKeyError if a
	// record with the same key already exists; on error no state changes.
	Insert(rec data.Row) error

	// DeleteByKey removes the at-most-one record matching the key and
	// returns 1 or 0.
	DeleteByKey(keyValues []any) (int, error)

	// DeleteByTemplate removes every matching record and returns the
	// number removed.
	DeleteByTemplate(tpl data.Template) (int, error)

	// UpdateByKey applies newValues to the single record matching the
	// key and returns the number of records changed (1 or 0). Fails with
	// *DuplicateKeyError, leaving state unchanged, if the update would
	// make this record's key collide with another record's key.
	UpdateByKey(keyValues []any, newValues data.Row) (int, error)

	// UpdateByTemplate applies newValues to every record matching the
	// template. The batch is all-or-nothing: every candidate update is
	// checked for key collisions first, and if any one would collide the
	// whole call fails with *DuplicateKeyError and no record changes.
	UpdateByTemplate(tpl data.Template, newValues data.Row) (int, error)

	// Save persists the in-memory row set to the backing store. Fails
	// with *EmptyTableError when there are no rows.
	Save() error

	// Name returns the table's logical name.
	Name() string

	// KeyColumns returns the ordered primary-key column list.
	KeyColumns() []string

	// Rows returns the in-memory row set in load order. The slice and
	// the rows are live; callers must not mutate them.
	Rows() []data.Row
}

// FindOptions carries the optional paging and ordering arguments of
// FindByTemplate. Implementations narrow the support level explicitly
// rather than silently ignoring fields: the flat-file table honors Limit
// and Offset and rejects OrderBy with *UnsupportedError.
type FindOptions struct {
	// Limit caps the number of returned rows when > 0.
	Limit int
	// Offset skips that many matching rows before collecting results.
	Offset int
	// OrderBy names a column to sort results by.
	OrderBy string
}
