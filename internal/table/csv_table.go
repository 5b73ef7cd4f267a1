package table

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/leengari/flatdb/internal/domain/data"
	"github.com/leengari/flatdb/internal/storage"
)

// ScanOrder controls the order FindByTemplate walks the row set.
type ScanOrder int

const (
	// ScanReverse walks most-recently-loaded rows first. This is the
	// default, kept for compatibility with existing callers of the
	// original layer this one replaces.
	ScanReverse ScanOrder = iota
	// ScanForward walks rows in load order.
	ScanForward
)

// ConnectInfo locates the delimited file backing a table.
type ConnectInfo struct {
	Directory string
	FileName  string
	// Delimiter separates fields in the backing file. Zero means ','.
	// Must be consistent between load and save; use '\t' for TSV data.
	Delimiter rune
}

func (c ConnectInfo) path() string {
	return filepath.Join(c.Directory, c.FileName)
}

func (c ConnectInfo) delimiter() rune {
	if c.Delimiter == 0 {
		return ','
	}
	return c.Delimiter
}

// Config describes a CSVTable to construct.
type Config struct {
	Name       string
	Connect    ConnectInfo
	KeyColumns []string
	// Rows, when non-nil, is adopted as the initial row set (copied in)
	// and no file load occurs.
	Rows      []data.Row
	ScanOrder ScanOrder
	// Logger receives table diagnostics; nil means slog.Default.
	Logger    *slog.Logger
	Observers []Observer
}

// CSVTable implements DataTable over an in-memory row set initialized
// from, and persistable to, a delimited text file.
//
// A CSVTable is not safe for concurrent use; the contract is
// single-threaded and callers synchronize externally.
type CSVTable struct {
	name       string
	connect    ConnectInfo
	keyColumns []string
	scanOrder  ScanOrder
	logger     *slog.Logger
	observers  []Observer

	rows  []data.Row
	dirty bool
}

var _ DataTable = (*CSVTable)(nil)

// Diagnostic row sample bounds for String.
const (
	rowsToPrint    = 10
	noOfSeparators = 2
)

// NewCSVTable constructs a table from cfg. When cfg.Rows is nil every
// record is loaded from the backing file; otherwise the supplied rows are
// copied in. Construction verifies that every row carries all key columns
// and that no two rows share a key.
func NewCSVTable(cfg Config) (*CSVTable, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if len(cfg.KeyColumns) == 0 {
		return nil, fmt.Errorf("table %s: key column list must not be empty", cfg.Name)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := &CSVTable{
		name:       cfg.Name,
		connect:    cfg.Connect,
		keyColumns: append([]string(nil), cfg.KeyColumns...),
		scanOrder:  cfg.ScanOrder,
		logger:     logger,
		observers:  append([]Observer(nil), cfg.Observers...),
	}

	if cfg.Rows != nil {
		t.rows = make([]data.Row, 0, len(cfg.Rows))
		for _, r := range cfg.Rows {
			t.rows = append(t.rows, r.Copy())
		}
	} else {
		if cfg.Connect.Directory == "" || cfg.Connect.FileName == "" {
			return nil, fmt.Errorf("table %s: connect info requires directory and file_name", cfg.Name)
		}
		_, rows, err := storage.ReadRows(cfg.Connect.path(), cfg.Connect.delimiter())
		if err != nil {
			return nil, err
		}
		t.rows = rows
	}

	if err := t.validateRowSet(); err != nil {
		return nil, err
	}

	t.logger.Debug("table loaded",
		slog.String("table", t.name),
		slog.Int("rows", len(t.rows)),
	)
	t.notify(EventLoad, len(t.rows))

	return t, nil
}

// AddObserver subscribes an observer to this table's operation events
func (t *CSVTable) AddObserver(o Observer) {
	t.observers = append(t.observers, o)
}

// RemoveObserver unsubscribes an observer
func (t *CSVTable) RemoveObserver(o Observer) {
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func (t *CSVTable) notify(typ EventType, rows int) {
	if len(t.observers) == 0 {
		return
	}
	evt := Event{
		Type:      typ,
		Table:     t.name,
		OpID:      newOpID(),
		Timestamp: time.Now(),
		Rows:      rows,
	}
	for _, o := range t.observers {
		o.OnEvent(evt)
	}
}

// Name returns the table's logical name.
func (t *CSVTable) Name() string { return t.name }

// KeyColumns returns the ordered primary-key column list.
func (t *CSVTable) KeyColumns() []string {
	return append([]string(nil), t.keyColumns...)
}

// Rows returns the live in-memory row set in load order.
func (t *CSVTable) Rows() []data.Row { return t.rows }

// Dirty reports whether the in-memory row set has changed since the last
// load or save.
func (t *CSVTable) Dirty() bool { return t.dirty }

func (t *CSVTable) markDirty() { t.dirty = true }

// Save writes the full current row set back to the backing file as an
// overwrite. Saving an empty table is refused so a headerless file is
// never written.
func (t *CSVTable) Save() error {
	if len(t.rows) == 0 {
		return &EmptyTableError{Table: t.name}
	}

	columns := t.saveColumns()
	path := t.connect.path()
	if err := storage.WriteRows(path, t.connect.delimiter(), columns, t.rows); err != nil {
		return err
	}

	t.dirty = false
	t.logger.Debug("table saved",
		slog.String("table", t.name),
		slog.String("path", path),
		slog.Int("rows", len(t.rows)),
	)
	t.notify(EventSave, len(t.rows))
	return nil
}

// saveColumns derives the file header from the first row: key columns in
// key order, then the remaining columns sorted. Sorting makes the output
// deterministic across saves.
func (t *CSVTable) saveColumns() []string {
	first := t.rows[0]
	columns := append([]string(nil), t.keyColumns...)

	isKey := make(map[string]bool, len(t.keyColumns))
	for _, k := range t.keyColumns {
		isKey[k] = true
	}

	rest := make([]string, 0, len(first))
	for col := range first {
		if !isKey[col] {
			rest = append(rest, col)
		}
	}
	sort.Strings(rest)

	return append(columns, rest...)
}

// validateRowSet checks the constructed row set against the table's key
// contract: every row carries all key columns, and no two rows share a
// key tuple.
func (t *CSVTable) validateRowSet() error {
	seen := make(map[string]bool, len(t.rows))
	for _, row := range t.rows {
		for _, col := range t.keyColumns {
			if _, exists := row[col]; !exists {
				return fmt.Errorf("table %s: row missing key column: %w",
					t.name, &data.FieldNotFoundError{Field: col})
			}
		}
		k := t.keyString(row)
		if seen[k] {
			return newDuplicateKey(t.name, t.keyColumns, t.keyValuesOf(row))
		}
		seen[k] = true
	}
	return nil
}

// keyString encodes a row's key tuple for map-based uniqueness checks.
func (t *CSVTable) keyString(row data.Row) string {
	var b strings.Builder
	for _, col := range t.keyColumns {
		fmt.Fprintf(&b, "%v\x1f", row[col])
	}
	return b.String()
}

// keyValuesOf extracts a row's key values in key-column order.
func (t *CSVTable) keyValuesOf(row data.Row) []any {
	vals := make([]any, len(t.keyColumns))
	for i, col := range t.keyColumns {
		vals[i] = row[col]
	}
	return vals
}

// keyTemplate zips the key-column list with keyValues positionally.
func (t *CSVTable) keyTemplate(keyValues []any) (data.Template, error) {
	if len(keyValues) != len(t.keyColumns) {
		return nil, newArityError(t.name, t.keyColumns, keyValues)
	}
	tpl := make(data.Template, len(t.keyColumns))
	for i, col := range t.keyColumns {
		tpl[col] = keyValues[i]
	}
	return tpl, nil
}

// String summarizes the table's configuration and a bounded head/tail
// sample of rows. Diagnostic only; it never mutates state.
func (t *CSVTable) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CSVTable %s: file=%s delimiter=%q key_columns=[%s] rows=%d dirty=%t\n",
		t.name, t.connect.path(), t.connect.delimiter(),
		strings.Join(t.keyColumns, ", "), len(t.rows), t.dirty)

	if len(t.rows) == 0 {
		return b.String()
	}

	sample := t.sampleRows()
	columns := t.saveColumns()

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range sample {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = fmt.Sprintf("%v", row[col])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()

	return b.String()
}

// sampleRows returns all rows when small, otherwise the head and tail of
// the row set separated by a few "***" marker rows.
func (t *CSVTable) sampleRows() []data.Row {
	if len(t.rows) <= rowsToPrint {
		return t.rows
	}

	half := rowsToPrint / 2
	sample := make([]data.Row, 0, rowsToPrint+noOfSeparators)
	sample = append(sample, t.rows[:half]...)

	marker := make(data.Row, len(t.rows[0]))
	for col := range t.rows[0] {
		marker[col] = "***"
	}
	for i := 0; i < noOfSeparators; i++ {
		sample = append(sample, marker)
	}

	return append(sample, t.rows[len(t.rows)-half:]...)
}
