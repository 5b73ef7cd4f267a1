// Package manager keeps track of the tables a process has opened, so
// callers share one in-memory row set per table and can persist every
// dirty table in one sweep at shutdown.
package manager

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/leengari/flatdb/internal/config"
	"github.com/leengari/flatdb/internal/table"
)

// Registry manages opened tables in a thread-safe way. Individual tables
// remain single-threaded; the registry only guards its own cache.
type Registry struct {
	mu      sync.Mutex
	loaded  map[string]*table.CSVTable
	tables  map[string]config.TableConfig
	dataDir string
	logger  *slog.Logger
}

// NewRegistry builds a registry from the manifest's table declarations.
func NewRegistry(cfg *config.Config, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	tables := make(map[string]config.TableConfig, len(cfg.Tables))
	for _, tc := range cfg.Tables {
		tables[tc.Name] = tc
	}
	return &Registry{
		loaded:  make(map[string]*table.CSVTable),
		tables:  tables,
		dataDir: cfg.DataDir,
		logger:  logger,
	}
}

// Get opens the named table (or returns the cached one).
func (r *Registry) Get(name string) (*table.CSVTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.loaded[name]; ok {
		return t, nil
	}

	tc, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", name)
	}

	dir := tc.Directory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.dataDir, dir)
	}

	scanOrder := table.ScanReverse
	if tc.ScanOrder == "forward" {
		scanOrder = table.ScanForward
	}

	t, err := table.NewCSVTable(table.Config{
		Name: tc.Name,
		Connect: table.ConnectInfo{
			Directory: dir,
			FileName:  tc.FileName,
			Delimiter: tc.DelimiterRune(),
		},
		KeyColumns: tc.KeyColumns,
		ScanOrder:  scanOrder,
		Logger:     r.logger,
		Observers:  []table.Observer{table.NewLoggingObserver(r.logger)},
	})
	if err != nil {
		return nil, err
	}

	r.loaded[name] = t
	return t, nil
}

// List returns the names of all declared tables, sorted.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SaveAll persists every loaded table with unsaved changes. Tables that
// became empty are skipped (saving an empty table is refused) and logged.
func (r *Registry) SaveAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, t := range r.loaded {
		if !t.Dirty() {
			continue
		}
		if len(t.Rows()) == 0 {
			r.logger.Warn("skipping save of empty table", slog.String("table", name))
			continue
		}
		if err := t.Save(); err != nil {
			r.logger.Error("failed to save table",
				slog.String("table", name),
				slog.Any("error", err),
			)
		}
	}
}
