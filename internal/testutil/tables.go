package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leengari/flatdb/internal/domain/data"
	"github.com/leengari/flatdb/internal/table"
)

// NewPeopleTable creates an in-memory table keyed on "id" with a small
// sample row set, no backing file.
func NewPeopleTable(t *testing.T) *table.CSVTable {
	t.Helper()
	tbl, err := table.NewCSVTable(table.Config{
		Name:       "people",
		KeyColumns: []string{"id"},
		Rows: []data.Row{
			{"id": "1", "name": "alice", "city": "nairobi"},
			{"id": "2", "name": "bob", "city": "mombasa"},
			{"id": "3", "name": "carol", "city": "nairobi"},
		},
	})
	if err != nil {
		t.Fatalf("failed to build people table: %v", err)
	}
	return tbl
}

// WriteCSVFixture writes a CSV file into dir and returns its file name.
func WriteCSVFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return name
}
