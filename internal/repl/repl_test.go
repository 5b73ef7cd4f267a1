package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leengari/flatdb/internal/config"
	"github.com/leengari/flatdb/internal/domain/data"
	"github.com/leengari/flatdb/internal/storage/manager"
)

func newTestRegistry(t *testing.T) *manager.Registry {
	t.Helper()
	dir := t.TempDir()
	content := "id,name,city\n1,alice,nairobi\n2,bob,mombasa\n"
	if err := os.WriteFile(filepath.Join(dir, "people.csv"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	cfg := &config.Config{
		DataDir: dir,
		Tables: []config.TableConfig{
			{Name: "people", FileName: "people.csv", KeyColumns: []string{"id"}},
		},
	}
	return manager.NewRegistry(cfg, nil)
}

func run(t *testing.T, registry *manager.Registry, line string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := execute(&buf, registry, line); err != nil {
		t.Fatalf("command %q: %v", line, err)
	}
	return buf.String()
}

func TestExecuteFlow(t *testing.T) {
	registry := newTestRegistry(t)

	out := run(t, registry, "ls")
	if !strings.Contains(out, "people") {
		t.Errorf("Expected table listing, got: %s", out)
	}

	out = run(t, registry, "all people")
	if !strings.Contains(out, "2 row(s)") {
		t.Errorf("Expected 2 rows, got: %s", out)
	}

	out = run(t, registry, "find people city=nairobi")
	if !strings.Contains(out, "alice") || strings.Contains(out, "bob") {
		t.Errorf("Expected only alice, got: %s", out)
	}

	out = run(t, registry, "key people 2")
	if !strings.Contains(out, "bob") {
		t.Errorf("Expected bob, got: %s", out)
	}

	out = run(t, registry, "insert people id=3 name=carol city=kisumu")
	if !strings.Contains(out, "1 row inserted") {
		t.Errorf("Expected insert confirmation, got: %s", out)
	}

	out = run(t, registry, "update people city=nairobi set status=ok")
	if !strings.Contains(out, "1 row(s) updated") {
		t.Errorf("Expected 1 updated, got: %s", out)
	}

	out = run(t, registry, "delete people id=1")
	if !strings.Contains(out, "1 row(s) deleted") {
		t.Errorf("Expected 1 deleted, got: %s", out)
	}

	if err := execute(&bytes.Buffer{}, registry, "insert people id=2"); err == nil {
		t.Error("Expected duplicate insert to surface an error")
	}

	if err := execute(&bytes.Buffer{}, registry, "bogus people"); err == nil {
		t.Error("Expected unknown command to surface an error")
	}
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, []data.Row{
		{"id": "1", "name": "alice"},
		{"id": "2"},
	})

	out := buf.String()
	if !strings.Contains(out, "NULL") {
		t.Errorf("Expected NULL for a missing cell, got: %s", out)
	}
	if !strings.Contains(out, "2 row(s)") {
		t.Errorf("Expected row count, got: %s", out)
	}
}

func TestPrintRowsEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, nil)
	if !strings.Contains(buf.String(), "No rows.") {
		t.Errorf("Expected empty marker, got: %s", buf.String())
	}
}

func TestParsePairs(t *testing.T) {
	tpl, err := parsePairs([]string{"a=1", "b=two"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if tpl["a"] != "1" || tpl["b"] != "two" {
		t.Errorf("Unexpected template: %v", tpl)
	}

	if _, err := parsePairs([]string{"noequals"}); err == nil {
		t.Error("Expected an error for a malformed pair")
	}
}
