package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/leengari/flatdb/internal/domain/data"
	"github.com/leengari/flatdb/internal/storage/manager"
)

// Start runs the interactive shell against the registry's tables.
func Start(registry *manager.Registry) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Welcome to flatdb")
	fmt.Println("Commands: ls | show <t> | all <t> | find <t> col=v ... | key <t> v1 v2 ...")
	fmt.Println("          insert <t> col=v ... | delete <t> col=v ... | update <t> col=v ... set col=v ... | save <t>")
	fmt.Println("Type 'exit' or '\\q' to quit.")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if line == "exit" || line == "\\q" {
			break
		}

		if err := execute(os.Stdout, registry, line); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func execute(w io.Writer, registry *manager.Registry, line string) error {
	fields := strings.Fields(line)
	cmd := fields[0]

	if cmd == "ls" || cmd == "list" {
		fmt.Fprintln(w, "Available tables:")
		for _, name := range registry.List() {
			fmt.Fprintf(w, "  - %s\n", name)
		}
		return nil
	}

	if len(fields) < 2 {
		return fmt.Errorf("usage: %s <table> ...", cmd)
	}

	t, err := registry.Get(fields[1])
	if err != nil {
		return err
	}
	args := fields[2:]

	switch cmd {
	case "show":
		fmt.Fprintln(w, t)

	case "all":
		rows, err := t.FindByTemplate(nil, nil, nil)
		if err != nil {
			return err
		}
		PrintRows(w, rows)

	case "find":
		tpl, err := parsePairs(args)
		if err != nil {
			return err
		}
		rows, err := t.FindByTemplate(tpl, nil, nil)
		if err != nil {
			return err
		}
		PrintRows(w, rows)

	case "key":
		keyValues := make([]any, len(args))
		for i, a := range args {
			keyValues[i] = a
		}
		row, ok, err := t.FindByPrimaryKey(keyValues, nil)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "No matching row.")
			return nil
		}
		PrintRows(w, []data.Row{row})

	case "insert":
		tpl, err := parsePairs(args)
		if err != nil {
			return err
		}
		if err := t.Insert(data.Row(tpl)); err != nil {
			return err
		}
		fmt.Fprintln(w, "1 row inserted.")

	case "delete":
		tpl, err := parsePairs(args)
		if err != nil {
			return err
		}
		n, err := t.DeleteByTemplate(tpl)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d row(s) deleted.\n", n)

	case "update":
		tplArgs, setArgs, err := splitOnSet(args)
		if err != nil {
			return err
		}
		tpl, err := parsePairs(tplArgs)
		if err != nil {
			return err
		}
		newValues, err := parsePairs(setArgs)
		if err != nil {
			return err
		}
		n, err := t.UpdateByTemplate(tpl, data.Row(newValues))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d row(s) updated.\n", n)

	case "save":
		if err := t.Save(); err != nil {
			return err
		}
		fmt.Fprintln(w, "Saved.")

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}

// parsePairs turns "col=value" arguments into a template.
func parsePairs(args []string) (data.Template, error) {
	tpl := make(data.Template, len(args))
	for _, a := range args {
		col, val, ok := strings.Cut(a, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("expected col=value, got %q", a)
		}
		tpl[col] = val
	}
	return tpl, nil
}

// splitOnSet splits update arguments at the "set" keyword.
func splitOnSet(args []string) (tpl, set []string, err error) {
	for i, a := range args {
		if a == "set" {
			return args[:i], args[i+1:], nil
		}
	}
	return nil, nil, fmt.Errorf("update needs a 'set' clause: update <t> col=v ... set col=v ...")
}

// PrintRows renders rows as an aligned table, columns sorted by name.
// Cells a row lacks print as NULL.
func PrintRows(w io.Writer, rows []data.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No rows.")
		return
	}

	colSet := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			colSet[col] = true
		}
	}
	columns := make([]string, 0, len(colSet))
	for col := range colSet {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))

	seps := make([]string, len(columns))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(seps, "\t"))

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if val, ok := row[col]; ok {
				cells[i] = fmt.Sprintf("%v", val)
			} else {
				cells[i] = "NULL"
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()

	fmt.Fprintf(w, "%d row(s)\n", len(rows))
}
