package table_test

import (
	"testing"

	"github.com/leengari/flatdb/internal/domain/data"
	"github.com/leengari/flatdb/internal/table"
	"github.com/leengari/flatdb/internal/testutil"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []table.Event
}

func (m *MockObserver) OnEvent(event table.Event) {
	m.Events = append(m.Events, event)
}

func (m *MockObserver) last(t *testing.T) table.Event {
	t.Helper()
	if len(m.Events) == 0 {
		t.Fatal("Expected at least one event")
	}
	return m.Events[len(m.Events)-1]
}

func newObservedTable(t *testing.T) (*table.CSVTable, *MockObserver) {
	t.Helper()
	observer := &MockObserver{}
	tbl, err := table.NewCSVTable(table.Config{
		Name:       "people",
		KeyColumns: []string{"id"},
		Rows: []data.Row{
			{"id": "1", "name": "alice"},
			{"id": "2", "name": "bob"},
		},
		Observers: []table.Observer{observer},
	})
	testutil.AssertNoError(t, err, "construction")
	return tbl, observer
}

func TestObserverReceivesLoadEvent(t *testing.T) {
	_, observer := newObservedTable(t)

	if len(observer.Events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(observer.Events))
	}
	evt := observer.Events[0]
	if evt.Type != table.EventLoad {
		t.Errorf("Expected load event, got %v", evt.Type)
	}
	if evt.Rows != 2 {
		t.Errorf("Expected 2 rows loaded, got %d", evt.Rows)
	}
	if evt.Table != "people" {
		t.Errorf("Expected table name people, got %q", evt.Table)
	}
	if evt.OpID == "" {
		t.Error("Expected a non-empty operation ID")
	}
	if evt.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set, got zero value")
	}
}

func TestObserverReceivesMutationEvents(t *testing.T) {
	tbl, observer := newObservedTable(t)

	testutil.AssertNoError(t, tbl.Insert(data.Row{"id": "3", "name": "carol"}), "insert")
	if evt := observer.last(t); evt.Type != table.EventInsert || evt.Rows != 1 {
		t.Errorf("Expected insert event for 1 row, got %+v", evt)
	}

	n, err := tbl.UpdateByTemplate(nil, data.Row{"status": "ok"})
	testutil.AssertNoError(t, err, "update")
	if evt := observer.last(t); evt.Type != table.EventUpdate || evt.Rows != n {
		t.Errorf("Expected update event for %d rows, got %+v", n, evt)
	}

	n, err = tbl.DeleteByKey([]any{"1"})
	testutil.AssertNoError(t, err, "delete")
	if evt := observer.last(t); evt.Type != table.EventDelete || evt.Rows != n {
		t.Errorf("Expected delete event for %d rows, got %+v", n, evt)
	}
}

func TestObserverNotNotifiedOnRejectedOperation(t *testing.T) {
	tbl, observer := newObservedTable(t)
	seen := len(observer.Events)

	if err := tbl.Insert(data.Row{"id": "1", "name": "impostor"}); err == nil {
		t.Fatal("Expected duplicate insert to fail")
	}
	if len(observer.Events) != seen {
		t.Errorf("Expected no event for a rejected insert, got %d new", len(observer.Events)-seen)
	}
}

func TestAddRemoveObserver(t *testing.T) {
	tbl, _ := newObservedTable(t)
	extra := &MockObserver{}

	tbl.AddObserver(extra)
	testutil.AssertNoError(t, tbl.Insert(data.Row{"id": "9"}), "insert")
	if len(extra.Events) != 1 {
		t.Fatalf("Expected 1 event on the added observer, got %d", len(extra.Events))
	}

	tbl.RemoveObserver(extra)
	testutil.AssertNoError(t, tbl.Insert(data.Row{"id": "10"}), "insert")
	if len(extra.Events) != 1 {
		t.Errorf("Expected no further events after removal, got %d", len(extra.Events))
	}
}
