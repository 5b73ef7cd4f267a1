package table

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// EventType represents the table operations observers are notified about
type EventType string

const (
	EventLoad   EventType = "load"
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
	EventSave   EventType = "save"
)

// Event describes one completed table operation
type Event struct {
	Type      EventType // type of operation
	Table     string    // table name
	OpID      string    // unique ID for tracing this operation
	Timestamp time.Time // when the event occurred
	Rows      int       // rows affected (loaded, inserted, updated, deleted, saved)
}

// Observer receives events after each table operation that changes or
// persists state. Observers replace an ambient debug flag: diagnostics
// are an explicit, per-table dependency.
type Observer interface {
	OnEvent(event Event)
}

// LoggingObserver logs every event through structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates an observer that logs to the given logger,
// falling back to slog.Default when logger is nil.
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Info("table_operation",
		"event", event.Type,
		"table", event.Table,
		"op_id", event.OpID,
		"rows", event.Rows,
	)
}

func newOpID() string {
	return uuid.New().String()
}
