// internal/logger/interface.go

package logger

import "time"

// Record is a single accepted log entry.
type Record struct {
	Time    time.Time
	Level   Level
	Message string
}

// Sink is a destination a Logger routes records to.
// A Logger holds at most one sink of each kind (file, console).
type Sink interface {
	// Write formats and emits a single record.
	Write(record Record) error

	// Close flushes and releases the underlying resource, if any.
	Close() error

	// Name identifies the sink kind ("file" or "console").
	Name() string
}
