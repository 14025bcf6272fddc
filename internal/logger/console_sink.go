// internal/logger/console_sink.go

package logger

import (
	"fmt"
	"io"
	"sync"
)

// ConsoleSink mirrors records to a console stream.
type ConsoleSink struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewConsoleSink creates a sink writing to w. The stream is never closed by the sink.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{writer: w}
}

// Write writes the formatted record to the stream.
func (s *ConsoleSink) Write(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.writer.Write(FormatRecord(record)); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

// Close is a no-op; stdout and stderr belong to the process.
func (s *ConsoleSink) Close() error {
	return nil
}

// Name returns "console".
func (s *ConsoleSink) Name() string {
	return "console"
}

// Ensure ConsoleSink implements the Sink interface.
var _ Sink = (*ConsoleSink)(nil)
