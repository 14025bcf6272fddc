// internal/logger/file_sink.go

package logger

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrSinkClosed is returned when writing to a closed FileSink.
var ErrSinkClosed = errors.New("sink is closed")

// FileSink appends records to a plain text file.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// NewFileSink opens path in append mode, creating it if needed.
func NewFileSink(path string) (*FileSink, error) {
	return openFileSink(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY)
}

// NewExclusiveFileSink creates path and fails with an error wrapping
// os.ErrExist if the file is already there.
func NewExclusiveFileSink(path string) (*FileSink, error) {
	return openFileSink(path, os.O_APPEND|os.O_CREATE|os.O_EXCL|os.O_WRONLY)
}

func openFileSink(path string, flag int) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("file sink requires a path")
	}
	file, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return &FileSink{file: file, path: path}, nil
}

// Write appends the formatted record to the file.
func (s *FileSink) Write(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return ErrSinkClosed
	}
	if _, err := s.file.Write(FormatRecord(record)); err != nil {
		return fmt.Errorf("failed to write log line to %s: %w", s.path, err)
	}
	return nil
}

// Close syncs and closes the file. Closing twice is a no-op.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	syncErr := s.file.Sync()
	closeErr := s.file.Close()
	s.file = nil
	if closeErr != nil {
		return fmt.Errorf("failed to close log file %s: %w", s.path, closeErr)
	}
	if syncErr != nil {
		return fmt.Errorf("failed to sync log file %s: %w", s.path, syncErr)
	}
	return nil
}

// Path returns the file path the sink writes to.
func (s *FileSink) Path() string {
	return s.path
}

// Name returns "file".
func (s *FileSink) Name() string {
	return "file"
}

// Ensure FileSink implements the Sink interface.
var _ Sink = (*FileSink)(nil)
