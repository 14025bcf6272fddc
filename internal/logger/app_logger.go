// internal/logger/app_logger.go

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// AppLogger reports runlog's own diagnostics (reconfiguration, close errors)
// on stderr. It never writes into the log files managed by a Registry.
type AppLogger struct {
	mu     sync.Mutex
	writer io.Writer
	level  Level
}

// Global instance
var (
	defaultAppLogger *AppLogger
	appLoggerOnce    sync.Once
)

// GetAppLogger returns the singleton instance of the application logger
func GetAppLogger() *AppLogger {
	appLoggerOnce.Do(func() {
		defaultAppLogger = &AppLogger{
			writer: os.Stderr,
			level:  WARNING, // Default level
		}
	})
	return defaultAppLogger
}

// NewAppLogger creates a standalone application logger writing to w.
func NewAppLogger(w io.Writer, level Level) *AppLogger {
	return &AppLogger{writer: w, level: level}
}

// SetLogLevel sets the minimum log level
func (l *AppLogger) SetLogLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetLogLevelFromString sets the log level from a string name
func (l *AppLogger) SetLogLevelFromString(levelName string) error {
	level, err := ParseLevel(levelName)
	if err != nil {
		return err
	}
	l.SetLogLevel(level)
	return nil
}

// SetWriter replaces the output stream.
func (l *AppLogger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// logf formats and logs a message if the level is sufficient
// Lock is only held during checks and write, not during formatting
func (l *AppLogger) logf(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	skip := level < l.level
	l.mu.Unlock()
	if skip {
		return
	}

	now := time.Now().Format("2006-01-02T15:04:05Z07:00")
	message := fmt.Sprintf(format, args...)
	logLine := fmt.Sprintf("[%s] %s: %s\n", now, level, message)

	l.mu.Lock()
	_, _ = fmt.Fprint(l.writer, logLine)
	l.mu.Unlock()
}

// Debug logs a message at DEBUG level
func (l *AppLogger) Debug(format string, args ...interface{}) {
	l.logf(DEBUG, format, args...)
}

// Info logs a message at INFO level
func (l *AppLogger) Info(format string, args ...interface{}) {
	l.logf(INFO, format, args...)
}

// Warn logs a message at WARNING level
func (l *AppLogger) Warn(format string, args ...interface{}) {
	l.logf(WARNING, format, args...)
}

// Error logs a message at ERROR level
func (l *AppLogger) Error(format string, args ...interface{}) {
	l.logf(ERROR, format, args...)
}

