// internal/logger/logger.go

package logger

import (
	"bytes"
	"fmt"
	"sync"
	"time"
)

// Logger is a named logger routing records at or above its level to a file
// sink and, optionally, a console sink. Loggers are created by a Registry.
type Logger struct {
	name string
	now  func() time.Time
	app  *AppLogger

	mu      sync.RWMutex
	level   Level
	mode    Mode
	file    *FileSink
	console *ConsoleSink
}

func newLogger(name string, now func() time.Time, app *AppLogger) *Logger {
	return &Logger{
		name:  name,
		now:   now,
		app:   app,
		level: INFO,
	}
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the minimum accepted level.
func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetLevel changes the minimum accepted level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Mode returns the mode of the last successful Setup.
func (l *Logger) Mode() Mode {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.mode
}

// Enabled reports whether a record at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.Level()
}

// Path returns the path of the attached log file, or "" when none is attached.
func (l *Logger) Path() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.file == nil {
		return ""
	}
	return l.file.Path()
}

// Sinks returns the currently attached sinks, file first.
func (l *Logger) Sinks() []Sink {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sinksLocked()
}

func (l *Logger) sinksLocked() []Sink {
	sinks := make([]Sink, 0, 2)
	if l.file != nil {
		sinks = append(sinks, l.file)
	}
	if l.console != nil {
		sinks = append(sinks, l.console)
	}
	return sinks
}

// Log emits a record at the given level. Sink failures are reported on the
// application logger and never returned to the caller.
//
// The read lock is held across the sink writes, so a concurrent Setup waits
// for in-flight records before it closes the sinks they are written to.
func (l *Logger) Log(level Level, format string, args ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if level < l.level {
		return
	}
	sinks := l.sinksLocked()
	if len(sinks) == 0 {
		return
	}

	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	record := Record{Time: l.now(), Level: level, Message: message}

	for _, sink := range sinks {
		if err := sink.Write(record); err != nil {
			l.app.Error("Logger '%s': %s sink write failed: %v", l.name, sink.Name(), err)
		}
	}
}

// Debug logs a message at DEBUG level
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Log(DEBUG, format, args...)
}

// Info logs a message at INFO level
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(INFO, format, args...)
}

// Warning logs a message at WARNING level
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(WARNING, format, args...)
}

// Error logs a message at ERROR level
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(ERROR, format, args...)
}

// Critical logs a message at CRITICAL level. It never exits the process.
func (l *Logger) Critical(format string, args ...interface{}) {
	l.Log(CRITICAL, format, args...)
}

// Writer returns a LineWriter that logs every line written to it at level.
// Close it when done so a trailing line without a newline is not lost.
func (l *Logger) Writer(level Level) *LineWriter {
	return &LineWriter{logger: l, level: level}
}

// LineWriter turns a byte stream into records, one per line. Lines may span
// several Write calls; the partial tail is kept until its newline arrives or
// Flush is called. Empty lines are skipped.
type LineWriter struct {
	mu     sync.Mutex
	logger *Logger
	level  Level
	buf    []byte
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush logs a pending line that has no trailing newline yet.
func (w *LineWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
	return nil
}

// Close flushes the pending line. The underlying logger stays open.
func (w *LineWriter) Close() error {
	return w.Flush()
}

func (w *LineWriter) emit(line []byte) {
	line = bytes.TrimRight(line, "\r")
	if len(line) == 0 {
		return
	}
	w.logger.Log(w.level, "%s", string(line))
}

// detachLocked closes and removes all sinks. Callers must hold l.mu.
func (l *Logger) detachLocked() error {
	var errs []error
	for _, sink := range l.sinksLocked() {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.file = nil
	l.console = nil
	if len(errs) > 0 {
		return fmt.Errorf("logger '%s': failed to close sinks: %v", l.name, errs)
	}
	return nil
}

// close detaches every sink.
func (l *Logger) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.detachLocked()
}
