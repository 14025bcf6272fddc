// internal/logger/level.go

package logger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned when a level name cannot be parsed.
var ErrUnknownLevel = errors.New("unknown log level")

// Level is the severity of a record. Higher values are more severe.
type Level int

const (
	DEBUG    Level = 10
	INFO     Level = 20
	WARNING  Level = 30
	ERROR    Level = 40
	CRITICAL Level = 50
)

var levelNames = map[Level]string{
	DEBUG:    "DEBUG",
	INFO:     "INFO",
	WARNING:  "WARNING",
	ERROR:    "ERROR",
	CRITICAL: "CRITICAL",
}

// LevelNameToLevel maps accepted level names (upper case) to levels.
// WARN and FATAL are kept as aliases.
var LevelNameToLevel = map[string]Level{
	"DEBUG":    DEBUG,
	"INFO":     INFO,
	"WARNING":  WARNING,
	"WARN":     WARNING,
	"ERROR":    ERROR,
	"CRITICAL": CRITICAL,
	"FATAL":    CRITICAL,
}

// AllLevels lists the levels in ascending order.
var AllLevels = []Level{DEBUG, INFO, WARNING, ERROR, CRITICAL}

// String returns the canonical name, or "Level(n)" for values outside the known set.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts a case-insensitive level name into a Level.
func ParseLevel(name string) (Level, error) {
	level, ok := LevelNameToLevel[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return level, nil
}
