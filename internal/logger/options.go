// internal/logger/options.go

package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/orgoj/runlog/internal/config"
)

// ErrInvalidOptions wraps every Options validation failure.
var ErrInvalidOptions = errors.New("invalid logger options")

// Mode selects how Setup treats repeated calls for the same name.
type Mode string

const (
	// ModeDaily consolidates a day's records into {name}_{YYYY-MM-DD}.log and
	// leaves already attached sinks untouched on repeated calls.
	ModeDaily Mode = "daily"
	// ModeRun replaces the sinks on every call and writes to a fresh
	// {name}_{YYYY-MM-DD_HH-MM-SS}.log file.
	ModeRun Mode = "run"
)

const (
	DefaultDir   = "logs"
	DefaultLevel = INFO
	DefaultMode  = ModeDaily
)

// ParseMode converts "daily" or "run" (case-insensitive) into a Mode.
// An empty string yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMode, nil
	case ModeDaily:
		return ModeDaily, nil
	case ModeRun:
		return ModeRun, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q, must be 'daily' or 'run'", ErrInvalidOptions, s)
	}
}

// Options configures a logger created by Registry.Setup.
type Options struct {
	Name    string `validate:"required,max=200,excludesall=/\\"`
	Dir     string `validate:"required"`
	Level   Level  `validate:"oneof=10 20 30 40 50"`
	Console bool
	Mode    Mode `validate:"oneof=daily run"`

	// ConsoleWriter overrides the registry's console stream when set.
	ConsoleWriter io.Writer `validate:"-"`
}

// DefaultOptions returns the options for name with every default applied:
// directory "logs", level INFO, console output on, daily mode.
func DefaultOptions(name string) Options {
	return Options{
		Name:    name,
		Dir:     DefaultDir,
		Level:   DefaultLevel,
		Console: true,
		Mode:    DefaultMode,
	}
}

var validate = validator.New()

// normalize fills zero values with defaults and validates the result.
func (o Options) normalize() (Options, error) {
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.Level == 0 {
		o.Level = DefaultLevel
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}

	if err := validate.Struct(o); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return o, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag()))
		}
		return o, fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(messages, "; "))
	}
	return o, nil
}

// OptionsFromSettings builds Options for name from resolved config settings.
// Unset settings fall back to the package defaults.
func OptionsFromSettings(name string, s config.LoggerSettings) (Options, error) {
	opts := DefaultOptions(name)
	if s.Dir != "" {
		opts.Dir = s.Dir
	}
	if s.Level != "" {
		level, err := ParseLevel(s.Level)
		if err != nil {
			return opts, err
		}
		opts.Level = level
	}
	if s.Console != nil {
		opts.Console = *s.Console
	}
	mode, err := ParseMode(s.Mode)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	return opts, nil
}
