// internal/logger/registry.go

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Registry owns the named loggers of a process. Setup calls for all names are
// serialised, so concurrent setups of one name never attach duplicate sinks.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
	runPath map[string]string // last file path handed out in run mode, per name

	now     func() time.Time
	console io.Writer
	app     *AppLogger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock replaces time.Now for file names and record timestamps.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// WithConsoleWriter sets the stream console sinks write to. Defaults to os.Stderr.
func WithConsoleWriter(w io.Writer) RegistryOption {
	return func(r *Registry) {
		r.console = w
	}
}

// WithAppLogger sets the logger used for runlog's own diagnostics.
func WithAppLogger(app *AppLogger) RegistryOption {
	return func(r *Registry) {
		r.app = app
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		loggers: make(map[string]*Logger),
		runPath: make(map[string]string),
		now:     time.Now,
		console: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.app == nil {
		r.app = GetAppLogger()
	}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by SetupLogger.
func Default() *Registry {
	return defaultRegistry
}

// SetupLogger configures the named logger on the default registry in daily
// mode. Repeated calls on the same day reuse the existing file and sinks.
func SetupLogger(name, dir string, level Level, toConsole bool) (*Logger, error) {
	opts := DefaultOptions(name)
	opts.Dir = dir
	opts.Level = level
	opts.Console = toConsole
	return defaultRegistry.Setup(opts)
}

// LogPath returns the file path a logger would use under the given options and
// time, without touching the filesystem.
func LogPath(dir, name string, mode Mode, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.log", name, fileStamp(mode, t)))
}

// Setup creates or reconfigures the logger named opts.Name.
//
// In daily mode a logger that already has sinks keeps them, along with the
// mode they were attached in; only its level is updated. In run mode existing
// sinks are closed and replaced by sinks on a new file. On error the registry
// is left unchanged.
func (r *Registry) Setup(opts Options) (*Logger, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", opts.Dir, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lg, exists := r.loggers[opts.Name]
	if !exists {
		lg = newLogger(opts.Name, r.now, r.app)
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	switch opts.Mode {
	case ModeRun:
		file, err := r.openRunFile(opts)
		if err != nil {
			return nil, err
		}
		path := file.Path()
		if err := lg.detachLocked(); err != nil {
			r.app.Warn("Error closing previous sinks of logger '%s': %v", opts.Name, err)
		}
		lg.file = file
		lg.console = r.consoleSink(opts)
		lg.mode = ModeRun
		r.runPath[opts.Name] = path
		r.app.Debug("Logger '%s' attached to new run file %s", opts.Name, path)
	default:
		if lg.file != nil || lg.console != nil {
			// Mode stays that of the call which attached the kept sinks.
			r.app.Debug("Logger '%s' already configured, keeping sinks", opts.Name)
			break
		}
		path := LogPath(opts.Dir, opts.Name, ModeDaily, r.now())
		file, err := NewFileSink(path)
		if err != nil {
			return nil, err
		}
		lg.file = file
		lg.console = r.consoleSink(opts)
		lg.mode = ModeDaily
		r.app.Debug("Logger '%s' attached to daily file %s", opts.Name, path)
	}

	lg.level = opts.Level
	r.loggers[opts.Name] = lg
	return lg, nil
}

func (r *Registry) consoleSink(opts Options) *ConsoleSink {
	if !opts.Console {
		return nil
	}
	w := opts.ConsoleWriter
	if w == nil {
		w = r.console
	}
	return NewConsoleSink(w)
}

// openRunFile creates a run-mode file that neither the previous run of this
// name nor anyone else has claimed. Collisions within the same second get a
// numeric suffix: name_2006-01-02_15-04-05_1.log. The file is created with
// O_EXCL, so concurrent processes never share one.
func (r *Registry) openRunFile(opts Options) (*FileSink, error) {
	base := LogPath(opts.Dir, opts.Name, ModeRun, r.now())
	stem := strings.TrimSuffix(base, ".log")
	path := base
	for i := 1; ; i++ {
		if r.runPath[opts.Name] != path {
			file, err := NewExclusiveFileSink(path)
			if err == nil {
				return file, nil
			}
			if !errors.Is(err, os.ErrExist) {
				return nil, err
			}
		}
		path = fmt.Sprintf("%s_%d.log", stem, i)
	}
}

// Get retrieves a logger by name.
// Returns nil if the logger has not been set up.
func (r *Registry) Get(name string) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loggers[name]
}

// Names returns the names of all configured loggers, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes the sinks of one logger and removes it from the registry.
// Closing an unknown name is a no-op.
func (r *Registry) Close(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lg, ok := r.loggers[name]
	if !ok {
		return nil
	}
	delete(r.loggers, name)
	delete(r.runPath, name)
	return lg.close()
}

// CloseAll flushes and closes every sink and empties the registry.
// It is meant to be deferred in main.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		wg   sync.WaitGroup
		emu  sync.Mutex
		errs []error
	)
	for name, lg := range r.loggers {
		wg.Add(1)
		go func(name string, lg *Logger) {
			defer wg.Done()
			if err := lg.close(); err != nil {
				r.app.Warn("Error closing logger '%s': %v", name, err)
				emu.Lock()
				errs = append(errs, err)
				emu.Unlock()
			}
		}(name, lg)
	}
	wg.Wait()

	r.loggers = make(map[string]*Logger)
	r.runPath = make(map[string]string)
	return errors.Join(errs...)
}

// Reset closes everything and discards close errors. Intended for tests.
func (r *Registry) Reset() {
	_ = r.CloseAll()
}
