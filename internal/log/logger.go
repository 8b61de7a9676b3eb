// Package log provides structured logging for srcpkg.
//
// This package defines a Logger interface backed by Go's stdlib slog,
// enabling testable logging throughout the codebase. Subsystems accept a
// Logger as a function parameter or struct field, with a global default
// for convenience.
//
// Output semantics:
//   - User output (stdout): command results, staged-archive paths, success
//   - Diagnostic logging (stderr): Debug, Info, Warn, Error messages
//
// Verbosity levels:
//   - ERROR (--quiet): errors only
//   - WARN (default): warnings and user output
//   - INFO (--verbose): stage-by-stage progress (fetch, extract, patch, build...)
//   - DEBUG (--debug): subprocess argv, environment overlays, checksum bytes
package log

import (
	"log/slog"
	"sync"
)

// Logger is the interface for structured logging. Methods mirror slog's
// signature for easy integration.
type Logger interface {
	// Debug logs at DEBUG level: subprocess argv, checksum values, env overlays.
	Debug(msg string, args ...any)

	// Info logs at INFO level: "fetching archive", "applying patch 2/3".
	Info(msg string, args ...any)

	// Warn logs at WARN level: recoverable issues like a non-fatal HookFailed.
	Warn(msg string, args ...any)

	// Error logs at ERROR level: failures that abort the current operation.
	Error(msg string, args ...any)

	// With returns a Logger with additional context attributes included in
	// every subsequent log entry.
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New creates a Logger backed by slog with the given handler.
func New(h slog.Handler) Logger {
	return &slogLogger{l: slog.New(h)}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }
func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

type noopLogger struct{}

// NewNoop returns a logger that discards all output. Used for tests and as
// the package-level default until SetDefault is called.
func NewNoop() Logger { return noopLogger{} }

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) With(...any) Logger   { return noopLogger{} }

var (
	defaultLogger Logger = noopLogger{}
	defaultMu     sync.RWMutex
)

// Default returns the global logger configured at startup, or a noop logger
// if SetDefault has not been called.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the global logger. Called once by the CLI's
// PersistentPreRun hook after parsing verbosity flags.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
