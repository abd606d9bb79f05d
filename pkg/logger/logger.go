// Package logger provides structured logging for the benchmark harness.
//
// Benchmark results are written to stdout as CSV; every log line goes to
// stderr or a file so measurement output stays machine-readable.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// LogFilePermissions defines the file permissions for log files (owner
// read/write only).
const LogFilePermissions = 0o600

// Logger is the structured logging interface used across the harness.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger with additional key-value pairs.
	With(keysAndValues ...any) Logger
}

// SlogAdapter implements Logger on top of log/slog with the plain-text
// handler from this package.
type SlogAdapter struct {
	sl *slog.Logger
}

// NewStderrLogger creates a logger writing to stderr. The verbosity is
// derived from the debug and trace flags, see LevelFromFlags.
func NewStderrLogger(debug, trace bool) *SlogAdapter {
	return NewWriterLogger(os.Stderr, LevelFromFlags(debug, trace))
}

// NewFileLogger creates a logger appending to the log file at path.
func NewFileLogger(path string, debug, trace bool) (*SlogAdapter, error) {
	h, err := NewFileHandler(path, LevelFromFlags(debug, trace))
	if err != nil {
		return nil, err
	}

	return &SlogAdapter{sl: slog.New(h)}, nil
}

// NewWriterLogger creates a logger writing to w at the given level.
func NewWriterLogger(w io.Writer, level Level) *SlogAdapter {
	return &SlogAdapter{sl: slog.New(NewWriterHandler(w, level))}
}

// Debug logs debug-level messages.
func (l *SlogAdapter) Debug(msg string, keysAndValues ...any) {
	l.sl.Debug(msg, keysAndValues...)
}

// Info logs info-level messages.
func (l *SlogAdapter) Info(msg string, keysAndValues ...any) {
	l.sl.Info(msg, keysAndValues...)
}

// Error logs error-level messages.
func (l *SlogAdapter) Error(msg string, keysAndValues ...any) {
	l.sl.Error(msg, keysAndValues...)
}

// With returns a new logger with additional base key-value pairs.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (l *SlogAdapter) With(keysAndValues ...any) Logger {
	return &SlogAdapter{sl: l.sl.With(keysAndValues...)}
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing.
func (*NoOpLogger) Debug(string, ...any) {}

// Info does nothing.
func (*NoOpLogger) Info(string, ...any) {}

// Error does nothing.
func (*NoOpLogger) Error(string, ...any) {}

// With returns the same NoOpLogger.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (n *NoOpLogger) With(...any) Logger {
	return n
}
