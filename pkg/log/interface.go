// Package log provides structured logging for ABGo analysis operations.
//
// The package defines a minimal, slog-compatible logging interface so the
// statistical packages never depend on a concrete backend. A zerolog-backed
// implementation is provided as the default, and SetupLogger installs a
// JSON slog handler that formats cockroachdb/errors stack traces for
// callers who prefer the standard library logger.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ComponentKey, "hypothesis",
//	    log.MetricTypeKey, "proportion",
//	)
//	logger.Info("test completed",
//	    log.PValueKey, 0.031,
//	    log.SamplesKey, 2000,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with log/slog.
//
// Fields are alternating key/value pairs. With returns a derived logger
// that includes the given fields in every subsequent record, which is how
// analysis packages attach experiment context once and log tersely after.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop the analysis, such as a
	// failed A/A test or a sample ratio mismatch.
	Warn(msg string, fields ...any)

	// Error logs failures. If a field value is an error, implementations
	// may attach stack trace information extracted from it.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
