// Package observability provides production-grade observability features
// for confkit: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// WithSource adds the configuration source to a logger.
// Returns a new logger with a source field.
//
// Example:
//
//	enriched := WithSource(logger, "app.conf")
//	enriched.Info("reloading") // includes source
func WithSource(logger *slog.Logger, source string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("source", source),
	)
}

// LogLoadStart logs the start of a configuration load.
func LogLoadStart(logger *slog.Logger, source string) {
	if logger == nil {
		return
	}
	logger.Debug("config load starting",
		slog.String("source", source),
	)
}

// LogLoadComplete logs successful load completion.
func LogLoadComplete(logger *slog.Logger, source string, entries, skipped int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("config loaded",
		slog.String("source", source),
		slog.Int("entries", entries),
		slog.Int("lines_skipped", skipped),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLoadError logs load failure.
func LogLoadError(logger *slog.Logger, source string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("config load failed",
		slog.String("source", source),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLineSkipped logs a rejected input line.
func LogLineSkipped(logger *slog.Logger, source string, line int, reason string) {
	if logger == nil {
		return
	}
	logger.Debug("line skipped",
		slog.String("source", source),
		slog.Int("line", line),
		slog.String("reason", reason),
	)
}

// LogWatchStart logs the start of a file watch.
func LogWatchStart(logger *slog.Logger, path string) {
	if logger == nil {
		return
	}
	logger.Info("watch starting",
		slog.String("path", path),
	)
}

// LogReloadComplete logs a successful reload after a file change.
func LogReloadComplete(logger *slog.Logger, path string, entries int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("config reloaded",
		slog.String("path", path),
		slog.Int("entries", entries),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogReloadError logs a failed reload (non-fatal; the previous store
// stays current).
func LogReloadError(logger *slog.Logger, path string, err error, attempts int) {
	if logger == nil {
		return
	}
	logger.Warn("config reload failed",
		slog.String("path", path),
		slog.String("error", err.Error()),
		slog.Int("attempts", attempts),
	)
}

// LogEventDropped logs a reload event dropped because a subscriber's
// buffer was full.
func LogEventDropped(logger *slog.Logger, path string) {
	if logger == nil {
		return
	}
	logger.Warn("reload event dropped",
		slog.String("path", path),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
