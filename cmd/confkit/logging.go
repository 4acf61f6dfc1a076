package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds the CLI's console logger on stderr.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// newSlogBridge wraps a zerolog logger as an *slog.Logger, so library
// logging lands in the same console stream as the CLI's own output.
func newSlogBridge(log zerolog.Logger) *slog.Logger {
	return slog.New(&zerologHandler{log: log})
}

// zerologHandler is an slog.Handler that forwards records to zerolog.
type zerologHandler struct {
	log    zerolog.Logger
	attrs  []slog.Attr
	prefix string
}

// Enabled implements slog.Handler.
func (h *zerologHandler) Enabled(_ context.Context, level slog.Level) bool {
	return zerologLevel(level) >= h.log.GetLevel()
}

// Handle implements slog.Handler.
func (h *zerologHandler) Handle(_ context.Context, r slog.Record) error {
	evt := h.log.WithLevel(zerologLevel(r.Level))

	// Stored attrs already carry the prefix they were added under.
	for _, attr := range h.attrs {
		evt = evt.Interface(attr.Key, attr.Value.Any())
	}
	r.Attrs(func(a slog.Attr) bool {
		evt = addAttr(evt, h.prefix, a)
		return true
	})

	evt.Msg(r.Message)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *zerologHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(merged, h.attrs)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + "." + a.Key
		}
		merged = append(merged, a)
	}
	return &zerologHandler{log: h.log, attrs: merged, prefix: h.prefix}
}

// WithGroup implements slog.Handler.
func (h *zerologHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	prefix := name
	if h.prefix != "" {
		prefix = h.prefix + "." + name
	}
	return &zerologHandler{log: h.log, attrs: h.attrs, prefix: prefix}
}

// addAttr attaches one slog attribute to a zerolog event.
func addAttr(evt *zerolog.Event, prefix string, a slog.Attr) *zerolog.Event {
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	return evt.Interface(key, a.Value.Any())
}

// zerologLevel maps slog levels onto zerolog levels.
func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level >= slog.LevelError:
		return zerolog.ErrorLevel
	case level >= slog.LevelWarn:
		return zerolog.WarnLevel
	case level >= slog.LevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
