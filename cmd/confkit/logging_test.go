package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// decodeLogLine parses one JSON log line.
func decodeLogLine(t *testing.T, line []byte) map[string]any {
	t.Helper()

	var rec map[string]any
	if err := json.Unmarshal(line, &rec); err != nil {
		t.Fatalf("log line is not valid json: %v\n%s", err, line)
	}
	return rec
}

func TestSlogBridge_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newSlogBridge(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record should be filtered at info level, got:\n%s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info record missing, got:\n%s", out)
	}
}

func TestSlogBridge_Record(t *testing.T) {
	var buf bytes.Buffer
	logger := newSlogBridge(zerolog.New(&buf))

	logger.Info("config loaded", "entries", 3, "path", "app.conf")

	rec := decodeLogLine(t, buf.Bytes())
	if rec["level"] != "info" {
		t.Errorf("level = %v, want info", rec["level"])
	}
	if rec["message"] != "config loaded" {
		t.Errorf("message = %v, want config loaded", rec["message"])
	}
	if v, ok := rec["entries"].(float64); !ok || v != 3 {
		t.Errorf("entries = %v, want 3", rec["entries"])
	}
	if rec["path"] != "app.conf" {
		t.Errorf("path = %v, want app.conf", rec["path"])
	}
}

func TestSlogBridge_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newSlogBridge(zerolog.New(&buf))

	logger.Error("load failed")

	rec := decodeLogLine(t, buf.Bytes())
	if rec["level"] != "error" {
		t.Errorf("level = %v, want error", rec["level"])
	}
}

func TestSlogBridge_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newSlogBridge(zerolog.New(&buf))

	logger.With("source", "app.conf").Info("config loaded")

	rec := decodeLogLine(t, buf.Bytes())
	if rec["source"] != "app.conf" {
		t.Errorf("source = %v, want app.conf", rec["source"])
	}
}

func TestSlogBridge_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := newSlogBridge(zerolog.New(&buf))

	logger.With("source", "app.conf").WithGroup("load").Info("done", "entries", 3)

	rec := decodeLogLine(t, buf.Bytes())
	if rec["source"] != "app.conf" {
		t.Errorf("pre-group attr source = %v, want app.conf without prefix", rec["source"])
	}
	if v, ok := rec["load.entries"].(float64); !ok || v != 3 {
		t.Errorf("load.entries = %v, want 3", rec["load.entries"])
	}
}

func TestSlogBridge_NestedGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := newSlogBridge(zerolog.New(&buf))

	logger.WithGroup("a").WithGroup("b").Info("msg", "k", "v")

	rec := decodeLogLine(t, buf.Bytes())
	if rec["a.b.k"] != "v" {
		t.Errorf("a.b.k = %v, want v", rec["a.b.k"])
	}
}

func TestZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelDebug - 4, zerolog.DebugLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := zerologLevel(tt.in); got != tt.want {
			t.Errorf("zerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_Levels(t *testing.T) {
	if got := newLogger(false).GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("newLogger(false) level = %v, want info", got)
	}
	if got := newLogger(true).GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("newLogger(true) level = %v, want debug", got)
	}
}
