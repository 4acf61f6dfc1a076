package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records confkit metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLoad records a load attempt with its duration and outcome.
	RecordLoad(ctx context.Context, source string, success bool, duration time.Duration)

	// RecordEntries records the entry and skipped-line counts of a
	// successful load.
	RecordEntries(ctx context.Context, source string, parsed, skipped int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	loads         metric.Int64Counter
	loadLatency   metric.Float64Histogram
	entriesParsed metric.Int64Counter
	linesSkipped  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("confkit")

	loads, err := meter.Int64Counter("confkit.loads",
		metric.WithDescription("Number of configuration loads"),
	)
	if err != nil {
		return nil, err
	}

	loadLatency, err := meter.Float64Histogram("confkit.load.latency_ms",
		metric.WithDescription("Configuration load latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	entriesParsed, err := meter.Int64Counter("confkit.entries.parsed",
		metric.WithDescription("Number of entries parsed"),
	)
	if err != nil {
		return nil, err
	}

	linesSkipped, err := meter.Int64Counter("confkit.lines.skipped",
		metric.WithDescription("Number of input lines skipped as malformed"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		loads:         loads,
		loadLatency:   loadLatency,
		entriesParsed: entriesParsed,
		linesSkipped:  linesSkipped,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLoad records a load attempt.
func (m *otelMetrics) RecordLoad(ctx context.Context, source string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("source", source),
		attribute.Bool("success", success),
	}
	m.loads.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.loadLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordEntries records entry and skipped-line counts.
func (m *otelMetrics) RecordEntries(ctx context.Context, source string, parsed, skipped int64) {
	attrs := []attribute.KeyValue{
		attribute.String("source", source),
	}
	m.entriesParsed.Add(ctx, parsed, metric.WithAttributes(attrs...))
	if skipped > 0 {
		m.linesSkipped.Add(ctx, skipped, metric.WithAttributes(attrs...))
	}
}
