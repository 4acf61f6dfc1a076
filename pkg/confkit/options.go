package confkit

import (
	"log/slog"

	"github.com/randalmurphal/confkit/pkg/confkit/observability"
)

// loadConfig holds per-load configuration.
type loadConfig struct {
	logger      *slog.Logger
	metrics     observability.MetricsRecorder
	spans       observability.SpanManager
	maxValueLen int
}

// defaultLoadConfig returns the default load configuration:
// no logging, no metrics, no tracing, DefaultMaxValueLen string cap.
func defaultLoadConfig() loadConfig {
	return loadConfig{
		metrics:     observability.NoopMetrics{},
		spans:       observability.NoopSpanManager{},
		maxValueLen: DefaultMaxValueLen,
	}
}

// Option configures Load and Parse behavior.
type Option func(*loadConfig)

// WithLogger sets the logger for load diagnostics. Skipped lines are
// reported at debug level. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for loads.
// Uses the globally configured meter provider. Default: disabled.
//
// Example:
//
//	store, err := confkit.Load("app.conf", confkit.WithMetrics(true))
func WithMetrics(enabled bool) Option {
	return func(c *loadConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans around loads.
// Uses the globally configured tracer provider. Default: disabled.
func WithTracing(enabled bool) Option {
	return func(c *loadConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithMaxValueLen sets the byte cap applied to string values.
// Non-positive values are ignored. Default: DefaultMaxValueLen.
func WithMaxValueLen(n int) Option {
	return func(c *loadConfig) {
		if n > 0 {
			c.maxValueLen = n
		}
	}
}
