package watch

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/confkit/pkg/confkit"
)

// DefaultDebounce is the quiet period after a file event before
// reloading.
const DefaultDebounce = 500 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after a file event before the
// reload runs; rapid successive writes collapse into one reload.
// Non-positive values are ignored. Default: DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch diagnostics.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithLoadOptions supplies confkit options forwarded to every load the
// watcher performs.
func WithLoadOptions(opts ...confkit.Option) Option {
	return func(w *Watcher) {
		w.loadOpts = opts
	}
}

// WithRetry sets the reload retry configuration.
// Default: DefaultRetry.
func WithRetry(cfg RetryConfig) Option {
	return func(w *Watcher) {
		w.retry = cfg
	}
}
