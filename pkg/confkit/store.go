package confkit

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/randalmurphal/confkit/pkg/confkit/observability"
)

// Store holds the entries parsed from one configuration source, in
// source order. A Store is immutable after construction and safe for
// concurrent readers. All read operations are nil-safe: a nil *Store
// behaves like an empty one.
type Store struct {
	path    string
	entries []Entry
}

// Load reads and parses the key=value file at path.
//
// Load fails only when the file cannot be opened or read. Malformed
// lines are skipped, never fatal; kind inference is described in the
// package documentation.
func Load(path string, opts ...Option) (*Store, error) {
	return LoadContext(context.Background(), path, opts...)
}

// LoadContext is Load with a caller-supplied context. The context
// carries telemetry propagation only; the load itself is synchronous
// and does not observe cancellation.
func LoadContext(ctx context.Context, path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	return parseSource(ctx, f, path, opts)
}

// Parse reads key=value lines from r. The resulting store has an
// empty Path.
func Parse(r io.Reader, opts ...Option) (*Store, error) {
	return ParseContext(context.Background(), r, opts...)
}

// ParseContext is Parse with a caller-supplied context, used for
// telemetry propagation only.
func ParseContext(ctx context.Context, r io.Reader, opts ...Option) (*Store, error) {
	return parseSource(ctx, r, "", opts)
}

func parseSource(ctx context.Context, r io.Reader, path string, opts []Option) (*Store, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	source := path
	if source == "" {
		source = "<reader>"
	}

	ctx, span := cfg.spans.StartLoadSpan(ctx, source)
	observability.LogLoadStart(cfg.logger, source)
	start := time.Now()

	p := parser{cfg: cfg, source: source}
	scanErr := p.scan(r)
	duration := time.Since(start)
	durationMs := float64(duration.Milliseconds())

	if scanErr != nil {
		err := fmt.Errorf("read config: %w", scanErr)
		observability.LogLoadError(cfg.logger, source, err, durationMs)
		cfg.metrics.RecordLoad(ctx, source, false, duration)
		cfg.spans.EndSpanWithError(span, err)
		return nil, err
	}

	observability.LogLoadComplete(cfg.logger, source, len(p.entries), p.skipped, durationMs)
	cfg.metrics.RecordLoad(ctx, source, true, duration)
	cfg.metrics.RecordEntries(ctx, source, int64(len(p.entries)), int64(p.skipped))
	cfg.spans.EndSpanWithError(span, nil)

	return &Store{path: path, entries: p.entries}, nil
}

// Lookup returns the first entry whose key matches exactly, scanning
// in source order. Duplicate keys are shadowed: only the earliest
// occurrence is visible here and to the typed accessors.
func (s *Store) Lookup(key string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	for i := range s.entries {
		if s.entries[i].Key == key {
			return s.entries[i], true
		}
	}
	return Entry{}, false
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Len returns the number of stored entries, counting shadowed
// duplicates.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a copy of the stored entries in source order,
// including shadowed duplicates. Returns nil for an empty store.
func (s *Store) Entries() []Entry {
	if s == nil || len(s.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Path returns the file the store was loaded from, or "" for stores
// parsed from a reader.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close releases the stored entries. It is safe on a nil store and
// safe to call more than once. After Close every lookup misses, so
// every accessor returns its default.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.entries = nil
}
