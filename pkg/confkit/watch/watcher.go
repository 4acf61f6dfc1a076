// Package watch reloads key=value configuration files when they change
// on disk.
//
// A Watcher owns one file path. It parses the file once on Start, then
// re-parses after every debounced change event, publishing each result
// to subscribers and keeping the latest good store available through
// Store(). A failed reload publishes the error and leaves the previous
// store current.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/confkit/pkg/confkit"
	"github.com/randalmurphal/confkit/pkg/confkit/observability"
)

// Sentinel errors for watcher lifecycle.
var (
	// ErrClosed indicates the watcher has been closed.
	ErrClosed = errors.New("watcher closed")

	// ErrAlreadyStarted indicates Start was called more than once.
	ErrAlreadyStarted = errors.New("watcher already started")
)

// DefaultSubscriberBuffer is each subscription's channel capacity.
const DefaultSubscriberBuffer = 16

// Event is one reload notification. On success Store is the freshly
// parsed store; on failure Err is set and the watcher's current store
// is unchanged.
type Event struct {
	Store *confkit.Store
	Err   error
	At    time.Time
}

// Subscription is an active event subscription.
type Subscription struct {
	w  *Watcher
	ch chan Event
}

// Events returns the subscription's event channel. The channel is
// closed by Unsubscribe and when the watcher closes.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Unsubscribe removes the subscription and closes its channel.
func (s *Subscription) Unsubscribe() {
	s.w.unsubscribe(s)
}

// Watcher reloads one configuration file when it changes.
//
// Delivery to subscribers is non-blocking: a subscriber whose buffer
// is full misses that event rather than stalling the watch loop.
type Watcher struct {
	path     string
	debounce time.Duration
	retry    RetryConfig
	logger   *slog.Logger
	loadOpts []confkit.Option

	fw *fsnotify.Watcher

	mu      sync.RWMutex
	current *confkit.Store
	subs    map[*Subscription]struct{}
	started bool
	closed  bool
}

// New creates a watcher for the config file at path. The file must
// exist; watching starts with Start.
func New(path string, opts ...Option) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}

	w := &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		retry:    DefaultRetry,
		subs:     make(map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config file: %w", err)
	}
	w.fw = fw

	return w, nil
}

// Subscribe registers a new subscriber. Subscribing after Close
// returns a subscription whose channel is already closed.
func (w *Watcher) Subscribe() *Subscription {
	sub := &Subscription{w: w, ch: make(chan Event, DefaultSubscriberBuffer)}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		close(sub.ch)
		return sub
	}
	w.subs[sub] = struct{}{}
	return sub
}

// Start loads the file once, publishes the result, and begins watching
// for changes. Watching stops when ctx ends or Close is called; the
// context's end also closes the watcher. An initial load failure is
// published as an event, not returned: the file may become readable
// by the next change.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.started {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.started = true
	w.mu.Unlock()

	observability.LogWatchStart(w.logger, w.path)

	// Initial load, so subscribers observe a store without racing the
	// first change event.
	w.reload(ctx)

	go w.loop(ctx)
	return nil
}

// Store returns the most recently parsed store, or nil if no load has
// succeeded yet.
func (w *Watcher) Store() *confkit.Store {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and closes all subscriber channels. It is safe
// to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	subs := w.subs
	w.subs = nil
	w.mu.Unlock()

	for sub := range subs {
		close(sub.ch)
	}
	return w.fw.Close()
}

// loop is the main file watcher loop.
func (w *Watcher) loop(ctx context.Context) {
	// Debounce timer collapses rapid successive events into one reload.
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			w.Close()
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}

			// Write covers in-place saves, Create covers editors that
			// replace the file.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(w.debounce, func() {
					w.reload(ctx)
				})
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.publish(Event{Err: fmt.Errorf("watch error: %w", err), At: time.Now()})
		}
	}
}

// reload parses the file, retrying transient failures, then publishes
// the outcome.
func (w *Watcher) reload(ctx context.Context) {
	done := observability.TimedOperation()

	store, attempts, err := retryLoad(ctx, w.retry, func() (*confkit.Store, error) {
		return confkit.LoadContext(ctx, w.path, w.loadOpts...)
	})
	if err != nil {
		observability.LogReloadError(w.logger, w.path, err, attempts)
		w.publish(Event{Err: err, At: time.Now()})
		return
	}

	w.mu.Lock()
	w.current = store
	w.mu.Unlock()

	observability.LogReloadComplete(w.logger, w.path, store.Len(), done())
	w.publish(Event{Store: store, At: time.Now()})
}

// publish delivers an event to every subscriber without blocking.
func (w *Watcher) publish(evt Event) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return
	}
	for sub := range w.subs {
		select {
		case sub.ch <- evt:
		default:
			observability.LogEventDropped(w.logger, w.path)
		}
	}
}

// unsubscribe removes sub and closes its channel.
func (w *Watcher) unsubscribe(sub *Subscription) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.subs[sub]; !ok {
		return
	}
	delete(w.subs, sub)
	close(sub.ch)
}
