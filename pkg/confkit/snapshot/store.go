package snapshot

import (
	"errors"
	"time"
)

// Store persists snapshots.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a snapshot. If the ID already exists, the stored
	// snapshot is replaced and keeps its sequence number.
	Save(snap *Snapshot) error

	// Load retrieves a snapshot by ID.
	// Returns ErrNotFound if it doesn't exist.
	Load(id string) (*Snapshot, error)

	// List returns metadata for all snapshots of a config path,
	// ordered by sequence. Returns an empty slice (not an error) if
	// the path has no snapshots.
	List(path string) ([]Info, error)

	// Delete removes a snapshot.
	// Returns nil if it doesn't exist.
	Delete(id string) error

	// DeletePath removes all snapshots for a config path.
	// Returns nil if the path has none.
	DeletePath(path string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides snapshot metadata without loading entries.
type Info struct {
	ID         string
	Path       string
	Sequence   int
	TakenAt    time.Time
	EntryCount int
	Size       int64
}

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")
)
