// Package snapshot records point-in-time captures of parsed
// configuration stores, for audit trails and drift detection.
package snapshot

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/confkit/pkg/confkit"
)

// Version is the current snapshot format version.
// Increment when making breaking changes to the snapshot structure.
const Version = 1

// Snapshot is a persisted capture of one parsed configuration store.
type Snapshot struct {
	Version int       `json:"version"`
	ID      string    `json:"id"`
	Path    string    `json:"path"`
	TakenAt time.Time `json:"taken_at"`
	Entries []Record  `json:"entries"`
}

// Record is one captured entry. Payloads keep their parsed types so
// integer precision survives serialization.
type Record struct {
	Key  string  `json:"key"`
	Kind string  `json:"kind"`
	Num  int64   `json:"num,omitempty"`
	Flt  float64 `json:"flt,omitempty"`
	Str  string  `json:"str,omitempty"`
}

// Capture builds a snapshot of the store's current entries with a
// fresh ID and timestamp. Shadowed duplicates are captured too, in
// source order.
func Capture(store *confkit.Store) *Snapshot {
	entries := store.Entries()
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, newRecord(e))
	}
	return &Snapshot{
		Version: Version,
		ID:      uuid.New().String(),
		Path:    store.Path(),
		TakenAt: time.Now().UTC(),
		Entries: records,
	}
}

// newRecord copies an entry's key, kind name, and payload.
func newRecord(e confkit.Entry) Record {
	r := Record{Key: e.Key, Kind: e.Kind.String()}
	if n, ok := e.Int(); ok {
		r.Num = n
	}
	if f, ok := e.Float(); ok {
		r.Flt = f
	}
	if s, ok := e.Text(); ok {
		r.Str = s
	}
	return r
}

// Marshal serializes a snapshot to JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal deserializes a snapshot from JSON.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
