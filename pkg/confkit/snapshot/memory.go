package snapshot

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory snapshot store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedSnapshot // id -> snapshot
	closed bool
}

// storedSnapshot holds marshaled snapshot data with metadata for List().
type storedSnapshot struct {
	data       []byte
	path       string
	sequence   int
	takenAt    time.Time
	entryCount int
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]storedSnapshot),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	data, err := snap.Marshal()
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	// Replacing an existing ID keeps its sequence; a new ID gets the
	// next sequence for its path.
	seq := 0
	if prev, ok := m.data[snap.ID]; ok {
		seq = prev.sequence
	} else {
		for _, st := range m.data {
			if st.path == snap.Path && st.sequence > seq {
				seq = st.sequence
			}
		}
		seq++
	}

	m.data[snap.ID] = storedSnapshot{
		data:       data,
		path:       snap.Path,
		sequence:   seq,
		takenAt:    snap.TakenAt,
		entryCount: len(snap.Entries),
	}

	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	st, ok := m.data[id]
	if !ok {
		return nil, ErrNotFound
	}

	snap, err := Unmarshal(st.data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// List implements Store.
func (m *MemoryStore) List(path string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var infos []Info
	for id, st := range m.data {
		if st.path != path {
			continue
		}
		infos = append(infos, Info{
			ID:         id,
			Path:       st.path,
			Sequence:   st.sequence,
			TakenAt:    st.takenAt,
			EntryCount: st.entryCount,
			Size:       int64(len(st.data)),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Sequence < infos[j].Sequence
	})

	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, id)
	return nil
}

// DeletePath implements Store.
func (m *MemoryStore) DeletePath(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	for id, st := range m.data {
		if st.path == path {
			delete(m.data, id)
		}
	}
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of stored snapshots.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}
