package monitor

import (
	"sync"
	"time"
)

// Snapshot is one immutable view of the running board, published by the
// driver after a generation completes.
type Snapshot struct {
	RunID      string
	Generation int
	Population int
	// Board is the full canonical text rendering, header included.
	Board      string
	CapturedAt time.Time
}

// Store holds the most recent snapshot. Safe for concurrent use; handlers
// read from it while the driver publishes.
type Store struct {
	mu     sync.RWMutex
	latest Snapshot
	ok     bool
}

// NewStore returns an empty store. Latest reports false until the first
// Publish.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the stored snapshot.
func (s *Store) Publish(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = snap
	s.ok = true
}

// Latest returns the most recent snapshot and whether one has been
// published yet.
func (s *Store) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.ok
}
