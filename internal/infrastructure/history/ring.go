// Package history keeps command attempts: a capped in-memory ring for the
// UI panel and a SQLite log for persistence.
package history

import (
	"sync"

	"github.com/doeshing/deskcommander/internal/domain"
	"github.com/doeshing/deskcommander/internal/ports"
)

// RingStore is the fixed-length attempt list backing the history panel.
// Entries are append-only; once the cap is reached the oldest is evicted.
// The mutex guards against concurrent HTTP handlers.
type RingStore struct {
	mu      sync.Mutex
	cap     int
	records []domain.HistoryRecord
}

// NewRingStore creates a ring with the given capacity (falls back to the
// default display cap when non-positive).
func NewRingStore(capacity int) *RingStore {
	if capacity <= 0 {
		capacity = domain.HistoryDisplayCap
	}
	return &RingStore{cap: capacity}
}

// Append adds a record, evicting the oldest entry when full.
func (r *RingStore) Append(record domain.HistoryRecord) {
	record.TruncateOutput()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	if len(r.records) > r.cap {
		r.records = r.records[len(r.records)-r.cap:]
	}
}

// Records returns the ring contents newest-first.
func (r *RingStore) Records() []domain.HistoryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.HistoryRecord, len(r.records))
	for i, record := range r.records {
		out[len(r.records)-1-i] = record
	}
	return out
}

// Clear empties the ring.
func (r *RingStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}

// Cap returns the configured maximum length.
func (r *RingStore) Cap() int {
	return r.cap
}

var _ ports.HistoryBuffer = (*RingStore)(nil)
