package feed

import "sync"

// Recent keeps a fixed number of the most recent entries, newest first.
// It is display-only state and has no effect on routing.
type Recent struct {
	mu       sync.RWMutex
	capacity int
	entries  []Entry
}

// NewRecent creates a recent-entries log with the given capacity.
func NewRecent(capacity int) *Recent {
	if capacity <= 0 {
		capacity = 10
	}
	return &Recent{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

// Push inserts an entry at the front, evicting the oldest when full.
func (r *Recent) Push(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]Entry{entry}, r.entries...)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}
}

// Entries returns a copy of the log, newest first.
func (r *Recent) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of stored entries.
func (r *Recent) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
