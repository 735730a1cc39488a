// Package feed distributes inbound bot updates to display subscribers and
// keeps a bounded log of the most recent ones. Delivery is best-effort:
// the feed exists for status panels and operator tooling, routing never
// depends on it.
package feed

import (
	"errors"
	"sync"
	"time"

	"github.com/ypbrand/storebot/internal/logger"
)

var ErrClosed = errors.New("feed is closed")

// Entry is one inbound update as shown to the host application.
type Entry struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"` // "message" or "callback"
	UpdateID   int       `json:"update_id"`
	ChatID     int64     `json:"chat_id"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	Text       string    `json:"text"` // message text or callback data
	ReceivedAt time.Time `json:"received_at"`
}

// Feed fans entries out to subscribers.
type Feed struct {
	mu          sync.RWMutex
	logger      *logger.Logger
	capacity    int
	subscribers map[int64]chan Entry
	nextID      int64
	closed      bool
}

// New creates a feed whose subscriber channels buffer up to capacity entries.
func New(capacity int, log *logger.Logger) *Feed {
	if capacity <= 0 {
		capacity = 100
	}
	return &Feed{
		logger:      log,
		capacity:    capacity,
		subscribers: make(map[int64]chan Entry),
	}
}

// Subscribe registers a new subscriber and returns its channel together
// with a cancel function. The channel is closed on cancel or feed close.
func (f *Feed) Subscribe() (<-chan Entry, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++

	ch := make(chan Entry, f.capacity)
	f.subscribers[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subscribers[id]; ok {
			close(sub)
			delete(f.subscribers, id)
		}
	}

	return ch, cancel
}

// Publish delivers an entry to all subscribers without blocking. A
// subscriber that has fallen behind loses the entry.
func (f *Feed) Publish(entry Entry) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return ErrClosed
	}

	for _, ch := range f.subscribers {
		select {
		case ch <- entry:
		default:
			f.logger.Warn("feed subscriber is full, dropping entry",
				logger.Field{Key: "entry_id", Value: entry.ID})
		}
	}

	return nil
}

// Close closes all subscriber channels. Publish after Close returns ErrClosed.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true

	for id, ch := range f.subscribers {
		close(ch)
		delete(f.subscribers, id)
	}
}
