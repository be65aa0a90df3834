// Package queue holds the ordered notification queue consumed by the
// playback controller.
package queue

import (
	"sync"

	"github.com/sergiopachon/birdie/internal/domain"
)

// Store is a FIFO holding area for notifications not yet chosen for
// narration. The item currently being narrated is never present in the
// store: it is removed exactly when chosen for playback, so "now
// playing" and "queued" are disjoint views.
type Store struct {
	mu    sync.Mutex
	items []*domain.Notification
}

// NewStore creates an empty queue.
func NewStore() *Store {
	return &Store{}
}

// Enqueue appends a notification to the tail of the queue.
func (s *Store) Enqueue(n *domain.Notification) {
	s.mu.Lock()
	s.items = append(s.items, n)
	s.mu.Unlock()
}

// PopHead removes and returns the first element, or (nil, false) when
// the queue is empty.
func (s *Store) PopHead() (*domain.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil, false
	}
	head := s.items[0]
	s.items = s.items[1:]
	return head, true
}

// PeekAll returns an ordered snapshot of the queued notifications for
// display. The snapshot excludes the currently-playing item because
// that item is popped on selection.
func (s *Store) PeekAll() []*domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of queued notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
