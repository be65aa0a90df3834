package cdp

import "sync"

// messageRing is a fixed-capacity circular buffer of detected messages.
// When full, Push evicts the oldest entry. It is a bounded-memory
// display cache, not a durable log.
type messageRing[T any] struct {
	mu    sync.RWMutex
	buf   []T
	head  int
	count int
}

// newMessageRing creates a ring with the given capacity.
func newMessageRing[T any](capacity int) *messageRing[T] {
	return &messageRing[T]{buf: make([]T, capacity)}
}

// Push appends an item, overwriting the oldest if full.
func (r *messageRing[T]) Push(item T) {
	r.mu.Lock()
	idx := (r.head + r.count) % len(r.buf)
	r.buf[idx] = item
	if r.count == len(r.buf) {
		r.head = (r.head + 1) % len(r.buf)
	} else {
		r.count++
	}
	r.mu.Unlock()
}

// Snapshot returns a copy of all elements, newest first.
func (r *messageRing[T]) Snapshot() []T {
	r.mu.RLock()
	out := make([]T, r.count)
	for i := 0; i < r.count; i++ {
		out[r.count-1-i] = r.buf[(r.head+i)%len(r.buf)]
	}
	r.mu.RUnlock()
	return out
}

// Len returns the number of elements stored.
func (r *messageRing[T]) Len() int {
	r.mu.RLock()
	n := r.count
	r.mu.RUnlock()
	return n
}
