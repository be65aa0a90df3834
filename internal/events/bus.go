// Package events provides the one-way in-process event channel used for
// cross-component communication. Components publish; subscribers observe.
// Nothing is shared by mutation across subsystem boundaries.
package events

import "sync"

// Event names published on the bus.
const (
	// NotificationReceived carries a *domain.Notification.
	NotificationReceived = "notification-received"
	// PlaybackChanged carries a playback.Snapshot.
	PlaybackChanged = "playback-changed"
	// CDPMessageDetected carries a domain.DetectedMessage.
	CDPMessageDetected = "cdp-message-detected"
)

// Handler receives a published event payload.
type Handler func(payload any)

// Bus is a minimal synchronous publish/subscribe dispatcher. Handlers
// run on the publisher's goroutine, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for the named event. The returned
// function removes the subscription.
func (b *Bus) Subscribe(name string, h Handler) func() {
	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], h)
	idx := len(b.handlers[name]) - 1
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		hs := b.handlers[name]
		if idx < len(hs) && hs[idx] != nil {
			hs[idx] = nil
		}
	}
}

// Publish delivers the payload to every handler subscribed to name.
func (b *Bus) Publish(name string, payload any) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[name]))
	copy(hs, b.handlers[name])
	b.mu.RUnlock()

	for _, h := range hs {
		if h != nil {
			h(payload)
		}
	}
}
