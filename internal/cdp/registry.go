package cdp

import (
	"sync"

	"github.com/sergiopachon/birdie/internal/domain"
)

// Registry tracks the set of discovered browser tabs. The set is
// replaced wholesale on every refresh; the data is small enough that no
// per-tab diffing or indexing is needed.
type Registry struct {
	mu   sync.RWMutex
	tabs []domain.Tab
}

// NewRegistry creates an empty tab registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// ReplaceAll swaps the tracked tab set for a fresh discovery result.
func (r *Registry) ReplaceAll(tabs []domain.Tab) {
	r.mu.Lock()
	r.tabs = tabs
	r.mu.Unlock()
}

// All returns a snapshot of the tracked tabs.
func (r *Registry) All() []domain.Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Tab, len(r.tabs))
	copy(out, r.tabs)
	return out
}

// MonitoredSubset returns the tabs with a configured content selector.
// This subset is exactly what the monitor loop polls.
func (r *Registry) MonitoredSubset() []domain.Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Tab
	for _, t := range r.tabs {
		if t.HasSelector {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the tab with the given id.
func (r *Registry) Get(id string) (domain.Tab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tabs {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Tab{}, false
}

// Len returns the number of tracked tabs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tabs)
}
