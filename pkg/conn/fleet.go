package conn

import (
	"sync"
)

// Fleet tracks the managers for every connected speaker, keyed by GUID.
// Lookups also accept the speaker's display name so API callers can use
// either identifier.
type Fleet struct {
	mu       sync.RWMutex
	managers map[string]*Manager
}

// NewFleet creates an empty fleet.
func NewFleet() *Fleet {
	return &Fleet{managers: make(map[string]*Manager)}
}

// Add registers a manager under its GUID, replacing any previous entry.
func (f *Fleet) Add(m *Manager) {
	f.mu.Lock()
	f.managers[m.GUID()] = m
	f.mu.Unlock()
}

// Remove drops the manager for the given GUID without closing it.
func (f *Fleet) Remove(guid string) {
	f.mu.Lock()
	delete(f.managers, guid)
	f.mu.Unlock()
}

// Get returns the manager for the given GUID.
func (f *Fleet) Get(guid string) (*Manager, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.managers[guid]
	return m, ok
}

// Lookup resolves a speaker by GUID or display name.
func (f *Fleet) Lookup(id string) (*Manager, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if m, ok := f.managers[id]; ok {
		return m, true
	}
	for _, m := range f.managers {
		if m.Name() == id {
			return m, true
		}
	}
	return nil, false
}

// List returns all managers, in no particular order.
func (f *Fleet) List() []*Manager {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]*Manager, 0, len(f.managers))
	for _, m := range f.managers {
		out = append(out, m)
	}
	return out
}

// Close shuts down every manager and empties the fleet.
func (f *Fleet) Close() {
	f.mu.Lock()
	managers := f.managers
	f.managers = make(map[string]*Manager)
	f.mu.Unlock()

	for _, m := range managers {
		m.Close()
	}
}
