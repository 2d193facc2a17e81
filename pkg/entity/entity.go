// Package entity holds the normalized per-speaker state model. Each
// entity kind subscribes to the push resources it understands through
// the coordinator's dispatcher, parses payloads with injected stateless
// parsers, and serves snapshot reads to the API and MCP surfaces.
package entity

import (
	"sync"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// ClientSource yields the live client for a speaker connection. The
// connection layer swaps the client on reconnect, so entities must not
// hold one directly.
type ClientSource interface {
	Client() speaker.Client
}

// base carries the identity fields shared by all entity kinds.
type base struct {
	deviceID string
	name     string

	mu sync.RWMutex
}

// DeviceID returns the GUID of the owning speaker.
func (b *base) DeviceID() string {
	return b.deviceID
}

// Name returns the entity's display name.
func (b *base) Name() string {
	return b.name
}

// Registry maps speaker GUIDs to their media player entities so grouping
// can resolve sibling members. It is owned by the connection-management
// layer and torn down entry-by-entry on disconnect.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*MediaPlayer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		players: make(map[string]*MediaPlayer),
	}
}

// Register adds or replaces the media player for a GUID.
func (r *Registry) Register(guid string, p *MediaPlayer) {
	r.mu.Lock()
	r.players[guid] = p
	r.mu.Unlock()
}

// Lookup returns the media player registered for a GUID.
func (r *Registry) Lookup(guid string) (*MediaPlayer, bool) {
	r.mu.RLock()
	p, ok := r.players[guid]
	r.mu.RUnlock()
	return p, ok
}

// Deregister removes a GUID's entry, if present.
func (r *Registry) Deregister(guid string) {
	r.mu.Lock()
	delete(r.players, guid)
	r.mu.Unlock()
}

// GUIDs returns the registered GUIDs.
func (r *Registry) GUIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	guids := make([]string, 0, len(r.players))
	for guid := range r.players {
		guids = append(guids, guid)
	}
	return guids
}
