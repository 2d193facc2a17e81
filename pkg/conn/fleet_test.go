package conn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

func offlineManager(registry *entity.Registry, guid, name string) *Manager {
	dial := func(ctx context.Context, ip string, tokens speaker.TokenSource) (speaker.Client, error) {
		return nil, speaker.ErrNotConnected
	}
	return Offline(Config{GUID: guid, Name: name}, dial, testTokens(), speaker.NullDiscoverer{}, registry)
}

func TestFleet_LookupByGUIDOrName(t *testing.T) {
	registry := entity.NewRegistry()
	fleet := NewFleet()

	living := offlineManager(registry, "g1", "Living Room")
	kitchen := offlineManager(registry, "g2", "Kitchen")
	defer living.Close()
	defer kitchen.Close()

	fleet.Add(living)
	fleet.Add(kitchen)

	m, ok := fleet.Get("g1")
	require.True(t, ok)
	require.Equal(t, "Living Room", m.Name())

	m, ok = fleet.Lookup("Kitchen")
	require.True(t, ok)
	require.Equal(t, "g2", m.GUID())

	_, ok = fleet.Lookup("Bedroom")
	require.False(t, ok)

	require.Len(t, fleet.List(), 2)

	fleet.Remove("g1")
	_, ok = fleet.Get("g1")
	require.False(t, ok)
}

func TestFleet_CloseShutsDownManagers(t *testing.T) {
	registry := entity.NewRegistry()
	fleet := NewFleet()
	fleet.Add(offlineManager(registry, "g1", "Living Room"))

	fleet.Close()

	require.Empty(t, fleet.List())
	_, registered := registry.Lookup("g1")
	require.False(t, registered)
}
