package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

func newTestPower(t *testing.T) (*PowerSettings, *commandClient, *coordinator.Dispatcher) {
	t.Helper()
	client := newCommandClient()
	coord := coordinator.New(client, "g1")
	dispatcher := coordinator.NewDispatcher()
	return NewPowerSettings(client, coord, dispatcher, "Living Room"), client, dispatcher
}

func accessoriesBody(subs, rears, subsOn, rearsOn bool) map[string]any {
	return map[string]any{
		"controllable": map[string]any{"subs": subs, "rears": rears},
		"enabled":      map[string]any{"subs": subsOn, "rears": rearsOn},
	}
}

func TestPowerSettings_SnapshotEmptyUntilFirstReading(t *testing.T) {
	s, _, _ := newTestPower(t)

	require.Empty(t, s.Snapshot())
	_, seen := s.Accessories()
	require.False(t, seen)
	_, seen = s.StandbyTimeout()
	require.False(t, seen)
}

func TestPowerSettings_PushesThroughDispatcher(t *testing.T) {
	s, _, dispatcher := newTestPower(t)

	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceAccessories,
		Body:     accessoriesBody(true, false, true, false),
	})
	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourcePowerTimeouts,
		Body:     map[string]any{"noAudio": true, "noVideo": false},
	})

	accessories, seen := s.Accessories()
	require.True(t, seen)
	require.True(t, accessories.ControllableSubs)
	require.True(t, accessories.SubsEnabled)
	require.False(t, accessories.ControllableRears)

	noAudio, seen := s.StandbyTimeout()
	require.True(t, seen)
	require.True(t, noAudio)

	// Uncontrollable groups stay out of the snapshot.
	snap := s.Snapshot()
	require.Equal(t, true, snap["standby_timeout"])
	require.Equal(t, true, snap["accessory_subs"])
	require.NotContains(t, snap, "accessory_rears")
}

func TestPowerSettings_RefreshFollowsCapabilities(t *testing.T) {
	s, client, _ := newTestPower(t)

	// Without either capability Refresh is a no-op.
	require.NoError(t, s.Refresh(context.Background()))
	require.Empty(t, s.Snapshot())

	client.caps[speaker.ResourceAccessories] = true
	client.caps[speaker.ResourcePowerTimeouts] = true
	client.accessories = accessoriesBody(true, true, false, true)
	client.timeouts = map[string]any{"noAudio": false}

	require.NoError(t, s.Refresh(context.Background()))

	snap := s.Snapshot()
	require.Equal(t, false, snap["standby_timeout"])
	require.Equal(t, false, snap["accessory_subs"])
	require.Equal(t, true, snap["accessory_rears"])
}

func TestPowerSettings_SetStandbyTimeoutRequiresCapability(t *testing.T) {
	s, client, _ := newTestPower(t)
	ctx := context.Background()

	require.ErrorIs(t, s.SetStandbyTimeout(ctx, true), speaker.ErrUnsupported)
	require.Empty(t, client.standbyCalls)

	client.caps[speaker.ResourcePowerTimeouts] = true
	require.NoError(t, s.SetStandbyTimeout(ctx, true))
	require.Equal(t, []bool{true}, client.standbyCalls)
}

func TestPowerSettings_SetAccessoryChecksControllable(t *testing.T) {
	s, client, dispatcher := newTestPower(t)
	ctx := context.Background()

	require.ErrorIs(t, s.SetAccessory(ctx, "sides", true), speaker.ErrValidation)

	// No accessory reading yet: nothing is controllable.
	require.ErrorIs(t, s.SetAccessory(ctx, "subs", true), speaker.ErrUnsupported)

	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceAccessories,
		Body:     accessoriesBody(true, false, false, false),
	})

	require.NoError(t, s.SetAccessory(ctx, "subs", true))
	require.Equal(t, map[string]bool{"subs": true}, client.accessoryCalls)

	require.ErrorIs(t, s.SetAccessory(ctx, "rears", true), speaker.ErrUnsupported)
}
