package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

func presetBody(slots ...string) map[string]any {
	presets := make(map[string]any)
	for _, slot := range slots {
		presets[slot] = map[string]any{
			"actions": []any{
				map[string]any{
					"payload": map[string]any{
						"contentItem": map[string]any{
							"name":     "Radio " + slot,
							"source":   "TUNEIN",
							"location": "/v1/playback/station/s" + slot,
						},
					},
				},
			},
		}
	}
	return map[string]any{"presets": map[string]any{"presets": presets}}
}

func newTestPresets(t *testing.T) (*Presets, *commandClient) {
	t.Helper()
	client := newCommandClient()
	coord := coordinator.New(client, "g1")
	return NewPresets(client, coord, coordinator.NewDispatcher(), "Living Room"), client
}

func TestPresets_ListSortedBySlot(t *testing.T) {
	p, _ := newTestPresets(t)

	p.handleProductSettings(presetBody("3", "1", "6"))

	list := p.List()
	require.Len(t, list, 3)
	require.Equal(t, "1", list[0].Slot)
	require.Equal(t, "Radio 1", list[0].Name)
	require.Equal(t, "6", list[2].Slot)
}

func TestPresets_PressValidatesSlot(t *testing.T) {
	p, client := newTestPresets(t)
	ctx := context.Background()

	p.handleProductSettings(presetBody("1", "2"))

	require.ErrorIs(t, p.Press(ctx, 0), speaker.ErrValidation)
	require.ErrorIs(t, p.Press(ctx, 7), speaker.ErrValidation)
	require.ErrorIs(t, p.Press(ctx, 5), speaker.ErrNotFound)
	require.Empty(t, client.presetCalls)

	require.NoError(t, p.Press(ctx, 2))
	require.Equal(t, []int{2}, client.presetCalls)
}

func TestBluetoothPairing_Commands(t *testing.T) {
	client := newCommandClient()
	b := NewBluetoothPairing(client, "g1", "Living Room")
	ctx := context.Background()

	require.NoError(t, b.Pair(ctx))
	require.Equal(t, 1, client.pairCalls)

	require.ErrorIs(t, b.Remove(ctx, ""), speaker.ErrValidation)
	require.NoError(t, b.Remove(ctx, "aa:bb"))
	require.Equal(t, []string{"aa:bb"}, client.removeCalls)
}
