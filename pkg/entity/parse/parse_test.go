package parse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupParser_MasterFirstOrdering(t *testing.T) {
	var p GroupParser

	group, ok := p.First([]map[string]any{
		{
			"activeGroupId": "group-1",
			"name":          "Everywhere",
			"groupMasterId": "g2",
			"products": []any{
				map[string]any{"productId": "g1"},
				map[string]any{"productId": "g2"},
				map[string]any{"productId": "g3"},
			},
		},
	})

	require.True(t, ok)
	require.Equal(t, "group-1", group.ID)
	require.Equal(t, "g2", group.Master)
	require.Equal(t, []string{"g2", "g1", "g3"}, group.Members)
}

func TestGroupParser_NoGroups(t *testing.T) {
	var p GroupParser

	_, ok := p.First(nil)
	require.False(t, ok)

	// A group without resolvable members counts as ungrouped.
	_, ok = p.First([]map[string]any{{"activeGroupId": "group-1", "products": []any{}}})
	require.False(t, ok)
}

func TestNetworkParser_PrimaryInterfaceMissing(t *testing.T) {
	var p NetworkParser

	network := p.Parse(map[string]any{
		"primary": "WIFI",
		"interfaces": []any{
			map[string]any{"type": "ETHERNET", "macAddress": "11:22"},
		},
	})

	require.Equal(t, "WIFI", network.Type)
	require.Empty(t, network.IP)
}

func TestPresetParser_SkipsUnresolvableSlots(t *testing.T) {
	var p PresetParser

	out := p.Parse(map[string]any{
		"presets": map[string]any{
			"presets": map[string]any{
				"2": map[string]any{
					"actions": []any{
						map[string]any{
							"payload": map[string]any{
								"contentItem": map[string]any{"name": "Jazz", "source": "TUNEIN"},
							},
						},
					},
				},
				"4": map[string]any{"actions": []any{}},
				"5": "garbage",
			},
		},
	})

	require.Len(t, out, 1)
	require.Equal(t, "2", out[0].Slot)
	require.Equal(t, "Jazz", out[0].Name)
}

func TestVolumeParser_DefaultsMaxTo100(t *testing.T) {
	var p VolumeParser

	v := p.Parse(map[string]any{"value": 25, "muted": true})
	require.Equal(t, 25, v.Percent)
	require.True(t, v.Muted)
	require.Equal(t, 100, v.Max)
}

func TestBluetoothParser_DeviceDefaultsAndActiveFlag(t *testing.T) {
	var p BluetoothParser

	devices := p.Devices(map[string]any{
		"activeDevice": "aa:bb",
		"devices": []any{
			map[string]any{"mac": "aa:bb"},
			map[string]any{"name": "No MAC"},
			map[string]any{"mac": "cc:dd", "name": "Phone"},
		},
	}, BluetoothSink)

	require.Len(t, devices, 2)
	require.Equal(t, "Unknown Device", devices[0].Name)
	require.True(t, devices[0].Active)
	require.False(t, devices[1].Active)
}

func TestNowPlayingParser_NestedFields(t *testing.T) {
	var p NowPlayingParser

	np := p.Parse(map[string]any{
		"state":  map[string]any{"status": "PLAY", "timeIntoTrack": 42},
		"source": map[string]any{"sourceID": "SPOTIFY", "sourceDisplayName": "Spotify"},
		"container": map[string]any{
			"contentItem": map[string]any{"source": "SPOTIFY", "sourceAccount": "user@example.com"},
		},
		"metadata": map[string]any{"trackName": "Song", "artist": "Artist", "duration": 200},
		"track": map[string]any{
			"contentItem": map[string]any{"containerArt": "http://art/1.jpg"},
		},
	})

	require.Equal(t, "PLAY", np.Status)
	require.Equal(t, "Spotify", np.SourceName)
	require.Equal(t, "user@example.com", np.ContentAcct)
	require.Equal(t, 42, np.Position)
	require.Equal(t, "http://art/1.jpg", np.ArtURL)
}

func TestNested_ToleratesMissingHops(t *testing.T) {
	body := map[string]any{"a": map[string]any{"b": "v"}}

	require.Equal(t, "v", NestedString(body, "a", "b"))
	require.Empty(t, NestedString(body, "a", "x", "y"))
	require.Nil(t, NestedMap(body, "a", "b"))
	require.Nil(t, MapSlice("not a slice"))
}
