package entity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

func TestBatterySensors_SnapshotEmptyUntilFirstReading(t *testing.T) {
	client := newCommandClient()
	s := NewBatterySensors(coordinator.New(client, "g1"), coordinator.NewDispatcher(), "Living Room")

	_, seen := s.Battery()
	require.False(t, seen)
	require.Empty(t, s.Snapshot())

	s.handleBattery(map[string]any{
		"percent":          80,
		"minutesToEmpty":   240,
		"minutesToFull":    65535,
		"chargeStatus":     "DISCHARGING",
		"chargerConnected": "DISCONNECTED",
	})

	battery, seen := s.Battery()
	require.True(t, seen)
	require.Equal(t, 80, battery.Percent)
	require.Equal(t, 240, battery.MinutesToEmpty)
	require.Equal(t, -1, battery.MinutesToFull)
	require.False(t, battery.Charging)

	snap := s.Snapshot()
	require.Equal(t, 80, snap["battery_percent"])
	require.Equal(t, -1, snap["battery_minutes_to_full"])
}

func TestBatterySensors_PushThroughDispatcher(t *testing.T) {
	client := newCommandClient()
	dispatcher := coordinator.NewDispatcher()
	s := NewBatterySensors(coordinator.New(client, "g1"), dispatcher, "Living Room")

	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceBattery,
		Body: map[string]any{
			"percent":          55,
			"chargeStatus":     "CHARGING",
			"chargerConnected": "CONNECTED",
		},
	})

	battery, seen := s.Battery()
	require.True(t, seen)
	require.Equal(t, 55, battery.Percent)
	require.True(t, battery.Charging)
	require.True(t, battery.ChargerConnected)
}

func TestNetworkSensors_SnapshotReflectsPushes(t *testing.T) {
	client := newCommandClient()
	dispatcher := coordinator.NewDispatcher()
	s := NewNetworkSensors(coordinator.New(client, "g1"), dispatcher, "Living Room")

	require.Empty(t, s.Snapshot())

	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceWifiStatus,
		Body:     map[string]any{"ssid": "HomeNet", "signalDbm": -52},
	})
	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceNetworkStatus,
		Body: map[string]any{
			"primary": "WIFI",
			"interfaces": []any{
				map[string]any{"type": "ETHERNET", "macAddress": "11:22"},
				map[string]any{
					"type":       "WIFI",
					"macAddress": "33:44",
					"ipInfo":     map[string]any{"ipAddress": "192.168.1.40"},
				},
			},
		},
	})

	snap := s.Snapshot()
	require.Equal(t, "HomeNet", snap["wifi_ssid"])
	require.Equal(t, -52, snap["wifi_signal_dbm"])
	require.Equal(t, "WIFI", snap["network_type"])
	require.Equal(t, "192.168.1.40", snap["network_ip"])
	require.Equal(t, "33:44", s.Network().MAC)
}
