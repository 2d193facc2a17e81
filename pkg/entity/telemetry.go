package entity

import (
	"context"
	"fmt"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity/parse"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// BatterySensors exposes battery telemetry for portable speakers:
// charge percent, minute estimates, and charger state.
type BatterySensors struct {
	base

	coord  *coordinator.Coordinator
	parser parse.BatteryParser

	battery parse.Battery
	seen    bool
}

// NewBatterySensors creates the battery entity and registers its push
// handler.
func NewBatterySensors(coord *coordinator.Coordinator, dispatcher *coordinator.Dispatcher, name string) *BatterySensors {
	s := &BatterySensors{
		base:  base{deviceID: coord.DeviceID(), name: name},
		coord: coord,
	}

	dispatcher.Handle(speaker.ResourceBattery, s.handleBattery)

	return s
}

func (s *BatterySensors) handleBattery(body map[string]any) {
	battery := s.parser.Parse(body)

	s.mu.Lock()
	s.battery = battery
	s.seen = true
	s.mu.Unlock()
}

// Refresh hydrates battery state through the coordinator.
func (s *BatterySensors) Refresh(ctx context.Context) error {
	body, err := s.coord.GetBatteryStatus(ctx)
	if err != nil {
		return fmt.Errorf("battery status: %w", err)
	}
	s.handleBattery(body)
	return nil
}

// Battery returns the last observed battery reading; ok is false until
// a first push or fetch has arrived.
func (s *BatterySensors) Battery() (parse.Battery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.battery, s.seen
}

// Snapshot returns the normalized battery state.
func (s *BatterySensors) Snapshot() speaker.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.seen {
		return speaker.State{}
	}
	return speaker.State{
		"battery_percent":         s.battery.Percent,
		"battery_charging":        s.battery.Charging,
		"battery_charger":         s.battery.ChargerConnected,
		"battery_minutes_to_full": s.battery.MinutesToFull,
		"battery_minutes_left":    s.battery.MinutesToEmpty,
	}
}

// NetworkSensors exposes WiFi and network-interface telemetry.
type NetworkSensors struct {
	base

	coord      *coordinator.Coordinator
	wifiParser parse.WifiParser
	netParser  parse.NetworkParser

	wifi    parse.Wifi
	network parse.Network
}

// NewNetworkSensors creates the network entity and registers its push
// handlers.
func NewNetworkSensors(coord *coordinator.Coordinator, dispatcher *coordinator.Dispatcher, name string) *NetworkSensors {
	s := &NetworkSensors{
		base:  base{deviceID: coord.DeviceID(), name: name},
		coord: coord,
	}

	dispatcher.Handle(speaker.ResourceWifiStatus, s.handleWifi)
	dispatcher.Handle(speaker.ResourceNetworkStatus, s.handleNetwork)

	return s
}

func (s *NetworkSensors) handleWifi(body map[string]any) {
	wifi := s.wifiParser.Parse(body)

	s.mu.Lock()
	s.wifi = wifi
	s.mu.Unlock()
}

func (s *NetworkSensors) handleNetwork(body map[string]any) {
	network := s.netParser.Parse(body)

	s.mu.Lock()
	s.network = network
	s.mu.Unlock()
}

// Refresh hydrates network state through the coordinator.
func (s *NetworkSensors) Refresh(ctx context.Context) error {
	wifi, err := s.coord.GetWifiStatus(ctx)
	if err != nil {
		return fmt.Errorf("wifi status: %w", err)
	}
	s.handleWifi(wifi)

	network, err := s.coord.GetNetworkStatus(ctx)
	if err != nil {
		return fmt.Errorf("network status: %w", err)
	}
	s.handleNetwork(network)
	return nil
}

// Wifi returns the last observed WiFi reading.
func (s *NetworkSensors) Wifi() parse.Wifi {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wifi
}

// Network returns the last observed primary-interface reading.
func (s *NetworkSensors) Network() parse.Network {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.network
}

// Snapshot returns the normalized network state.
func (s *NetworkSensors) Snapshot() speaker.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := speaker.State{}
	if s.wifi.SSID != "" {
		state["wifi_ssid"] = s.wifi.SSID
		state["wifi_signal_dbm"] = s.wifi.SignalDbm
	}
	if s.network.Type != "" {
		state["network_type"] = s.network.Type
		state["network_ip"] = s.network.IP
	}
	return state
}
