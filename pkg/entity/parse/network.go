package parse

import "github.com/spf13/cast"

// Wifi is the normalized /network/wifi/status payload.
type Wifi struct {
	SignalDbm int
	SSID      string
}

// WifiParser parses /network/wifi/status payloads.
type WifiParser struct{}

func (WifiParser) Parse(body map[string]any) Wifi {
	return Wifi{
		SignalDbm: cast.ToInt(body["signalDbm"]),
		SSID:      cast.ToString(body["ssid"]),
	}
}

// Network is the normalized /network/status payload, reduced to the
// primary interface.
type Network struct {
	Type string
	IP   string
	MAC  string
}

// NetworkParser parses /network/status payloads.
type NetworkParser struct{}

func (NetworkParser) Parse(body map[string]any) Network {
	primary := cast.ToString(body["primary"])

	for _, iface := range MapSlice(body["interfaces"]) {
		if cast.ToString(iface["type"]) != primary {
			continue
		}
		return Network{
			Type: primary,
			IP:   NestedString(iface, "ipInfo", "ipAddress"),
			MAC:  cast.ToString(iface["macAddress"]),
		}
	}

	return Network{Type: primary}
}
