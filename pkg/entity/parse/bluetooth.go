package parse

import "github.com/spf13/cast"

// Bluetooth device roles.
const (
	BluetoothSink   = "sink"
	BluetoothSource = "source"
)

// BluetoothDevice is a paired or visible Bluetooth device.
type BluetoothDevice struct {
	MAC         string
	Name        string
	DeviceClass string
	Role        string
	Active      bool
}

// BluetoothParser parses the /bluetooth/* status and list payloads.
type BluetoothParser struct{}

// Devices extracts the device list from a sink/source payload, tagging
// each entry with the given role. Entries without a MAC are skipped.
func (BluetoothParser) Devices(body map[string]any, role string) []BluetoothDevice {
	active := cast.ToString(body["activeDevice"])

	var out []BluetoothDevice
	for _, d := range MapSlice(body["devices"]) {
		mac := cast.ToString(d["mac"])
		if mac == "" {
			continue
		}
		name := cast.ToString(d["name"])
		if name == "" {
			name = "Unknown Device"
		}
		out = append(out, BluetoothDevice{
			MAC:         mac,
			Name:        name,
			DeviceClass: cast.ToString(d["deviceClass"]),
			Role:        role,
			Active:      active != "" && mac == active,
		})
	}
	return out
}

// ActiveDevice returns the MAC of the currently active device, if any.
func (BluetoothParser) ActiveDevice(body map[string]any) string {
	return cast.ToString(body["activeDevice"])
}
