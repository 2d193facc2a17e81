package parse

import "github.com/spf13/cast"

// minutesUnknown is the device's sentinel for "no estimate".
const minutesUnknown = 65535

// Battery is the normalized /system/battery payload. Minute estimates
// are -1 when the device reports none.
type Battery struct {
	Percent          int
	MinutesToEmpty   int
	MinutesToFull    int
	Charging         bool
	ChargerConnected bool
}

// BatteryParser parses /system/battery payloads.
type BatteryParser struct{}

func (BatteryParser) Parse(body map[string]any) Battery {
	return Battery{
		Percent:          cast.ToInt(body["percent"]),
		MinutesToEmpty:   minutes(body["minutesToEmpty"]),
		MinutesToFull:    minutes(body["minutesToFull"]),
		Charging:         cast.ToString(body["chargeStatus"]) == "CHARGING",
		ChargerConnected: cast.ToString(body["chargerConnected"]) == "CONNECTED",
	}
}

func minutes(v any) int {
	m := cast.ToInt(v)
	if m >= minutesUnknown {
		return -1
	}
	return m
}
