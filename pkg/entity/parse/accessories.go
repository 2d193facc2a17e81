package parse

import "github.com/spf13/cast"

// Accessory groups a soundbar can drive.
const (
	AccessorySubs  = "subs"
	AccessoryRears = "rears"
)

// Accessories is the normalized /accessories payload: which accessory
// groups the device can control and which are currently enabled.
type Accessories struct {
	ControllableSubs  bool
	ControllableRears bool
	SubsEnabled       bool
	RearsEnabled      bool
}

// AccessoriesParser parses /accessories payloads.
type AccessoriesParser struct{}

func (AccessoriesParser) Parse(body map[string]any) Accessories {
	controllable := NestedMap(body, "controllable")
	enabled := NestedMap(body, "enabled")

	return Accessories{
		ControllableSubs:  cast.ToBool(controllable[AccessorySubs]),
		ControllableRears: cast.ToBool(controllable[AccessoryRears]),
		SubsEnabled:       cast.ToBool(enabled[AccessorySubs]),
		RearsEnabled:      cast.ToBool(enabled[AccessoryRears]),
	}
}

// PowerTimeouts is the normalized /system/power/timeouts payload.
type PowerTimeouts struct {
	NoAudio bool
	NoVideo bool
}

// PowerTimeoutsParser parses /system/power/timeouts payloads.
type PowerTimeoutsParser struct{}

func (PowerTimeoutsParser) Parse(body map[string]any) PowerTimeouts {
	return PowerTimeouts{
		NoAudio: cast.ToBool(body["noAudio"]),
		NoVideo: cast.ToBool(body["noVideo"]),
	}
}
