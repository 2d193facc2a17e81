package parse

import "github.com/spf13/cast"

// AudioSetting is the normalized payload of an /audio/<option> resource.
// Sliders carry Value with Min/Max/Step bounds; mode selects carry
// Selected with the supported option list.
type AudioSetting struct {
	Value     int
	Min       int
	Max       int
	Step      int
	Selected  string
	Supported []string
}

// AudioSettingParser parses /audio/<option> payloads.
type AudioSettingParser struct{}

func (AudioSettingParser) Parse(body map[string]any) AudioSetting {
	props := NestedMap(body, "properties")

	s := AudioSetting{
		Value:    cast.ToInt(body["value"]),
		Min:      cast.ToInt(props["minValue"]),
		Max:      cast.ToInt(props["maxValue"]),
		Step:     cast.ToInt(props["step"]),
		Selected: cast.ToString(body["value"]),
	}

	for _, opt := range cast.ToSlice(props["supportedValues"]) {
		if v := cast.ToString(opt); v != "" {
			s.Supported = append(s.Supported, v)
		}
	}

	return s
}
