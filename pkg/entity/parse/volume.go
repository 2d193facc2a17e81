package parse

import "github.com/spf13/cast"

// Volume is the normalized /audio/volume payload.
type Volume struct {
	Percent int
	Muted   bool
	Min     int
	Max     int
}

// VolumeParser parses /audio/volume payloads.
type VolumeParser struct{}

func (VolumeParser) Parse(body map[string]any) Volume {
	v := Volume{
		Percent: cast.ToInt(body["value"]),
		Muted:   cast.ToBool(body["muted"]),
		Min:     cast.ToInt(NestedMap(body, "properties")["minValue"]),
		Max:     cast.ToInt(NestedMap(body, "properties")["maxValue"]),
	}
	if v.Max == 0 {
		v.Max = 100
	}
	return v
}
