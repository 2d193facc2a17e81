package parse

import (
	"sort"

	"github.com/spf13/cast"
)

// Preset is one of the speaker's numbered preset slots.
type Preset struct {
	Slot     string
	Name     string
	Source   string
	Location string
	ImageURL string
}

// PresetParser parses the preset block of /system/productSettings
// payloads.
type PresetParser struct{}

// Parse returns the configured presets sorted by slot. Slots whose
// content item cannot be resolved are skipped.
func (PresetParser) Parse(body map[string]any) []Preset {
	slots := NestedMap(body, "presets", "presets")

	var out []Preset
	for slot, raw := range slots {
		preset, err := cast.ToStringMapE(raw)
		if err != nil {
			continue
		}

		actions := MapSlice(preset["actions"])
		if len(actions) == 0 {
			continue
		}
		item := NestedMap(actions[0], "payload", "contentItem")
		if item == nil {
			continue
		}

		out = append(out, Preset{
			Slot:     slot,
			Name:     cast.ToString(item["name"]),
			Source:   cast.ToString(item["source"]),
			Location: cast.ToString(item["location"]),
			ImageURL: cast.ToString(item["imageUrl"]),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}
