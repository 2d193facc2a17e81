package entity

import (
	"context"
	"fmt"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity/parse"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// sliderOptions are the adjustable audio settings exposed when the
// device has the matching capability.
var sliderOptions = []string{
	speaker.AudioOptionBass,
	speaker.AudioOptionTreble,
	speaker.AudioOptionCenter,
	speaker.AudioOptionHeight,
	speaker.AudioOptionSubwoofer,
	speaker.AudioOptionAvSync,
}

// selectOptions are the enumerated audio settings (mode selects).
var selectOptions = []string{
	speaker.AudioOptionMode,
	speaker.AudioOptionDualMono,
	speaker.AudioOptionLatency,
}

// AudioSettings exposes the speaker's adjustable sound parameters:
// sliders (bass, treble, ...) bounded by device-reported min/max/step,
// and mode selects with device-reported supported values.
type AudioSettings struct {
	base

	client ClientSource
	coord  *coordinator.Coordinator
	parser parse.AudioSettingParser

	settings map[string]parse.AudioSetting
}

// NewAudioSettings creates the audio settings entity and registers a
// push handler per supported option.
func NewAudioSettings(client ClientSource, coord *coordinator.Coordinator, dispatcher *coordinator.Dispatcher, name string) *AudioSettings {
	s := &AudioSettings{
		base:     base{deviceID: coord.DeviceID(), name: name},
		client:   client,
		coord:    coord,
		settings: make(map[string]parse.AudioSetting),
	}

	for _, option := range s.Options() {
		option := option
		dispatcher.Handle(speaker.ResourceAudioSetting(option), func(body map[string]any) {
			s.record(option, body)
		})
	}

	return s
}

// Options returns the audio settings the device supports.
func (s *AudioSettings) Options() []string {
	var options []string
	for _, option := range append(append([]string{}, sliderOptions...), selectOptions...) {
		if s.client.Client().HasCapability(speaker.ResourceAudioSetting(option)) {
			options = append(options, option)
		}
	}
	return options
}

func (s *AudioSettings) record(option string, body map[string]any) {
	setting := s.parser.Parse(body)

	s.mu.Lock()
	s.settings[option] = setting
	s.mu.Unlock()
}

// Refresh hydrates every supported setting through the coordinator.
func (s *AudioSettings) Refresh(ctx context.Context) error {
	for _, option := range s.Options() {
		body, err := s.coord.GetAudioSetting(ctx, option)
		if err != nil {
			return fmt.Errorf("audio setting %s: %w", option, err)
		}
		s.record(option, body)
	}
	return nil
}

// Get returns the last observed value of one setting.
func (s *AudioSettings) Get(option string) (parse.AudioSetting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	setting, ok := s.settings[option]
	return setting, ok
}

// Set writes a slider value, bounded by the device-reported range when
// one has been observed.
func (s *AudioSettings) Set(ctx context.Context, option string, value int) error {
	if !s.client.Client().HasCapability(speaker.ResourceAudioSetting(option)) {
		return fmt.Errorf("%w: audio setting %s", speaker.ErrUnsupported, option)
	}

	s.mu.RLock()
	setting, known := s.settings[option]
	s.mu.RUnlock()

	if known && setting.Max > setting.Min && (value < setting.Min || value > setting.Max) {
		return fmt.Errorf("%w: %s=%d outside [%d, %d]", speaker.ErrValidation, option, value, setting.Min, setting.Max)
	}

	return s.client.Client().SetAudioSetting(ctx, option, value)
}

// Select writes a mode value, checked against the device-reported
// supported list when one has been observed.
func (s *AudioSettings) Select(ctx context.Context, option, value string) error {
	if !s.client.Client().HasCapability(speaker.ResourceAudioSetting(option)) {
		return fmt.Errorf("%w: audio setting %s", speaker.ErrUnsupported, option)
	}

	s.mu.RLock()
	setting, known := s.settings[option]
	s.mu.RUnlock()

	if known && len(setting.Supported) > 0 {
		supported := false
		for _, v := range setting.Supported {
			if v == value {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("%w: %s=%q not in supported values", speaker.ErrValidation, option, value)
		}
	}

	return s.client.Client().SetAudioSetting(ctx, option, value)
}

// Snapshot returns the normalized audio settings.
func (s *AudioSettings) Snapshot() speaker.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := speaker.State{}
	for option, setting := range s.settings {
		if len(setting.Supported) > 0 {
			state["audio_"+option] = setting.Selected
		} else {
			state["audio_"+option] = setting.Value
		}
	}
	return state
}
