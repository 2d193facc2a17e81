package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

func newTestAudio(t *testing.T, options ...string) (*AudioSettings, *commandClient, *coordinator.Dispatcher) {
	t.Helper()
	client := newCommandClient()
	for _, option := range options {
		client.caps[speaker.ResourceAudioSetting(option)] = true
	}
	coord := coordinator.New(client, "g1")
	dispatcher := coordinator.NewDispatcher()
	return NewAudioSettings(client, coord, dispatcher, "Living Room"), client, dispatcher
}

func TestAudioSettings_OptionsFollowCapabilities(t *testing.T) {
	s, _, _ := newTestAudio(t, speaker.AudioOptionBass, speaker.AudioOptionMode)
	require.Equal(t, []string{speaker.AudioOptionBass, speaker.AudioOptionMode}, s.Options())

	s, _, _ = newTestAudio(t)
	require.Empty(t, s.Options())
}

func TestAudioSettings_PushUpdatesSetting(t *testing.T) {
	s, _, dispatcher := newTestAudio(t, speaker.AudioOptionBass)

	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceAudioSetting(speaker.AudioOptionBass),
		Body: map[string]any{
			"value":      -20,
			"properties": map[string]any{"minValue": -100, "maxValue": 100, "step": 10},
		},
	})

	setting, ok := s.Get(speaker.AudioOptionBass)
	require.True(t, ok)
	require.Equal(t, -20, setting.Value)
	require.Equal(t, -100, setting.Min)
	require.Equal(t, 100, setting.Max)
}

func TestAudioSettings_SetEnforcesCapabilityAndBounds(t *testing.T) {
	s, client, dispatcher := newTestAudio(t, speaker.AudioOptionBass)
	ctx := context.Background()

	require.ErrorIs(t, s.Set(ctx, speaker.AudioOptionTreble, 10), speaker.ErrUnsupported)

	// No observed bounds yet: writes go through unchecked.
	require.NoError(t, s.Set(ctx, speaker.AudioOptionBass, 500))

	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceAudioSetting(speaker.AudioOptionBass),
		Body: map[string]any{
			"value":      0,
			"properties": map[string]any{"minValue": -100, "maxValue": 100, "step": 10},
		},
	})

	require.ErrorIs(t, s.Set(ctx, speaker.AudioOptionBass, 500), speaker.ErrValidation)
	require.NoError(t, s.Set(ctx, speaker.AudioOptionBass, -50))
	require.Equal(t, -50, client.audioCalls[speaker.AudioOptionBass])
}

func TestAudioSettings_SelectChecksSupportedValues(t *testing.T) {
	s, client, dispatcher := newTestAudio(t, speaker.AudioOptionMode)
	ctx := context.Background()

	require.ErrorIs(t, s.Select(ctx, speaker.AudioOptionDualMono, "LEFT"), speaker.ErrUnsupported)

	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceAudioSetting(speaker.AudioOptionMode),
		Body: map[string]any{
			"value":      "NORMAL",
			"properties": map[string]any{"supportedValues": []any{"NORMAL", "DIALOG"}},
		},
	})

	require.ErrorIs(t, s.Select(ctx, speaker.AudioOptionMode, "NIGHT"), speaker.ErrValidation)
	require.NoError(t, s.Select(ctx, speaker.AudioOptionMode, "DIALOG"))
	require.Equal(t, "DIALOG", client.audioCalls[speaker.AudioOptionMode])
}

func TestAudioSettings_SnapshotUsesSelectedForModes(t *testing.T) {
	s, _, dispatcher := newTestAudio(t, speaker.AudioOptionBass, speaker.AudioOptionMode)

	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceAudioSetting(speaker.AudioOptionBass),
		Body:     map[string]any{"value": -20},
	})
	dispatcher.Dispatch(speaker.Message{
		Resource: speaker.ResourceAudioSetting(speaker.AudioOptionMode),
		Body: map[string]any{
			"value":      "DIALOG",
			"properties": map[string]any{"supportedValues": []any{"NORMAL", "DIALOG"}},
		},
	})

	snap := s.Snapshot()
	require.Equal(t, -20, snap["audio_"+speaker.AudioOptionBass])
	require.Equal(t, "DIALOG", snap["audio_"+speaker.AudioOptionMode])
}
