package entity

import (
	"context"
	"fmt"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity/parse"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// PowerSettings exposes the standby timeout toggle and the accessory
// (subwoofer, rear speaker) toggles of soundbar-class devices.
type PowerSettings struct {
	base

	client ClientSource
	coord  *coordinator.Coordinator

	accParser parse.AccessoriesParser
	toParser  parse.PowerTimeoutsParser

	accessories parse.Accessories
	accSeen     bool
	timeouts    parse.PowerTimeouts
	toSeen      bool
}

// NewPowerSettings creates the power settings entity and registers its
// push handlers.
func NewPowerSettings(client ClientSource, coord *coordinator.Coordinator, dispatcher *coordinator.Dispatcher, name string) *PowerSettings {
	s := &PowerSettings{
		base:   base{deviceID: coord.DeviceID(), name: name},
		client: client,
		coord:  coord,
	}

	dispatcher.Handle(speaker.ResourceAccessories, s.handleAccessories)
	dispatcher.Handle(speaker.ResourcePowerTimeouts, s.handleTimeouts)

	return s
}

func (s *PowerSettings) handleAccessories(body map[string]any) {
	accessories := s.accParser.Parse(body)

	s.mu.Lock()
	s.accessories = accessories
	s.accSeen = true
	s.mu.Unlock()
}

func (s *PowerSettings) handleTimeouts(body map[string]any) {
	timeouts := s.toParser.Parse(body)

	s.mu.Lock()
	s.timeouts = timeouts
	s.toSeen = true
	s.mu.Unlock()
}

// Refresh hydrates whichever of the two resources the device supports.
func (s *PowerSettings) Refresh(ctx context.Context) error {
	client := s.client.Client()

	if client.HasCapability(speaker.ResourceAccessories) {
		body, err := s.coord.GetAccessories(ctx)
		if err != nil {
			return fmt.Errorf("accessories: %w", err)
		}
		s.handleAccessories(body)
	}

	if client.HasCapability(speaker.ResourcePowerTimeouts) {
		body, err := s.coord.GetPowerTimeouts(ctx)
		if err != nil {
			return fmt.Errorf("power timeouts: %w", err)
		}
		s.handleTimeouts(body)
	}

	return nil
}

// Accessories returns the last observed accessory reading; ok is false
// until a first push or fetch has arrived.
func (s *PowerSettings) Accessories() (parse.Accessories, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessories, s.accSeen
}

// StandbyTimeout returns whether the no-audio standby timeout is
// enabled; ok is false until a first push or fetch has arrived.
func (s *PowerSettings) StandbyTimeout() (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeouts.NoAudio, s.toSeen
}

// SetStandbyTimeout enables or disables the no-audio standby timeout.
func (s *PowerSettings) SetStandbyTimeout(ctx context.Context, enabled bool) error {
	if !s.client.Client().HasCapability(speaker.ResourcePowerTimeouts) {
		return fmt.Errorf("%w: standby timeout", speaker.ErrUnsupported)
	}
	return s.client.Client().SetStandbyTimeout(ctx, enabled)
}

// SetAccessory enables or disables an accessory group. Only groups the
// device reports as controllable can be switched.
func (s *PowerSettings) SetAccessory(ctx context.Context, accessory string, enabled bool) error {
	if accessory != parse.AccessorySubs && accessory != parse.AccessoryRears {
		return fmt.Errorf("%w: unknown accessory %q", speaker.ErrValidation, accessory)
	}

	s.mu.RLock()
	controllable := false
	if s.accSeen {
		switch accessory {
		case parse.AccessorySubs:
			controllable = s.accessories.ControllableSubs
		case parse.AccessoryRears:
			controllable = s.accessories.ControllableRears
		}
	}
	s.mu.RUnlock()

	if !controllable {
		return fmt.Errorf("%w: accessory %s not controllable", speaker.ErrUnsupported, accessory)
	}

	return s.client.Client().SetAccessoryEnabled(ctx, accessory, enabled)
}

// Snapshot returns the normalized power settings state.
func (s *PowerSettings) Snapshot() speaker.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := speaker.State{}
	if s.toSeen {
		state["standby_timeout"] = s.timeouts.NoAudio
	}
	if s.accSeen {
		if s.accessories.ControllableSubs {
			state["accessory_subs"] = s.accessories.SubsEnabled
		}
		if s.accessories.ControllableRears {
			state["accessory_rears"] = s.accessories.RearsEnabled
		}
	}
	return state
}
