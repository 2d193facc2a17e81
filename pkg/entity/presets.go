package entity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity/parse"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// Presets exposes the speaker's numbered preset slots as pressable
// actions.
type Presets struct {
	base

	client ClientSource
	coord  *coordinator.Coordinator
	parser parse.PresetParser

	presets []parse.Preset
}

// NewPresets creates the presets entity and registers its push handler.
func NewPresets(client ClientSource, coord *coordinator.Coordinator, dispatcher *coordinator.Dispatcher, name string) *Presets {
	p := &Presets{
		base:   base{deviceID: coord.DeviceID(), name: name},
		client: client,
		coord:  coord,
	}

	dispatcher.Handle(speaker.ResourceProductSettings, p.handleProductSettings)

	return p
}

func (p *Presets) handleProductSettings(body map[string]any) {
	presets := p.parser.Parse(body)

	p.mu.Lock()
	p.presets = presets
	p.mu.Unlock()
}

// Refresh hydrates the preset list through the coordinator.
func (p *Presets) Refresh(ctx context.Context) error {
	body, err := p.coord.GetProductSettings(ctx)
	if err != nil {
		return fmt.Errorf("product settings: %w", err)
	}
	p.handleProductSettings(body)
	return nil
}

// List returns the configured presets sorted by slot.
func (p *Presets) List() []parse.Preset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]parse.Preset(nil), p.presets...)
}

// Press plays the preset in the given slot (1-6).
func (p *Presets) Press(ctx context.Context, slot int) error {
	if slot < 1 || slot > 6 {
		return fmt.Errorf("%w: preset slot %d", speaker.ErrValidation, slot)
	}

	p.mu.RLock()
	configured := false
	for _, preset := range p.presets {
		if preset.Slot == strconv.Itoa(slot) {
			configured = true
			break
		}
	}
	p.mu.RUnlock()

	if !configured {
		return fmt.Errorf("%w: preset slot %d not configured", speaker.ErrNotFound, slot)
	}

	return p.client.Client().SelectPreset(ctx, slot)
}

// BluetoothPairing exposes the pairing-mode button and paired-device
// removal.
type BluetoothPairing struct {
	base

	client ClientSource
}

// NewBluetoothPairing creates the pairing entity.
func NewBluetoothPairing(client ClientSource, deviceID, name string) *BluetoothPairing {
	return &BluetoothPairing{
		base:   base{deviceID: deviceID, name: name},
		client: client,
	}
}

// Pair puts the speaker into Bluetooth pairing mode.
func (b *BluetoothPairing) Pair(ctx context.Context) error {
	return b.client.Client().StartBluetoothPairing(ctx)
}

// Remove unpairs a Bluetooth device by MAC.
func (b *BluetoothPairing) Remove(ctx context.Context, mac string) error {
	if mac == "" {
		return fmt.Errorf("%w: empty mac", speaker.ErrValidation)
	}
	return b.client.Client().RemoveBluetoothDevice(ctx, mac)
}
