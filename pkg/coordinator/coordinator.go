package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// cacheExpiry is the soft TTL after which a cached payload is treated
// as absent by readers.
const cacheExpiry = 60 * time.Second

// cachedMessage is the most recent payload observed for a resource,
// whether pushed by the device or fetched on demand.
type cachedMessage struct {
	resource  string
	body      map[string]any
	timestamp time.Time
}

// Coordinator caches per-resource payloads from a single speaker
// connection and serves read-with-fallback accessors over them.
// Pushes overwrite fetch results and vice versa; the cache keeps no
// record of which origin wrote last.
type Coordinator struct {
	client   speaker.Client
	deviceID string

	mu    sync.RWMutex
	cache map[string]cachedMessage

	now func() time.Time
}

// New creates a coordinator for one speaker connection and attaches
// itself as a push receiver.
func New(client speaker.Client, deviceID string) *Coordinator {
	c := &Coordinator{
		client:   client,
		deviceID: deviceID,
		cache:    make(map[string]cachedMessage),
		now:      time.Now,
	}

	client.AttachReceiver(c.RecordPush)

	return c
}

// DeviceID returns the GUID of the speaker this coordinator serves.
func (c *Coordinator) DeviceID() string {
	return c.deviceID
}

// Reset swaps in a freshly dialed client after a reconnect. The cache is
// rebuilt empty; its lifetime equals the lifetime of one connection.
func (c *Coordinator) Reset(client speaker.Client) {
	c.mu.Lock()
	c.client = client
	c.cache = make(map[string]cachedMessage)
	c.mu.Unlock()

	client.AttachReceiver(c.RecordPush)
}

// RecordPush caches an incoming notification. Malformed pushes (empty
// resource, missing body) are logged and dropped without touching any
// existing entry; pushes are fire-and-forget telemetry and never fail.
func (c *Coordinator) RecordPush(msg speaker.Message) {
	if msg.Resource == "" {
		log.Debug().Str("device", c.deviceID).Msg("Push without resource, dropping")
		return
	}
	if msg.Body == nil {
		log.Debug().
			Str("device", c.deviceID).
			Str("resource", msg.Resource).
			Msg("Push body is not a mapping, dropping")
		return
	}

	c.store(msg.Resource, msg.Body)
	log.Debug().Str("device", c.deviceID).Str("resource", msg.Resource).Msg("Cached push")
}

// store overwrites the entry for resource with the current timestamp.
func (c *Coordinator) store(resource string, body map[string]any) {
	c.mu.Lock()
	c.cache[resource] = cachedMessage{
		resource:  resource,
		body:      body,
		timestamp: c.now(),
	}
	c.mu.Unlock()
}

// Cached returns the stored body for resource if it is still within the
// TTL window. Stale entries are treated as absent but never deleted; a
// later push or fetch simply overwrites them.
func (c *Coordinator) Cached(resource string) (map[string]any, bool) {
	c.mu.RLock()
	cached, ok := c.cache[resource]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(cached.timestamp) >= cacheExpiry {
		return nil, false
	}
	return cached.body, true
}

// fetchWith serves resource from the cache when valid, otherwise invokes
// fetch exactly once, writes the result through, and returns it. Fetch
// failures propagate unchanged and leave whatever stale entry existed in
// place; a result that is not a mapping surfaces as ErrBadPayload rather
// than being cached.
func (c *Coordinator) fetchWith(ctx context.Context, resource string, fetch func(context.Context) (map[string]any, error)) (map[string]any, error) {
	if body, ok := c.Cached(resource); ok {
		return body, nil
	}

	log.Debug().Str("device", c.deviceID).Str("resource", resource).Msg("Cache miss, fetching")

	body, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("%w: fetch for %s returned no mapping", speaker.ErrBadPayload, resource)
	}

	c.store(resource, body)
	return body, nil
}

// clientRef returns the current client; Reset may swap it between calls.
func (c *Coordinator) clientRef() speaker.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// GetAudioVolume returns the volume payload, fetching on cache miss.
func (c *Coordinator) GetAudioVolume(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceAudioVolume, c.clientRef().GetAudioVolume)
}

// GetNowPlaying returns the playback payload, fetching on cache miss.
func (c *Coordinator) GetNowPlaying(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceNowPlaying, c.clientRef().GetNowPlaying)
}

// GetBatteryStatus returns the battery payload, fetching on cache miss.
func (c *Coordinator) GetBatteryStatus(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceBattery, c.clientRef().GetBatteryStatus)
}

// GetBluetoothSinkStatus returns the Bluetooth sink status payload.
func (c *Coordinator) GetBluetoothSinkStatus(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceBluetoothSinkStatus, c.clientRef().GetBluetoothSinkStatus)
}

// GetBluetoothSinkList returns the paired Bluetooth device list.
func (c *Coordinator) GetBluetoothSinkList(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceBluetoothSinkList, c.clientRef().GetBluetoothSinkList)
}

// GetBluetoothSourceStatus returns the Bluetooth source status payload.
func (c *Coordinator) GetBluetoothSourceStatus(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceBluetoothSourceStatus, c.clientRef().GetBluetoothSourceStatus)
}

// GetWifiStatus returns the WiFi telemetry payload.
func (c *Coordinator) GetWifiStatus(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceWifiStatus, c.clientRef().GetWifiStatus)
}

// GetNetworkStatus returns the network interface payload.
func (c *Coordinator) GetNetworkStatus(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceNetworkStatus, c.clientRef().GetNetworkStatus)
}

// GetProductSettings returns the product settings payload, which carries
// the preset slots.
func (c *Coordinator) GetProductSettings(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceProductSettings, c.clientRef().GetProductSettings)
}

// GetAccessories returns the connected accessory payload.
func (c *Coordinator) GetAccessories(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceAccessories, c.clientRef().GetAccessories)
}

// GetPowerTimeouts returns the standby timeout payload.
func (c *Coordinator) GetPowerTimeouts(ctx context.Context) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourcePowerTimeouts, c.clientRef().GetPowerTimeouts)
}

// GetActiveGroups returns the active multiroom groups. The list is
// cached under an envelope key so the generic per-resource model holds.
func (c *Coordinator) GetActiveGroups(ctx context.Context) ([]map[string]any, error) {
	body, err := c.fetchWith(ctx, speaker.ResourceActiveGroups, func(ctx context.Context) (map[string]any, error) {
		groups, err := c.clientRef().GetActiveGroups(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"activeGroups": groups}, nil
	})
	if err != nil {
		return nil, err
	}
	return groupsFromBody(body), nil
}

// GetAudioSetting returns a named audio setting payload.
func (c *Coordinator) GetAudioSetting(ctx context.Context, option string) (map[string]any, error) {
	return c.fetchWith(ctx, speaker.ResourceAudioSetting(option), func(ctx context.Context) (map[string]any, error) {
		return c.clientRef().GetAudioSetting(ctx, option)
	})
}

// GetSources returns the available content sources. Sources change
// rarely and are needed rarely, so they bypass the cache.
func (c *Coordinator) GetSources(ctx context.Context) (map[string]any, error) {
	return c.clientRef().GetSources(ctx)
}

// groupsFromBody unwraps the activeGroups envelope. Pushed payloads may
// carry the list as []any rather than []map[string]any.
func groupsFromBody(body map[string]any) []map[string]any {
	switch v := body["activeGroups"].(type) {
	case []map[string]any:
		return v
	case []any:
		groups := make([]map[string]any, 0, len(v))
		for _, g := range v {
			if m, ok := g.(map[string]any); ok {
				groups = append(groups, m)
			}
		}
		return groups
	default:
		return nil
	}
}
