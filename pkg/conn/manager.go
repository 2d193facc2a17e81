// Package conn owns the per-speaker connection lifecycle: dialing,
// push subscription, entity wiring, reconnection by rediscovery, and
// periodic token refresh.
package conn

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

const (
	// tokenRefreshDelay is the interval between token validity checks.
	tokenRefreshDelay = time.Hour
	// tokenRetryDelay is the wait before retrying a failed refresh.
	tokenRetryDelay = 2 * time.Minute

	// checkInterval is how often the reconnection monitor probes the
	// connection; reconnectDelay is the settle time before rediscovery.
	checkInterval  = 30 * time.Second
	reconnectDelay = 10 * time.Second
)

// Dialer opens a persistent connection to the speaker at the given IP.
type Dialer func(ctx context.Context, ip string, tokens speaker.TokenSource) (speaker.Client, error)

// Config identifies one configured speaker.
type Config struct {
	GUID string
	Name string
	IP   string
}

// Manager owns everything tied to one speaker connection: the client,
// its coordinator and dispatcher, and the entity set.
type Manager struct {
	cfg        Config
	dial       Dialer
	tokens     speaker.TokenSource
	discoverer speaker.Discoverer
	registry   *entity.Registry

	mu     sync.RWMutex
	client speaker.Client
	info   speaker.SystemInfo

	coord      *coordinator.Coordinator
	dispatcher *coordinator.Dispatcher

	Player    *entity.MediaPlayer
	Battery   *entity.BatterySensors
	Network   *entity.NetworkSensors
	Audio     *entity.AudioSettings
	Presets   *entity.Presets
	Bluetooth *entity.BluetoothPairing
	Power     *entity.PowerSettings

	stop chan struct{}
	wg   sync.WaitGroup
}

// Connect dials the speaker, falling back to rediscovery by GUID when
// the configured IP no longer answers, and wires up the coordinator and
// entities. The returned manager is registered in the registry.
func Connect(ctx context.Context, cfg Config, dial Dialer, tokens speaker.TokenSource, discoverer speaker.Discoverer, registry *entity.Registry) (*Manager, error) {
	m := &Manager{
		cfg:        cfg,
		dial:       dial,
		tokens:     tokens,
		discoverer: discoverer,
		registry:   registry,
		stop:       make(chan struct{}),
	}

	client, err := m.dialWithRediscovery(ctx)
	if err != nil {
		return nil, err
	}
	m.client = client

	info, err := client.GetSystemInfo(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("system info: %w", err)
	}
	m.info = info

	m.coord = coordinator.New(client, cfg.GUID)
	m.dispatcher = coordinator.NewDispatcher()
	client.AttachReceiver(m.dispatcher.Dispatch)

	name := cfg.Name
	if name == "" {
		name = info.Name
	}

	m.Player = entity.NewMediaPlayer(m, m.coord, m.dispatcher, registry, name)
	m.Battery = entity.NewBatterySensors(m.coord, m.dispatcher, name)
	m.Network = entity.NewNetworkSensors(m.coord, m.dispatcher, name)
	m.Audio = entity.NewAudioSettings(m, m.coord, m.dispatcher, name)
	m.Presets = entity.NewPresets(m, m.coord, m.dispatcher, name)
	m.Bluetooth = entity.NewBluetoothPairing(m, cfg.GUID, name)
	m.Power = entity.NewPowerSettings(m, m.coord, m.dispatcher, name)

	if err := client.Subscribe(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	registry.Register(cfg.GUID, m.Player)

	if err := m.Player.Refresh(ctx); err != nil {
		log.Warn().Err(err).Str("guid", cfg.GUID).Msg("Initial playback refresh failed")
	}

	m.wg.Add(2)
	go m.refreshTokenLoop()
	go m.reconnectionMonitor()

	log.Info().Str("guid", cfg.GUID).Str("name", name).Msg("Speaker connected")

	return m, nil
}

// Offline constructs a manager for a speaker that could not be reached
// at startup. It runs over the NullClient until the reconnection
// monitor brings a real connection up.
func Offline(cfg Config, dial Dialer, tokens speaker.TokenSource, discoverer speaker.Discoverer, registry *entity.Registry) *Manager {
	m := &Manager{
		cfg:        cfg,
		dial:       dial,
		tokens:     tokens,
		discoverer: discoverer,
		registry:   registry,
		stop:       make(chan struct{}),
	}

	m.info = speaker.SystemInfo{GUID: cfg.GUID, Name: cfg.Name}
	m.client = speaker.NewNullClient(m.info)

	m.coord = coordinator.New(m.client, cfg.GUID)
	m.dispatcher = coordinator.NewDispatcher()

	name := cfg.Name
	if name == "" {
		name = cfg.GUID
	}

	m.Player = entity.NewMediaPlayer(m, m.coord, m.dispatcher, registry, name)
	m.Battery = entity.NewBatterySensors(m.coord, m.dispatcher, name)
	m.Network = entity.NewNetworkSensors(m.coord, m.dispatcher, name)
	m.Audio = entity.NewAudioSettings(m, m.coord, m.dispatcher, name)
	m.Presets = entity.NewPresets(m, m.coord, m.dispatcher, name)
	m.Bluetooth = entity.NewBluetoothPairing(m, cfg.GUID, name)
	m.Power = entity.NewPowerSettings(m, m.coord, m.dispatcher, name)

	registry.Register(cfg.GUID, m.Player)

	m.wg.Add(2)
	go m.refreshTokenLoop()
	go m.reconnectionMonitor()

	log.Warn().Str("guid", cfg.GUID).Str("name", name).Msg("Speaker offline, monitoring for reconnection")

	return m
}

// dialWithRediscovery dials the configured IP; on failure it asks the
// discoverer whether the speaker reappeared under a new address.
func (m *Manager) dialWithRediscovery(ctx context.Context) (speaker.Client, error) {
	ip := m.IP()
	client, err := m.dial(ctx, ip, m.tokens)
	if err == nil {
		return client, nil
	}

	log.Warn().Err(err).
		Str("guid", m.cfg.GUID).
		Str("ip", ip).
		Msg("Connect failed, rediscovering")

	discovered, derr := m.discoverer.Discover(ctx)
	if derr != nil {
		return nil, fmt.Errorf("discover after connect failure: %w", derr)
	}

	for _, d := range discovered {
		if d.GUID != m.cfg.GUID {
			continue
		}
		if d.IP != ip {
			log.Info().
				Str("guid", m.cfg.GUID).
				Str("old_ip", ip).
				Str("new_ip", d.IP).
				Msg("Speaker found under new IP")
			m.mu.Lock()
			m.cfg.IP = d.IP
			m.mu.Unlock()
		}
		return m.dial(ctx, m.IP(), m.tokens)
	}

	return nil, fmt.Errorf("speaker %s: %w", m.cfg.GUID, err)
}

// refreshTokenLoop keeps the access token fresh, retrying on a shorter
// interval after failures.
func (m *Manager) refreshTokenLoop() {
	defer m.wg.Done()

	for {
		delay := tokenRetryDelay
		if m.tokens.Token().Validity() > 2*tokenRefreshDelay {
			delay = tokenRefreshDelay
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			token, err := m.tokens.Refresh(ctx)
			cancel()
			if err != nil {
				log.Error().Err(err).
					Str("guid", m.cfg.GUID).
					Dur("retry_in", tokenRetryDelay).
					Msg("Token refresh failed")
			} else {
				log.Info().
					Str("guid", m.cfg.GUID).
					Dur("valid_for", token.Validity()).
					Msg("Token refreshed")
			}
		}

		select {
		case <-m.stop:
			return
		case <-time.After(delay):
		}
	}
}

// reconnectionMonitor probes the connection and, when it drops, redials
// via rediscovery and resets the coordinator onto the new connection.
func (m *Manager) reconnectionMonitor() {
	defer m.wg.Done()

	for {
		select {
		case <-m.stop:
			return
		case <-time.After(checkInterval):
		}

		if m.Client().IsConnected() {
			continue
		}

		log.Warn().Str("guid", m.cfg.GUID).Msg("Speaker disconnected, attempting reconnection")

		select {
		case <-m.stop:
			return
		case <-time.After(reconnectDelay):
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		client, err := m.dialWithRediscovery(ctx)
		if err != nil {
			cancel()
			log.Warn().Err(err).Str("guid", m.cfg.GUID).Msg("Reconnection failed, will retry")
			continue
		}

		old := m.swapClient(client)
		old.Close()

		// The cache belongs to the connection: it restarts empty.
		m.coord.Reset(client)
		client.AttachReceiver(m.dispatcher.Dispatch)

		if err := client.Subscribe(ctx); err != nil {
			log.Warn().Err(err).Str("guid", m.cfg.GUID).Msg("Resubscription failed")
		}

		if info, err := client.GetSystemInfo(ctx); err == nil {
			m.mu.Lock()
			m.info = info
			m.mu.Unlock()
		}
		cancel()

		log.Info().Str("guid", m.cfg.GUID).Str("ip", m.IP()).Msg("Reconnected to speaker")
	}
}

// swapClient replaces the active client and returns the previous one.
func (m *Manager) swapClient(client speaker.Client) speaker.Client {
	m.mu.Lock()
	old := m.client
	m.client = client
	m.mu.Unlock()
	return old
}

// Client returns the active client.
func (m *Manager) Client() speaker.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

// Coordinator returns the manager's resource cache coordinator.
func (m *Manager) Coordinator() *coordinator.Coordinator {
	return m.coord
}

// Info returns the speaker's static device information.
func (m *Manager) Info() speaker.SystemInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.info
}

// GUID returns the speaker's GUID.
func (m *Manager) GUID() string {
	return m.cfg.GUID
}

// IP returns the speaker's last known address.
func (m *Manager) IP() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.IP
}

// Name returns the speaker's display name.
func (m *Manager) Name() string {
	if m.cfg.Name != "" {
		return m.cfg.Name
	}
	return m.Info().Name
}

// State assembles the full normalized snapshot across entities.
func (m *Manager) State() speaker.State {
	state := m.Player.Snapshot()
	for k, v := range m.Battery.Snapshot() {
		state[k] = v
	}
	for k, v := range m.Network.Snapshot() {
		state[k] = v
	}
	for k, v := range m.Audio.Snapshot() {
		state[k] = v
	}
	for k, v := range m.Power.Snapshot() {
		state[k] = v
	}
	return state
}

// Close tears the connection down and removes the speaker from the
// registry.
func (m *Manager) Close() {
	close(m.stop)
	m.wg.Wait()

	m.registry.Deregister(m.cfg.GUID)
	m.Client().Close()

	log.Info().Str("guid", m.cfg.GUID).Msg("Speaker connection closed")
}
