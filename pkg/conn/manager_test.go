package conn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// liveClient is a minimal connected client for dialer fakes.
type liveClient struct {
	*speaker.NullClient

	subscribed bool
	receivers  []speaker.Receiver
}

func newLiveClient(info speaker.SystemInfo) *liveClient {
	return &liveClient{NullClient: speaker.NewNullClient(info)}
}

func (c *liveClient) Subscribe(ctx context.Context) error {
	c.subscribed = true
	return nil
}

func (c *liveClient) IsConnected() bool { return true }

func (c *liveClient) AttachReceiver(r speaker.Receiver) {
	c.receivers = append(c.receivers, r)
}

// push delivers a notification to every attached receiver.
func (c *liveClient) push(msg speaker.Message) {
	for _, r := range c.receivers {
		r(msg)
	}
}

func (c *liveClient) GetNowPlaying(ctx context.Context) (map[string]any, error) {
	return map[string]any{"state": map[string]any{"status": speaker.PlayStatusStopped}}, nil
}

func (c *liveClient) GetAudioVolume(ctx context.Context) (map[string]any, error) {
	return map[string]any{"value": 20, "muted": false}, nil
}

// dialTo returns a Dialer that answers only on the given IP.
func dialTo(ip string, client speaker.Client) Dialer {
	return func(ctx context.Context, dialIP string, tokens speaker.TokenSource) (speaker.Client, error) {
		if dialIP != ip {
			return nil, speaker.ErrNotConnected
		}
		return client, nil
	}
}

// fixedDiscoverer reports a static discovery result.
type fixedDiscoverer struct {
	speakers []speaker.DiscoveredSpeaker
	err      error
}

func (d fixedDiscoverer) Discover(ctx context.Context) ([]speaker.DiscoveredSpeaker, error) {
	return d.speakers, d.err
}

func testTokens() speaker.TokenSource {
	return speaker.NewStaticTokens(speaker.Token{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	})
}

func TestConnect_WiresEntitiesAndRegistry(t *testing.T) {
	info := speaker.SystemInfo{GUID: "g1", Name: "Device Name"}
	client := newLiveClient(info)
	registry := entity.NewRegistry()

	m, err := Connect(context.Background(),
		Config{GUID: "g1", IP: "10.0.0.5"},
		dialTo("10.0.0.5", client),
		testTokens(), speaker.NullDiscoverer{}, registry)
	require.NoError(t, err)
	defer m.Close()

	require.True(t, client.subscribed)
	require.Equal(t, "g1", m.GUID())
	require.Equal(t, "10.0.0.5", m.IP())

	// Without a configured name the device-reported one wins.
	require.Equal(t, "Device Name", m.Name())

	_, registered := registry.Lookup("g1")
	require.True(t, registered)

	state := m.State()
	require.Equal(t, 20, state["volume"])
}

func TestConnect_PushReachesCacheAndEntities(t *testing.T) {
	client := newLiveClient(speaker.SystemInfo{GUID: "g1", Name: "Living Room"})

	m, err := Connect(context.Background(),
		Config{GUID: "g1", IP: "10.0.0.5"},
		dialTo("10.0.0.5", client),
		testTokens(), speaker.NullDiscoverer{}, entity.NewRegistry())
	require.NoError(t, err)
	defer m.Close()

	// Both the cache recorder and the entity dispatcher must be attached.
	require.Len(t, client.receivers, 2)

	client.push(speaker.Message{
		Resource: speaker.ResourceAudioVolume,
		Body:     map[string]any{"value": 42, "muted": false},
	})

	cached, ok := m.Coordinator().Cached(speaker.ResourceAudioVolume)
	require.True(t, ok)
	require.Equal(t, 42, cached["value"])

	require.Equal(t, 42, m.Player.Snapshot()["volume"])
}

func TestConnect_RediscoversMovedSpeaker(t *testing.T) {
	info := speaker.SystemInfo{GUID: "g1", Name: "Living Room"}
	client := newLiveClient(info)
	discoverer := fixedDiscoverer{speakers: []speaker.DiscoveredSpeaker{
		{GUID: "g2", IP: "10.0.0.8"},
		{GUID: "g1", IP: "10.0.0.9"},
	}}

	m, err := Connect(context.Background(),
		Config{GUID: "g1", Name: "Living Room", IP: "10.0.0.5"},
		dialTo("10.0.0.9", client),
		testTokens(), discoverer, entity.NewRegistry())
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, "10.0.0.9", m.IP())
}

func TestConnect_FailsWhenSpeakerNotRediscovered(t *testing.T) {
	_, err := Connect(context.Background(),
		Config{GUID: "g1", IP: "10.0.0.5"},
		dialTo("10.0.0.9", newLiveClient(speaker.SystemInfo{GUID: "g1"})),
		testTokens(), speaker.NullDiscoverer{}, entity.NewRegistry())
	require.ErrorIs(t, err, speaker.ErrNotConnected)
}

func TestConnect_PropagatesDiscoveryErrors(t *testing.T) {
	discoverErr := errors.New("mdns down")

	_, err := Connect(context.Background(),
		Config{GUID: "g1", IP: "10.0.0.5"},
		dialTo("10.0.0.9", newLiveClient(speaker.SystemInfo{GUID: "g1"})),
		testTokens(), fixedDiscoverer{err: discoverErr}, entity.NewRegistry())
	require.ErrorIs(t, err, discoverErr)
}

func TestOffline_RunsOverNullClient(t *testing.T) {
	registry := entity.NewRegistry()

	m := Offline(Config{GUID: "g1", IP: "10.0.0.5"},
		dialTo("10.0.0.5", newLiveClient(speaker.SystemInfo{GUID: "g1"})),
		testTokens(), speaker.NullDiscoverer{}, registry)
	defer m.Close()

	require.False(t, m.Client().IsConnected())

	// Without a configured name the GUID stands in.
	require.Equal(t, "g1", m.Player.Name())

	_, registered := registry.Lookup("g1")
	require.True(t, registered)

	require.ErrorIs(t, m.Player.Refresh(context.Background()), speaker.ErrNotConnected)
}

func TestClose_DeregistersSpeaker(t *testing.T) {
	registry := entity.NewRegistry()
	m := Offline(Config{GUID: "g1", Name: "Living Room"},
		dialTo("", nil), testTokens(), speaker.NullDiscoverer{}, registry)

	m.Close()

	_, registered := registry.Lookup("g1")
	require.False(t, registered)
}
