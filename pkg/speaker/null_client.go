package speaker

import "context"

// NullClient is a no-op client used when a configured speaker is
// unreachable. It allows the API to run in limited mode without a live
// connection.
type NullClient struct {
	info SystemInfo
}

// NewNullClient creates a new NullClient carrying whatever static info
// is known about the speaker from configuration.
func NewNullClient(info SystemInfo) *NullClient {
	return &NullClient{info: info}
}

func (c *NullClient) GetSystemInfo(ctx context.Context) (SystemInfo, error) {
	return c.info, nil
}

func (c *NullClient) GetCapabilities(ctx context.Context) ([]string, error) {
	return []string{}, nil
}

func (c *NullClient) HasCapability(resource string) bool {
	return false
}

func (c *NullClient) GetAudioVolume(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetNowPlaying(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetBatteryStatus(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetBluetoothSinkStatus(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetBluetoothSinkList(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetBluetoothSourceStatus(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetWifiStatus(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetNetworkStatus(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetActiveGroups(ctx context.Context) ([]map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetSources(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetAudioSetting(ctx context.Context, option string) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetProductSettings(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetAccessories(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) GetPowerTimeouts(ctx context.Context) (map[string]any, error) {
	return nil, ErrNotConnected
}

func (c *NullClient) SetPower(ctx context.Context, on bool) error {
	return ErrNotConnected
}

func (c *NullClient) SetVolume(ctx context.Context, percent int) error {
	return ErrNotConnected
}

func (c *NullClient) SetMuted(ctx context.Context, muted bool) error {
	return ErrNotConnected
}

func (c *NullClient) SelectSource(ctx context.Context, source, sourceAccount string) error {
	return ErrNotConnected
}

func (c *NullClient) SetAudioSetting(ctx context.Context, option string, value any) error {
	return ErrNotConnected
}

func (c *NullClient) Play(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullClient) Pause(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullClient) Stop(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullClient) SkipNext(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullClient) SkipPrevious(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullClient) Seek(ctx context.Context, position float64) error {
	return ErrNotConnected
}

func (c *NullClient) SelectPreset(ctx context.Context, slot int) error {
	return ErrNotConnected
}

func (c *NullClient) StartBluetoothPairing(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullClient) RemoveBluetoothDevice(ctx context.Context, mac string) error {
	return ErrNotConnected
}

func (c *NullClient) CreateGroup(ctx context.Context, memberGUIDs []string) error {
	return ErrNotConnected
}

func (c *NullClient) AddToGroup(ctx context.Context, memberGUIDs []string) error {
	return ErrNotConnected
}

func (c *NullClient) LeaveGroup(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullClient) SetAccessoryEnabled(ctx context.Context, accessory string, enabled bool) error {
	return ErrNotConnected
}

func (c *NullClient) SetStandbyTimeout(ctx context.Context, noAudio bool) error {
	return ErrNotConnected
}

func (c *NullClient) AttachReceiver(r Receiver) {}

func (c *NullClient) Subscribe(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullClient) IsConnected() bool {
	return false
}

func (c *NullClient) Close() {}

// StaticTokens is a TokenSource over a fixed token. Refresh hands the
// same token back, so it suits deployments where tokens are provisioned
// out of band.
type StaticTokens struct {
	token Token
}

// NewStaticTokens wraps a fixed token.
func NewStaticTokens(token Token) *StaticTokens {
	return &StaticTokens{token: token}
}

func (s *StaticTokens) Token() Token {
	return s.token
}

func (s *StaticTokens) Refresh(ctx context.Context) (Token, error) {
	return s.token, nil
}

// NullDiscoverer is a Discoverer that never finds anything.
type NullDiscoverer struct{}

func (NullDiscoverer) Discover(ctx context.Context) ([]DiscoveredSpeaker, error) {
	return nil, nil
}
