package speaker

import "context"

// Client defines the call contract of the speaker's wire-protocol SDK.
// The coordinator, entities, and connection manager consume the speaker
// exclusively through this interface; the protocol itself lives outside
// this repository.
type Client interface {
	// GetSystemInfo returns static device information
	GetSystemInfo(ctx context.Context) (SystemInfo, error)

	// GetCapabilities returns the set of resource paths the device supports
	GetCapabilities(ctx context.Context) ([]string, error)

	// HasCapability reports whether the device supports a resource path
	HasCapability(resource string) bool

	// GetAudioVolume fetches the current volume payload
	GetAudioVolume(ctx context.Context) (map[string]any, error)

	// GetNowPlaying fetches the current playback payload
	GetNowPlaying(ctx context.Context) (map[string]any, error)

	// GetBatteryStatus fetches the battery telemetry payload
	GetBatteryStatus(ctx context.Context) (map[string]any, error)

	// GetBluetoothSinkStatus fetches the Bluetooth sink status payload
	GetBluetoothSinkStatus(ctx context.Context) (map[string]any, error)

	// GetBluetoothSinkList fetches the paired Bluetooth device list
	GetBluetoothSinkList(ctx context.Context) (map[string]any, error)

	// GetBluetoothSourceStatus fetches the Bluetooth source status payload
	GetBluetoothSourceStatus(ctx context.Context) (map[string]any, error)

	// GetWifiStatus fetches the WiFi telemetry payload
	GetWifiStatus(ctx context.Context) (map[string]any, error)

	// GetNetworkStatus fetches the network interface payload
	GetNetworkStatus(ctx context.Context) (map[string]any, error)

	// GetActiveGroups fetches the list of active multiroom groups
	GetActiveGroups(ctx context.Context) ([]map[string]any, error)

	// GetSources fetches the available content sources
	GetSources(ctx context.Context) (map[string]any, error)

	// GetAudioSetting fetches a named audio setting payload
	GetAudioSetting(ctx context.Context, option string) (map[string]any, error)

	// GetProductSettings fetches product settings, including presets
	GetProductSettings(ctx context.Context) (map[string]any, error)

	// GetAccessories fetches the connected accessory payload
	GetAccessories(ctx context.Context) (map[string]any, error)

	// GetPowerTimeouts fetches the standby timeout payload
	GetPowerTimeouts(ctx context.Context) (map[string]any, error)

	// SetPower turns the speaker on or off
	SetPower(ctx context.Context, on bool) error

	// SetVolume sets the volume in percent (0-100)
	SetVolume(ctx context.Context, percent int) error

	// SetMuted mutes or unmutes the speaker
	SetMuted(ctx context.Context, muted bool) error

	// SelectSource switches to the given source/sourceAccount pair
	SelectSource(ctx context.Context, source, sourceAccount string) error

	// SetAudioSetting writes a named audio setting value
	SetAudioSetting(ctx context.Context, option string, value any) error

	// Play resumes playback
	Play(ctx context.Context) error

	// Pause pauses playback
	Pause(ctx context.Context) error

	// Stop stops playback
	Stop(ctx context.Context) error

	// SkipNext skips to the next track
	SkipNext(ctx context.Context) error

	// SkipPrevious skips to the previous track
	SkipPrevious(ctx context.Context) error

	// Seek jumps to a position (seconds) within the current track
	Seek(ctx context.Context, position float64) error

	// SelectPreset plays one of the speaker's preset slots (1-6)
	SelectPreset(ctx context.Context, slot int) error

	// StartBluetoothPairing puts the speaker into Bluetooth pairing mode
	StartBluetoothPairing(ctx context.Context) error

	// RemoveBluetoothDevice unpairs a Bluetooth device by MAC
	RemoveBluetoothDevice(ctx context.Context, mac string) error

	// CreateGroup forms a multiroom group with this speaker as master
	CreateGroup(ctx context.Context, memberGUIDs []string) error

	// AddToGroup adds speakers to this speaker's active group
	AddToGroup(ctx context.Context, memberGUIDs []string) error

	// LeaveGroup removes this speaker from its active group
	LeaveGroup(ctx context.Context) error

	// SetAccessoryEnabled enables or disables an accessory group
	// ("subs" or "rears")
	SetAccessoryEnabled(ctx context.Context, accessory string, enabled bool) error

	// SetStandbyTimeout enables or disables the no-audio standby timeout
	SetStandbyTimeout(ctx context.Context, noAudio bool) error

	// AttachReceiver registers a callback for asynchronous notifications.
	// It may be called multiple times; every attached receiver observes
	// every notification.
	AttachReceiver(r Receiver)

	// Subscribe asks the device to start pushing notifications
	Subscribe(ctx context.Context) error

	// IsConnected returns true if the persistent connection is up
	IsConnected() bool

	// Close tears down the persistent connection
	Close()
}

// TokenSource defines the call contract of the authentication SDK.
type TokenSource interface {
	// Token returns the current access token
	Token() Token

	// Refresh exchanges the refresh token for a new access token
	Refresh(ctx context.Context) (Token, error)
}

// Discoverer defines the call contract of the local-network discovery SDK.
type Discoverer interface {
	// Discover returns the speakers currently visible on the network
	Discover(ctx context.Context) ([]DiscoveredSpeaker, error)
}
