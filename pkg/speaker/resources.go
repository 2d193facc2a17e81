package speaker

// Resource paths used by the speaker's notification and fetch surface.
// These are the canonical keys of the coordinator's resource cache.
const (
	ResourceAudioVolume           = "/audio/volume"
	ResourcePowerControl          = "/system/power/control"
	ResourceNowPlaying            = "/content/nowPlaying"
	ResourceBattery               = "/system/battery"
	ResourceBluetoothSinkStatus   = "/bluetooth/sink/status"
	ResourceBluetoothSinkList     = "/bluetooth/sink/list"
	ResourceBluetoothSourceStatus = "/bluetooth/source/status"
	ResourceWifiStatus            = "/network/wifi/status"
	ResourceNetworkStatus         = "/network/status"
	ResourceActiveGroups          = "/grouping/activeGroups"
	ResourceProductSettings       = "/system/productSettings"
	ResourceAccessories           = "/accessories"
	ResourcePowerTimeouts         = "/system/power/timeouts"
)

// ResourceAudioSetting returns the resource path for a named audio
// setting such as "bass" or "treble".
func ResourceAudioSetting(option string) string {
	return "/audio/" + option
}

// Audio setting option names accepted by GetAudioSetting/SetAudioSetting.
const (
	AudioOptionBass      = "bass"
	AudioOptionTreble    = "treble"
	AudioOptionCenter    = "center"
	AudioOptionHeight    = "height"
	AudioOptionMode      = "mode"
	AudioOptionDualMono  = "dualMonoSelect"
	AudioOptionLatency   = "rebroadcastLatency/mode"
	AudioOptionAvSync    = "avSync"
	AudioOptionSubwoofer = "subwooferGain"
)
