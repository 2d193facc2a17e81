package speaker

import "time"

// Message is the push envelope delivered over the persistent connection.
// Resource is a REST-like path naming the attribute class the body
// describes; Body is an opaque payload whose shape depends on Resource.
type Message struct {
	Resource string         `json:"resource"`
	Body     map[string]any `json:"body"`
}

// Receiver is a callback invoked for every asynchronous notification.
// Receivers run on the connection's dispatch goroutine and must not block.
type Receiver func(msg Message)

// SystemInfo describes a speaker as reported by the device itself.
type SystemInfo struct {
	GUID            string `json:"guid"`
	Name            string `json:"name"`
	ProductName     string `json:"product_name"`
	ProductType     string `json:"product_type"`
	SerialNumber    string `json:"serial_number"`
	SoftwareVersion string `json:"software_version"`
	CountryCode     string `json:"country_code"`
}

// State represents a speaker's normalized state as a dynamic map.
type State map[string]any

// DiscoveredSpeaker is a speaker found on the local network.
type DiscoveredSpeaker struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
	IP   string `json:"ip"`
}

// Token is an access token with its refresh companion and validity window.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Validity returns how long the token remains valid.
func (t Token) Validity() time.Duration {
	return time.Until(t.ExpiresAt)
}

// Playback status values as reported in now-playing payloads.
const (
	PlayStatusPlay      = "PLAY"
	PlayStatusPaused    = "PAUSED"
	PlayStatusBuffering = "BUFFERING"
	PlayStatusStopped   = "STOPPED"
)

// Power values used by /system/power/control payloads.
const (
	PowerOn  = "ON"
	PowerOff = "OFF"
)
