package types

import "time"

// --- Request DTOs ---

// GroupRequest is the request body for POST /speakers/:id/group
type GroupRequest struct {
	Members []string `json:"members" binding:"required,min=1"`
}

// SeekRequest is the request body for POST /speakers/:id/playback/seek
type SeekRequest struct {
	Position int `json:"position" binding:"min=0"`
}

// AudioSettingRequest is the request body for PUT /speakers/:id/audio/:option
type AudioSettingRequest struct {
	Value  *int    `json:"value,omitempty"`
	Option *string `json:"option,omitempty"`
}

// ToggleRequest is the request body for the power toggle endpoints
type ToggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// CreateFavoriteRequest is the request body for POST /favorites
type CreateFavoriteRequest struct {
	Name          string `json:"name" binding:"required"`
	Source        string `json:"source" binding:"required"`
	SourceAccount string `json:"source_account"`
	ItemType      string `json:"item_type"`
	Location      string `json:"location" binding:"required"`
	ContainerArt  string `json:"container_art"`
	Presetable    bool   `json:"presetable"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Speakers  int       `json:"speakers"`
	Connected int       `json:"connected"`
	Timestamp time.Time `json:"timestamp"`
}

// SpeakerInfo combines speaker identity with current state
type SpeakerInfo struct {
	GUID      string         `json:"guid"`
	Name      string         `json:"name"`
	Product   string         `json:"product,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Connected bool           `json:"connected"`
	State     map[string]any `json:"state,omitempty"`
}

// ListSpeakersResponse is returned from GET /speakers
type ListSpeakersResponse struct {
	Speakers []SpeakerInfo `json:"speakers"`
	Count    int           `json:"count"`
}

// SpeakerResponse is returned from GET /speakers/:id
type SpeakerResponse struct {
	Speaker SpeakerInfo `json:"speaker"`
}

// StateResponse is returned from GET/POST /speakers/:id/state
type StateResponse struct {
	Speaker   string         `json:"speaker"`
	State     map[string]any `json:"state"`
	Timestamp time.Time      `json:"timestamp"`
}

// TelemetryResponse is returned from GET /speakers/:id/telemetry
type TelemetryResponse struct {
	Speaker   string         `json:"speaker"`
	Battery   map[string]any `json:"battery,omitempty"`
	Network   map[string]any `json:"network"`
	Timestamp time.Time      `json:"timestamp"`
}

// SourcesResponse is returned from GET /speakers/:id/sources
type SourcesResponse struct {
	Speaker string   `json:"speaker"`
	Sources []string `json:"sources"`
}

// PresetInfo describes one hardware preset slot
type PresetInfo struct {
	Slot     int    `json:"slot"`
	Name     string `json:"name"`
	Source   string `json:"source"`
	Location string `json:"location,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// ListPresetsResponse is returned from GET /speakers/:id/presets
type ListPresetsResponse struct {
	Speaker string       `json:"speaker"`
	Presets []PresetInfo `json:"presets"`
}

// AudioSettingInfo describes one audio option's current value and range
type AudioSettingInfo struct {
	Option    string   `json:"option"`
	Value     int      `json:"value"`
	Min       int      `json:"min,omitempty"`
	Max       int      `json:"max,omitempty"`
	Step      int      `json:"step,omitempty"`
	Selected  string   `json:"selected,omitempty"`
	Supported []string `json:"supported,omitempty"`
}

// ListAudioSettingsResponse is returned from GET /speakers/:id/audio
type ListAudioSettingsResponse struct {
	Speaker  string             `json:"speaker"`
	Settings []AudioSettingInfo `json:"settings"`
}

// FavoriteInfo describes one stored favorite
type FavoriteInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Source        string `json:"source"`
	SourceAccount string `json:"source_account,omitempty"`
	ItemType      string `json:"item_type,omitempty"`
	Location      string `json:"location"`
	ContainerArt  string `json:"container_art,omitempty"`
	Presetable    bool   `json:"presetable"`
}

// ListFavoritesResponse is returned from GET /favorites
type ListFavoritesResponse struct {
	Favorites []FavoriteInfo `json:"favorites"`
	Count     int            `json:"count"`
}

// PowerSettingsResponse is returned from GET /speakers/:id/power
type PowerSettingsResponse struct {
	Speaker  string         `json:"speaker"`
	Settings map[string]any `json:"settings"`
}

// StatusResponse is a generic acknowledgement for command endpoints
type StatusResponse struct {
	Status string `json:"status"`
}
