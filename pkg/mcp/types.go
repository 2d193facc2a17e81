package mcp

import (
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
)

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or degraded)"`
	Speakers  int    `json:"speakers" jsonschema:"description=Number of configured speakers"`
	Connected int    `json:"connected" jsonschema:"description=Number of speakers currently connected"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- List Speakers Tool ---

// ListSpeakersOutput is the output for the list_speakers tool
type ListSpeakersOutput struct {
	Speakers []SpeakerInfo `json:"speakers" jsonschema:"description=List of configured speakers"`
	Count    int           `json:"count" jsonschema:"description=Total number of speakers"`
}

// SpeakerInfo represents a speaker in tool outputs
type SpeakerInfo struct {
	GUID      string         `json:"guid" jsonschema:"description=Unique speaker identifier"`
	Name      string         `json:"name" jsonschema:"description=Speaker display name"`
	Product   string         `json:"product,omitempty" jsonschema:"description=Product model"`
	IP        string         `json:"ip,omitempty" jsonschema:"description=Current IP address"`
	Connected bool           `json:"connected" jsonschema:"description=Whether the speaker connection is up"`
	State     map[string]any `json:"state,omitempty" jsonschema:"description=Current speaker state"`
}

// --- Get Speaker Tool ---

// GetSpeakerOutput is the output for the get_speaker tool
type GetSpeakerOutput struct {
	Speaker SpeakerInfo `json:"speaker" jsonschema:"description=Speaker information"`
}

// --- State Tools ---

// SpeakerStateOutput is the output for the get/set speaker state tools
type SpeakerStateOutput struct {
	GUID  string         `json:"guid" jsonschema:"description=Speaker identifier"`
	State map[string]any `json:"state" jsonschema:"description=Normalized speaker state"`
}

// --- Command Tools ---

// CommandOutput is the generic acknowledgement for command tools
type CommandOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the command succeeded"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Helper conversions ---

// managerToInfo converts a conn.Manager to SpeakerInfo
func managerToInfo(m *conn.Manager, withState bool) SpeakerInfo {
	si := SpeakerInfo{
		GUID:      m.GUID(),
		Name:      m.Name(),
		Product:   m.Info().ProductName,
		IP:        m.IP(),
		Connected: m.Client().IsConnected(),
	}
	if withState {
		si.State = m.State()
	}
	return si
}
