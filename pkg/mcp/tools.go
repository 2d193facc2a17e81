package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health of the service and how many speakers are connected"),
		),
		s.handleGetHealth,
	)

	// List speakers
	s.mcpServer.AddTool(
		mcp.NewTool("list_speakers",
			mcp.WithDescription("List all configured speakers with their current state"),
		),
		s.handleListSpeakers,
	)

	// Get speaker
	s.mcpServer.AddTool(
		mcp.NewTool("get_speaker",
			mcp.WithDescription("Get detailed information about a specific speaker by GUID or name"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Speaker GUID or name"),
			),
		),
		s.handleGetSpeaker,
	)

	// Get speaker state
	s.mcpServer.AddTool(
		mcp.NewTool("get_speaker_state",
			mcp.WithDescription("Get the current state of a speaker (power, volume, playback, source)"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Speaker GUID or name"),
			),
		),
		s.handleGetSpeakerState,
	)

	// Set speaker state
	s.mcpServer.AddTool(
		mcp.NewTool("set_speaker_state",
			mcp.WithDescription("Set speaker state. Accepts power (ON/OFF), volume (0-100), muted (bool) and source."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Speaker GUID or name"),
			),
			mcp.WithObject("state",
				mcp.Required(),
				mcp.Description("State properties to set (e.g. {\"power\": \"ON\", \"volume\": 40})"),
			),
		),
		s.handleSetSpeakerState,
	)

	// Playback command
	s.mcpServer.AddTool(
		mcp.NewTool("playback_command",
			mcp.WithDescription("Execute a transport command on a speaker"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Speaker GUID or name"),
			),
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("One of play, pause, stop, next, previous"),
			),
		),
		s.handlePlaybackCommand,
	)

	// Play preset
	s.mcpServer.AddTool(
		mcp.NewTool("play_preset",
			mcp.WithDescription("Play the content stored in one of the speaker's six preset slots"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Speaker GUID or name"),
			),
			mcp.WithNumber("slot",
				mcp.Required(),
				mcp.Description("Preset slot number (1-6)"),
			),
		),
		s.handlePlayPreset,
	)

	// Group speakers
	s.mcpServer.AddTool(
		mcp.NewTool("group_speakers",
			mcp.WithDescription("Group speakers for multi-room playback, mastered by the given speaker"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Master speaker GUID or name"),
			),
			mcp.WithArray("members",
				mcp.Required(),
				mcp.Description("GUIDs or names of the speakers to add to the group"),
			),
		),
		s.handleGroupSpeakers,
	)

	// Ungroup speaker
	s.mcpServer.AddTool(
		mcp.NewTool("ungroup_speaker",
			mcp.WithDescription("Remove a speaker from its multi-room group"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Speaker GUID or name"),
			),
		),
		s.handleUngroupSpeaker,
	)

	// Start Bluetooth pairing
	s.mcpServer.AddTool(
		mcp.NewTool("start_bluetooth_pairing",
			mcp.WithDescription("Put a speaker into Bluetooth pairing mode"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Speaker GUID or name"),
			),
		),
		s.handleStartBluetoothPairing,
	)

	// Standby timeout
	s.mcpServer.AddTool(
		mcp.NewTool("set_standby_timeout",
			mcp.WithDescription("Enable or disable the no-audio standby timeout of a speaker"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Speaker GUID or name"),
			),
			mcp.WithBoolean("enabled",
				mcp.Required(),
				mcp.Description("Whether the speaker should power down after a period without audio"),
			),
		),
		s.handleSetStandbyTimeout,
	)
}
