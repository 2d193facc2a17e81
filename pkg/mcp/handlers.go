package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	managers := s.fleet.List()

	connected := 0
	for _, m := range managers {
		if m.Client().IsConnected() {
			connected++
		}
	}

	status := "healthy"
	if len(managers) > 0 && connected == 0 {
		status = "degraded"
	}

	out := GetHealthOutput{
		Status:    status,
		Speakers:  len(managers),
		Connected: connected,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListSpeakers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	managers := s.fleet.List()

	infos := make([]SpeakerInfo, 0, len(managers))
	for _, m := range managers {
		infos = append(infos, managerToInfo(m, true))
	}

	out := ListSpeakersOutput{
		Speakers: infos,
		Count:    len(infos),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetSpeaker(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.lookupSpeaker(request)
	if errResult != nil {
		return errResult, nil
	}

	out := GetSpeakerOutput{Speaker: managerToInfo(m, true)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetSpeakerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.lookupSpeaker(request)
	if errResult != nil {
		return errResult, nil
	}

	if err := m.Player.Refresh(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to refresh speaker state: %s", err)), nil
	}

	out := SpeakerStateOutput{
		GUID:  m.GUID(),
		State: m.State(),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetSpeakerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.lookupSpeaker(request)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()

	// The state can come nested under "state" or as flat args
	stateMap := map[string]any{}
	if stateRaw, ok := args["state"]; ok {
		if sm, ok := stateRaw.(map[string]any); ok {
			stateMap = sm
		}
	} else {
		for k, v := range args {
			if k != "id" {
				stateMap[k] = v
			}
		}
	}

	if err := s.validator.ValidateState(stateMap); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
	}

	if err := applyState(ctx, m, stateMap); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set speaker state: %s", err)), nil
	}

	out := SpeakerStateOutput{
		GUID:  m.GUID(),
		State: m.State(),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handlePlaybackCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.lookupSpeaker(request)
	if errResult != nil {
		return errResult, nil
	}

	action, err := requiredString(request, "action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch action {
	case "play":
		err = m.Player.Play(ctx)
	case "pause":
		err = m.Player.Pause(ctx)
	case "stop":
		err = m.Player.Stop(ctx)
	case "next":
		err = m.Player.Next(ctx)
	case "previous":
		err = m.Player.Previous(ctx)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown playback action %q", action)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to execute %s: %s", action, err)), nil
	}

	out := CommandOutput{
		Success: true,
		Message: fmt.Sprintf("Executed %s on %q", action, m.Name()),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handlePlayPreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.lookupSpeaker(request)
	if errResult != nil {
		return errResult, nil
	}

	slotRaw, ok := request.GetArguments()["slot"]
	if !ok {
		return mcp.NewToolResultError(`required parameter "slot" is missing`), nil
	}
	slot := cast.ToInt(slotRaw)

	if err := m.Presets.Press(ctx, slot); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to play preset: %s", err)), nil
	}

	out := CommandOutput{
		Success: true,
		Message: fmt.Sprintf("Playing preset %d on %q", slot, m.Name()),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGroupSpeakers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.lookupSpeaker(request)
	if errResult != nil {
		return errResult, nil
	}

	membersRaw, ok := request.GetArguments()["members"]
	if !ok {
		return mcp.NewToolResultError(`required parameter "members" is missing`), nil
	}
	members := cast.ToStringSlice(membersRaw)
	if len(members) == 0 {
		return mcp.NewToolResultError(`parameter "members" must be a non-empty list`), nil
	}

	guids := make([]string, 0, len(members))
	for _, member := range members {
		mm, ok := s.fleet.Lookup(member)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown group member %q", member)), nil
		}
		guids = append(guids, mm.GUID())
	}

	if err := m.Player.Join(ctx, guids); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to group speakers: %s", err)), nil
	}

	out := CommandOutput{
		Success: true,
		Message: fmt.Sprintf("Grouped %d speaker(s) under %q", len(guids), m.Name()),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleUngroupSpeaker(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.lookupSpeaker(request)
	if errResult != nil {
		return errResult, nil
	}

	if err := m.Player.Unjoin(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to ungroup speaker: %s", err)), nil
	}

	out := CommandOutput{
		Success: true,
		Message: fmt.Sprintf("Speaker %q left its group", m.Name()),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleStartBluetoothPairing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.lookupSpeaker(request)
	if errResult != nil {
		return errResult, nil
	}

	if err := m.Bluetooth.Pair(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start pairing: %s", err)), nil
	}

	out := CommandOutput{
		Success: true,
		Message: fmt.Sprintf("Speaker %q is in Bluetooth pairing mode", m.Name()),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetStandbyTimeout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, errResult := s.lookupSpeaker(request)
	if errResult != nil {
		return errResult, nil
	}

	enabledRaw, ok := request.GetArguments()["enabled"]
	if !ok {
		return mcp.NewToolResultError("enabled is required"), nil
	}
	enabled := cast.ToBool(enabledRaw)

	if err := m.Power.SetStandbyTimeout(ctx, enabled); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set standby timeout: %s", err)), nil
	}

	out := CommandOutput{
		Success: true,
		Message: fmt.Sprintf("Standby timeout for %q set to %t", m.Name(), enabled),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

// applyState executes the commands of a validated state request, power
// first so the rest land on an awake speaker.
func applyState(ctx context.Context, m *conn.Manager, req map[string]any) error {
	if v, ok := req["power"]; ok {
		switch cast.ToString(v) {
		case speaker.PowerOn:
			if err := m.Player.TurnOn(ctx); err != nil {
				return err
			}
		case speaker.PowerOff:
			if err := m.Player.TurnOff(ctx); err != nil {
				return err
			}
		}
	}
	if v, ok := req["volume"]; ok {
		if err := m.Player.SetVolume(ctx, cast.ToInt(v)); err != nil {
			return err
		}
	}
	if v, ok := req["muted"]; ok {
		if err := m.Player.SetMuted(ctx, cast.ToBool(v)); err != nil {
			return err
		}
	}
	if v, ok := req["source"]; ok {
		if err := m.Player.SelectSource(ctx, cast.ToString(v)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) lookupSpeaker(request mcp.CallToolRequest) (*conn.Manager, *mcp.CallToolResult) {
	id, err := requiredString(request, "id")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	m, ok := s.fleet.Lookup(id)
	if !ok {
		return nil, mcp.NewToolResultError(fmt.Sprintf("speaker %q not found", id))
	}
	return m, nil
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
