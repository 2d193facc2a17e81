package entity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/coordinator"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity/parse"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// Player states exposed in snapshots.
const (
	StateOff       = "off"
	StateIdle      = "idle"
	StatePlaying   = "playing"
	StatePaused    = "paused"
	StateBuffering = "buffering"
	StateOn        = "on"
)

// sourceRef is the source/sourceAccount pair needed to select a
// physical input.
type sourceRef struct {
	Source        string
	SourceAccount string
}

// productSources are the physical inputs every soundbar-class device
// exposes; availability is narrowed by the device's capability set.
var productSources = map[string]sourceRef{
	"Optical": {Source: "PRODUCT", SourceAccount: "AUX_DIGITAL"},
	"Cinch":   {Source: "PRODUCT", SourceAccount: "AUX_ANALOG"},
	"TV":      {Source: "PRODUCT", SourceAccount: "TV"},
}

const bluetoothSourcePrefix = "Bluetooth: "

// MediaPlayer is the playback-facing entity of one speaker: power,
// volume, source selection, now-playing metadata, multiroom grouping,
// and Bluetooth device bookkeeping.
type MediaPlayer struct {
	base

	client   ClientSource
	coord    *coordinator.Coordinator
	registry *Registry

	volumeParser parse.VolumeParser
	npParser     parse.NowPlayingParser
	btParser     parse.BluetoothParser
	groupParser  parse.GroupParser

	// Guarded by base.mu. Mutations happen on the connection's dispatch
	// goroutine; reads take snapshots.
	powerOn       bool
	state         string
	volume        int
	muted         bool
	source        string
	title         string
	artist        string
	album         string
	duration      int
	position      int
	artURL        string
	groupID       string
	groupMembers  []string
	bluetooth     map[string]parse.BluetoothDevice
	sourceRenames map[string]string
}

// NewMediaPlayer creates the media player entity for one speaker and
// registers its push handlers with the dispatcher.
func NewMediaPlayer(client ClientSource, coord *coordinator.Coordinator, dispatcher *coordinator.Dispatcher, registry *Registry, name string) *MediaPlayer {
	p := &MediaPlayer{
		base:          base{deviceID: coord.DeviceID(), name: name},
		client:        client,
		coord:         coord,
		registry:      registry,
		state:         StateOff,
		bluetooth:     make(map[string]parse.BluetoothDevice),
		sourceRenames: make(map[string]string),
	}

	dispatcher.Handle(speaker.ResourceAudioVolume, p.handleVolume)
	dispatcher.Handle(speaker.ResourcePowerControl, p.handlePower)
	dispatcher.Handle(speaker.ResourceNowPlaying, p.handleNowPlaying)
	dispatcher.Handle(speaker.ResourceActiveGroups, p.handleGrouping)
	dispatcher.Handle(speaker.ResourceBluetoothSinkList, p.handleBluetoothSinkList)
	dispatcher.Handle(speaker.ResourceBluetoothSinkStatus, p.handleBluetoothSinkStatus)
	dispatcher.Handle(speaker.ResourceBluetoothSourceStatus, p.handleBluetoothSourceStatus)

	return p
}

// SetSourceRenames installs user-configured display names for sources.
func (p *MediaPlayer) SetSourceRenames(renames map[string]string) {
	p.mu.Lock()
	p.sourceRenames = renames
	p.mu.Unlock()
}

// --- push handlers ---

func (p *MediaPlayer) handleVolume(body map[string]any) {
	v := p.volumeParser.Parse(body)

	p.mu.Lock()
	p.volume = v.Percent
	p.muted = v.Muted
	p.mu.Unlock()
}

func (p *MediaPlayer) handlePower(body map[string]any) {
	on := parse.NestedString(body, "power") == speaker.PowerOn

	p.mu.Lock()
	p.powerOn = on
	if !on {
		p.state = StateOff
	}
	p.mu.Unlock()
}

func (p *MediaPlayer) handleNowPlaying(body map[string]any) {
	np := p.npParser.Parse(body)

	p.mu.Lock()
	defer p.mu.Unlock()

	switch np.Status {
	case speaker.PlayStatusPlay:
		p.state = StatePlaying
	case speaker.PlayStatusPaused:
		p.state = StatePaused
	case speaker.PlayStatusBuffering:
		p.state = StateBuffering
	case speaker.PlayStatusStopped, "":
		if p.powerOn {
			p.state = StateIdle
		} else {
			p.state = StateOff
		}
	default:
		log.Warn().Str("status", np.Status).Msg("Unhandled playback status")
		p.state = StateOn
	}

	p.source = p.resolveSource(np)

	p.title = np.Title
	p.artist = np.Artist
	p.album = np.Album
	p.duration = np.Duration
	p.position = np.Position
	p.artURL = np.ArtURL

	// The TV input carries no usable metadata.
	if p.source == "TV" {
		p.title = "TV"
		p.artist = ""
		p.album = ""
		p.duration = 0
		p.position = 0
		p.artURL = ""
	}
}

// resolveSource maps now-playing source fields to a display name.
// Callers must hold p.mu.
func (p *MediaPlayer) resolveSource(np parse.NowPlaying) string {
	if np.SourceID == "BLUETOOTH" {
		for _, d := range p.bluetooth {
			if d.Active {
				return bluetoothSourcePrefix + d.Name
			}
		}
		return np.SourceName
	}

	for name, ref := range productSources {
		if np.ContentSource == ref.Source && np.ContentAcct == ref.SourceAccount {
			return p.displayName(name)
		}
	}

	return np.SourceName
}

// displayName applies a configured rename. Callers must hold p.mu.
func (p *MediaPlayer) displayName(source string) string {
	if renamed, ok := p.sourceRenames[source]; ok {
		return renamed
	}
	return source
}

func (p *MediaPlayer) handleGrouping(body map[string]any) {
	groups := parse.MapSlice(body["activeGroups"])
	group, ok := p.groupParser.First(groups)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !ok {
		p.groupID = ""
		p.groupMembers = nil
		return
	}

	// Resolve member GUIDs to sibling entity names through the registry;
	// unknown members keep their GUID.
	members := make([]string, 0, len(group.Members))
	for _, guid := range group.Members {
		if sibling, ok := p.registry.Lookup(guid); ok {
			members = append(members, sibling.Name())
		} else {
			members = append(members, guid)
		}
	}

	p.groupID = group.ID
	p.groupMembers = members
}

func (p *MediaPlayer) handleBluetoothSinkList(body map[string]any) {
	p.recordBluetoothDevices(p.btParser.Devices(body, parse.BluetoothSink))
}

func (p *MediaPlayer) handleBluetoothSinkStatus(body map[string]any) {
	devices := p.btParser.Devices(body, parse.BluetoothSink)
	p.recordBluetoothDevices(devices)

	active := p.btParser.ActiveDevice(body)

	p.mu.Lock()
	if d, ok := p.bluetooth[active]; ok {
		p.source = bluetoothSourcePrefix + d.Name
	}
	p.mu.Unlock()
}

func (p *MediaPlayer) handleBluetoothSourceStatus(body map[string]any) {
	p.recordBluetoothDevices(p.btParser.Devices(body, parse.BluetoothSource))
}

func (p *MediaPlayer) recordBluetoothDevices(devices []parse.BluetoothDevice) {
	p.mu.Lock()
	for _, d := range devices {
		p.bluetooth[d.MAC] = d
	}
	p.mu.Unlock()
}

// --- reads ---

// Refresh hydrates playback and Bluetooth state through the coordinator.
// Cache hits cost nothing; misses fetch from the device.
func (p *MediaPlayer) Refresh(ctx context.Context) error {
	np, err := p.coord.GetNowPlaying(ctx)
	if err != nil {
		return fmt.Errorf("now playing: %w", err)
	}
	p.handleNowPlaying(np)

	vol, err := p.coord.GetAudioVolume(ctx)
	if err != nil {
		return fmt.Errorf("audio volume: %w", err)
	}
	p.handleVolume(vol)

	if p.client.Client().HasCapability(speaker.ResourceBluetoothSinkList) {
		if list, err := p.coord.GetBluetoothSinkList(ctx); err == nil {
			p.handleBluetoothSinkList(list)
		}
		if status, err := p.coord.GetBluetoothSinkStatus(ctx); err == nil {
			p.handleBluetoothSinkStatus(status)
		}
	}

	return nil
}

// State returns the current playback state name.
func (p *MediaPlayer) State() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// GroupMembers returns the entity names of the active group, master
// first, or nil when ungrouped.
func (p *MediaPlayer) GroupMembers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.groupMembers...)
}

// SourceList returns the selectable sources: physical inputs the device
// has capabilities for, plus every known Bluetooth device.
func (p *MediaPlayer) SourceList() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var sources []string
	for name := range productSources {
		sources = append(sources, p.displayName(name))
	}
	sort.Strings(sources)

	var bt []string
	for _, d := range p.bluetooth {
		bt = append(bt, bluetoothSourcePrefix+d.Name)
	}
	sort.Strings(bt)

	return append(sources, bt...)
}

// BluetoothDevices returns the known Bluetooth devices.
func (p *MediaPlayer) BluetoothDevices() []parse.BluetoothDevice {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]parse.BluetoothDevice, 0, len(p.bluetooth))
	for _, d := range p.bluetooth {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MAC < out[j].MAC })
	return out
}

// Snapshot returns the normalized playback state.
func (p *MediaPlayer) Snapshot() speaker.State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := speaker.State{
		"state":  p.state,
		"power":  p.powerOn,
		"volume": p.volume,
		"muted":  p.muted,
	}
	if p.source != "" {
		state["source"] = p.source
	}
	if p.title != "" {
		state["media_title"] = p.title
	}
	if p.artist != "" {
		state["media_artist"] = p.artist
	}
	if p.album != "" {
		state["media_album"] = p.album
	}
	if p.duration > 0 {
		state["media_duration"] = p.duration
		state["media_position"] = p.position
	}
	if p.artURL != "" {
		state["media_image_url"] = p.artURL
	}
	if p.groupID != "" {
		state["group_id"] = p.groupID
		state["group_members"] = append([]string(nil), p.groupMembers...)
	}
	return state
}

// --- commands ---

// TurnOn powers the speaker on.
func (p *MediaPlayer) TurnOn(ctx context.Context) error {
	return p.client.Client().SetPower(ctx, true)
}

// TurnOff powers the speaker off.
func (p *MediaPlayer) TurnOff(ctx context.Context) error {
	return p.client.Client().SetPower(ctx, false)
}

// SetVolume sets the volume in percent.
func (p *MediaPlayer) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume %d out of range", speaker.ErrValidation, percent)
	}
	return p.client.Client().SetVolume(ctx, percent)
}

// SetMuted mutes or unmutes the speaker.
func (p *MediaPlayer) SetMuted(ctx context.Context, muted bool) error {
	return p.client.Client().SetMuted(ctx, muted)
}

// Play resumes playback.
func (p *MediaPlayer) Play(ctx context.Context) error {
	return p.client.Client().Play(ctx)
}

// Pause pauses playback.
func (p *MediaPlayer) Pause(ctx context.Context) error {
	return p.client.Client().Pause(ctx)
}

// Stop stops playback.
func (p *MediaPlayer) Stop(ctx context.Context) error {
	return p.client.Client().Stop(ctx)
}

// Next skips to the next track.
func (p *MediaPlayer) Next(ctx context.Context) error {
	return p.client.Client().SkipNext(ctx)
}

// Previous skips to the previous track.
func (p *MediaPlayer) Previous(ctx context.Context) error {
	return p.client.Client().SkipPrevious(ctx)
}

// Seek jumps to a position (seconds) within the current track.
func (p *MediaPlayer) Seek(ctx context.Context, position float64) error {
	return p.client.Client().Seek(ctx, position)
}

// SelectSource switches the speaker to the named source. Bluetooth
// sources use the "Bluetooth: <name>" form produced by SourceList.
func (p *MediaPlayer) SelectSource(ctx context.Context, source string) error {
	if strings.HasPrefix(source, bluetoothSourcePrefix) {
		name := strings.TrimPrefix(source, bluetoothSourcePrefix)

		p.mu.RLock()
		var mac string
		for _, d := range p.bluetooth {
			if d.Name == name {
				mac = d.MAC
				break
			}
		}
		p.mu.RUnlock()

		if mac == "" {
			return fmt.Errorf("%w: unknown bluetooth device %q", speaker.ErrNotFound, name)
		}
		return p.client.Client().SelectSource(ctx, "BLUETOOTH", mac)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	for name, ref := range productSources {
		if source == name || source == p.displayName(name) {
			return p.client.Client().SelectSource(ctx, ref.Source, ref.SourceAccount)
		}
	}

	return fmt.Errorf("%w: unknown source %q", speaker.ErrNotFound, source)
}

// Join forms a multiroom group with this speaker as master and the
// given GUIDs as members. Members must be registered speakers.
func (p *MediaPlayer) Join(ctx context.Context, memberGUIDs []string) error {
	for _, guid := range memberGUIDs {
		if _, ok := p.registry.Lookup(guid); !ok {
			return fmt.Errorf("%w: group member %s", speaker.ErrNotFound, guid)
		}
	}

	p.mu.RLock()
	grouped := p.groupID != ""
	p.mu.RUnlock()

	if grouped {
		return p.client.Client().AddToGroup(ctx, memberGUIDs)
	}
	return p.client.Client().CreateGroup(ctx, memberGUIDs)
}

// Unjoin removes this speaker from its active group.
func (p *MediaPlayer) Unjoin(ctx context.Context) error {
	return p.client.Client().LeaveGroup(ctx)
}
