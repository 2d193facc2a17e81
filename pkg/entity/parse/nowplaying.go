package parse

import "github.com/spf13/cast"

// NowPlaying is the normalized /content/nowPlaying payload.
type NowPlaying struct {
	Status        string
	SourceID      string
	SourceName    string
	ContentSource string
	ContentAcct   string
	Title         string
	Artist        string
	Album         string
	Duration      int
	Position      int
	ArtURL        string
}

// NowPlayingParser parses /content/nowPlaying payloads.
type NowPlayingParser struct{}

func (NowPlayingParser) Parse(body map[string]any) NowPlaying {
	contentItem := NestedMap(body, "container", "contentItem")

	return NowPlaying{
		Status:        NestedString(body, "state", "status"),
		SourceID:      NestedString(body, "source", "sourceID"),
		SourceName:    NestedString(body, "source", "sourceDisplayName"),
		ContentSource: cast.ToString(contentItem["source"]),
		ContentAcct:   cast.ToString(contentItem["sourceAccount"]),
		Title:         NestedString(body, "metadata", "trackName"),
		Artist:        NestedString(body, "metadata", "artist"),
		Album:         NestedString(body, "metadata", "album"),
		Duration:      cast.ToInt(Nested(body, "metadata", "duration")),
		Position:      cast.ToInt(Nested(body, "state", "timeIntoTrack")),
		ArtURL:        NestedString(body, "track", "contentItem", "containerArt"),
	}
}
