package media

import (
	"strconv"

	"github.com/pplay-cli/pplay/constant"
)

// Track is a selectable entry of a track-selection menu.
type Track struct {
	ID    int
	Label string
}

// Label renders the two-line menu label of a video stream.
func (v VideoStream) Label() string {
	return v.Title + "\n" + v.Language + " " + v.Codec + " " +
		strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
}

// Label renders the two-line menu label of an audio stream.
func (a AudioStream) Label() string {
	return a.Title + "\n" + a.Language + " " + a.Codec + " " +
		strconv.Itoa(a.Channels) + "ch " + strconv.Itoa(a.SampleRate/1000) + " Khz"
}

// Label renders the two-line menu label of a subtitle stream.
func (s SubtitleStream) Label() string {
	return s.Title + "\nLang: " + s.Language
}

// Tracks projects the streams of the given kind into menu entries, keeping engine order.
// Subtitles are preceded by a synthetic "None" entry whenever at least one subtitle exists.
func (i Info) Tracks(kind StreamKind) []Track {
	switch kind {
	case KindVideo:
		tracks := make([]Track, 0, len(i.Videos))
		for _, s := range i.Videos {
			tracks = append(tracks, Track{ID: s.ID, Label: s.Label()})
		}
		return tracks
	case KindAudio:
		tracks := make([]Track, 0, len(i.Audios))
		for _, s := range i.Audios {
			tracks = append(tracks, Track{ID: s.ID, Label: s.Label()})
		}
		return tracks
	case KindSubtitle:
		if len(i.Subtitles) == 0 {
			return []Track{}
		}
		tracks := make([]Track, 0, len(i.Subtitles)+1)
		tracks = append(tracks, Track{ID: constant.SubtitleNone, Label: "None"})
		for _, s := range i.Subtitles {
			tracks = append(tracks, Track{ID: s.ID, Label: s.Label()})
		}
		return tracks
	default:
		return nil
	}
}
