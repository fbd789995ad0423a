package media

import (
	"fmt"
	"time"
)

// StreamKind identifies one of the three selectable track categories.
type StreamKind int

const (
	KindVideo StreamKind = iota
	KindAudio
	KindSubtitle
)

func (k StreamKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// VideoStream describes a video track.
type VideoStream struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Codec    string `json:"codec"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// AudioStream describes an audio track.
type AudioStream struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Language   string `json:"language"`
	Codec      string `json:"codec"`
	Channels   int    `json:"channels"`
	SampleRate int    `json:"sample_rate"`
}

// SubtitleStream describes a subtitle track.
type SubtitleStream struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Codec    string `json:"codec"`
}

// Info holds the structured metadata of a loaded media file.
type Info struct {
	Duration  float64          `json:"duration" jsonschema:"description=Duration in seconds"`
	Videos    []VideoStream    `json:"videos"`
	Audios    []AudioStream    `json:"audios"`
	Subtitles []SubtitleStream `json:"subtitles"`
}

// IsEmpty reports whether nothing was probed.
func (i Info) IsEmpty() bool {
	return i.Duration == 0 && len(i.Videos) == 0 && len(i.Audios) == 0 && len(i.Subtitles) == 0
}

// Count returns the number of streams of the given kind.
func (i Info) Count(kind StreamKind) int {
	switch kind {
	case KindVideo:
		return len(i.Videos)
	case KindAudio:
		return len(i.Audios)
	case KindSubtitle:
		return len(i.Subtitles)
	default:
		return 0
	}
}

// DurationString formats the duration as h:mm:ss, or m:ss for short media.
func (i Info) DurationString() string {
	return FormatSeconds(i.Duration)
}

// FormatSeconds formats a position in seconds as h:mm:ss, or m:ss under an hour.
func FormatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
