package constant

// Engine identifiers.
const (
	MPV = "mpv"
)

// SubtitleNone is the synthetic track id that disables subtitles.
const SubtitleNone = -1

// Speed bounds accepted by the playback engine.
const (
	SpeedDefault = 1.0
	SpeedMax     = 100.0
	SpeedMin     = 0.01
)

// MPVMinVersion is the oldest mpv whose loadfile command takes the playlist index argument.
const MPVMinVersion = "0.38.0"
