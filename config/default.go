// Package config registers pplay's settings and loads them through viper
// from the TOML file, PPLAY_ environment variables and flags.
package config

import (
	"sort"

	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/key"
	"github.com/samber/lo"
)

// Default maps every known key to its field.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables, in registration order.
var EnvExposed []string

func register(k string, v any, description string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: description}
	EnvExposed = append(EnvExposed, k)
}

// Fields returns every field sorted by key, so sections stay together.
func Fields() []Field {
	fields := lo.Values(Default)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}

func init() {
	register(key.BrowserRoot, "", "Directory opened by the file browser on startup.\nEmpty means the current working directory")
	register(key.BrowserExtensions, []string{"mkv", "mp4", "avi", "webm", "mov", "m4v", "ts", "mp3", "flac", "ogg", "opus", "wav", "m4a"}, "File extensions shown by the file browser")
	register(key.BrowserShowHidden, false, "Show hidden files and directories in the file browser")
	register(key.BrowserShowSize, true, "Show file sizes under file browser entries")
	register(key.PlayerExecutable, constant.MPV, "Path or name of the mpv executable")
	register(key.PlayerSeekStep, 5, "Seconds to seek with the seek keys")
	register(key.PlayerSlang, "", "Preferred subtitle languages passed to the engine (comma separated).\nSubtitles are disabled by default when empty")
	register(key.PlayerConfigDir, "", "Directory with mpv.conf used by the engine.\nEmpty means pplay's own mpv directory")
	register(key.PlayerTickRate, 30, "UI ticks per second used to poll the playback engine")
	register(key.OSDTimeout, 4, "Seconds before the on-screen display hides itself")
	register(key.MetadataSave, true, "Persist probed media information for browsed files")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUIAltScreen, true, "Run the TUI in the terminal alternate screen")
	register(key.TUIAnimate, true, "Animate the playback surface when entering and leaving fullscreen")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}
