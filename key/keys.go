// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Browser - these keys configure the file browser overlay.
const (
	BrowserRoot       = "browser.root"
	BrowserExtensions = "browser.extensions"
	BrowserShowHidden = "browser.show_hidden"
	BrowserShowSize   = "browser.show_size"
)

// Media Playback - these keys configure the playback engine and session behavior.
const (
	PlayerExecutable = "player.executable"
	PlayerSeekStep   = "player.seek_step"
	PlayerSlang      = "player.slang"
	PlayerConfigDir  = "player.config_dir"
	PlayerTickRate   = "player.tick_rate"
)

// On-Screen Display - these keys configure the playback overlay.
const (
	OSDTimeout = "osd.timeout"
)

// Metadata - these keys govern persistence of probed media information.
const (
	MetadataSave = "metadata.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling and logic.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIAltScreen   = "tui.alt_screen"
	TUIAnimate     = "tui.animate"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
