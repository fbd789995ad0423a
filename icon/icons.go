package icon

// Icon identifies a symbol of the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Search
	Folder
	File
	Play
	Pause
	Stop
	Speed
	Video
	Audio
	Subtitle
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "Success",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "Fail",
		kaomoji: "(╯°□°）╯︵ ┻━┻",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "Progress",
		kaomoji: "(・_・)…",
		squares: "🟦",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "⌐■-■",
		squares: "🔳",
	},
	Folder: {
		emoji:   "📁",
		nerd:    "",
		plain:   "/",
		kaomoji: "[ ]",
		squares: "🟨",
	},
	File: {
		emoji:   "🎞️",
		nerd:    "",
		plain:   "-",
		kaomoji: "(▭)",
		squares: "⬜",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "ᕕ( ᐛ )ᕗ",
		squares: "🟢",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－_－) zzZ",
		squares: "🟡",
	},
	Stop: {
		emoji:   "⏹️",
		nerd:    "",
		plain:   "[]",
		kaomoji: "(・・)",
		squares: "🔴",
	},
	Speed: {
		emoji:   "⏩",
		nerd:    "",
		plain:   ">>",
		kaomoji: "ε=ε=┌( >_<)┘",
		squares: "🟧",
	},
	Video: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "V",
		kaomoji: "[▶]",
		squares: "🟪",
	},
	Audio: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "A",
		kaomoji: "♪~",
		squares: "🟫",
	},
	Subtitle: {
		emoji:   "💬",
		nerd:    "",
		plain:   "S",
		kaomoji: "(ーー゛)",
		squares: "⬛",
	},
}
