package style

import "github.com/charmbracelet/lipgloss"

// Screen colors of the player, dark by default.
var (
	Base   = lipgloss.Color("#191724")
	Text   = lipgloss.Color("#e0def4")
	Foam   = lipgloss.Color("#9ccfd8")
	Rose   = lipgloss.Color("#eb6f92")
	Violet = lipgloss.Color("#c4a7e7")
)

var (
	AccentColor  = Violet
	PlayingColor = Foam
	ErrorColor   = Rose
)
