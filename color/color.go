// Package color names the terminal colors pplay prints with.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a color spec, either an ANSI index or a hex triplet.
func New(spec string) lipgloss.Color {
	return lipgloss.Color(spec)
}

// ANSI indexes follow the user's terminal theme.
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	Cyan     = New("6")
	HiRed    = New("9")
	HiPurple = New("13")
)

// Orange is fixed so key hints stay readable on any theme.
var Orange = New("#ffb703")

// What the colors mean in pplay output.
var (
	Folder = Blue
	Media  = Purple
	Value  = Yellow
	Ok     = Green
	Bad    = Red
)
