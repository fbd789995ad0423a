// Package style holds the lipgloss styles shared by the interface and the command line.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// New returns a blank style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg colors the foreground.
func Fg(c lipgloss.Color) func(string) string {
	return render(New().Foreground(c))
}

// Truncate cuts text to max cells, ending in an ellipsis when something was cut.
// Styled text is measured by its printable width.
func Truncate(max int) func(string) string {
	return func(text string) string {
		if max <= 0 {
			return ""
		}
		return truncate.StringWithTail(text, uint(max), "…")
	}
}

func render(s lipgloss.Style) func(string) string {
	return func(text string) string { return s.Render(text) }
}

var (
	Faint = render(New().Faint(true))
	Bold  = render(New().Bold(true))
)

func banner(bg lipgloss.Color) func(string) string {
	return render(New().Foreground(lipgloss.Color("230")).Background(bg).Padding(0, 1))
}

// Title renders a header badge.
var Title = banner(lipgloss.Color("62"))

// ErrorTitle is Title for failures.
var ErrorTitle = banner(ErrorColor)
