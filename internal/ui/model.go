// Package ui provides the status dialog used to surface notices and errors on top of the terminal views.
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/pplay-cli/pplay/style"
)

// Lifetime is how long a non transient notice stays on screen.
const Lifetime = 3 * time.Second

// Model is a titled notice. Transient notices stay until hidden, others expire after Lifetime.
type Model struct {
	title     string
	message   string
	transient bool
	visible   bool
	shownAt   time.Time

	now func() time.Time
}

// New creates a hidden status dialog.
func New() *Model {
	return &Model{now: time.Now}
}

// Show replaces the current notice.
func (m *Model) Show(title, message string, transient bool) {
	m.title = title
	m.message = message
	m.transient = transient
	m.visible = true
	m.shownAt = m.now()
}

// Hide removes the current notice.
func (m *Model) Hide() {
	m.visible = false
}

func (m *Model) IsVisible() bool {
	return m.visible
}

func (m *Model) IsTransient() bool {
	return m.transient
}

func (m *Model) Title() string {
	return m.title
}

func (m *Model) Message() string {
	return m.message
}

// Expire hides a non transient notice older than Lifetime. It reports whether the notice was hidden.
func (m *Model) Expire() bool {
	if !m.visible || m.transient {
		return false
	}
	if m.now().Sub(m.shownAt) < Lifetime {
		return false
	}
	m.visible = false
	return true
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.AccentColor).
			Padding(0, 2)
	errorBoxStyle = boxStyle.BorderForeground(style.ErrorColor)
)

// View renders the notice as a box no wider than width.
func (m *Model) View(width int) string {
	if !m.visible {
		return ""
	}

	frame, _ := boxStyle.GetFrameSize()
	inner := width - frame
	if inner < 10 {
		inner = 10
	}

	box := boxStyle
	title := style.Title(m.title)
	if strings.HasPrefix(m.title, "Error") {
		box = errorBoxStyle
		title = style.ErrorTitle(m.title)
	}

	return box.Render(title + "\n\n" + wrap.String(m.message, inner))
}

// Overlay appends the rendered notice below mainContent.
func (m *Model) Overlay(mainContent string, width int) string {
	if !m.visible {
		return mainContent
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, m.View(width))
}
