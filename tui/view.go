// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/pplay-cli/pplay/color"
	"github.com/pplay-cli/pplay/icon"
	"github.com/pplay-cli/pplay/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	if b.lastError != nil && b.stopped {
		return b.viewError()
	}

	var output string
	if b.filer.IsVisible() {
		output = b.viewBrowser()
	} else {
		output = b.viewPlayer()
	}

	if m := b.visibleMenu(); m != nil {
		output = b.place(output, renderMenu(m))
	}

	if b.status.IsVisible() {
		output = b.place(output, b.viewStatus())
	}

	return output
}

// viewBrowser draws the file list with the playback preview to its right and the status bar below.
func (b *statefulBubble) viewBrowser() string {
	list := b.browserC.View()

	if b.session.State().Active() {
		w, _, _ := b.surface.Bounds(b.width, b.height)
		preview := b.surface.View(b.session.File(), b.width, b.height)
		list = lipgloss.JoinHorizontal(
			lipgloss.Top,
			lipgloss.NewStyle().MaxWidth(b.width-w).Render(list),
			preview,
		)
	}

	lines := []string{listExtraPaddingStyle.Render(list)}
	if b.statusBar.IsVisible() {
		lines = append(lines, paddingStyle.Copy().PaddingTop(0).PaddingBottom(0).Render(b.statusBar.View(b.width, b.statusLine())))
	}
	lines = append(lines, paddingStyle.Copy().PaddingTop(0).PaddingBottom(0).Render(b.helpC.View(b.keymap)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// viewPlayer draws the surface at its tweened bounds with the OSD under it.
func (b *statefulBubble) viewPlayer() string {
	height := b.height - 1
	var osdView string
	if b.osd.IsVisible() {
		osdView = b.osd.View(b.session.Title(), b.width)
		height -= lipgloss.Height(osdView)
	}

	_, _, x := b.surface.Bounds(b.width, height)
	lines := []string{
		lipgloss.NewStyle().MarginLeft(x).Render(b.surface.View(b.session.File(), b.width, height)),
	}
	if osdView != "" {
		lines = append(lines, osdView)
	}
	lines = append(lines, b.helpC.View(b.keymap))

	return paddingStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (b *statefulBubble) viewStatus() string {
	width := b.width / 2
	if width < 30 {
		width = b.width
	}

	notice := b.status.View(width)
	if b.status.IsTransient() {
		notice = b.spinnerC.View() + " " + notice
	}
	return notice
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	return paddingStyle.Render(strings.Join([]string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " An error occurred:",
		"",
		wrap.String(errorBody, b.width),
	}, "\n"))
}

// statusLine describes the current directory and what plays.
func (b *statefulBubble) statusLine() string {
	line := icon.Get(icon.Folder) + " " + style.Fg(color.Folder)(filepath.Base(b.dir))

	if b.session.State().Active() {
		state := icon.Get(icon.Play)
		if b.engine.Paused() {
			state = icon.Get(icon.Pause)
		}
		line += "  " + state + " " + style.Fg(color.Media)(b.session.Title())
	}

	return style.Truncate(b.width - 8)(line)
}

// place draws box centered over content. Content to the right of the box is cut since lines carry styling.
func (b *statefulBubble) place(content string, box string) string {
	x, y := paddingStyle.GetFrameSize()
	width, height := b.width+x, b.height+y

	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}

	boxLines := strings.Split(box, "\n")
	left := (width - lipgloss.Width(box)) / 2
	if left < 0 {
		left = 0
	}
	top := (height - len(boxLines)) / 2
	if top < 0 {
		top = 0
	}

	for i, boxLine := range boxLines {
		row := top + i
		if row >= len(lines) {
			lines = append(lines, "")
		}

		base := truncate.String(lines[row], uint(left))
		if gap := left - lipgloss.Width(base); gap > 0 {
			base += strings.Repeat(" ", gap)
		}
		lines[row] = base + boxLine
	}

	return strings.Join(lines, "\n")
}
