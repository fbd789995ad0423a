// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/pplay-cli/pplay/icon"
	"github.com/pplay-cli/pplay/input"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/media"
	"github.com/pplay-cli/pplay/player"
	"github.com/pplay-cli/pplay/style"
	"github.com/pplay-cli/pplay/tween"
)

// overlay is the visibility state shared by every widget the session toggles.
type overlay struct {
	visible bool
}

func (o *overlay) IsVisible() bool {
	return o.visible
}

// SetVisible shows or hides the widget. Only the surface animates.
func (o *overlay) SetVisible(visible, _ bool) {
	o.visible = visible
}

// statusBar is the one line summary shown under the file browser.
type statusBar struct {
	overlay
	now func() time.Time
}

func newStatusBar() *statusBar {
	return &statusBar{
		overlay: overlay{visible: true},
		now:     time.Now,
	}
}

func (s *statusBar) View(width int, left string) string {
	right := style.Faint(s.now().Format("15:04"))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// osd shows the playback position and state over the surface, hiding itself after a timeout.
type osd struct {
	overlay
	engine   player.Engine
	progress progress.Model
	timeout  time.Duration
	seekStep float64
	shownAt  time.Time
	now      func() time.Time
}

func newOSD(engine player.Engine, timeout time.Duration, seekStep float64) *osd {
	return &osd{
		engine:   engine,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		timeout:  timeout,
		seekStep: seekStep,
		now:      time.Now,
	}
}

func (o *osd) SetVisible(visible, animate bool) {
	o.overlay.SetVisible(visible, animate)
	if visible {
		o.shownAt = o.now()
	}
}

// Reset hides the OSD.
func (o *osd) Reset() {
	o.overlay.SetVisible(false, false)
}

// expire hides the OSD once it has been idle longer than the timeout.
func (o *osd) expire() {
	if o.visible && o.timeout > 0 && o.now().Sub(o.shownAt) >= o.timeout {
		o.overlay.SetVisible(false, true)
	}
}

func (o *osd) seek(offset float64) {
	if err := o.engine.Seek(offset); err != nil {
		log.Warnf("osd seek %+.0fs: %v", offset, err)
	}
}

// OnInput handles the keys of a visible OSD. Any handled key keeps it on screen.
func (o *osd) OnInput(keys input.Keys, togglePause func()) bool {
	if !o.visible {
		return false
	}

	switch {
	case keys.Has(input.Left):
		o.seek(-o.seekStep)
	case keys.Has(input.Right):
		o.seek(o.seekStep)
	case keys.Has(input.Fire1):
		togglePause()
	case keys.Has(input.Fire2 | input.Down):
		o.overlay.SetVisible(false, true)
		return true
	case keys.Has(input.Up):
	default:
		return false
	}

	o.shownAt = o.now()
	return true
}

func (o *osd) View(title string, width int) string {
	state := icon.Get(icon.Play)
	if o.engine.Paused() {
		state = icon.Get(icon.Pause)
	}

	position, duration := o.engine.TimePos(), o.engine.Duration()
	percent := 0.0
	if duration > 0 {
		percent = position / duration
	}

	o.progress.Width = width
	header := fmt.Sprintf("%s %s  %s %.2fx", state, style.Bold(title), icon.Get(icon.Speed), o.engine.Speed())
	timing := style.Faint(media.FormatSeconds(position) + " / " + media.FormatSeconds(duration))

	return lipgloss.JoinVertical(lipgloss.Left, header, o.progress.ViewAs(percent), timing)
}

// surface is the playback area. It scales down to a corner preview when fullscreen is left.
type surface struct {
	overlay
	scale    *tween.Tween
	position *tween.Tween
	animate  bool
}

func newSurface(fps int, animate bool) *surface {
	return &surface{
		scale:    tween.New(0.25, 1.0, 500*time.Millisecond, fps),
		position: tween.New(1.0, 0.0, 500*time.Millisecond, fps),
		animate:  animate,
	}
}

// Play animates the surface toward fullscreen (Forward) or the corner preview (Backward).
func (s *surface) Play(direction tween.Direction) {
	s.scale.Play(direction)
	s.position.Play(direction)
	if !s.animate {
		s.scale.Finish()
		s.position.Finish()
	}
}

// Update advances the animations by one frame.
func (s *surface) Update() bool {
	scaling := s.scale.Update()
	moving := s.position.Update()
	return scaling || moving
}

// Bounds returns the width, height and horizontal offset of the surface within a width x height screen.
func (s *surface) Bounds(width, height int) (w, h, x int) {
	w = int(float64(width) * s.scale.Value())
	h = int(float64(height) * s.scale.Value())
	x = int(float64(width-w) * s.position.Value())
	return
}

var surfaceStyle = lipgloss.NewStyle().
	Border(lipgloss.ThickBorder()).
	BorderForeground(style.AccentColor)

// View renders the surface box at its current size. Placing it at the tweened offset is up to the caller.
func (s *surface) View(file *media.File, width, height int) string {
	w, h, _ := s.Bounds(width, height)
	frameX, frameY := surfaceStyle.GetFrameSize()
	if w <= frameX || h <= frameY {
		return ""
	}

	var lines []string
	if file != nil {
		lines = append(lines, style.Title(file.Name))
		if w > width/2 {
			lines = append(append(lines, ""), describe(file.Info)...)
		}
	}

	return surfaceStyle.
		Width(w-frameX).
		Height(h-frameY).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// describe lists the streams of info in a compact human form.
func describe(info media.Info) []string {
	var lines []string
	for _, v := range info.Videos {
		lines = append(lines, fmt.Sprintf("%s %s %dx%d", icon.Get(icon.Video), v.Codec, v.Width, v.Height))
	}
	for _, a := range info.Audios {
		lines = append(lines, fmt.Sprintf("%s %s %s %dch", icon.Get(icon.Audio), a.Language, a.Codec, a.Channels))
	}
	for _, s := range info.Subtitles {
		lines = append(lines, fmt.Sprintf("%s %s %s", icon.Get(icon.Subtitle), s.Language, s.Codec))
	}
	return lines
}
