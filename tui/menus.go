// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pplay-cli/pplay/config"
	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/icon"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/media"
	"github.com/pplay-cli/pplay/menu"
	"github.com/pplay-cli/pplay/style"
	"github.com/spf13/viper"
)

// Video menu entries.
const (
	videoEntryVideo = iota
	videoEntryAudio
	videoEntrySubtitles
	videoEntrySpeed
)

// Main menu entries.
const (
	mainEntryBrowse = iota
	mainEntryOptions
	mainEntryExit
)

var speeds = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 2, 4}

func (b *statefulBubble) newVideoMenu() *menu.Menu {
	m := menu.New("VIDEO MENU", []menu.Item{
		{Name: icon.Get(icon.Video) + " Video", ID: videoEntryVideo},
		{Name: icon.Get(icon.Audio) + " Audio", ID: videoEntryAudio},
		{Name: icon.Get(icon.Subtitle) + " Subtitles", ID: videoEntrySubtitles},
		{Name: icon.Get(icon.Speed) + " Speed", ID: videoEntrySpeed},
	})
	m.OnSelect = func(item menu.Item) {
		b.openVideoSubmenu(item.ID)
	}
	return m
}

func (b *statefulBubble) newSpeedMenu() *menu.Menu {
	items := make([]menu.Item, len(speeds))
	for i, speed := range speeds {
		items[i] = menu.Item{Name: fmt.Sprintf("%gx", speed), ID: i}
	}

	m := menu.New("SPEED", items)
	m.OnSelect = func(item menu.Item) {
		b.session.SetSpeed(speeds[item.ID])
		m.SetVisible(false, true)
	}
	m.OnBack = func() {
		b.videoMenu.SetVisible(true, true)
	}
	return m
}

// openVideoSubmenu replaces the video menu with the submenu of the selected entry, cursor on the active track.
func (b *statefulBubble) openVideoSubmenu(entry int) {
	var (
		sub     *menu.Menu
		current int
	)

	switch entry {
	case videoEntryVideo:
		sub, current = b.session.Submenu(media.KindVideo), b.session.VideoStream()
	case videoEntryAudio:
		sub, current = b.session.Submenu(media.KindAudio), b.session.AudioStream()
	case videoEntrySubtitles:
		sub, current = b.session.Submenu(media.KindSubtitle), b.session.SubtitleStream()
	case videoEntrySpeed:
		sub, current = b.speedMenu, closestSpeed(b.engine.Speed())
	}

	if sub == nil {
		return
	}

	b.videoMenu.SetVisible(false, false)
	sub.SelectID(current)
	sub.SetVisible(true, true)
}

func closestSpeed(speed float64) int {
	closest := 0
	for i, s := range speeds {
		if abs(s-speed) < abs(speeds[closest]-speed) {
			closest = i
		}
	}
	return closest
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func (b *statefulBubble) newMainMenu() *menu.Menu {
	m := menu.New(strings.ToUpper(constant.Pplay), []menu.Item{
		{Name: icon.Get(icon.Folder) + " Browse", ID: mainEntryBrowse},
		{Name: icon.Get(icon.Search) + " Options", ID: mainEntryOptions},
		{Name: icon.Get(icon.Stop) + " Exit", ID: mainEntryExit},
	})
	m.OnSelect = func(item menu.Item) {
		switch item.ID {
		case mainEntryBrowse:
			m.SetVisible(false, true)
		case mainEntryOptions:
			m.SetVisible(false, false)
			b.optionsMenu.Select(0)
			b.optionsMenu.SetVisible(true, true)
		case mainEntryExit:
			m.SetVisible(false, false)
			b.exit()
		}
	}
	return m
}

// setting describes an options submenu bound to a configuration key.
type setting struct {
	title  string
	key    string
	values []any
	apply  func()
}

func (b *statefulBubble) newOptionsMenu(parent *menu.Menu) *menu.Options {
	settings := []setting{
		{title: "ICONS", key: key.IconsVariant, values: toAny(icon.AvailableVariants())},
		{title: "SEEK STEP", key: key.PlayerSeekStep, values: []any{5, 10, 30, 60}, apply: func() {
			step := viper.GetFloat64(key.PlayerSeekStep)
			b.session.SetSeekStep(step)
			b.osd.seekStep = step
		}},
		{title: "OSD TIMEOUT", key: key.OSDTimeout, values: []any{2, 4, 8, 15}, apply: func() {
			b.osd.timeout = time.Duration(viper.GetInt(key.OSDTimeout)) * time.Second
		}},
		{title: "ANIMATIONS", key: key.TUIAnimate, values: []any{true, false}, apply: func() {
			b.surface.animate = viper.GetBool(key.TUIAnimate)
		}},
		{title: "HIDDEN FILES", key: key.BrowserShowHidden, values: []any{false, true}, apply: func() {
			b.reload()
		}},
	}

	submenus := make([]*menu.Menu, len(settings))
	for i, s := range settings {
		submenus[i] = newSettingMenu(s)
	}

	return menu.NewOptions("OPTIONS", parent, submenus...)
}

func newSettingMenu(s setting) *menu.Menu {
	items := make([]menu.Item, len(s.values))
	for i, v := range s.values {
		items[i] = menu.Item{Name: fmt.Sprint(v), ID: i}
	}

	m := menu.New(s.title, items)
	for i, v := range s.values {
		if fmt.Sprint(v) == fmt.Sprint(viper.Get(s.key)) {
			m.Select(i)
		}
	}

	m.OnSelect = func(item menu.Item) {
		viper.Set(s.key, s.values[item.ID])
		if err := config.Save(); err != nil {
			log.Warnf("could not save %s: %v", s.key, err)
		}
		if s.apply != nil {
			s.apply()
		}
		m.SetVisible(false, true)
		if m.OnBack != nil {
			m.OnBack()
		}
	}
	return m
}

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

var (
	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.AccentColor).
			Padding(0, 1)
	menuSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(style.AccentColor).
				Foreground(style.AccentColor).
				Padding(0, 0, 0, 1)
	menuItemStyle = lipgloss.NewStyle().
			Foreground(style.Text).
			Padding(0, 0, 0, 2)
)

// renderMenu draws m as a bordered box. Item names may span several lines.
func renderMenu(m *menu.Menu) string {
	lines := []string{style.Title(m.Title), ""}
	for i, item := range m.Items() {
		if i == m.Index() {
			lines = append(lines, menuSelectedStyle.Render(item.Name))
		} else {
			lines = append(lines, menuItemStyle.Render(item.Name))
		}
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}
