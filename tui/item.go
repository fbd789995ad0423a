// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/pplay-cli/pplay/browse"
	"github.com/pplay-cli/pplay/icon"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/media"
	"github.com/pplay-cli/pplay/style"
	"github.com/pplay-cli/pplay/util"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// listItem implements the list.Item interface for file browser entries.
type listItem struct {
	file    *media.File
	info    mo.Option[media.Info]
	playing bool
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	var sb strings.Builder

	if t.file.IsDir() {
		sb.WriteString(icon.Get(icon.Folder))
	} else {
		sb.WriteString(icon.Get(icon.File))
	}
	sb.WriteString(" ")

	name := t.file.Name
	if t.file.Color != "" {
		name = lipgloss.NewStyle().Foreground(t.file.Color).Render(name)
	}
	sb.WriteString(name)

	if t.playing {
		sb.WriteString(" ")
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Play)))
	}

	return sb.String()
}

// Description retrieves the secondary metadata for the list item.
func (t *listItem) Description() string {
	if t.file.IsDir() {
		if t.file.Name == browse.Parent {
			return style.Faint("parent directory")
		}
		return style.Faint("directory")
	}

	var parts []string
	if viper.GetBool(key.BrowserShowSize) {
		parts = append(parts, humanize.Bytes(uint64(t.file.Size)))
	}

	if info, ok := t.info.Get(); ok {
		if info.Duration > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.PlayingColor).Render(info.DurationString()))
		}
		if len(info.Videos) > 0 {
			v := info.Videos[0]
			parts = append(parts, fmt.Sprintf("%dx%d", v.Width, v.Height))
		}
		if n := len(info.Audios); n > 1 {
			parts = append(parts, util.Quantify(n, "audio track", "audio tracks"))
		}
	}

	return strings.Join(parts, " • ")
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	return t.file.Name
}
