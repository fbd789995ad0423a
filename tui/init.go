// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pplay-cli/pplay/key"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Init starts the update loop, lists the first directory and plays the requested file, if any.
func (b *statefulBubble) Init() tea.Cmd {
	dir := b.options.Dir
	if dir == "" {
		dir = viper.GetString(key.BrowserRoot)
	}
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		} else {
			dir = "/"
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	cmds := []tea.Cmd{b.tick(), b.loadDirectory(dir, mo.None[int](), ""), b.spinnerC.Tick}
	if b.options.Play != "" {
		cmds = append(cmds, b.playPath(b.options.Play))
	}

	return tea.Batch(cmds...)
}
