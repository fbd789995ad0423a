// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pplay-cli/pplay/input"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/player"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		b.status.Show("Error...", msg.Error(), false)
		return b, nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tickMsg:
		return b, b.onTick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case dirLoadedMsg:
		return b, b.setFiles(msg)
	case playMsg:
		b.play(msg.file)
		return b, nil
	case tea.KeyMsg:
		return b, b.onKey(msg)
	}

	var cmd tea.Cmd
	b.browserC, cmd = b.browserC.Update(msg)
	return b, cmd
}

// onTick polls the engine, advances animations and expires timed overlays.
func (b *statefulBubble) onTick() tea.Cmd {
	if b.stopped {
		return tea.Quit
	}

	if !b.engine.IsAvailable() {
		log.Error("playback engine exited")
		b.lastError = player.ErrNotRunning
		return tea.Quit
	}

	b.session.OnUpdate()
	b.surface.Update()
	b.osd.expire()
	b.status.Expire()

	var cmd tea.Cmd
	if state := b.session.State(); state != b.lastState {
		b.lastState = state
		cmd = b.refreshItems()
	}

	b.syncState()
	return tea.Batch(cmd, b.tick())
}

// onKey routes a key press through the session first, then the application shortcuts, then the file browser.
func (b *statefulBubble) onKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, b.keymap.forceQuit) {
		return tea.Quit
	}

	// typed filter text must reach the list untouched
	if b.filer.IsVisible() && b.browserC.FilterState() == list.Filtering {
		var cmd tea.Cmd
		b.browserC, cmd = b.browserC.Update(msg)
		return cmd
	}

	keys := b.keymap.toKeys(msg)
	if keys != input.None && b.session.OnInput(keys) {
		b.syncState()
		return nil
	}

	defer b.syncState()

	active := b.session.State().Active()
	switch {
	case key.Matches(msg, b.keymap.quit):
		b.exit()
		return nil
	case key.Matches(msg, b.keymap.mainMenu):
		if b.visibleMenu() == nil && b.filer.IsVisible() {
			b.mainMenu.Select(0)
			b.mainMenu.SetVisible(true, true)
		}
		return nil
	case key.Matches(msg, b.keymap.fullscreen) && active:
		b.session.SetFullscreen(!b.session.IsFullscreen(), false)
		return nil
	case key.Matches(msg, b.keymap.togglePause) && active:
		b.session.TogglePause()
		b.osd.SetVisible(true, true)
		return nil
	case key.Matches(msg, b.keymap.speedDown) && active:
		b.session.SpeedDown()
		return nil
	case key.Matches(msg, b.keymap.showHelp) && !b.filer.IsVisible():
		b.helpC.ShowAll = !b.helpC.ShowAll
		return nil
	}

	if !b.filer.IsVisible() || b.visibleMenu() != nil {
		return nil
	}

	return b.onBrowserKey(msg, keys)
}

func (b *statefulBubble) onBrowserKey(msg tea.KeyMsg, keys input.Keys) tea.Cmd {
	switch {
	case keys.Has(input.Fire1 | input.Right):
		if item, ok := b.browserC.SelectedItem().(*listItem); ok {
			return b.open(item.file)
		}
		return nil
	case keys.Has(input.Fire2 | input.Left):
		if b.browserC.FilterState() != list.Unfiltered {
			b.browserC.ResetFilter()
			return nil
		}
		return b.up()
	}

	var cmd tea.Cmd
	b.browserC, cmd = b.browserC.Update(msg)
	return cmd
}
