// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pplay-cli/pplay/color"
	"github.com/pplay-cli/pplay/input"
	"github.com/pplay-cli/pplay/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	up, down, left, right,
	confirm, back,
	pause, resume, togglePause,
	speedReset, speedUp, speedDown,
	seekBackward, seekForward,
	mainMenu, fullscreen,
	filter,
	top, bottom,
	showHelp key.Binding

	// buttons maps the keyboard bindings to the controller buttons the session understands
	buttons []button
}

type button struct {
	binding *key.Binding
	keys    input.Keys
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	k := &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume"),
		),
		togglePause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		speedReset: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "normal speed"),
		),
		speedUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "faster"),
		),
		speedDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "slower"),
		),
		seekBackward: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "seek back"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "seek forward"),
		),
		mainMenu: key.NewBinding(
			key.WithKeys("m", "tab"),
			key.WithHelp("m", "menu"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}

	k.buttons = []button{
		{&k.up, input.Up},
		{&k.down, input.Down},
		{&k.left, input.Left},
		{&k.right, input.Right},
		{&k.confirm, input.Fire1},
		{&k.back, input.Fire2},
		{&k.pause, input.Fire3},
		{&k.resume, input.Fire4},
		{&k.speedReset, input.Fire5},
		{&k.speedUp, input.Fire6},
		{&k.seekForward, input.Start},
		{&k.seekBackward, input.Select},
	}

	return k
}

// toKeys converts a key press to controller buttons. Unmapped keys yield input.None.
func (k *statefulKeymap) toKeys(msg tea.KeyMsg) input.Keys {
	keys := input.None
	for _, b := range k.buttons {
		if key.Matches(msg, *b.binding) {
			keys |= b.keys
		}
	}
	return keys
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case browseState:
		open := withDescription(k.confirm, "open")
		return h(open, k.back, k.filter, k.mainMenu, k.quit),
			h(open, k.back, k.filter, k.top, k.bottom, k.fullscreen, k.mainMenu, k.showHelp, k.quit)
	case menuState:
		return to2(h(k.up, k.down, withDescription(k.confirm, "select"), k.back))
	case playState:
		return h(k.togglePause, k.seekBackward, k.seekForward, k.left, k.back, k.quit),
			h(k.togglePause, k.pause, k.resume, k.seekBackward, k.seekForward, k.speedDown, k.speedUp, k.speedReset, k.up, k.left, k.back, k.quit)
	case osdState:
		return to2(h(k.togglePause, withDescription(k.left, "seek back"), withDescription(k.right, "seek forward"), withDescription(k.back, "hide")))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		Filter:               k.filter,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
