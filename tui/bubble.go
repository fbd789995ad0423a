// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/pplay-cli/pplay/browse"
	"github.com/pplay-cli/pplay/input"
	"github.com/pplay-cli/pplay/internal/ui"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/media"
	"github.com/pplay-cli/pplay/menu"
	"github.com/pplay-cli/pplay/player"
	"github.com/pplay-cli/pplay/session"
	"github.com/pplay-cli/pplay/style"
	"github.com/pplay-cli/pplay/util"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// infoStore persists and looks up probed media information.
type infoStore interface {
	session.Store
	Lookup(file *media.File) mo.Option[media.Info]
}

// statefulBubble encapsulates the application state: the playback session, its overlays and the file browser.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	engine  player.Engine
	session *session.Session
	store   infoStore

	// components
	browserC list.Model
	helpC    help.Model
	spinnerC spinner.Model

	// overlays
	filer       *overlay
	statusBar   *statusBar
	status      *ui.Model
	osd         *osd
	surface     *surface
	videoMenu   *menu.Menu
	speedMenu   *menu.Menu
	mainMenu    *menu.Menu
	optionsMenu *menu.Options

	dir     string
	cursors util.Stack[int]

	// lastState is the session state the browser items were rendered for
	lastState session.State

	exiting  bool
	stopped  bool
	tickRate int

	width, height int
	lastError     error

	options *Options
}

// IsExiting reports whether the user asked to quit.
func (b *statefulBubble) IsExiting() bool {
	return b.exiting
}

// Stop ends the program on the next tick.
func (b *statefulBubble) Stop() {
	b.stopped = true
}

// exit quits immediately when nothing plays, otherwise once the engine confirms the stop.
func (b *statefulBubble) exit() {
	b.exiting = true

	switch b.session.State() {
	case session.Loading, session.Loaded, session.Playing, session.Paused:
		b.session.Stop()
	default:
		b.Stop()
	}
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// syncState derives the keymap state from the visible overlays.
func (b *statefulBubble) syncState() {
	switch {
	case b.visibleMenu() != nil:
		b.setState(menuState)
	case b.filer.IsVisible():
		b.setState(browseState)
	case b.osd.IsVisible():
		b.setState(osdState)
	default:
		b.setState(playState)
	}
}

// menus returns every menu overlay, topmost first.
func (b *statefulBubble) menus() []*menu.Menu {
	menus := []*menu.Menu{
		b.session.VideoStreams(),
		b.session.AudioStreams(),
		b.session.SubtitleStreams(),
		b.speedMenu,
		b.videoMenu,
	}
	menus = append(menus, b.optionsMenu.Submenus()...)
	return append(menus, b.optionsMenu.Menu, b.mainMenu)
}

func (b *statefulBubble) visibleMenu() *menu.Menu {
	for _, m := range b.menus() {
		if m != nil && m.IsVisible() {
			return m
		}
	}
	return nil
}

// onOverlayInput dispatches the input the session did not consume to the visible overlays.
func (b *statefulBubble) onOverlayInput(keys input.Keys) bool {
	if b.optionsMenu.IsVisible() {
		return b.optionsMenu.OnInput(keys)
	}

	if m := b.visibleMenu(); m != nil {
		return m.OnInput(keys)
	}

	return b.osd.OnInput(keys, b.session.TogglePause)
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	listWidth := width - xx
	// status bar and help lines
	listHeight := height - yy - 2

	b.browserC.SetSize(listWidth, listHeight)
	b.browserC.Help.Width = listWidth
	b.helpC.Width = listWidth
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(engine player.Engine, store infoStore, options *Options) *statefulBubble {
	tickRate := viper.GetInt(key.PlayerTickRate)
	if tickRate <= 0 {
		tickRate = 30
	}
	seekStep := viper.GetFloat64(key.PlayerSeekStep)

	bubble := &statefulBubble{
		keymap:    newStatefulKeymap(),
		engine:    engine,
		store:     store,
		filer:     &overlay{visible: true},
		statusBar: newStatusBar(),
		status:    ui.New(),
		osd:       newOSD(engine, time.Duration(viper.GetInt(key.OSDTimeout))*time.Second, seekStep),
		surface:   newSurface(tickRate, viper.GetBool(key.TUIAnimate)),
		tickRate:  tickRate,
		options:   options,
	}

	bubble.videoMenu = bubble.newVideoMenu()
	bubble.speedMenu = bubble.newSpeedMenu()

	sessionOptions := session.Options{
		Engine: engine,
		UI: session.UI{
			Filer:     bubble.filer,
			StatusBar: bubble.statusBar,
			Status:    bubble.status,
			OSD:       bubble.osd,
			VideoMenu: bubble.videoMenu,
			Surface:   bubble.surface,
			App:       bubble,
			Menus:     []session.Resettable{bubble.speedMenu},
		},
		Fallback: bubble.onOverlayInput,
		SeekStep: seekStep,
	}
	if store != nil {
		sessionOptions.Store = store
	}
	bubble.session = session.New(sessionOptions)

	bubble.mainMenu = bubble.newMainMenu()
	bubble.optionsMenu = bubble.newOptionsMenu(bubble.mainMenu)

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.browserC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.browserC.KeyMap = bubble.keymap.forList()
	bubble.browserC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
	bubble.browserC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return bubble.keymap.FullHelp()[0]
	}
	bubble.browserC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	bubble.browserC.Styles.NoItems = paddingStyle
	bubble.browserC.SetStatusBarItemName("file", "files")
	bubble.browserC.SetShowHelp(false)
	bubble.browserC.Filter = func(term string, targets []string) []list.Rank {
		indexes := browse.Rank(term, targets)
		ranks := make([]list.Rank, len(indexes))
		for i, index := range indexes {
			ranks[i] = list.Rank{Index: index}
		}
		return ranks
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(browseState)
	return bubble
}
