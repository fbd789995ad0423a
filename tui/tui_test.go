package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pplay-cli/pplay/config"
	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/input"
	"github.com/pplay-cli/pplay/media"
	"github.com/pplay-cli/pplay/player"
	"github.com/pplay-cli/pplay/session"
	"github.com/pplay-cli/pplay/tween"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

type fakeEngine struct {
	loaded  []string
	events  []player.Event
	info    media.Info
	speed   float64
	stopped bool
	paused  bool
	seeks   []float64
	seekErr error
	stops   int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{speed: constant.SpeedDefault, stopped: true}
}

func (e *fakeEngine) Load(path string, _ player.LoadMode, _ string) error {
	e.loaded = append(e.loaded, path)
	e.stopped = false
	e.events = append(e.events, player.StartFileEvent{}, player.FileLoadedEvent{})
	return nil
}

func (e *fakeEngine) Pause() error                   { e.paused = true; return nil }
func (e *fakeEngine) Resume() error                  { e.paused = false; return nil }
func (e *fakeEngine) Seek(offset float64) error      { e.seeks = append(e.seeks, offset); return e.seekErr }
func (e *fakeEngine) SetSpeed(speed float64) error   { e.speed = speed; return nil }
func (e *fakeEngine) Speed() float64                 { return e.speed }
func (e *fakeEngine) SetVid(int) error               { return nil }
func (e *fakeEngine) SetAid(int) error               { return nil }
func (e *fakeEngine) SetSid(int) error               { return nil }
func (e *fakeEngine) Vid() int                       { return 1 }
func (e *fakeEngine) Aid() int                       { return 1 }
func (e *fakeEngine) Sid() int                       { return constant.SubtitleNone }
func (e *fakeEngine) IsStopped() bool                { return e.stopped }
func (e *fakeEngine) IsAvailable() bool              { return true }
func (e *fakeEngine) TimePos() float64               { return 12 }
func (e *fakeEngine) Duration() float64              { return e.info.Duration }
func (e *fakeEngine) Paused() bool                   { return e.paused }
func (e *fakeEngine) Close() error                   { return nil }
func (e *fakeEngine) MediaInfo() (media.Info, error) { return e.info, nil }
func (e *fakeEngine) Option(string) (string, error)  { return "", nil }
func (e *fakeEngine) SetOption(string, string) error { return nil }

func (e *fakeEngine) Stop() error {
	e.stops++
	e.stopped = true
	e.events = append(e.events, player.EndFileEvent{Reason: player.EndReasonStop})
	return nil
}

func (e *fakeEngine) PullEvent() (player.Event, bool) {
	if len(e.events) == 0 {
		return nil, false
	}
	ev := e.events[0]
	e.events = e.events[1:]
	return ev, true
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds the resulting message back, the way the program loop would.
func run(b *statefulBubble, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		switch msg.(type) {
		case tea.BatchMsg, tickMsg:
			return
		}
		b.Update(msg)
	}
}

func ticks(b *statefulBubble, n int) {
	for i := 0; i < n; i++ {
		b.Update(tickMsg(time.Now()))
	}
}

func selectedName(b *statefulBubble) string {
	return b.browserC.SelectedItem().(*listItem).file.Name
}

func mediaRoot() string {
	fs := filesystem.API()
	root := filepath.Join("/", "videos")
	lo.Must0(fs.MkdirAll(filepath.Join(root, "Anime"), 0755))
	lo.Must0(fs.MkdirAll(filepath.Join(root, "Movies"), 0755))
	lo.Must0(fs.WriteFile(filepath.Join(root, "Movies", "movie.mkv"), []byte("movie"), 0644))
	lo.Must0(fs.WriteFile(filepath.Join(root, "clip.mp4"), []byte("clip"), 0644))
	return root
}

func TestKeymap(t *testing.T) {
	Convey("Given the keymap", t, func() {
		k := newStatefulKeymap()

		Convey("Key presses should map to controller buttons", func() {
			So(k.toKeys(tea.KeyMsg{Type: tea.KeyEnter}), ShouldEqual, input.Fire1)
			So(k.toKeys(tea.KeyMsg{Type: tea.KeyEsc}), ShouldEqual, input.Fire2)
			So(k.toKeys(tea.KeyMsg{Type: tea.KeyLeft}), ShouldEqual, input.Left)
			So(k.toKeys(keyRunes("l")), ShouldEqual, input.Right)
			So(k.toKeys(keyRunes("p")), ShouldEqual, input.Fire3)
			So(k.toKeys(keyRunes("r")), ShouldEqual, input.Fire4)
			So(k.toKeys(keyRunes("=")), ShouldEqual, input.Fire5)
			So(k.toKeys(keyRunes("]")), ShouldEqual, input.Fire6)
			So(k.toKeys(keyRunes(",")), ShouldEqual, input.Select)
			So(k.toKeys(keyRunes(".")), ShouldEqual, input.Start)
		})

		Convey("Unmapped keys should yield no buttons", func() {
			So(k.toKeys(keyRunes("z")), ShouldEqual, input.None)
		})

		Convey("Help should follow the state", func() {
			k.setState(browseState)
			browse := k.ShortHelp()
			k.setState(osdState)
			So(k.ShortHelp(), ShouldNotResemble, browse)
			So(k.FullHelp(), ShouldHaveLength, 1)
		})
	})
}

func TestBrowser(t *testing.T) {
	Convey("Given a bubble listing a media directory", t, func() {
		root := mediaRoot()
		engine := newFakeEngine()
		b := newBubble(engine, nil, &Options{Dir: root})
		run(b, b.loadDirectory(root, mo.None[int](), ""))

		Convey("Then the listing should be shown with the parent first", func() {
			So(b.dir, ShouldEqual, root)
			So(b.browserC.Items(), ShouldHaveLength, 4)
			So(selectedName(b), ShouldEqual, "..")
			So(b.state, ShouldEqual, browseState)
		})

		Convey("When a directory is opened and left again", func() {
			b.browserC.Select(2)
			So(selectedName(b), ShouldEqual, "Movies")
			run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
			So(b.dir, ShouldEqual, filepath.Join(root, "Movies"))

			run(b, b.onKey(tea.KeyMsg{Type: tea.KeyLeft}))

			Convey("Then the cursor should be back on that directory", func() {
				So(b.dir, ShouldEqual, root)
				So(selectedName(b), ShouldEqual, "Movies")
			})
		})

		Convey("When a file is opened", func() {
			b.browserC.Select(3)
			run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))

			Convey("Then it should be loaded and the status should say so", func() {
				So(engine.loaded, ShouldResemble, []string{filepath.Join(root, "clip.mp4")})
				So(b.session.State(), ShouldEqual, session.Loading)

				ticks(b, 1)
				So(b.status.IsVisible(), ShouldBeTrue)
				So(b.status.IsTransient(), ShouldBeTrue)
			})

			Convey("Then playback should go fullscreen once loaded", func() {
				ticks(b, 2)
				So(b.session.State(), ShouldEqual, session.Playing)
				So(b.filer.IsVisible(), ShouldBeFalse)
				So(b.status.IsVisible(), ShouldBeFalse)
				So(b.state, ShouldEqual, playState)
				So(b.View(), ShouldNotBeEmpty)
			})

			Convey("And Fire2 should return to the browser with the preview playing", func() {
				ticks(b, 2)
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEsc}))
				So(b.filer.IsVisible(), ShouldBeTrue)
				So(b.session.IsFullscreen(), ShouldBeFalse)
				So(b.state, ShouldEqual, browseState)

				Convey("And opening the playing file again should not reload it", func() {
					b.browserC.Select(3)
					run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
					So(engine.loaded, ShouldHaveLength, 1)
					So(b.session.IsFullscreen(), ShouldBeTrue)
				})
			})
		})

		Convey("When quit is pressed while playing", func() {
			b.browserC.Select(3)
			run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
			ticks(b, 2)
			run(b, b.onKey(keyRunes("q")))

			Convey("Then the engine should be stopped before the program ends", func() {
				So(engine.stops, ShouldEqual, 1)
				So(b.stopped, ShouldBeFalse)
				ticks(b, 1)
				So(b.stopped, ShouldBeTrue)
			})
		})

		Convey("When quit is pressed while idle", func() {
			run(b, b.onKey(keyRunes("q")))
			So(b.stopped, ShouldBeTrue)
			So(engine.stops, ShouldEqual, 0)
		})
	})
}

func TestMenus(t *testing.T) {
	Convey("Given a bubble in the browser", t, func() {
		root := mediaRoot()
		engine := newFakeEngine()
		b := newBubble(engine, nil, &Options{Dir: root})
		run(b, b.loadDirectory(root, mo.None[int](), ""))

		Convey("When the main menu is opened", func() {
			run(b, b.onKey(keyRunes("m")))
			So(b.mainMenu.IsVisible(), ShouldBeTrue)
			So(b.state, ShouldEqual, menuState)

			Convey("Then the browser should not move", func() {
				index := b.browserC.Index()
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyDown}))
				So(b.browserC.Index(), ShouldEqual, index)
				So(b.mainMenu.Index(), ShouldEqual, mainEntryOptions)
			})

			Convey("Then Options should open the options menu and back should return", func() {
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyDown}))
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
				So(b.optionsMenu.IsVisible(), ShouldBeTrue)
				So(b.mainMenu.IsVisible(), ShouldBeFalse)

				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEsc}))
				So(b.optionsMenu.IsVisible(), ShouldBeFalse)
				So(b.mainMenu.IsVisible(), ShouldBeTrue)
			})

			Convey("Then a setting should be applied", func() {
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyDown}))
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
				// SEEK STEP
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyDown}))
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
				sub := b.optionsMenu.Submenu("SEEK STEP")
				So(sub.IsVisible(), ShouldBeTrue)

				sub.Select(2)
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
				So(b.osd.seekStep, ShouldEqual, 30)
				So(sub.IsVisible(), ShouldBeFalse)
				So(b.optionsMenu.IsVisible(), ShouldBeTrue)
			})

			Convey("Then Exit should stop the program", func() {
				b.mainMenu.Select(mainEntryExit)
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
				So(b.stopped, ShouldBeTrue)
			})

			Convey("Then the menu should be drawn", func() {
				b.resize(80, 24)
				So(b.View(), ShouldContainSubstring, "Browse")
			})
		})

		Convey("When the video menu opens during playback", func() {
			engine.info = media.Info{Duration: 60, Audios: []media.AudioStream{
				{ID: 1, Language: "eng"},
				{ID: 2, Language: "jpn"},
			}}
			b.browserC.Select(3)
			run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
			ticks(b, 2)
			run(b, b.onKey(tea.KeyMsg{Type: tea.KeyLeft}))
			So(b.videoMenu.IsVisible(), ShouldBeTrue)

			Convey("Then Speed should open with the current speed selected", func() {
				b.videoMenu.Select(videoEntrySpeed)
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
				So(b.speedMenu.IsVisible(), ShouldBeTrue)
				So(b.speedMenu.Index(), ShouldEqual, closestSpeed(1))

				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyDown}))
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
				So(engine.speed, ShouldEqual, 1.25)
				So(b.speedMenu.IsVisible(), ShouldBeFalse)
			})

			Convey("Then Audio should list the tracks", func() {
				b.videoMenu.Select(videoEntryAudio)
				run(b, b.onKey(tea.KeyMsg{Type: tea.KeyEnter}))
				audio := b.session.AudioStreams()
				So(audio, ShouldNotBeNil)
				So(audio.IsVisible(), ShouldBeTrue)
				So(audio.Len(), ShouldEqual, 2)
			})
		})
	})
}

func TestOverlays(t *testing.T) {
	Convey("Given the OSD", t, func() {
		engine := newFakeEngine()
		o := newOSD(engine, 2*time.Second, 10)
		now := time.Now()
		o.now = func() time.Time { return now }

		Convey("Hidden, it should not consume input", func() {
			So(o.OnInput(input.Left, func() {}), ShouldBeFalse)
		})

		Convey("Visible, it should seek and toggle", func() {
			o.SetVisible(true, true)
			toggled := false
			So(o.OnInput(input.Left, func() {}), ShouldBeTrue)
			So(o.OnInput(input.Right, func() {}), ShouldBeTrue)
			So(o.OnInput(input.Fire1, func() { toggled = true }), ShouldBeTrue)
			So(engine.seeks, ShouldResemble, []float64{-10, 10})
			So(toggled, ShouldBeTrue)

			Convey("And hide on Fire2", func() {
				So(o.OnInput(input.Fire2, func() {}), ShouldBeTrue)
				So(o.IsVisible(), ShouldBeFalse)
			})
		})

		Convey("A failing seek should still be handled and keep it on screen", func() {
			engine.seekErr = errors.New("property unavailable")
			o.SetVisible(true, true)
			So(o.OnInput(input.Right, func() {}), ShouldBeTrue)
			So(engine.seeks, ShouldResemble, []float64{10})
			So(o.IsVisible(), ShouldBeTrue)
		})

		Convey("It should expire after the timeout", func() {
			o.SetVisible(true, true)
			now = now.Add(time.Second)
			o.expire()
			So(o.IsVisible(), ShouldBeTrue)
			now = now.Add(time.Second)
			o.expire()
			So(o.IsVisible(), ShouldBeFalse)
		})

		Convey("It should render position and duration", func() {
			engine.info.Duration = 90
			So(o.View("clip", 40), ShouldContainSubstring, "0:12 / 1:30")
		})
	})

	Convey("Given the surface", t, func() {
		s := newSurface(30, false)

		Convey("It should start as a preview in the corner", func() {
			w, h, x := s.Bounds(100, 40)
			So(w, ShouldEqual, 25)
			So(h, ShouldEqual, 10)
			So(x, ShouldEqual, 75)
		})

		Convey("Without animations it should jump to fullscreen", func() {
			s.Play(tween.Forward)
			w, h, x := s.Bounds(100, 40)
			So(w, ShouldEqual, 100)
			So(h, ShouldEqual, 40)
			So(x, ShouldEqual, 0)
		})

		Convey("It should describe the streams only once it is large", func() {
			file := &media.File{Name: "clip.mkv", Info: media.Info{
				Videos: []media.VideoStream{{ID: 1, Codec: "h264", Width: 1920, Height: 1080}},
			}}
			So(s.View(file, 100, 40), ShouldContainSubstring, "clip.mkv")
			So(s.View(file, 100, 40), ShouldNotContainSubstring, "1920x1080")

			s.Play(tween.Forward)
			So(s.View(file, 100, 40), ShouldContainSubstring, "h264 1920x1080")
		})

		Convey("With animations it should get there over several updates", func() {
			s.animate = true
			s.Play(tween.Forward)
			So(s.Update(), ShouldBeTrue)
			w, _, _ := s.Bounds(100, 40)
			So(w, ShouldBeLessThan, 100)

			for i := 0; i < 1000 && s.Update(); i++ {
			}
			w, _, _ = s.Bounds(100, 40)
			So(w, ShouldEqual, 100)
		})
	})
}
