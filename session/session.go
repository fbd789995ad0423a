// Package session implements the playback session: it loads files into the engine,
// reacts to the engine lifecycle events and routes controller input while a file is playing.
package session

import (
	"fmt"

	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/input"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/media"
	"github.com/pplay-cli/pplay/menu"
	"github.com/pplay-cli/pplay/player"
	"github.com/pplay-cli/pplay/tween"
	"github.com/pplay-cli/pplay/util"
)

// loadOptions start every file paused at normal speed, playback resumes once streams are known.
const loadOptions = "pause=yes,speed=1"

// Options configure a Session.
type Options struct {
	Engine player.Engine
	UI     UI

	// Store receives the media info of every loaded file. Optional.
	Store Store

	// Fallback handles input the session does not consume. Optional.
	Fallback input.Handler

	// SeekStep is the offset in seconds used by the Select and Start keys.
	SeekStep float64
}

// Session owns the state of the single active playback.
type Session struct {
	engine   player.Engine
	ui       UI
	store    Store
	fallback input.Handler
	seekStep float64

	file       *media.File
	state      State
	fullscreen bool

	videoStreams    *menu.Menu
	audioStreams    *menu.Menu
	subtitleStreams *menu.Menu
}

// New creates an idle session.
func New(options Options) *Session {
	return &Session{
		engine:   options.Engine,
		ui:       options.UI,
		store:    options.Store,
		fallback: options.Fallback,
		seekStep: options.SeekStep,
		state:    Idle,
	}
}

// Load opens file in the engine, replacing whatever is playing.
// Subtitles are disabled unless a preferred subtitle language is configured.
func (s *Session) Load(file *media.File) error {
	s.file = file

	slang, err := s.engine.Option("slang")
	if err != nil {
		log.Warnf("could not read slang option: %v", err)
	} else if slang == "" {
		log.Info("slang not set, disabling subtitles by default")
		if err := s.engine.SetOption("sid", "no"); err != nil {
			log.Warnf("could not disable subtitles: %v", err)
		}
	}

	if err := s.engine.Load(file.Path, player.LoadReplace, loadOptions); err != nil {
		s.ui.Status.Show("Error...", "Could not play file:\n"+err.Error(), false)
		log.Errorf("could not play file %s: %v", file.Path, err)
		return fmt.Errorf("load %s: %w", file.Name, err)
	}

	log.WithFields(log.Fields{"path": file.Path}).Info("loading file")
	s.state = Loading
	return nil
}

// OnUpdate processes at most one pending engine event.
func (s *Session) OnUpdate() {
	if !s.engine.IsAvailable() {
		return
	}

	event, ok := s.engine.PullEvent()
	if !ok {
		return
	}

	switch e := event.(type) {
	case player.StartFileEvent:
		log.Debug("engine: start file")
		s.onStart()
	case player.FileLoadedEvent:
		log.Debug("engine: file loaded")
		s.onLoaded()
		s.ui.Status.Hide()
	case player.EndFileEvent:
		log.Debugf("engine: end file (%s)", e.Reason)
		s.onEnd(e)
	}
}

func (s *Session) onStart() {
	s.ui.Status.Show("Please Wait...", "Loading... "+s.Title(), true)
}

func (s *Session) onLoaded() {
	info, err := s.engine.MediaInfo()
	if err != nil {
		log.Warnf("could not read media info: %v", err)
	}

	if s.file != nil {
		s.file.Info = info
		if s.store != nil {
			if err := s.store.Save(s.file); err != nil {
				log.Errorf("could not save media info of %s: %v", s.file.Path, err)
			}
		}
	}

	s.disposeSubmenus()
	s.videoStreams = s.submenu("VIDEO", info.Tracks(media.KindVideo), s.SetVideoStream)
	s.audioStreams = s.submenu("AUDIO", info.Tracks(media.KindAudio), s.SetAudioStream)
	s.subtitleStreams = s.submenu("SUBTITLES", info.Tracks(media.KindSubtitle), s.SetSubtitleStream)

	s.state = Loaded
	s.Resume()
	s.SetFullscreen(true, false)
}

func (s *Session) onEnd(e player.EndFileEvent) {
	s.ui.Status.Hide()
	s.ui.VideoMenu.Reset()
	for _, m := range s.ui.Menus {
		m.Reset()
	}
	s.ui.OSD.Reset()

	if e.Reason == player.EndReasonError {
		s.ui.Status.Show("Error...", "Could not load file", false)
		log.Errorf("could not load file: %s", e.Error)
	}

	s.disposeSubmenus()
	s.state = Stopped

	if s.ui.App.IsExiting() {
		s.ui.App.Stop()
		s.state = Idle
	} else if s.engine.IsStopped() {
		s.SetFullscreen(false, true)
		s.state = Idle
	}
}

// submenu builds a hidden track selection menu, or returns nil when there is nothing to select.
func (s *Session) submenu(title string, tracks []media.Track, apply func(id int)) *menu.Menu {
	if len(tracks) == 0 {
		return nil
	}

	items := make([]menu.Item, len(tracks))
	for i, track := range tracks {
		items[i] = menu.Item{Name: track.Label, ID: track.ID}
	}

	m := menu.New(title, items)
	m.OnSelect = func(item menu.Item) {
		apply(item.ID)
		m.SetVisible(false, true)
	}
	m.OnBack = func() {
		s.ui.VideoMenu.SetVisible(true, true)
	}
	return m
}

func (s *Session) disposeSubmenus() {
	s.videoStreams = nil
	s.audioStreams = nil
	s.subtitleStreams = nil
}

func (s *Session) submenus() []*menu.Menu {
	return []*menu.Menu{s.videoStreams, s.audioStreams, s.subtitleStreams}
}

func (s *Session) submenuVisible() bool {
	for _, m := range s.submenus() {
		if m != nil && m.IsVisible() {
			return true
		}
	}
	for _, m := range s.ui.Menus {
		if m.IsVisible() {
			return true
		}
	}
	return false
}

// OnInput routes controller input while a file is open. It reports whether the input was consumed.
func (s *Session) OnInput(keys input.Keys) bool {
	if s.engine.IsStopped() ||
		s.ui.Filer.IsVisible() ||
		s.ui.VideoMenu.IsVisible() ||
		s.submenuVisible() {
		return s.delegate(keys)
	}

	switch {
	case keys.Has(input.Fire5):
		s.ResetSpeed()
	case keys.Has(input.Fire6):
		s.SpeedUp()
	case keys.Has(input.Select):
		s.Seek(-s.seekStep)
	case keys.Has(input.Start):
		s.Seek(s.seekStep)
	case keys.Has(input.Fire4):
		s.Resume()
		s.ui.Status.Show("Info...", "Resuming playback...", false)
	case keys.Has(input.Fire3):
		s.Pause()
		s.ui.Status.Show("Info...", "Pausing playback...", false)
	}

	if s.ui.OSD.IsVisible() {
		return s.delegate(keys)
	}

	switch {
	case keys.Has(input.Fire1 | input.Up):
		s.ui.OSD.SetVisible(true, true)
		s.ui.StatusBar.SetVisible(true, true)
	case keys.Has(input.Right | input.Fire2):
		s.SetFullscreen(false, false)
	case keys.Has(input.Left):
		s.ui.VideoMenu.SetVisible(true, true)
	}

	return true
}

func (s *Session) delegate(keys input.Keys) bool {
	if s.fallback == nil {
		return false
	}
	return s.fallback(keys)
}

func (s *Session) SetVideoStream(id int) {
	log.Infof("set video stream: %d", id)
	if err := s.engine.SetVid(id); err != nil {
		log.Warnf("could not set video stream %d: %v", id, err)
	}
}

func (s *Session) SetAudioStream(id int) {
	log.Infof("set audio stream: %d", id)
	if err := s.engine.SetAid(id); err != nil {
		log.Warnf("could not set audio stream %d: %v", id, err)
	}
}

func (s *Session) SetSubtitleStream(id int) {
	log.Infof("set subtitle stream: %d", id)
	if err := s.engine.SetSid(id); err != nil {
		log.Warnf("could not set subtitle stream %d: %v", id, err)
	}
}

func (s *Session) VideoStream() int    { return s.engine.Vid() }
func (s *Session) AudioStream() int    { return s.engine.Aid() }
func (s *Session) SubtitleStream() int { return s.engine.Sid() }

// SetSpeed changes the playback speed and reveals the OSD.
func (s *Session) SetSpeed(speed float64) {
	speed = util.Clamp(speed, constant.SpeedMin, constant.SpeedMax)
	if err := s.engine.SetSpeed(speed); err != nil {
		log.Warnf("could not set speed %.2f: %v", speed, err)
	}
	s.ui.OSD.SetVisible(true, true)
}

func (s *Session) ResetSpeed() {
	s.SetSpeed(constant.SpeedDefault)
}

func (s *Session) SpeedUp() {
	s.SetSpeed(s.engine.Speed() * 2)
}

func (s *Session) SpeedDown() {
	s.SetSpeed(s.engine.Speed() / 2)
}

// Seek moves the playback position by offset seconds and reveals the OSD.
func (s *Session) Seek(offset float64) {
	if err := s.engine.Seek(offset); err != nil {
		log.Warnf("could not seek %+.0fs: %v", offset, err)
	}
	s.ui.OSD.SetVisible(true, true)
}

func (s *Session) Pause() {
	if err := s.engine.Pause(); err != nil {
		log.Warnf("could not pause: %v", err)
		return
	}
	if s.state == Playing || s.state == Loaded {
		s.state = Paused
	}
}

func (s *Session) Resume() {
	if err := s.engine.Resume(); err != nil {
		log.Warnf("could not resume: %v", err)
		return
	}
	if s.state == Paused || s.state == Loaded {
		s.state = Playing
	}
}

// TogglePause pauses a playing file and resumes a paused one.
func (s *Session) TogglePause() {
	if s.state == Paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Stop asks the engine to stop. The session changes state when the engine confirms.
func (s *Session) Stop() {
	if err := s.engine.Stop(); err != nil {
		log.Warnf("could not stop: %v", err)
	}
}

// SetFullscreen switches between the fullscreen surface and the browsing view.
// When already in the requested mode, only hide is honored.
func (s *Session) SetFullscreen(fullscreen, hide bool) {
	if fullscreen == s.fullscreen {
		if hide {
			s.ui.Surface.SetVisible(false, true)
		}
		return
	}

	s.fullscreen = fullscreen

	if !fullscreen {
		if hide {
			s.ui.Surface.SetVisible(false, true)
		} else {
			s.ui.Surface.Play(tween.Backward)
		}
		s.ui.VideoMenu.SetVisible(false, true)
		for _, m := range s.submenus() {
			if m != nil {
				m.SetVisible(false, true)
			}
		}
		for _, m := range s.ui.Menus {
			m.SetVisible(false, true)
		}
		s.ui.Filer.SetVisible(true, true)
		s.ui.StatusBar.SetVisible(true, true)
		return
	}

	s.ui.Filer.SetVisible(false, true)
	s.ui.StatusBar.SetVisible(false, true)
	s.ui.Surface.SetVisible(true, true)
	s.ui.Surface.Play(tween.Forward)
}

// SetSeekStep changes the offset used by the seek keys.
func (s *Session) SetSeekStep(step float64) {
	s.seekStep = step
}

func (s *Session) IsFullscreen() bool {
	return s.fullscreen
}

// Title returns the name of the current file.
func (s *Session) Title() string {
	if s.file == nil {
		return ""
	}
	return s.file.Name
}

func (s *Session) File() *media.File {
	return s.file
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) VideoStreams() *menu.Menu    { return s.videoStreams }
func (s *Session) AudioStreams() *menu.Menu    { return s.audioStreams }
func (s *Session) SubtitleStreams() *menu.Menu { return s.subtitleStreams }

// Submenu returns the track selection menu of the given kind, nil when the file has no such stream.
func (s *Session) Submenu(kind media.StreamKind) *menu.Menu {
	switch kind {
	case media.KindVideo:
		return s.videoStreams
	case media.KindAudio:
		return s.audioStreams
	case media.KindSubtitle:
		return s.subtitleStreams
	default:
		return nil
	}
}
