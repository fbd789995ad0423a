package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/media"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	eventBuffer       = 64
)

// Options configure how the mpv process is spawned.
type Options struct {
	// Executable is the mpv binary name or path.
	Executable string

	// ConfigDir is passed as --config-dir so that a dedicated mpv.conf and input.conf are used.
	ConfigDir string

	// SocketDir is where the IPC socket is created.
	SocketDir string

	// Headless disables video and audio output. Used for probing.
	Headless bool
}

// MPV implements the Engine interface using mpv's JSON-IPC protocol.
type MPV struct {
	options    Options
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	listener   *EventListener
	events     chan Event
	mu         sync.Mutex // Protects socket writes

	state struct {
		sync.RWMutex
		timePos  float64
		duration float64
		paused   bool
		idle     bool
	}
}

// NewMPV creates a new MPV engine instance (does not spawn the process).
func NewMPV(options Options) *MPV {
	if options.Executable == "" {
		options.Executable = constant.MPV
	}
	if options.SocketDir == "" {
		options.SocketDir = os.TempDir()
	}

	m := &MPV{
		options: options,
		exited:  make(chan struct{}),
		events:  make(chan Event, eventBuffer),
	}
	m.state.idle = true
	return m
}

// Start spawns mpv in idle mode and connects the event listener.
func (m *MPV) Start() error {
	if m.IsAvailable() {
		return nil
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	removeStaleSockets(m.options.SocketDir)
	m.socketPath = filepath.Join(m.options.SocketDir, fmt.Sprintf("%s-%x.sock", constant.Pplay, randomBytes))

	m.cmd = exec.Command(m.options.Executable, m.args()...)

	// Detach from parent process group so terminal signals aimed at the TUI do not reach mpv.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process to prevent zombies
	m.exited = make(chan struct{})
	go func(cmd *exec.Cmd, exited chan struct{}) {
		_ = cmd.Wait()
		close(exited)
	}(m.cmd, m.exited)

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.onEvent)
	if err := m.listener.Start(); err != nil {
		_ = m.Close()
		return err
	}

	log.WithFields(log.Fields{
		"socket":     m.socketPath,
		"config-dir": m.options.ConfigDir,
		"headless":   m.options.Headless,
	}).Info("mpv started")
	return nil
}

func (m *MPV) args() []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--idle=yes",
		"--keep-open=no",
	}

	if m.options.ConfigDir != "" {
		args = append(args, fmt.Sprintf("--config-dir=%s", m.options.ConfigDir))
	}

	if m.options.Headless {
		args = append(args, "--vo=null", "--ao=null", "--force-window=no")
	} else {
		args = append(args, "--force-window=yes")
	}

	return args
}

// removeStaleSockets deletes sockets left behind by mpv processes that are gone.
// Sockets that still accept connections belong to running instances and are kept.
func removeStaleSockets(dir string) {
	paths, err := filepath.Glob(filepath.Join(dir, constant.Pplay+"-*.sock"))
	if err != nil {
		return
	}

	for _, path := range paths {
		conn, err := net.DialTimeout("unix", path, socketWaitDelay)
		if err == nil {
			_ = conn.Close()
			continue
		}
		if !errors.Is(err, syscall.ECONNREFUSED) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf("remove stale socket %s: %v", path, err)
		}
	}
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// onEvent keeps the cached playback state current and queues lifecycle events.
func (m *MPV) onEvent(ev Event) {
	switch e := ev.(type) {
	case PropertyEvent:
		m.updateState(e)
		return
	case StartFileEvent:
		m.state.Lock()
		m.state.idle = false
		m.state.Unlock()
	case EndFileEvent:
		// idle-active is only reported after end-file; a redirect goes on to start the next file.
		m.state.Lock()
		m.state.timePos = 0
		m.state.idle = e.Reason != EndReasonRedirect
		m.state.Unlock()
	}

	select {
	case m.events <- ev:
	default:
		log.Warnf("mpv event queue full, dropping %T", ev)
	}
}

func (m *MPV) updateState(e PropertyEvent) {
	m.state.Lock()
	defer m.state.Unlock()

	switch e.Name {
	case "time-pos":
		m.state.timePos, _ = e.Data.(float64)
	case "duration":
		m.state.duration, _ = e.Data.(float64)
	case "pause":
		m.state.paused, _ = e.Data.(bool)
	case "idle-active":
		if idle, ok := e.Data.(bool); ok {
			m.state.idle = idle
		}
	}
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// IsAvailable reports whether mpv was started and has not exited.
func (m *MPV) IsAvailable() bool {
	if m.socketPath == "" || m.cmd == nil {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

func (m *MPV) IsStopped() bool {
	if !m.IsAvailable() {
		return true
	}

	m.state.RLock()
	defer m.state.RUnlock()
	return m.state.idle
}

func (m *MPV) PullEvent() (Event, bool) {
	select {
	case ev := <-m.events:
		return ev, true
	default:
		return nil, false
	}
}

func (m *MPV) Load(path string, mode LoadMode, options string) error {
	target, err := sanitizeMediaTarget(path)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if !m.IsAvailable() {
		return ErrNotRunning
	}

	command := []any{"loadfile", target, string(mode)}
	if options != "" {
		// the insertion index precedes the options since mpv 0.38
		command = append(command, -1, options)
	}

	_, err = m.sendCommand(command...)
	return err
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

func (m *MPV) Resume() error {
	return m.set("pause", false)
}

func (m *MPV) Stop() error {
	if !m.IsAvailable() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("stop")
	return err
}

// Seek moves playback by offset seconds relative to the current position.
func (m *MPV) Seek(offset float64) error {
	if !m.IsAvailable() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("seek", offset, "relative")
	return err
}

func (m *MPV) SetSpeed(speed float64) error {
	return m.set("speed", speed)
}

func (m *MPV) Speed() float64 {
	speed, err := m.getFloatProperty("speed")
	if err != nil {
		return constant.SpeedDefault
	}
	return speed
}

func (m *MPV) SetVid(id int) error { return m.set("vid", trackValue(id)) }
func (m *MPV) SetAid(id int) error { return m.set("aid", trackValue(id)) }
func (m *MPV) SetSid(id int) error { return m.set("sid", trackValue(id)) }

func (m *MPV) Vid() int { return m.getTrack("vid") }
func (m *MPV) Aid() int { return m.getTrack("aid") }
func (m *MPV) Sid() int { return m.getTrack("sid") }

// trackValue converts a track id to the mpv representation, where "no" disables the category.
func trackValue(id int) any {
	if id < 0 {
		return "no"
	}
	return id
}

// getTrack returns the selected track id, or -1 when the category is disabled.
func (m *MPV) getTrack(name string) int {
	if !m.IsAvailable() {
		return constant.SubtitleNone
	}

	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return constant.SubtitleNone
	}

	if id, ok := data.(float64); ok {
		return int(id)
	}
	return constant.SubtitleNone
}

func (m *MPV) MediaInfo() (media.Info, error) {
	if !m.IsAvailable() {
		return media.Info{}, ErrNotRunning
	}

	tracks, err := m.sendCommand("get_property", "track-list")
	if err != nil {
		return media.Info{}, fmt.Errorf("track-list: %w", err)
	}

	info := parseTrackList(tracks)

	if duration, err := m.getFloatProperty("duration"); err == nil {
		info.Duration = duration
	}

	return info, nil
}

func (m *MPV) Option(name string) (string, error) {
	if !m.IsAvailable() {
		return "", ErrNotRunning
	}

	data, err := m.sendCommand("get_property_string", name)
	if err != nil {
		return "", err
	}

	value, _ := data.(string)
	return value, nil
}

func (m *MPV) SetOption(name, value string) error {
	if !m.IsAvailable() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("set_property_string", name, value)
	return err
}

func (m *MPV) TimePos() float64 {
	m.state.RLock()
	defer m.state.RUnlock()
	return m.state.timePos
}

func (m *MPV) Duration() float64 {
	m.state.RLock()
	defer m.state.RUnlock()
	return m.state.duration
}

func (m *MPV) Paused() bool {
	m.state.RLock()
	defer m.state.RUnlock()
	return m.state.paused
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}

	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	// Try graceful quit via IPC
	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	if err := os.Remove(m.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("remove mpv socket: %v", err)
	}

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) set(property string, value any) error {
	if !m.IsAvailable() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("set_property", property, value)
	return err
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	if !m.IsAvailable() {
		return 0, ErrNotRunning
	}

	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: %w", name, ErrPropertyUnavailable)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// parseTrackList converts mpv's track-list property into stream metadata.
func parseTrackList(data any) media.Info {
	var info media.Info

	list, ok := data.([]any)
	if !ok {
		return info
	}

	for _, raw := range list {
		track, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		id := intField(track, "id")
		title := stringField(track, "title")
		lang := stringField(track, "lang")
		codec := stringField(track, "codec")

		switch stringField(track, "type") {
		case "video":
			info.Videos = append(info.Videos, media.VideoStream{
				ID:       id,
				Title:    title,
				Language: lang,
				Codec:    codec,
				Width:    intField(track, "demux-w"),
				Height:   intField(track, "demux-h"),
			})
		case "audio":
			info.Audios = append(info.Audios, media.AudioStream{
				ID:         id,
				Title:      title,
				Language:   lang,
				Codec:      codec,
				Channels:   intField(track, "demux-channel-count"),
				SampleRate: intField(track, "demux-samplerate"),
			})
		case "sub":
			info.Subtitles = append(info.Subtitles, media.SubtitleStream{
				ID:       id,
				Title:    title,
				Language: lang,
				Codec:    codec,
			})
		}
	}

	return info
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int {
	f, _ := m[key].(float64)
	return int(f)
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in path")
	}

	// "-" alone means stdin to mpv, and leading dashes look like flags
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("path must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "smb", "ftp", "sftp", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
