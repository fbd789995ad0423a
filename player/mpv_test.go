package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pplay-cli/pplay/constant"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers IPC commands on a unix socket the way mpv does.
type fakeMPV struct {
	listener net.Listener
	mu       sync.Mutex
	received [][]any
	replies  map[string]func(args []any) (any, string)
	greeting []string
}

func newFakeMPV(t *testing.T) *fakeMPV {
	dir, err := os.MkdirTemp("", "pplay")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	l, err := net.Listen("unix", filepath.Join(dir, "mpv.sock"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = l.Close() })

	f := &fakeMPV{
		listener: l,
		replies:  make(map[string]func(args []any) (any, string)),
	}
	go f.serve()
	return f
}

func (f *fakeMPV) path() string {
	return f.listener.Addr().String()
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer conn.Close()

	f.mu.Lock()
	for _, line := range f.greeting {
		_, _ = conn.Write([]byte(line + "\n"))
	}
	f.mu.Unlock()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return
		}

		var cmd ipcCommand
		if err := json.Unmarshal(line, &cmd); err != nil {
			return
		}

		f.mu.Lock()
		f.received = append(f.received, cmd.Command)
		handler := f.replies[cmd.Command[0].(string)]
		f.mu.Unlock()

		var (
			data   any
			status = "success"
		)
		if handler != nil {
			data, status = handler(cmd.Command[1:])
		}

		// broadcast events may precede the reply
		_, _ = conn.Write([]byte(`{"event":"audio-reconfig"}` + "\n"))
		reply, _ := json.Marshal(map[string]any{"data": data, "error": status, "request_id": cmd.RequestID})
		_, _ = conn.Write(append(reply, '\n'))
	}
}

func (f *fakeMPV) on(command string, handler func(args []any) (any, string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[command] = handler
}

func (f *fakeMPV) last() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.received) == 0 {
		return nil
	}
	return f.received[len(f.received)-1]
}

// attached returns an MPV wired to the fake socket without spawning a process.
func attached(f *fakeMPV) *MPV {
	m := NewMPV(Options{})
	m.socketPath = f.path()
	m.cmd = &exec.Cmd{}
	return m
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("Given media targets", t, func() {
		Convey("Local paths should be cleaned", func() {
			target, err := sanitizeMediaTarget(" /media/movies/../movies/a.mkv ")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "/media/movies/a.mkv")
		})

		Convey("Network schemes should be accepted", func() {
			for _, link := range []string{"http://host/a.mp4", "https://host/a.mp4", "smb://nas/share/a.mkv"} {
				target, err := sanitizeMediaTarget(link)
				So(err, ShouldBeNil)
				So(target, ShouldEqual, link)
			}
		})

		Convey("Flags, empty targets and unknown schemes should be rejected", func() {
			for _, link := range []string{"", "--script=evil.lua", "-", "gopher://x/y", "a\nb"} {
				_, err := sanitizeMediaTarget(link)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestParseEvent(t *testing.T) {
	Convey("Given mpv event lines", t, func() {
		Convey("Lifecycle events should be decoded", func() {
			ev, ok := parseEvent([]byte(`{"event":"start-file","playlist_entry_id":1}`))
			So(ok, ShouldBeTrue)
			So(ev, ShouldResemble, StartFileEvent{})

			ev, ok = parseEvent([]byte(`{"event":"file-loaded"}`))
			So(ok, ShouldBeTrue)
			So(ev, ShouldResemble, FileLoadedEvent{})
		})

		Convey("End file reasons should be mapped", func() {
			ev, ok := parseEvent([]byte(`{"event":"end-file","reason":"eof"}`))
			So(ok, ShouldBeTrue)
			So(ev.(EndFileEvent).Reason, ShouldEqual, EndReasonEOF)

			ev, _ = parseEvent([]byte(`{"event":"end-file","reason":"error","file_error":"unrecognized file format"}`))
			So(ev.(EndFileEvent).Reason, ShouldEqual, EndReasonError)
			So(ev.(EndFileEvent).Error, ShouldEqual, "unrecognized file format")

			ev, _ = parseEvent([]byte(`{"event":"end-file","reason":"whatever"}`))
			So(ev.(EndFileEvent).Reason, ShouldEqual, EndReasonUnknown)
			So(EndReasonStop.String(), ShouldEqual, "stop")
		})

		Convey("Property changes should carry name and data", func() {
			ev, ok := parseEvent([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":12.5}`))
			So(ok, ShouldBeTrue)
			So(ev, ShouldResemble, PropertyEvent{Name: "time-pos", Data: 12.5})
		})

		Convey("Replies, unknown events and garbage should be skipped", func() {
			for _, line := range []string{`{"data":null,"error":"success","request_id":3}`, `{"event":"seek"}`, `not json`} {
				_, ok := parseEvent([]byte(line))
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestParseTrackList(t *testing.T) {
	Convey("Given an mpv track-list", t, func() {
		var tracks any
		So(json.Unmarshal([]byte(`[
			{"id":1,"type":"video","codec":"h264","demux-w":1920,"demux-h":1080},
			{"id":1,"type":"audio","lang":"jpn","codec":"aac","demux-channel-count":2,"demux-samplerate":48000},
			{"id":2,"type":"audio","lang":"eng","title":"Commentary","codec":"opus","demux-channel-count":6,"demux-samplerate":48000},
			{"id":1,"type":"sub","lang":"eng","codec":"subrip"},
			"bogus"
		]`), &tracks), ShouldBeNil)

		info := parseTrackList(tracks)

		Convey("Streams should be grouped by kind", func() {
			So(info.Videos, ShouldHaveLength, 1)
			So(info.Audios, ShouldHaveLength, 2)
			So(info.Subtitles, ShouldHaveLength, 1)
		})

		Convey("Stream attributes should be kept", func() {
			So(info.Videos[0].Width, ShouldEqual, 1920)
			So(info.Videos[0].Height, ShouldEqual, 1080)
			So(info.Audios[1].ID, ShouldEqual, 2)
			So(info.Audios[1].Title, ShouldEqual, "Commentary")
			So(info.Audios[1].Channels, ShouldEqual, 6)
			So(info.Subtitles[0].Language, ShouldEqual, "eng")
		})

		Convey("Non list values should produce empty info", func() {
			So(parseTrackList(nil).IsEmpty(), ShouldBeTrue)
		})
	})
}

func TestMPV(t *testing.T) {
	Convey("Given an mpv engine that was never started", t, func() {
		m := NewMPV(Options{})

		Convey("It should report unavailable and stopped", func() {
			So(m.IsAvailable(), ShouldBeFalse)
			So(m.IsStopped(), ShouldBeTrue)
		})

		Convey("Commands should fail with ErrNotRunning", func() {
			So(m.Load("/a.mkv", LoadReplace, ""), ShouldEqual, ErrNotRunning)
			So(m.Pause(), ShouldEqual, ErrNotRunning)
			So(m.Stop(), ShouldEqual, ErrNotRunning)
			So(m.Seek(5), ShouldEqual, ErrNotRunning)
		})

		Convey("Getters should fall back to defaults", func() {
			So(m.Speed(), ShouldEqual, constant.SpeedDefault)
			So(m.Sid(), ShouldEqual, constant.SubtitleNone)
		})

		Convey("Headless arguments should disable outputs", func() {
			m = NewMPV(Options{Headless: true, ConfigDir: "/cfg/mpv"})
			So(m.args(), ShouldContain, "--vo=null")
			So(m.args(), ShouldContain, "--config-dir=/cfg/mpv")
		})
	})

	Convey("Given an mpv engine attached to a socket", t, func() {
		f := newFakeMPV(t)
		m := attached(f)

		Convey("Load should send loadfile with options after the index", func() {
			So(m.Load("/media/a.mkv", LoadReplace, "sid=no"), ShouldBeNil)
			So(f.last(), ShouldResemble, []any{"loadfile", "/media/a.mkv", "replace", float64(-1), "sid=no"})

			So(m.Load("/media/b.mkv", LoadReplace, ""), ShouldBeNil)
			So(f.last(), ShouldResemble, []any{"loadfile", "/media/b.mkv", "replace"})
		})

		Convey("Disabling a track should send no", func() {
			So(m.SetSid(-1), ShouldBeNil)
			So(f.last(), ShouldResemble, []any{"set_property", "sid", "no"})

			So(m.SetAid(2), ShouldBeNil)
			So(f.last(), ShouldResemble, []any{"set_property", "aid", float64(2)})
		})

		Convey("Track getters should map false to -1", func() {
			f.on("get_property", func(args []any) (any, string) {
				if args[0] == "aid" {
					return 2, "success"
				}
				return false, "success"
			})
			So(m.Aid(), ShouldEqual, 2)
			So(m.Sid(), ShouldEqual, -1)
		})

		Convey("Speed should be read back as float", func() {
			f.on("get_property", func([]any) (any, string) { return 1.5, "success" })
			So(m.Speed(), ShouldEqual, 1.5)
		})

		Convey("Options should be strings", func() {
			f.on("get_property_string", func([]any) (any, string) { return "eng,en", "success" })
			slang, err := m.Option("slang")
			So(err, ShouldBeNil)
			So(slang, ShouldEqual, "eng,en")

			So(m.SetOption("slang", "fre"), ShouldBeNil)
			So(f.last(), ShouldResemble, []any{"set_property_string", "slang", "fre"})
		})

		Convey("Unavailable properties should wrap ErrPropertyUnavailable", func() {
			f.on("get_property", func([]any) (any, string) { return nil, "property unavailable" })
			_, err := m.getFloatProperty("duration")
			So(errors.Is(err, ErrPropertyUnavailable), ShouldBeTrue)
		})

		Convey("MediaInfo should combine track-list and duration", func() {
			f.on("get_property", func(args []any) (any, string) {
				if args[0] == "duration" {
					return 125.0, "success"
				}
				return []any{
					map[string]any{"id": 1, "type": "video", "demux-w": 640, "demux-h": 480},
					map[string]any{"id": 3, "type": "sub", "lang": "eng"},
				}, "success"
			})

			info, err := m.MediaInfo()
			So(err, ShouldBeNil)
			So(info.Duration, ShouldEqual, 125.0)
			So(info.Videos[0].Width, ShouldEqual, 640)
			So(info.Subtitles[0].ID, ShouldEqual, 3)
		})
	})
}

func TestRemoveStaleSockets(t *testing.T) {
	Convey("Given a socket directory shared by several instances", t, func() {
		dir, err := os.MkdirTemp("", "pplay")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		live, err := net.Listen("unix", filepath.Join(dir, constant.Pplay+"-live.sock"))
		So(err, ShouldBeNil)
		defer live.Close()

		dead, err := net.Listen("unix", filepath.Join(dir, constant.Pplay+"-dead.sock"))
		So(err, ShouldBeNil)
		dead.(*net.UnixListener).SetUnlinkOnClose(false)
		So(dead.Close(), ShouldBeNil)

		other := filepath.Join(dir, "other.sock")
		So(os.WriteFile(other, nil, 0o600), ShouldBeNil)

		removeStaleSockets(dir)

		Convey("Sockets of running instances should be kept", func() {
			_, err := os.Stat(live.Addr().String())
			So(err, ShouldBeNil)
		})

		Convey("Sockets nobody listens on should be removed", func() {
			_, err := os.Stat(filepath.Join(dir, constant.Pplay+"-dead.sock"))
			So(os.IsNotExist(err), ShouldBeTrue)
		})

		Convey("Unrelated files should be left alone", func() {
			_, err := os.Stat(other)
			So(err, ShouldBeNil)
		})
	})
}

func TestEventState(t *testing.T) {
	Convey("Given an mpv engine receiving events", t, func() {
		m := NewMPV(Options{})
		m.socketPath = "unused"
		m.cmd = &exec.Cmd{}

		Convey("Property changes should update the cached state only", func() {
			m.onEvent(PropertyEvent{Name: "time-pos", Data: 42.0})
			m.onEvent(PropertyEvent{Name: "pause", Data: true})
			m.onEvent(PropertyEvent{Name: "duration", Data: 100.0})

			So(m.TimePos(), ShouldEqual, 42.0)
			So(m.Paused(), ShouldBeTrue)
			So(m.Duration(), ShouldEqual, 100.0)

			_, ok := m.PullEvent()
			So(ok, ShouldBeFalse)
		})

		Convey("Lifecycle events should be queued in order", func() {
			So(m.IsStopped(), ShouldBeTrue)

			m.onEvent(StartFileEvent{})
			m.onEvent(FileLoadedEvent{})
			So(m.IsStopped(), ShouldBeFalse)
			m.onEvent(EndFileEvent{Reason: EndReasonEOF})
			So(m.IsStopped(), ShouldBeTrue)

			for _, want := range []Event{StartFileEvent{}, FileLoadedEvent{}, EndFileEvent{Reason: EndReasonEOF}} {
				ev, ok := m.PullEvent()
				So(ok, ShouldBeTrue)
				So(ev, ShouldResemble, want)
			}

			_, ok := m.PullEvent()
			So(ok, ShouldBeFalse)

			m.onEvent(PropertyEvent{Name: "idle-active", Data: true})
			So(m.IsStopped(), ShouldBeTrue)
		})

		Convey("The engine should be stopped when end-file is handled, before idle-active arrives", func() {
			m.onEvent(StartFileEvent{})
			m.onEvent(EndFileEvent{Reason: EndReasonStop})
			So(m.IsStopped(), ShouldBeTrue)
		})

		Convey("A redirect should not stop the engine", func() {
			m.onEvent(StartFileEvent{})
			m.onEvent(EndFileEvent{Reason: EndReasonRedirect})
			So(m.IsStopped(), ShouldBeFalse)
		})
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given an event listener connected to mpv", t, func() {
		f := newFakeMPV(t)
		f.greeting = []string{
			`{"event":"start-file"}`,
			`{"event":"property-change","name":"pause","data":false}`,
			`{"event":"end-file","reason":"stop"}`,
		}

		received := make(chan Event, 8)
		listener := NewEventListener(f.path(), func(ev Event) { received <- ev })
		So(listener.Start(), ShouldBeNil)
		defer listener.Stop()

		Convey("Events should be delivered in order", func() {
			var got []Event
			timeout := time.After(2 * time.Second)
			for len(got) < 3 {
				select {
				case ev := <-received:
					got = append(got, ev)
				case <-timeout:
					So(len(got), ShouldEqual, 3)
					return
				}
			}

			So(got[0], ShouldResemble, StartFileEvent{})
			So(got[1], ShouldResemble, PropertyEvent{Name: "pause", Data: false})
			So(got[2], ShouldResemble, EndFileEvent{Reason: EndReasonStop})
		})
	})
}
