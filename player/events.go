// Package player defines a unified abstraction layer for media playback engines.
package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/pplay-cli/pplay/log"
)

// Event is a playback lifecycle notification emitted by the engine.
type Event interface {
	event()
}

// StartFileEvent is emitted when the engine starts opening a file.
type StartFileEvent struct{}

// FileLoadedEvent is emitted once the file is opened and its streams are known.
type FileLoadedEvent struct{}

// EndFileEvent is emitted when playback of a file ends for any reason.
type EndFileEvent struct {
	Reason EndReason
	// Error carries the engine's description when Reason is EndReasonError.
	Error string
}

// PropertyEvent is emitted when an observed property changes.
type PropertyEvent struct {
	Name string
	Data any
}

func (StartFileEvent) event()  {}
func (FileLoadedEvent) event() {}
func (EndFileEvent) event()    {}
func (PropertyEvent) event()   {}

// EndReason explains why an EndFileEvent was emitted.
type EndReason int

const (
	EndReasonEOF EndReason = iota
	EndReasonStop
	EndReasonQuit
	EndReasonError
	EndReasonRedirect
	EndReasonUnknown
)

func (r EndReason) String() string {
	switch r {
	case EndReasonEOF:
		return "eof"
	case EndReasonStop:
		return "stop"
	case EndReasonQuit:
		return "quit"
	case EndReasonError:
		return "error"
	case EndReasonRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

func parseEndReason(s string) EndReason {
	switch s {
	case "eof":
		return EndReasonEOF
	case "stop":
		return EndReasonStop
	case "quit":
		return EndReasonQuit
	case "error":
		return EndReasonError
	case "redirect":
		return EndReasonRedirect
	default:
		return EndReasonUnknown
	}
}

// observedProperties are the properties the listener subscribes to.
var observedProperties = []string{
	"time-pos",
	"duration",
	"pause",
	"speed",
	"idle-active",
}

// EventCallback is the function signature for decoded engine events.
type EventCallback func(Event)

// EventListener reads the mpv event stream over a persistent IPC connection.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
	}
}

// Start opens the event connection, subscribes to the observed properties and starts the read loop.
// Property observation is per client, so the subscriptions are sent over the same connection.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observedProperties {
		payload, err := json.Marshal(ipcCommand{Command: []any{"observe_property", i + 1, name}})
		if err != nil {
			conn.Close()
			return fmt.Errorf("marshal observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true

	go el.readLoop()

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop terminates the event listener.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

// readLoop reads newline-delimited JSON messages until stopped or the connection fails.
func (el *EventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	reader := bufio.NewReader(el.conn)
	var pending []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		if err := el.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		chunk, err := reader.ReadBytes('\n')
		pending = append(pending, chunk...)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			select {
			case <-el.stopCh:
			default:
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		if ev, ok := parseEvent(pending); ok && el.callback != nil {
			el.callback(ev)
		}
		pending = pending[:0]
	}
}

// parseEvent decodes a single mpv JSON line. Command replies and unknown events are skipped.
func parseEvent(line []byte) (Event, bool) {
	var msg struct {
		Event     string `json:"event"`
		Name      string `json:"name"`
		Data      any    `json:"data"`
		Reason    string `json:"reason"`
		FileError string `json:"file_error"`
	}
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, false
	}

	switch msg.Event {
	case "start-file":
		return StartFileEvent{}, true
	case "file-loaded":
		return FileLoadedEvent{}, true
	case "end-file":
		return EndFileEvent{Reason: parseEndReason(msg.Reason), Error: msg.FileError}, true
	case "property-change":
		if msg.Name == "" {
			return nil, false
		}
		return PropertyEvent{Name: msg.Name, Data: msg.Data}, true
	default:
		return nil, false
	}
}
