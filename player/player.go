// Package player defines a unified abstraction layer for media playback engines.
// The architecture supports multiple backends, with the primary implementation targeting 'mpv' via its JSON-IPC interface.
package player

import (
	"errors"

	"github.com/pplay-cli/pplay/media"
)

var (
	// ErrNotRunning is returned when the engine process is not available.
	ErrNotRunning = errors.New("playback engine is not running")

	// ErrPropertyUnavailable is returned when a property has no value, typically because nothing is loaded.
	ErrPropertyUnavailable = errors.New("property unavailable")
)

// LoadMode tells the engine what to do with the current content when loading a new resource.
type LoadMode string

const (
	LoadReplace    LoadMode = "replace"
	LoadAppend     LoadMode = "append"
	LoadAppendPlay LoadMode = "append-play"
)

// Engine encapsulates the capabilities the front-end needs from a media playback backend.
// Accessors are safe for concurrent use; the engine may run its own decoding threads.
type Engine interface {
	// Load requests the engine to open path. options is a comma separated list of per-file options.
	Load(path string, mode LoadMode, options string) error

	Pause() error
	Resume() error

	// Stop requests the end of playback. The engine confirms with an EndFileEvent.
	Stop() error

	// Seek moves the playback position by offset seconds.
	Seek(offset float64) error

	SetSpeed(speed float64) error
	Speed() float64

	// Track selection. A negative id disables the category.
	SetVid(id int) error
	SetAid(id int) error
	SetSid(id int) error
	Vid() int
	Aid() int
	Sid() int

	// IsStopped reports whether nothing is loaded.
	IsStopped() bool

	// IsAvailable reports whether the engine process is up and accepting commands.
	IsAvailable() bool

	// PullEvent returns the next pending lifecycle event without blocking.
	PullEvent() (Event, bool)

	// MediaInfo returns the structured stream metadata of the loaded file.
	MediaInfo() (media.Info, error)

	// Option and SetOption access engine options such as "slang" as strings.
	Option(name string) (string, error)
	SetOption(name, value string) error

	TimePos() float64
	Duration() float64
	Paused() bool

	// Close terminates the engine and releases all associated system resources.
	Close() error
}
