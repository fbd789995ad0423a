package session

import (
	"github.com/pplay-cli/pplay/media"
	"github.com/pplay-cli/pplay/tween"
)

// Overlay is a widget whose visibility the session toggles.
type Overlay interface {
	IsVisible() bool
	SetVisible(visible, animate bool)
}

// Resettable is an overlay that can be returned to its initial state.
type Resettable interface {
	Overlay
	Reset()
}

// StatusDialog shows titled notices. Transient notices do not block input.
type StatusDialog interface {
	Show(title, message string, transient bool)
	Hide()
}

// Surface is the playback surface, animated when entering and leaving fullscreen.
type Surface interface {
	Overlay
	Play(direction tween.Direction)
}

// App is the surrounding application shell.
type App interface {
	IsExiting() bool
	Stop()
}

// Store persists probed media information.
type Store interface {
	Save(file *media.File) error
}

// UI references the overlays the session drives.
type UI struct {
	Filer     Overlay
	StatusBar Overlay
	Status    StatusDialog
	OSD       Resettable
	VideoMenu Resettable
	Surface   Surface
	App       App

	// Menus are further menus reached from the video menu. A visible one takes input like a track submenu.
	Menus []Resettable
}
