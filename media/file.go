// Package media defines the domain models for browsable media files and the stream metadata reported by the playback engine.
package media

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Type distinguishes directory entries.
type Type int

const (
	TypeFile Type = iota
	TypeDirectory
)

// File is a directory entry wrapped with the media information probed for it.
type File struct {
	Name  string         `json:"name"`
	Path  string         `json:"path"`
	Type  Type           `json:"type"`
	Size  int64          `json:"size"`
	Color lipgloss.Color `json:"-"`

	// Info is empty until the engine has loaded the file once.
	Info Info `json:"info"`
}

// NewFile wraps a directory entry located in dir.
func NewFile(dir string, entry os.FileInfo) *File {
	f := &File{
		Name: entry.Name(),
		Path: filepath.Join(dir, entry.Name()),
		Size: entry.Size(),
	}
	if entry.IsDir() {
		f.Type = TypeDirectory
	}
	return f
}

// IsDir reports whether the entry is a directory.
func (f *File) IsDir() bool {
	return f.Type == TypeDirectory
}

// Ext returns the lower-cased extension without the leading dot.
func (f *File) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
}

func (f *File) String() string {
	return f.Name
}
