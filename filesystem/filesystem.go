// Package filesystem routes every disk access pplay makes through one swappable afero backend,
// so tests can run against memory instead of the real disk.
package filesystem

import (
	"io"
	"os"

	"github.com/metafates/gache"
	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the current backend.
func API() afero.Afero {
	return backend
}

// Use replaces the backend with fs.
func Use(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

// SetOsFs switches back to the real disk.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs switches to a fresh in-memory filesystem.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}

// Gache exposes the backend to gache caches. Lookups happen per call,
// so a cache built before SetMemMapFs still writes to the new backend.
func Gache() gache.FileSystem {
	return gacheFs{}
}

type gacheFs struct{}

func (gacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (gacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
