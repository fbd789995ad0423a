// Package metadata persists the media information probed from played files, keyed by path.
package metadata

import (
	"sync"

	"github.com/metafates/gache"
	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/media"
	"github.com/pplay-cli/pplay/where"
	"github.com/samber/mo"
)

// record is the persisted form of a probed file.
type record struct {
	Size int64      `json:"size"`
	Info media.Info `json:"info"`
}

// Store is a disk-backed registry of media information.
type Store struct {
	cacher *gache.Cache[map[string]*record]
}

// New creates a store persisted at path.
func New(path string) *Store {
	return &Store{
		cacher: gache.New[map[string]*record](
			&gache.Options{
				Path:       path,
				FileSystem: filesystem.Gache(),
			},
		),
	}
}

var (
	defaultStore *Store
	once         sync.Once
)

// Default returns the store persisted at the standard media info location.
func Default() *Store {
	once.Do(func() {
		defaultStore = New(where.MediaInfo())
	})
	return defaultStore
}

func (s *Store) all() (map[string]*record, error) {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*record), nil
	}
	return cached, nil
}

// Save persists the media information of file. Files without streams are not recorded.
func (s *Store) Save(file *media.File) error {
	if file.Info.IsEmpty() {
		return nil
	}

	records, err := s.all()
	if err != nil {
		return err
	}

	records[file.Path] = &record{Size: file.Size, Info: file.Info}
	return s.cacher.Set(records)
}

// Get returns the media information recorded for path.
func (s *Store) Get(path string) mo.Option[media.Info] {
	records, err := s.all()
	if err != nil {
		return mo.None[media.Info]()
	}

	r, ok := records[path]
	if !ok {
		return mo.None[media.Info]()
	}
	return mo.Some(r.Info)
}

// Lookup returns the media information of file, ignoring records made when the file had another size.
func (s *Store) Lookup(file *media.File) mo.Option[media.Info] {
	records, err := s.all()
	if err != nil {
		return mo.None[media.Info]()
	}

	r, ok := records[file.Path]
	if !ok || r.Size != file.Size {
		return mo.None[media.Info]()
	}
	return mo.Some(r.Info)
}

// Remove deletes the record of path.
func (s *Store) Remove(path string) error {
	records, err := s.all()
	if err != nil {
		return err
	}

	delete(records, path)
	return s.cacher.Set(records)
}

// Len returns the number of recorded files.
func (s *Store) Len() (int, error) {
	records, err := s.all()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Clear removes every record.
func (s *Store) Clear() error {
	return s.cacher.Set(make(map[string]*record))
}

// Prune drops the records of files that no longer exist or changed size, and returns how many were dropped.
func (s *Store) Prune() (int, error) {
	records, err := s.all()
	if err != nil {
		return 0, err
	}

	fs := filesystem.API()
	var pruned int
	for path, r := range records {
		stat, err := fs.Stat(path)
		if err == nil && !stat.IsDir() && stat.Size() == r.Size {
			continue
		}

		delete(records, path)
		pruned++
	}

	if pruned == 0 {
		return 0, nil
	}
	return pruned, s.cacher.Set(records)
}
