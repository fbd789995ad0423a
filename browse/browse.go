// Package browse lists the playable content of directories for the file browser.
package browse

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pplay-cli/pplay/color"
	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/media"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Parent is the name of the entry leading to the parent directory.
const Parent = ".."

// Options control which entries a listing contains.
type Options struct {
	// Extensions are the lower-cased file extensions, without dot, that are listed.
	Extensions []string
	ShowHidden bool
}

// DefaultOptions reads the listing options from the configuration.
func DefaultOptions() Options {
	return Options{
		Extensions: viper.GetStringSlice(key.BrowserExtensions),
		ShowHidden: viper.GetBool(key.BrowserShowHidden),
	}
}

// List returns the media files and sub-directories of dir using the configured options.
func List(dir string) ([]*media.File, error) {
	return ListWith(dir, DefaultOptions())
}

// ListWith returns the sub-directories of dir followed by its media files, both sorted by name.
// A parent entry comes first unless dir is the filesystem root.
func ListWith(dir string, options Options) ([]*media.File, error) {
	dir = filepath.Clean(dir)

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	extensions := lo.SliceToMap(options.Extensions, func(ext string) (string, struct{}) {
		return strings.TrimPrefix(strings.ToLower(ext), "."), struct{}{}
	})

	var dirs, files []*media.File
	for _, entry := range entries {
		if !options.ShowHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		file := media.NewFile(dir, entry)
		if file.IsDir() {
			file.Color = color.Folder
			dirs = append(dirs, file)
			continue
		}

		if _, ok := extensions[file.Ext()]; !ok {
			continue
		}
		files = append(files, file)
	}

	byName := func(list []*media.File) {
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}
	byName(dirs)
	byName(files)

	listing := make([]*media.File, 0, len(dirs)+len(files)+1)
	if parent := filepath.Dir(dir); parent != dir {
		listing = append(listing, &media.File{
			Name:  Parent,
			Path:  parent,
			Type:  media.TypeDirectory,
			Color: color.Folder,
		})
	}
	listing = append(listing, dirs...)
	listing = append(listing, files...)

	return listing, nil
}

// Rank returns the indexes of the targets fuzzy matching query, case-insensitively, best matches first.
func Rank(query string, targets []string) []int {
	query = strings.TrimSpace(query)

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) int {
		return r.OriginalIndex
	})
}
