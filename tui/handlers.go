// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pplay-cli/pplay/browse"
	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/media"
	"github.com/samber/mo"
)

type tickMsg time.Time

// dirLoadedMsg carries a directory listing. The cursor goes to index when present, otherwise to the entry at focus.
type dirLoadedMsg struct {
	dir   string
	files []*media.File
	index mo.Option[int]
	focus string
}

// playMsg asks the session to load a file.
type playMsg struct {
	file *media.File
}

func (b *statefulBubble) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(b.tickRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *statefulBubble) loadDirectory(dir string, index mo.Option[int], focus string) tea.Cmd {
	return func() tea.Msg {
		files, err := browse.List(dir)
		if err != nil {
			log.Errorf("could not list %s: %v", dir, err)
			return err
		}

		return dirLoadedMsg{
			dir:   dir,
			files: files,
			index: index,
			focus: focus,
		}
	}
}

// reload lists the current directory again, keeping the cursor.
func (b *statefulBubble) reload() {
	if b.dir == "" {
		return
	}

	files, err := browse.List(b.dir)
	if err != nil {
		log.Errorf("could not list %s: %v", b.dir, err)
		return
	}

	_ = b.setFiles(dirLoadedMsg{dir: b.dir, files: files, index: mo.Some(b.browserC.Index())})
}

// playPath resolves path into a media file and asks for it to be played.
func (b *statefulBubble) playPath(path string) tea.Cmd {
	return func() tea.Msg {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		stat, err := filesystem.API().Stat(abs)
		if err != nil {
			return err
		}

		return playMsg{file: media.NewFile(filepath.Dir(abs), stat)}
	}
}

func (b *statefulBubble) setFiles(msg dirLoadedMsg) tea.Cmd {
	b.dir = msg.dir
	b.browserC.Title = msg.dir

	cmd := b.browserC.SetItems(b.items(msg.files))

	index := 0
	if i, ok := msg.index.Get(); ok {
		index = i
	} else if msg.focus != "" {
		for i, f := range msg.files {
			if f.Path == msg.focus {
				index = i
				break
			}
		}
	}
	b.browserC.Select(index)

	return cmd
}

func (b *statefulBubble) items(files []*media.File) []list.Item {
	var playing string
	if file := b.session.File(); file != nil && b.session.State().Active() {
		playing = file.Path
	}

	items := make([]list.Item, len(files))
	for i, f := range files {
		item := &listItem{
			file:    f,
			playing: f.Path == playing,
			info:    mo.None[media.Info](),
		}
		if b.store != nil && !f.IsDir() {
			item.info = b.store.Lookup(f)
		}
		items[i] = item
	}
	return items
}

// refreshItems re-renders the browser entries, e.g. after media info was probed.
func (b *statefulBubble) refreshItems() tea.Cmd {
	files := make([]*media.File, 0, len(b.browserC.Items()))
	for _, it := range b.browserC.Items() {
		files = append(files, it.(*listItem).file)
	}

	index := b.browserC.Index()
	cmd := b.browserC.SetItems(b.items(files))
	b.browserC.Select(index)
	return cmd
}

// open enters a directory, goes up for the parent entry, or plays a file.
func (b *statefulBubble) open(file *media.File) tea.Cmd {
	if file.Name == browse.Parent {
		return b.up()
	}

	if file.IsDir() {
		b.cursors.Push(b.browserC.Index())
		return b.loadDirectory(file.Path, mo.None[int](), "")
	}

	if current := b.session.File(); current != nil && current.Path == file.Path && b.session.State().Active() {
		b.session.SetFullscreen(true, false)
		return nil
	}

	return func() tea.Msg {
		return playMsg{file: file}
	}
}

// up lists the parent directory, restoring the cursor on the directory that was left.
func (b *statefulBubble) up() tea.Cmd {
	parent := filepath.Dir(b.dir)
	if parent == b.dir {
		return nil
	}

	index := mo.None[int]()
	if i, ok := b.cursors.Pop(); ok {
		index = mo.Some(i)
	}

	return b.loadDirectory(parent, index, b.dir)
}

func (b *statefulBubble) play(file *media.File) {
	if err := b.session.Load(file); err != nil {
		log.Warnf("play %s: %v", file.Path, err)
	}
}
