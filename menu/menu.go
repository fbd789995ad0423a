// Package menu implements a toolkit-agnostic selectable menu used by every overlay menu of the front-end.
package menu

import (
	"github.com/pplay-cli/pplay/input"
)

// Item is a single selectable menu entry.
type Item struct {
	Name string
	ID   int
}

// Menu is a titled list of items with a cursor and a visibility flag.
type Menu struct {
	Title string

	// OnSelect is called with the item under the cursor when it is confirmed.
	OnSelect func(item Item)
	// OnBack is called after the menu hid itself on a back press.
	OnBack func()

	items   []Item
	index   int
	visible bool
}

// New creates a hidden menu.
func New(title string, items []Item) *Menu {
	return &Menu{
		Title: title,
		items: items,
	}
}

// Items returns the menu entries.
func (m *Menu) Items() []Item {
	return m.items
}

// Len returns the number of entries.
func (m *Menu) Len() int {
	return len(m.items)
}

// Index returns the cursor position.
func (m *Menu) Index() int {
	return m.index
}

// Select moves the cursor, ignoring out of range positions.
func (m *Menu) Select(i int) {
	if i >= 0 && i < len(m.items) {
		m.index = i
	}
}

// SelectID moves the cursor to the first item carrying id.
func (m *Menu) SelectID(id int) {
	for i, item := range m.items {
		if item.ID == id {
			m.index = i
			return
		}
	}
}

// Selected returns the item under the cursor.
func (m *Menu) Selected() (Item, bool) {
	if len(m.items) == 0 {
		return Item{}, false
	}
	return m.items[m.index], true
}

// IsVisible reports whether the menu is shown.
func (m *Menu) IsVisible() bool {
	return m.visible
}

// SetVisible shows or hides the menu. Menus appear without a transition.
func (m *Menu) SetVisible(visible, _ bool) {
	m.visible = visible
}

// Reset hides the menu and moves the cursor back to the first item.
func (m *Menu) Reset() {
	m.visible = false
	m.index = 0
}

// OnInput handles directional navigation. Hidden menus never consume input.
func (m *Menu) OnInput(keys input.Keys) bool {
	if !m.visible {
		return false
	}

	switch {
	case keys.Has(input.Up):
		if n := len(m.items); n > 0 {
			m.index = (m.index - 1 + n) % n
		}
	case keys.Has(input.Down):
		if n := len(m.items); n > 0 {
			m.index = (m.index + 1) % n
		}
	case keys.Has(input.Fire1 | input.Right):
		if item, ok := m.Selected(); ok && m.OnSelect != nil {
			m.OnSelect(item)
		}
	case keys.Has(input.Left | input.Fire2):
		m.SetVisible(false, true)
		if m.OnBack != nil {
			m.OnBack()
		}
	default:
		return false
	}

	return true
}
