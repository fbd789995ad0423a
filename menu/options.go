package menu

import (
	"github.com/pplay-cli/pplay/input"
)

// Options is a menu whose entries each open a named submenu.
// Back returns to the parent menu, Right opens the submenu of the selected entry.
type Options struct {
	*Menu

	parent   *Menu
	submenus map[string]*Menu
}

// NewOptions creates an options menu under parent. Entries are named after the submenus, in the given order.
func NewOptions(title string, parent *Menu, submenus ...*Menu) *Options {
	o := &Options{
		parent:   parent,
		submenus: make(map[string]*Menu, len(submenus)),
	}

	items := make([]Item, len(submenus))
	for i, sub := range submenus {
		items[i] = Item{Name: sub.Title, ID: i}
		o.submenus[sub.Title] = sub
		sub.OnBack = func() {
			o.SetVisible(true, true)
		}
	}

	o.Menu = New(title, items)
	o.Menu.OnSelect = o.open
	return o
}

// Submenu returns the submenu registered under name.
func (o *Options) Submenu(name string) *Menu {
	return o.submenus[name]
}

// Submenus returns every registered submenu.
func (o *Options) Submenus() []*Menu {
	subs := make([]*Menu, 0, len(o.submenus))
	for _, item := range o.items {
		subs = append(subs, o.submenus[item.Name])
	}
	return subs
}

func (o *Options) open(item Item) {
	sub, ok := o.submenus[item.Name]
	if !ok {
		return
	}
	o.SetVisible(false, false)
	sub.SetVisible(true, true)
}

// OnInput overrides the back behavior so the parent menu is revealed again.
func (o *Options) OnInput(keys input.Keys) bool {
	if !o.IsVisible() {
		return false
	}

	if keys.Has(input.Left | input.Fire2) {
		o.SetVisible(false, true)
		if o.parent != nil {
			o.parent.SetVisible(true, true)
		}
		return true
	}

	if keys.Has(input.Right) {
		if item, ok := o.Selected(); ok {
			o.open(item)
		}
		return true
	}

	return o.Menu.OnInput(keys)
}
