package menu

import (
	"testing"

	"github.com/pplay-cli/pplay/input"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMenu(t *testing.T) {
	Convey("Given a menu with three items", t, func() {
		m := New("AUDIO", []Item{{Name: "a", ID: 1}, {Name: "b", ID: 2}, {Name: "c", ID: 3}})

		Convey("It starts hidden and ignores input", func() {
			So(m.IsVisible(), ShouldBeFalse)
			So(m.OnInput(input.Down), ShouldBeFalse)
			So(m.Index(), ShouldEqual, 0)
		})

		Convey("When visible", func() {
			m.SetVisible(true, false)

			Convey("Up wraps to the last item", func() {
				So(m.OnInput(input.Up), ShouldBeTrue)
				So(m.Index(), ShouldEqual, 2)
			})

			Convey("Down wraps to the first item", func() {
				m.Select(2)
				So(m.OnInput(input.Down), ShouldBeTrue)
				So(m.Index(), ShouldEqual, 0)
			})

			Convey("Fire1 selects the item under the cursor", func() {
				var got Item
				m.OnSelect = func(item Item) { got = item }
				m.Select(1)
				So(m.OnInput(input.Fire1), ShouldBeTrue)
				So(got.ID, ShouldEqual, 2)
			})

			Convey("Back hides the menu and calls OnBack", func() {
				called := false
				m.OnBack = func() { called = true }
				So(m.OnInput(input.Fire2), ShouldBeTrue)
				So(m.IsVisible(), ShouldBeFalse)
				So(called, ShouldBeTrue)
			})

			Convey("Unknown keys are not consumed", func() {
				So(m.OnInput(input.Start), ShouldBeFalse)
			})
		})

		Convey("SelectID moves to the matching item", func() {
			m.SelectID(3)
			So(m.Index(), ShouldEqual, 2)
			m.SelectID(42)
			So(m.Index(), ShouldEqual, 2)
		})

		Convey("Reset hides and rewinds", func() {
			m.SetVisible(true, false)
			m.Select(2)
			m.Reset()
			So(m.IsVisible(), ShouldBeFalse)
			So(m.Index(), ShouldEqual, 0)
		})
	})

	Convey("An empty menu has no selection", t, func() {
		m := New("EMPTY", nil)
		m.SetVisible(true, false)
		_, ok := m.Selected()
		So(ok, ShouldBeFalse)
		So(m.OnInput(input.Down), ShouldBeTrue)
		So(m.Index(), ShouldEqual, 0)
	})
}

func TestOptions(t *testing.T) {
	Convey("Given an options menu under a main menu", t, func() {
		main := New("MAIN", []Item{{Name: "Options"}})
		playback := New("Playback", []Item{{Name: "Seek step"}})
		display := New("Display", []Item{{Name: "Icons"}})
		opts := NewOptions("OPTIONS", main, playback, display)
		opts.SetVisible(true, false)

		Convey("Entries follow the submenus", func() {
			So(opts.Len(), ShouldEqual, 2)
			So(opts.Items()[1].Name, ShouldEqual, "Display")
			So(opts.Submenus(), ShouldResemble, []*Menu{playback, display})
		})

		Convey("Right opens the selected submenu", func() {
			opts.Select(1)
			So(opts.OnInput(input.Right), ShouldBeTrue)
			So(opts.IsVisible(), ShouldBeFalse)
			So(display.IsVisible(), ShouldBeTrue)

			Convey("And backing out of it reveals the options again", func() {
				So(display.OnInput(input.Left), ShouldBeTrue)
				So(display.IsVisible(), ShouldBeFalse)
				So(opts.IsVisible(), ShouldBeTrue)
			})
		})

		Convey("Left hides it and reveals the parent", func() {
			So(opts.OnInput(input.Left), ShouldBeTrue)
			So(opts.IsVisible(), ShouldBeFalse)
			So(main.IsVisible(), ShouldBeTrue)
		})

		Convey("Up and Down are handled by the embedded menu", func() {
			So(opts.OnInput(input.Down), ShouldBeTrue)
			So(opts.Index(), ShouldEqual, 1)
		})
	})
}
