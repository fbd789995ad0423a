// Package input defines the controller key model shared by the session and the terminal front-end.
package input

import "strings"

// Keys is a bit set of controller buttons pressed during one tick.
type Keys uint32

// Controller buttons. FireN follow the handheld layout: Fire1 confirm, Fire2 back,
// Fire3/Fire4 pause/resume, Fire5/Fire6 speed reset/double.
const (
	Up Keys = 1 << iota
	Down
	Left
	Right
	Fire1
	Fire2
	Fire3
	Fire4
	Fire5
	Fire6
	Start
	Select
)

// None is the empty key set.
const None Keys = 0

var names = []struct {
	key  Keys
	name string
}{
	{Up, "up"},
	{Down, "down"},
	{Left, "left"},
	{Right, "right"},
	{Fire1, "fire1"},
	{Fire2, "fire2"},
	{Fire3, "fire3"},
	{Fire4, "fire4"},
	{Fire5, "fire5"},
	{Fire6, "fire6"},
	{Start, "start"},
	{Select, "select"},
}

// Has reports whether any of the given buttons is pressed.
func (k Keys) Has(buttons Keys) bool {
	return k&buttons != 0
}

func (k Keys) String() string {
	if k == None {
		return "none"
	}

	var parts []string
	for _, n := range names {
		if k.Has(n.key) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Handler consumes a key set and reports whether it was handled.
type Handler func(keys Keys) bool
