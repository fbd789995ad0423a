// Package tui provides the primary terminal user interface implementation.
package tui

type state int

const (
	browseState state = iota
	menuState
	playState
	osdState
)
