// Package input turns terminal events into game input state: pointer position,
// button and modifier state, and bound key actions.
package input

import "github.com/gdamore/tcell/v2"

// Action names something a key can be bound to.
type Action uint8

const (
	Pause Action = iota
	Undo
	Debug
)

func (a Action) String() string {
	switch a {
	case Pause:
		return "pause"
	case Undo:
		return "undo"
	case Debug:
		return "debug"
	}
	return "unknown"
}

// PressType decides how key presses map onto an action's state.
type PressType uint8

const (
	// Oneshot is true once per press and not again until the key is released.
	Oneshot PressType = iota
	// Hold is true while the key is down.
	Hold
	// Toggle flips on every press.
	Toggle
)

// KeyAction binds an action to its press behavior.
type KeyAction struct {
	Action Action
	Press  PressType
}

// Predefined key actions.
var (
	PauseAction = KeyAction{Action: Pause, Press: Oneshot}
	UndoAction  = KeyAction{Action: Undo, Press: Oneshot}
	DebugAction = KeyAction{Action: Debug, Press: Toggle}
)

// Key identifies a physical key independent of modifiers. Printable keys use
// tcell.KeyRune with the rune set.
type Key struct {
	Code tcell.Key
	Rune rune
}

// KeyOf returns the key an event refers to.
func KeyOf(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return Key{Code: tcell.KeyRune, Rune: ev.Rune()}
	}
	return Key{Code: ev.Key()}
}

// KeyMap binds keys to actions.
type KeyMap map[Key]KeyAction

// DefaultKeyMap binds z to undo, Escape to pause and F3 to the debug overlay.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		{Code: tcell.KeyRune, Rune: 'z'}: UndoAction,
		{Code: tcell.KeyEscape}:          PauseAction,
		{Code: tcell.KeyF3}:              DebugAction,
	}
}
