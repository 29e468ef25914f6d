package input

import "github.com/gdamore/tcell/v2"

// Vec is a terminal cell position or offset.
type Vec struct {
	X, Y int
}

// EventKind enumerates the game-level input events.
type EventKind uint8

const (
	None EventKind = iota
	MainPos
	MainPressed
	MainReleased
	AlternatePressed
	AlternateReleased
	MouseWheel
	ModifierChanged
	KeyPressed
	KeyReleased
)

var eventKindNames = [...]string{
	"none", "main_pos", "main_pressed", "main_released", "alternate_pressed",
	"alternate_released", "mouse_wheel", "modifier_changed", "key_pressed", "key_released",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is one game input event. Only the field matching Kind is set.
type Event struct {
	Kind  EventKind
	Pos   Vec           // MainPos
	Delta Vec           // MouseWheel
	Mod   tcell.ModMask // ModifierChanged
	Key   Key           // KeyPressed, KeyReleased
}

// Convert translates a terminal event into game events. A mouse report can
// carry a position, button state and wheel motion at once, so it expands to
// several events. Terminals never report key releases.
func Convert(ev tcell.Event) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return []Event{
			{Kind: ModifierChanged, Mod: ev.Modifiers()},
			{Kind: KeyPressed, Key: KeyOf(ev)},
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		out := []Event{
			{Kind: ModifierChanged, Mod: ev.Modifiers()},
			{Kind: MainPos, Pos: Vec{X: x, Y: y}},
		}
		buttons := ev.Buttons()
		if buttons&tcell.ButtonPrimary != 0 {
			out = append(out, Event{Kind: MainPressed})
		} else {
			out = append(out, Event{Kind: MainReleased})
		}
		if buttons&tcell.ButtonSecondary != 0 {
			out = append(out, Event{Kind: AlternatePressed})
		} else {
			out = append(out, Event{Kind: AlternateReleased})
		}
		if delta, ok := wheelDelta(buttons); ok {
			out = append(out, Event{Kind: MouseWheel, Delta: delta})
		}
		return out
	}
	return nil
}

func wheelDelta(buttons tcell.ButtonMask) (Vec, bool) {
	var d Vec
	if buttons&tcell.WheelUp != 0 {
		d.Y++
	}
	if buttons&tcell.WheelDown != 0 {
		d.Y--
	}
	if buttons&tcell.WheelRight != 0 {
		d.X++
	}
	if buttons&tcell.WheelLeft != 0 {
		d.X--
	}
	return d, d != Vec{}
}
