package input

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"
)

// Handler accumulates input state between frames.
type Handler struct {
	MainPos  Vec
	Scroll   *Vec // Wheel motion this frame
	MainMove *Vec // Pointer motion this frame, y up

	MainHeld      bool
	AlternateHeld bool
	ControlHeld   bool
	ShiftHeld     bool

	MainPressed      bool // Set on the frame the button went down
	AlternatePressed bool

	keymap    KeyMap
	keystates map[KeyAction]bool
	previous  *Key
	moved     bool
}

// NewHandler creates a handler for keymap. Every bound action starts released.
func NewHandler(keymap KeyMap) *Handler {
	h := &Handler{
		keymap:    keymap,
		keystates: make(map[KeyAction]bool, len(keymap)),
	}
	for _, action := range keymap {
		h.keystates[action] = false
	}
	return h
}

// Reset clears the per-frame state. Call it once a frame has consumed input.
func (h *Handler) Reset() {
	h.MainPressed = false
	h.AlternatePressed = false
	h.MainMove = nil
	h.Scroll = nil
}

// HandleEvent converts a terminal event and applies the result.
func (h *Handler) HandleEvent(ev tcell.Event) {
	for _, e := range Convert(ev) {
		h.Update(e)
	}
}

// Update applies one game event.
func (h *Handler) Update(e Event) {
	switch e.Kind {
	case MainPos:
		if h.moved {
			d := Vec{X: e.Pos.X - h.MainPos.X, Y: h.MainPos.Y - e.Pos.Y}
			if d != (Vec{}) {
				h.MainMove = &d
			}
		}
		h.MainPos = e.Pos
		h.moved = true
	case MainPressed:
		if !h.MainHeld {
			h.MainPressed = true
		}
		h.MainHeld = true
	case MainReleased:
		h.MainHeld = false
	case AlternatePressed:
		if !h.AlternateHeld {
			h.AlternatePressed = true
		}
		h.AlternateHeld = true
	case AlternateReleased:
		h.AlternateHeld = false
	case MouseWheel:
		d := e.Delta
		h.Scroll = &d
	case ModifierChanged:
		h.ShiftHeld = e.Mod&tcell.ModShift != 0
		h.ControlHeld = e.Mod&tcell.ModCtrl != 0
	case KeyPressed:
		h.handleKey(e.Key, true)
		key := e.Key
		h.previous = &key
	case KeyReleased:
		h.handleKey(e.Key, false)
	}
}

func (h *Handler) handleKey(key Key, pressed bool) {
	action, ok := h.keymap[key]
	if !ok {
		return
	}
	slog.Debug("key action", "action", action.Action, "pressed", pressed)

	switch action.Press {
	case Oneshot:
		if pressed {
			if h.previous == nil || *h.previous != key {
				h.keystates[action] = true
			}
		} else {
			h.previous = nil
			h.keystates[action] = false
		}
	case Hold:
		h.keystates[action] = pressed
	case Toggle:
		if pressed {
			h.keystates[action] = !h.keystates[action]
		}
	}
}

// KeyPressed reports the current state of a bound action. Unbound actions
// are never pressed.
func (h *Handler) KeyPressed(action KeyAction) bool {
	return h.keystates[action]
}
