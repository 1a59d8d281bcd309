package events

import (
	"strings"
	"time"

	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/event"
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

// Modifier keys.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

// Has reports whether all of m2 are set in m.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// String returns the modifiers joined with "+", e.g. "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return "None"
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// Button identifies a pointer button.
type Button uint8

// Pointer buttons.
const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonAuxiliary
	ButtonSecondary
	ButtonWheelUp
	ButtonWheelDown
	ButtonWheelLeft
	ButtonWheelRight
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonPrimary:
		return "primary"
	case ButtonAuxiliary:
		return "auxiliary"
	case ButtonSecondary:
		return "secondary"
	case ButtonWheelUp:
		return "wheel-up"
	case ButtonWheelDown:
		return "wheel-down"
	case ButtonWheelLeft:
		return "wheel-left"
	case ButtonWheelRight:
		return "wheel-right"
	default:
		return "unknown"
	}
}

// Event is the payload shared by every event kind.
type Event struct {
	// Type is the event kind.
	Type event.Kind

	// Target is the element the event was fired at. During bubbling it is
	// still the original target, not the element the listener is on.
	Target *dom.Element

	// Time is when the host observed the input.
	Time time.Time

	// Data carries kind-specific text: inserted text for input and
	// composition events, the new value for change.
	Data string
}

// UIEvent is the payload of focus events.
type UIEvent struct {
	Event

	// Related is the element losing or gaining focus in the same
	// transition, if any.
	Related *dom.Element
}

// MouseEvent is the payload of pointer events.
type MouseEvent struct {
	UIEvent

	// X and Y are the pointer position in cells.
	X, Y int

	Button    Button
	Modifiers Modifier

	// Detail is the click count for click and dblclick.
	Detail int
}

// WheelEvent is the payload of wheel events.
type WheelEvent struct {
	MouseEvent

	DeltaX, DeltaY int
}

// KeyboardEvent is the payload of keydown and keyup.
type KeyboardEvent struct {
	UIEvent

	// Key is the key name, e.g. "Enter" or "a".
	Key string

	// Rune is the character produced, or 0 for non-character keys.
	Rune rune

	Modifiers Modifier
	Repeat    bool
}

// IsCharacter reports whether the key produced a printable character.
func (k KeyboardEvent) IsCharacter() bool {
	return k.Rune != 0
}

// CompositionEvent is the payload of composition events. The composed text
// is in Data.
type CompositionEvent struct {
	UIEvent
}

// Touch is one point of contact.
type Touch struct {
	ID   int
	X, Y int
}

// TouchEvent is the payload of touch events.
type TouchEvent struct {
	UIEvent

	Touches   []Touch
	Modifiers Modifier
}
