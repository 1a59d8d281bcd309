package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/asyncui/internal/events"
)

// convertMod converts tcell modifiers to event modifiers.
func convertMod(m tcell.ModMask) events.Modifier {
	var mod events.Modifier
	if m&tcell.ModShift != 0 {
		mod |= events.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= events.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= events.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= events.ModMeta
	}
	return mod
}

// keyName returns the DOM-style name of a key event.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyBacktab:
		return "Tab"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyDelete:
		return "Delete"
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyHome:
		return "Home"
	case tcell.KeyEnd:
		return "End"
	case tcell.KeyPgUp:
		return "PageUp"
	case tcell.KeyPgDn:
		return "PageDown"
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return string(rune('a' + ev.Key() - tcell.KeyCtrlA))
	}
	if name, ok := tcell.KeyNames[ev.Key()]; ok {
		return name
	}
	return "Unidentified"
}

// pressedButton returns the single button that distinguishes a press, or
// ButtonNone.
func pressedButton(b tcell.ButtonMask) events.Button {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return events.ButtonPrimary
	case b&tcell.ButtonMiddle != 0:
		return events.ButtonAuxiliary
	case b&tcell.ButtonSecondary != 0:
		return events.ButtonSecondary
	default:
		return events.ButtonNone
	}
}

// wheelDelta returns the scroll direction of a wheel event.
func wheelDelta(b tcell.ButtonMask) (dx, dy int, btn events.Button, ok bool) {
	switch {
	case b&tcell.WheelUp != 0:
		return 0, -1, events.ButtonWheelUp, true
	case b&tcell.WheelDown != 0:
		return 0, 1, events.ButtonWheelDown, true
	case b&tcell.WheelLeft != 0:
		return -1, 0, events.ButtonWheelLeft, true
	case b&tcell.WheelRight != 0:
		return 1, 0, events.ButtonWheelRight, true
	default:
		return 0, 0, events.ButtonNone, false
	}
}
