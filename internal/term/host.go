package term

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/event"
	"github.com/dshills/asyncui/internal/events"
	"github.com/dshills/asyncui/internal/loop"
)

// DoubleClickInterval is the longest gap between two clicks that still
// counts as a double click.
const DoubleClickInterval = 500 * time.Millisecond

// ValueAttr is the attribute holding the text of editable elements.
const ValueAttr = "value"

// Option configures a Host.
type Option func(*Host)

// WithMouse enables or disables mouse reporting.
func WithMouse(enabled bool) Option {
	return func(h *Host) {
		h.mouse = enabled
	}
}

// WithPaste enables or disables bracketed paste.
func WithPaste(enabled bool) Option {
	return func(h *Host) {
		h.paste = enabled
	}
}

// WithFocusReports enables or disables terminal focus reporting.
func WithFocusReports(enabled bool) Option {
	return func(h *Host) {
		h.focusReports = enabled
	}
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Host) {
		h.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// Host connects a tcell screen to a document.
type Host struct {
	screen tcell.Screen
	doc    *dom.Document
	loop   *loop.Loop
	logger zerolog.Logger
	now    func() time.Time

	mouse        bool
	paste        bool
	focusReports bool

	initOnce sync.Once
	finiOnce sync.Once

	// The fields below are only touched on the loop goroutine.
	focus      *dom.Element
	focusValue string
	hover      *dom.Element
	buttons    tcell.ButtonMask
	pressed    *dom.Element
	pressedBtn events.Button
	lastClick  *dom.Element
	lastTime   time.Time
	clicks     int
	pasting    bool
	pasteBuf   strings.Builder
}

// New creates a host. Init must be called before Run.
func New(screen tcell.Screen, doc *dom.Document, l *loop.Loop, opts ...Option) *Host {
	h := &Host{
		screen:       screen,
		doc:          doc,
		loop:         l,
		logger:       zerolog.Nop(),
		now:          time.Now,
		mouse:        true,
		paste:        true,
		focusReports: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init initializes the screen and sizes the root element to it.
func (h *Host) Init() error {
	var err error
	h.initOnce.Do(func() {
		if err = h.screen.Init(); err != nil {
			return
		}
		if h.mouse {
			h.screen.EnableMouse()
		}
		if h.paste {
			h.screen.EnablePaste()
		}
		if h.focusReports {
			h.screen.EnableFocus()
		}
		w, ht := h.screen.Size()
		h.doc.Root().SetBounds(dom.Rect{Width: w, Height: ht})
	})
	return err
}

// Fini restores the terminal. PollEvent returns nil afterwards, which ends
// Run.
func (h *Host) Fini() {
	h.finiOnce.Do(h.screen.Fini)
}

// Run reads screen events and posts them to the loop until ctx ends or the
// screen is finalized. Each event is followed by a repaint.
func (h *Host) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, h.Fini)
	defer stop()

	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}
		err := h.loop.Post(func() {
			h.HandleEvent(ev)
			h.Paint()
		})
		if errors.Is(err, loop.ErrNotRunning) {
			return err
		}
		if err != nil {
			h.logger.Warn().Err(err).Msg("dropping terminal event")
		}
	}
}

// Focused returns the focused element, or nil.
func (h *Host) Focused() *dom.Element {
	return h.focus
}

// HandleEvent translates one tcell event into DOM events. It must run on
// the loop goroutine. It reports whether the event was understood.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if h.pasting {
			h.bufferPaste(e)
			return true
		}
		h.handleKey(e)
	case *tcell.EventMouse:
		h.handleMouse(e)
	case *tcell.EventPaste:
		h.handlePaste(e)
	case *tcell.EventFocus:
		h.handleWindowFocus(e.Focused)
	case *tcell.EventResize:
		w, ht := e.Size()
		h.doc.Root().SetBounds(dom.Rect{Width: w, Height: ht})
		h.screen.Sync()
	default:
		return false
	}
	return true
}

func (h *Host) base(kind event.Kind, target *dom.Element, data string) events.Event {
	return events.Event{Type: kind, Target: target, Time: h.now(), Data: data}
}

func (h *Host) fire(target *dom.Element, kind event.Kind, payload any) int {
	return h.doc.Dispatch(target, kind, payload, events.Bubbles(kind))
}

// keyTarget is the focused element, or the root when nothing has focus.
func (h *Host) keyTarget() *dom.Element {
	if h.focus != nil && h.focus.IsConnected() {
		return h.focus
	}
	return h.doc.Root()
}

func (h *Host) handleKey(e *tcell.EventKey) {
	target := h.keyTarget()
	ke := events.KeyboardEvent{
		Key:       keyName(e),
		Modifiers: convertMod(e.Modifiers()),
	}
	if e.Key() == tcell.KeyRune {
		ke.Rune = e.Rune()
	}

	ke.UIEvent = events.UIEvent{Event: h.base(events.KindKeyDown, target, "")}
	h.fire(target, events.KindKeyDown, ke)

	if isEditable(target) {
		h.edit(target, e, ke)
	}

	// Terminals report presses only.
	ke.UIEvent = events.UIEvent{Event: h.base(events.KindKeyUp, target, "")}
	h.fire(target, events.KindKeyUp, ke)
}

// edit applies a key press to an editable element's value.
func (h *Host) edit(target *dom.Element, e *tcell.EventKey, ke events.KeyboardEvent) {
	value, _ := target.Attr(ValueAttr)

	switch {
	case ke.Rune != 0 && ke.Modifiers&^events.ModShift == 0:
		h.insert(target, value, string(ke.Rune))
	case e.Key() == tcell.KeyBackspace || e.Key() == tcell.KeyBackspace2:
		if value == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(value)
		target.SetAttr(ValueAttr, value[:len(value)-size])
		h.fire(target, events.KindInput, h.base(events.KindInput, target, ""))
	case e.Key() == tcell.KeyEnter && target.Tag() == "textarea":
		h.insert(target, value, "\n")
	case e.Key() == tcell.KeyEnter:
		h.commit(target)
	}
}

func (h *Host) insert(target *dom.Element, value, text string) {
	target.SetAttr(ValueAttr, value+text)
	h.fire(target, events.KindInput, h.base(events.KindInput, target, text))
}

// commit fires change when the value differs from the one at focus time.
func (h *Host) commit(target *dom.Element) {
	value, _ := target.Attr(ValueAttr)
	if target != h.focus || value == h.focusValue {
		return
	}
	h.focusValue = value
	h.fire(target, events.KindChange, h.base(events.KindChange, target, value))
}

func (h *Host) handleMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	mods := convertMod(e.Modifiers())
	target := h.doc.HitTest(x, y)
	if target == nil {
		target = h.doc.Root()
	}

	mouse := func(kind event.Kind, el *dom.Element, btn events.Button, detail int) events.MouseEvent {
		return events.MouseEvent{
			UIEvent:   events.UIEvent{Event: h.base(kind, el, "")},
			X:         x,
			Y:         y,
			Button:    btn,
			Modifiers: mods,
			Detail:    detail,
		}
	}

	if dx, dy, btn, ok := wheelDelta(e.Buttons()); ok {
		h.fire(target, events.KindWheel, events.WheelEvent{
			MouseEvent: mouse(events.KindWheel, target, btn, 0),
			DeltaX:     dx,
			DeltaY:     dy,
		})
		return
	}

	h.updateHover(target, func(kind event.Kind, el *dom.Element) events.MouseEvent {
		return mouse(kind, el, events.ButtonNone, 0)
	})

	buttons := e.Buttons() & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)
	prev := h.buttons
	h.buttons = buttons

	switch {
	case prev == tcell.ButtonNone && buttons != tcell.ButtonNone:
		btn := pressedButton(buttons)
		h.pressed, h.pressedBtn = target, btn
		h.fire(target, events.KindMouseDown, mouse(events.KindMouseDown, target, btn, 0))
		h.Focus(target)
		if btn == events.ButtonSecondary {
			h.fire(target, events.KindContextMenu, mouse(events.KindContextMenu, target, btn, 0))
		}

	case prev != tcell.ButtonNone && buttons == tcell.ButtonNone:
		btn := h.pressedBtn
		h.fire(target, events.KindMouseUp, mouse(events.KindMouseUp, target, btn, 0))
		if h.pressed == target {
			h.click(target, btn, mouse)
		}
		h.pressed = nil

	default:
		h.fire(target, events.KindMouseMove, mouse(events.KindMouseMove, target, pressedButton(buttons), 0))
	}
}

// click fires click or auxclick, and dblclick for a quick second click.
func (h *Host) click(target *dom.Element, btn events.Button, mouse func(event.Kind, *dom.Element, events.Button, int) events.MouseEvent) {
	switch btn {
	case events.ButtonPrimary:
	case events.ButtonSecondary:
		return
	default:
		h.fire(target, events.KindAuxClick, mouse(events.KindAuxClick, target, btn, 1))
		return
	}

	now := h.now()
	if h.lastClick == target && now.Sub(h.lastTime) <= DoubleClickInterval {
		h.clicks++
	} else {
		h.clicks = 1
	}
	h.lastClick, h.lastTime = target, now

	h.fire(target, events.KindClick, mouse(events.KindClick, target, btn, h.clicks))
	if h.clicks == 2 {
		h.fire(target, events.KindDblClick, mouse(events.KindDblClick, target, btn, 2))
	}
}

// updateHover fires the over/out and enter/leave pairs when the pointer
// moves to another element.
func (h *Host) updateHover(target *dom.Element, mk func(event.Kind, *dom.Element) events.MouseEvent) {
	if target == h.hover {
		return
	}
	old := h.hover
	h.hover = target

	if old != nil && old.IsConnected() {
		h.fire(old, events.KindMouseOut, mk(events.KindMouseOut, old))
		h.fire(old, events.KindMouseLeave, mk(events.KindMouseLeave, old))
	}
	h.fire(target, events.KindMouseOver, mk(events.KindMouseOver, target))
	h.fire(target, events.KindMouseEnter, mk(events.KindMouseEnter, target))
}

// Focus moves keyboard focus to el, firing blur and focusout on the old
// element and focus and focusin on the new one. Leaving an edited element
// fires change. A nil el clears focus.
func (h *Host) Focus(el *dom.Element) {
	if el == h.focus {
		return
	}
	old := h.focus

	if old != nil && old.IsConnected() {
		if isEditable(old) {
			h.commit(old)
		}
		h.fire(old, events.KindBlur, events.UIEvent{Event: h.base(events.KindBlur, old, ""), Related: el})
		h.fire(old, events.KindFocusOut, events.UIEvent{Event: h.base(events.KindFocusOut, old, ""), Related: el})
	}

	h.focus = el
	h.focusValue = ""
	if el == nil {
		return
	}
	h.focusValue, _ = el.Attr(ValueAttr)
	h.fire(el, events.KindFocus, events.UIEvent{Event: h.base(events.KindFocus, el, ""), Related: old})
	h.fire(el, events.KindFocusIn, events.UIEvent{Event: h.base(events.KindFocusIn, el, ""), Related: old})
}

// handleWindowFocus mirrors terminal focus changes onto the focused element.
func (h *Host) handleWindowFocus(focused bool) {
	el := h.focus
	if el == nil || !el.IsConnected() {
		return
	}
	if focused {
		h.fire(el, events.KindFocus, events.UIEvent{Event: h.base(events.KindFocus, el, "")})
		h.fire(el, events.KindFocusIn, events.UIEvent{Event: h.base(events.KindFocusIn, el, "")})
		return
	}
	h.fire(el, events.KindBlur, events.UIEvent{Event: h.base(events.KindBlur, el, "")})
	h.fire(el, events.KindFocusOut, events.UIEvent{Event: h.base(events.KindFocusOut, el, "")})
}

func (h *Host) handlePaste(e *tcell.EventPaste) {
	if e.Start() {
		h.pasting = true
		h.pasteBuf.Reset()
		return
	}
	h.pasting = false
	text := h.pasteBuf.String()
	h.pasteBuf.Reset()

	target := h.keyTarget()
	if text == "" || !isEditable(target) {
		return
	}
	value, _ := target.Attr(ValueAttr)
	h.insert(target, value, text)
}

func (h *Host) bufferPaste(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		h.pasteBuf.WriteRune(e.Rune())
	case tcell.KeyEnter:
		h.pasteBuf.WriteByte('\n')
	case tcell.KeyTab:
		h.pasteBuf.WriteByte('\t')
	}
}

// isEditable reports whether el accepts text input.
func isEditable(el *dom.Element) bool {
	switch el.Tag() {
	case "input", "textarea":
		return true
	}
	return false
}
