package dom

import (
	"sync/atomic"

	"github.com/dshills/asyncui/internal/event"
)

// listener is one registration in an element's listener set.
type listener struct {
	id      event.ListenerID
	kind    event.Kind
	fn      event.Listener
	removed atomic.Bool
}

// AddListener registers fn for kind on e. It implements event.Emitter.
func (e *Element) AddListener(kind event.Kind, fn event.Listener) (event.ListenerID, error) {
	if !kind.Valid() {
		return 0, event.ErrInvalidKind
	}
	if fn == nil {
		return 0, event.ErrNilCallback
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	if e.detachedLocked() {
		return 0, event.ErrDetached
	}

	e.doc.nextListener++
	l := &listener{
		id:   e.doc.nextListener,
		kind: kind,
		fn:   fn,
	}
	e.listeners = append(e.listeners, l)
	return l.id, nil
}

// RemoveListener unregisters a listener. Unknown IDs are ignored. It
// implements event.Emitter and may be called from inside a listener.
func (e *Element) RemoveListener(id event.ListenerID) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	for i, l := range e.listeners {
		if l.id == id {
			l.removed.Store(true)
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for kind.
// An empty kind counts every listener.
func (e *Element) ListenerCount(kind event.Kind) int {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	if kind == "" {
		return len(e.listeners)
	}
	n := 0
	for _, l := range e.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

// Dispatch delivers payload to the listeners for kind on target and, when
// bubbles is set, on each of its ancestors. It returns the number of
// listeners invoked. Listeners registered during the dispatch are not
// invoked; listeners removed during the dispatch are skipped.
func (d *Document) Dispatch(target *Element, kind event.Kind, payload any, bubbles bool) int {
	if target == nil {
		return 0
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0
	}
	var snapshot []*listener
	for el := target; el != nil; el = el.parent {
		for _, l := range el.listeners {
			if l.kind == kind {
				snapshot = append(snapshot, l)
			}
		}
		if !bubbles {
			break
		}
	}
	d.mu.Unlock()

	invoked := 0
	for _, l := range snapshot {
		if l.removed.Load() {
			continue
		}
		l.fn(payload)
		invoked++
	}
	return invoked
}
