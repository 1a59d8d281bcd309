package event

import (
	"errors"
	"sync"
)

// fakeEmitter is a minimal in-memory Emitter used by the tests.
type fakeEmitter struct {
	mu        sync.Mutex
	next      ListenerID
	listeners map[ListenerID]fakeListener
	removes   int
	addErr    error
}

type fakeListener struct {
	kind Kind
	fn   Listener
}

func newFakeEmitter() *fakeEmitter {
	return &fakeEmitter{listeners: make(map[ListenerID]fakeListener)}
}

func (f *fakeEmitter) AddListener(kind Kind, fn Listener) (ListenerID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.next++
	f.listeners[f.next] = fakeListener{kind: kind, fn: fn}
	return f.next, nil
}

func (f *fakeEmitter) RemoveListener(id ListenerID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.listeners[id]; !ok {
		return
	}
	delete(f.listeners, id)
	f.removes++
}

// fire invokes every listener for kind without holding the lock, so
// listeners may remove themselves.
func (f *fakeEmitter) fire(kind Kind, payload any) int {
	f.mu.Lock()
	var fns []Listener
	for _, l := range f.listeners {
		if l.kind == kind {
			fns = append(fns, l.fn)
		}
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(payload)
	}
	return len(fns)
}

func (f *fakeEmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

var errBoom = errors.New("boom")
