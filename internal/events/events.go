package events

import (
	"reflect"

	"github.com/dshills/asyncui/internal/bridge"
	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/event"
)

// TableEntry describes one generated event kind.
type TableEntry struct {
	Kind     event.Kind
	Accessor string
	Payload  string
	Group    string

	// Targets lists the element tags that emit the kind. Empty means any.
	Targets []string
}

var registry = newRegistry()

func newRegistry() *event.Registry {
	r := event.NewRegistry()
	registerTable(r)
	return r
}

// Registry returns the registry holding every kind in Table.
func Registry() *event.Registry {
	return registry
}

// Until subscribes to kind on el and returns a stream of its payloads. The
// kind must be registered for el's tag with payload type P; otherwise a
// *event.SubscriptionError is returned and no listener is installed.
func Until[P any](el *dom.Element, kind event.Kind, opts ...bridge.Option) (*bridge.Stream[P], error) {
	if el == nil {
		return nil, &event.SubscriptionError{Kind: kind, Err: event.ErrNilEmitter}
	}
	if err := registry.Check(kind, el.Tag(), reflect.TypeFor[P]()); err != nil {
		return nil, err
	}
	return bridge.New[P](el, kind, opts...)
}

// UntilKind is Until for callers that only know the kind at run time. The
// stream yields the registered payload type boxed in an any.
func UntilKind(el *dom.Element, kind event.Kind, opts ...bridge.Option) (*bridge.Stream[any], error) {
	if el == nil {
		return nil, &event.SubscriptionError{Kind: kind, Err: event.ErrNilEmitter}
	}
	if err := registry.Check(kind, el.Tag(), nil); err != nil {
		return nil, err
	}
	return bridge.New[any](el, kind, opts...)
}

// Lookup returns the table entry for kind.
func Lookup(kind event.Kind) (TableEntry, bool) {
	for _, e := range Table {
		if e.Kind == kind {
			return e, true
		}
	}
	return TableEntry{}, false
}

// Bubbles reports whether kind propagates to ancestors when fired.
func Bubbles(kind event.Kind) bool {
	switch kind {
	case KindFocus, KindBlur, KindMouseEnter, KindMouseLeave, KindScroll,
		KindError, KindCancel, KindFullscreenError:
		return false
	default:
		return true
	}
}
