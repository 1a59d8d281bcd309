package event

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"
)

// Entry describes one registered event kind.
type Entry struct {
	// Kind is the event name.
	Kind Kind

	// Payload is the type delivered for this kind.
	Payload reflect.Type

	// Targets lists the host target names (element tags) that can fire the
	// kind. Empty means any target.
	Targets []string
}

// Accepts reports whether target may fire this kind.
func (e Entry) Accepts(target string) bool {
	return len(e.Targets) == 0 || slices.Contains(e.Targets, target)
}

// Registry maps event kinds to payload types.
// It is thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Kind]Entry),
	}
}

// Register adds kind with the given payload type. Registering the same kind
// again with the same payload merges the target lists; a different payload
// is rejected with ErrKindConflict.
func (r *Registry) Register(kind Kind, payload reflect.Type, targets ...string) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	if payload == nil {
		return fmt.Errorf("register %s: nil payload type", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[kind]; ok {
		if existing.Payload != payload {
			return fmt.Errorf("register %s as %s (have %s): %w", kind, payload, existing.Payload, ErrKindConflict)
		}
		if len(existing.Targets) == 0 || len(targets) == 0 {
			existing.Targets = nil
		} else {
			for _, t := range targets {
				if !slices.Contains(existing.Targets, t) {
					existing.Targets = append(existing.Targets, t)
				}
			}
		}
		r.entries[kind] = existing
		return nil
	}

	r.entries[kind] = Entry{
		Kind:    kind,
		Payload: payload,
		Targets: slices.Clone(targets),
	}
	return nil
}

// Register adds kind with payload type P.
func Register[P any](r *Registry, kind Kind, targets ...string) error {
	return r.Register(kind, reflect.TypeFor[P](), targets...)
}

// MustRegister is like Register but panics on error. It is meant for tables
// that are fixed at build time.
func MustRegister[P any](r *Registry, kind Kind, targets ...string) {
	if err := Register[P](r, kind, targets...); err != nil {
		panic(err)
	}
}

// Lookup returns the entry for kind.
func (r *Registry) Lookup(kind Kind) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[kind]
	if ok {
		e.Targets = slices.Clone(e.Targets)
	}
	return e, ok
}

// Check verifies that target may subscribe to kind expecting payload.
// A nil payload skips the type check, which is what dynamically typed
// callers use.
func (r *Registry) Check(kind Kind, target string, payload reflect.Type) error {
	e, ok := r.Lookup(kind)
	if !ok {
		return &SubscriptionError{Kind: kind, Target: target, Err: ErrUnsupportedKind}
	}
	if !e.Accepts(target) {
		return &SubscriptionError{Kind: kind, Target: target, Err: ErrUnsupportedKind}
	}
	if payload != nil && payload != e.Payload {
		return &SubscriptionError{
			Kind:   kind,
			Target: target,
			Err:    fmt.Errorf("%w: want %s, got %s", ErrPayloadMismatch, e.Payload, payload),
		}
	}
	return nil
}

// Kinds returns all registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
