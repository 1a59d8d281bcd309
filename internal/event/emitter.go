package event

// Kind names a category of externally fired event, e.g. "click".
type Kind string

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether the kind is non-empty.
func (k Kind) Valid() bool {
	return k != ""
}

// ListenerID identifies one listener registration on an Emitter.
type ListenerID uint64

// Listener receives the payload of one fired event.
type Listener func(payload any)

// Emitter is the host boundary: anything that can register and unregister
// listeners for an event kind.
type Emitter interface {
	// AddListener registers fn for kind. It fails with ErrDetached or
	// ErrUnsupportedKind (possibly wrapped) when the registration cannot be made.
	AddListener(kind Kind, fn Listener) (ListenerID, error)

	// RemoveListener unregisters a listener. Unknown or already removed IDs
	// are ignored. It must be safe to call from inside a listener.
	RemoveListener(id ListenerID)
}
