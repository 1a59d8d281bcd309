package event

import "errors"

// Sentinel errors for subscriptions and the kind registry.
var (
	// ErrSubscriptionFailed is matched by every construction-time failure.
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrDetached is returned when subscribing to an emitter that has been
	// removed from its host tree or shut down.
	ErrDetached = errors.New("emitter is detached")

	// ErrUnsupportedKind is returned when the emitter cannot fire the kind.
	ErrUnsupportedKind = errors.New("unsupported event kind")

	// ErrPayloadMismatch is returned when a kind is requested with a payload
	// type other than the one it was registered with.
	ErrPayloadMismatch = errors.New("payload type mismatch")

	// ErrKindConflict is returned when a kind is registered twice with
	// different payload types.
	ErrKindConflict = errors.New("event kind already registered with a different payload")

	// ErrInvalidKind is returned for an empty kind.
	ErrInvalidKind = errors.New("invalid event kind")

	// ErrNilCallback is returned when a nil callback is provided.
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrNilEmitter is returned when a nil emitter is provided.
	ErrNilEmitter = errors.New("emitter cannot be nil")
)

// SubscriptionError wraps a construction-time failure with the kind that was
// being subscribed to.
type SubscriptionError struct {
	// Kind is the event kind the caller asked for.
	Kind Kind

	// Target describes the emitter, when known.
	Target string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SubscriptionError) Error() string {
	msg := "subscribe to " + string(e.Kind)
	if e.Target != "" {
		msg += " on " + e.Target
	}
	return msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match SubscriptionError with ErrSubscriptionFailed.
func (e *SubscriptionError) Is(target error) bool {
	return target == ErrSubscriptionFailed
}
