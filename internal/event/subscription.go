package event

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/metrics"
)

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStateCancelled means the listener has been removed for good.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Callback receives the payload of each event delivered to a subscription.
type Callback func(payload any)

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Once cancels the subscription after the first delivered event.
	Once bool

	// Logger receives debug output for subscribe and cancel.
	Logger zerolog.Logger
}

// DefaultSubscriptionConfig returns a default subscription configuration.
func DefaultSubscriptionConfig() SubscriptionConfig {
	return SubscriptionConfig{
		Once:   false,
		Logger: zerolog.Nop(),
	}
}

// SubscriptionOption is a function that configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithOnce sets the subscription to auto-cancel after the first event.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(l zerolog.Logger) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Logger = l
	}
}

// Subscription owns one (emitter, kind, callback) registration.
type Subscription struct {
	id       string
	kind     Kind
	emitter  Emitter
	listener ListenerID
	callback Callback
	config   SubscriptionConfig
	state    atomic.Int32
}

// Subscribe registers cb with em for kind. Failures are reported here, never
// deferred to the first delivery, and are always a *SubscriptionError.
func Subscribe(em Emitter, kind Kind, cb Callback, opts ...SubscriptionOption) (*Subscription, error) {
	if em == nil {
		return nil, &SubscriptionError{Kind: kind, Err: ErrNilEmitter}
	}
	if !kind.Valid() {
		return nil, &SubscriptionError{Kind: kind, Err: ErrInvalidKind}
	}
	if cb == nil {
		return nil, &SubscriptionError{Kind: kind, Err: ErrNilCallback}
	}

	config := DefaultSubscriptionConfig()
	for _, opt := range opts {
		opt(&config)
	}

	s := &Subscription{
		id:       uuid.NewString(),
		kind:     kind,
		emitter:  em,
		callback: cb,
		config:   config,
	}
	s.state.Store(int32(SubscriptionStateActive))

	id, err := em.AddListener(kind, s.deliver)
	if err != nil {
		return nil, &SubscriptionError{Kind: kind, Err: err}
	}
	s.listener = id

	metrics.SubscriptionOpened(string(kind))
	config.Logger.Debug().
		Str("subscription", s.id).
		Str("kind", string(kind)).
		Msg("subscribed")
	return s, nil
}

// deliver is the listener handed to the emitter.
func (s *Subscription) deliver(payload any) {
	if !s.IsActive() {
		return
	}
	if s.config.Once {
		s.Cancel()
	}
	s.callback(payload)
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Kind returns the subscribed event kind.
func (s *Subscription) Kind() Kind {
	return s.kind
}

// State returns the current subscription state.
func (s *Subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// IsActive returns true if the subscription can receive events.
func (s *Subscription) IsActive() bool {
	return s.State() == SubscriptionStateActive
}

// Cancel removes the listener from the emitter. Only the first call has any
// effect; it is safe to call from inside the callback.
func (s *Subscription) Cancel() {
	if !s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStateCancelled)) {
		return
	}
	s.emitter.RemoveListener(s.listener)

	metrics.SubscriptionClosed(string(s.kind))
	s.config.Logger.Debug().
		Str("subscription", s.id).
		Str("kind", string(s.kind)).
		Msg("unsubscribed")
}

// Unsubscribe cancels sub. A nil or already cancelled subscription is a no-op.
func Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	sub.Cancel()
}
