package bridge

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/event"
	"github.com/dshills/asyncui/internal/metrics"
)

// PollState is the outcome of a single Poll.
type PollState int

const (
	// PollPending means no payload was buffered; the waker has been parked.
	PollPending PollState = iota

	// PollReady means a payload was taken from the buffer.
	PollReady

	// PollClosed means the stream has been closed and will produce nothing.
	PollClosed
)

// String returns a human-readable poll state name.
func (s PollState) String() string {
	switch s {
	case PollPending:
		return "pending"
	case PollReady:
		return "ready"
	case PollClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Waker is told that a parked consumer should poll again. Wake is called
// with the stream's lock held and must not block or call back into the stream.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to Waker.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() {
	f()
}

// Stats counts what a stream has seen.
type Stats struct {
	// Delivered is the number of payloads accepted into the buffer.
	Delivered uint64

	// Observed is the number of payloads handed to the consumer.
	Observed uint64

	// Dropped is the number of payloads overwritten or discarded unobserved.
	Dropped uint64
}

// Stream is a dual single-shot/multi-shot producer of payloads of type P
// for one event kind on one emitter. It is meant to be owned by a single
// consumer.
type Stream[P any] struct {
	mu     sync.Mutex
	sub    *event.Subscription
	kind   event.Kind
	config config

	buf    []P
	waker  Waker
	closed bool
	done   chan struct{}
	stats  Stats
	logger zerolog.Logger
}

// New subscribes to kind on em and returns a stream of its payloads.
// Registration failures are returned immediately as *event.SubscriptionError.
func New[P any](em event.Emitter, kind event.Kind, opts ...Option) (*Stream[P], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Stream[P]{
		kind:   kind,
		config: cfg,
		buf:    make([]P, 0, cfg.capacity),
		done:   make(chan struct{}),
		logger: cfg.logger.With().Str("kind", string(kind)).Logger(),
	}

	sub, err := event.Subscribe(em, kind, s.deliver, event.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}
	s.sub = sub
	return s, nil
}

// deliver is the subscription callback. It runs on the host's dispatch loop.
func (s *Stream[P]) deliver(payload any) {
	p, ok := payload.(P)
	if !ok {
		s.logger.Warn().
			Str("payload", fmt.Sprintf("%T", payload)).
			Str("want", reflect.TypeFor[P]().String()).
			Msg("dropping payload of unexpected type")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	switch {
	case s.config.policy == LatestWins && len(s.buf) > 0:
		s.buf[0] = p
		s.dropLocked("coalesced")
	case s.config.policy == Queue && len(s.buf) >= s.config.capacity:
		if s.config.overflow == DropNewest {
			s.dropLocked("queue full, dropped newest")
			return
		}
		var zero P
		s.buf[0] = zero
		s.buf = append(s.buf[1:], p)
		s.dropLocked("queue full, dropped oldest")
	default:
		s.buf = append(s.buf, p)
	}

	s.stats.Delivered++
	metrics.EventDelivered(string(s.kind))

	if w := s.waker; w != nil {
		s.waker = nil
		w.Wake()
	}
}

func (s *Stream[P]) dropLocked(reason string) {
	s.stats.Dropped++
	metrics.EventDropped(string(s.kind))
	s.logger.Debug().Msg(reason)
}

// Poll makes one non-blocking attempt to take a payload. When nothing is
// buffered it parks w, replacing any previously parked waker, and returns
// PollPending; the next delivery wakes w exactly once. A nil w polls without
// parking.
func (s *Stream[P]) Poll(w Waker) (P, PollState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero P
	if s.closed {
		return zero, PollClosed
	}
	if len(s.buf) > 0 {
		p := s.buf[0]
		s.buf[0] = zero
		s.buf = s.buf[1:]
		s.stats.Observed++
		return p, PollReady
	}
	if w != nil {
		s.waker = w
	}
	return zero, PollPending
}

// TryNext takes the buffered payload if there is one, without parking.
func (s *Stream[P]) TryNext() (P, bool) {
	p, state := s.Poll(nil)
	return p, state == PollReady
}

// chanWaker wakes a goroutine blocked in next.
type chanWaker struct {
	ch chan struct{}
}

func newChanWaker() *chanWaker {
	return &chanWaker{ch: make(chan struct{}, 1)}
}

func (w *chanWaker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// Next blocks until the next payload is available. A payload buffered before
// the call is returned immediately. It returns ErrClosed once the stream is
// closed and ctx.Err() when ctx ends first.
func (s *Stream[P]) Next(ctx context.Context) (P, error) {
	return s.next(ctx, newChanWaker())
}

func (s *Stream[P]) next(ctx context.Context, w *chanWaker) (P, error) {
	var zero P
	for {
		p, state := s.Poll(w)
		switch state {
		case PollReady:
			return p, nil
		case PollClosed:
			return zero, ErrClosed
		}

		select {
		case <-w.ch:
		case <-s.done:
			return zero, ErrClosed
		case <-ctx.Done():
			s.unpark(w)
			return zero, ctx.Err()
		}
	}
}

// unpark clears w if it is still the parked waker.
func (s *Stream[P]) unpark(w Waker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.waker == w {
		s.waker = nil
	}
}

// All returns an iterator over every subsequent payload. Iteration ends when
// ctx ends, the stream is closed, or the loop body breaks. Breaking does not
// close the stream.
func (s *Stream[P]) All(ctx context.Context) iter.Seq[P] {
	return func(yield func(P) bool) {
		w := newChanWaker()
		for {
			p, err := s.next(ctx, w)
			if err != nil {
				return
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Close unregisters the listener, discards any buffered payload and forgets
// the parked waker. Only the first call has any effect.
func (s *Stream[P]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if n := len(s.buf); n > 0 {
		s.stats.Dropped += uint64(n)
	}
	s.buf = nil
	s.waker = nil
	close(s.done)
	s.mu.Unlock()

	s.sub.Cancel()
	s.logger.Debug().Msg("stream closed")
}

// Closed reports whether Close has been called.
func (s *Stream[P]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Kind returns the event kind the stream is subscribed to.
func (s *Stream[P]) Kind() event.Kind {
	return s.kind
}

// Policy returns the buffering policy.
func (s *Stream[P]) Policy() Policy {
	return s.config.policy
}

// Pending returns the number of buffered, unobserved payloads.
func (s *Stream[P]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.buf)
}

// Stats returns a snapshot of the stream's counters.
func (s *Stream[P]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats
}
