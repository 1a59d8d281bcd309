// Package bridge turns a push-based event source into a pull-based stream.
//
// A Stream is constructed over an event.Emitter and an event.Kind. It
// registers a listener immediately, so unsupported kinds and detached
// emitters are reported by New rather than on first use. Each fired event is
// stored in the stream's buffer and wakes the consumer parked on it, if any.
//
// The same Stream serves two access patterns:
//
//	// single-shot: wait for the next click
//	ev, err := s.Next(ctx)
//
//	// multi-shot: handle every click until ctx ends or the stream closes
//	for ev := range s.All(ctx) {
//	    ...
//	}
//
// Poll exposes the underlying non-blocking protocol for cooperative
// executors: a Ready poll takes the buffered value, a Pending poll parks the
// supplied Waker, which is woken by the next delivery.
//
// # Buffering
//
// By default a stream keeps only the most recent unobserved payload
// (LatestWins). A delivery that finds a value still buffered overwrites it.
// WithQueue selects a bounded FIFO instead, with DropOldest or DropNewest on
// overflow. Either way payloads are never reordered; they can only be
// coalesced or dropped.
//
// # Cancellation
//
// Close unregisters the listener and discards the buffer before it returns.
// No Waker is invoked after Close, and a fire after Close has no effect.
// Goroutines blocked in Next return ErrClosed. Polling a closed stream
// reports PollClosed and produces nothing.
package bridge
