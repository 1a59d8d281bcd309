// Package event provides the subscription capability that the rest of asyncui
// is built on.
//
// A host object that fires events (a DOM-like element, a file watcher, a
// terminal) implements Emitter. Code that wants to observe an event kind calls
// Subscribe, which registers a listener with the emitter and returns a
// Subscription owning exactly that one registration.
//
// # Lifecycle
//
//	sub, err := event.Subscribe(button, "click", func(payload any) {
//	    // runs on the host's dispatch loop
//	})
//	if err != nil {
//	    return err // construction-time failure, e.g. unsupported kind
//	}
//	defer sub.Cancel()
//
// Cancel deregisters the listener exactly once. Calling it again, or calling
// it from inside the listener while the host is dispatching to it, is a no-op.
// Once Cancel has returned the callback is never invoked again, even if the
// host had already queued a delivery for it.
//
// # Registry
//
// Registry records which payload type belongs to each Kind and which host
// targets accept it. It is the runtime half of the event table in package
// events; the generated accessors consult it before subscribing so an
// unsupported combination fails at construction rather than silently never
// firing.
//
// # Thread Safety
//
// Subscription and Registry are safe for concurrent use. Emitter
// implementations must allow RemoveListener to be called from inside a
// listener.
package event
