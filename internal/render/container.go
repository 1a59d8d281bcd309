package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/metrics"
)

// MountPoint attaches and detaches nodes in the surrounding tree.
// dom.Mount implements it.
type MountPoint interface {
	Attach(n dom.Node) error
	Detach(n dom.Node) error
}

// Body is the asynchronous computation a container keeps its node alive for.
// It must return once ctx is done, and it must not Close its own container.
type Body func(ctx context.Context) error

// Pending is a Body that never completes on its own.
func Pending(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// State is a container's lifecycle state.
type State int32

const (
	// Unattached means the container has not been started.
	Unattached State = iota

	// Attached means the node is in the tree and the body is running.
	Attached

	// Detached means the node has been removed for good.
	Detached
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Unattached:
		return "unattached"
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Container) {
		c.logger = l
	}
}

// WithName labels the container in log output.
func WithName(name string) Option {
	return func(c *Container) {
		c.name = name
	}
}

// Container owns a node's attachment for the duration of a body.
type Container struct {
	mu      sync.Mutex
	mount   MountPoint
	node    dom.Node
	body    Body
	state   State
	cancel  context.CancelFunc
	started bool
	closed  bool

	children []*Container

	done chan struct{}
	err  error

	name   string
	logger zerolog.Logger
}

// New creates an unattached container. Nothing happens until Start or Run.
func New(mount MountPoint, node dom.Node, body Body, opts ...Option) *Container {
	if body == nil {
		body = Pending
	}
	c := &Container{
		mount:  mount,
		node:   node,
		body:   body,
		done:   make(chan struct{}),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.name != "" {
		c.logger = c.logger.With().Str("container", c.name).Logger()
	}
	return c
}

// Start attaches the node and launches the body on its own goroutine. The
// body's context is derived from ctx and is cancelled by Close.
func (c *Container) Start(ctx context.Context) error {
	if c.node == nil {
		return ErrNilNode
	}
	if c.mount == nil {
		return ErrNilMount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Attached:
		return ErrAlreadyRunning
	case Detached:
		return ErrUseAfterCancel
	}

	if err := c.mount.Attach(c.node); err != nil {
		return fmt.Errorf("attach: %w", err)
	}
	c.state = Attached
	metrics.NodeAttached()
	c.logger.Debug().Msg("node attached")

	bctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.started = true
	go func() {
		c.finish(c.body(bctx))
	}()
	return nil
}

// finish records the body's result and detaches the node if Close has not
// already done so.
func (c *Container) finish(err error) {
	c.mu.Lock()
	if c.closed && errors.Is(err, context.Canceled) {
		err = nil
	}
	c.err = err
	children := c.detachLocked()
	cancel := c.cancel
	c.mu.Unlock()

	closeAll(children)
	cancel()
	close(c.done)
}

// Run starts the container and waits for its body to finish. It returns the
// body's error. Cancellation caused by Close is not an error.
func (c *Container) Run(ctx context.Context) error {
	if err := c.Start(ctx); err != nil {
		return err
	}
	return c.Wait()
}

// Wait blocks until the body of a started container has returned and
// returns its error. For a container that was closed before it started,
// Wait returns nil immediately; for one that was neither started nor closed
// it returns ErrNotStarted.
func (c *Container) Wait() error {
	c.mu.Lock()
	idle := !c.started && !c.closed
	c.mu.Unlock()
	if idle {
		return ErrNotStarted
	}

	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}

// Done is closed once the container has finished for good.
func (c *Container) Done() <-chan struct{} {
	return c.done
}

// Close detaches the node, closes adopted children, cancels the body and
// waits for it to return. When Close returns the node is out of the tree and
// every subscription the body released on exit is gone. Later calls wait the
// same way; closing an unattached container prevents it from starting.
func (c *Container) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		<-c.done
		return
	}
	c.closed = true
	started := c.started
	children := c.detachLocked()
	cancel := c.cancel
	c.mu.Unlock()

	closeAll(children)
	if cancel != nil {
		cancel()
	}
	if !started {
		close(c.done)
		return
	}
	<-c.done
}

// detachLocked moves the container to Detached, removing the node if it was
// attached. It returns the adopted children for the caller to close outside
// the lock.
func (c *Container) detachLocked() []*Container {
	prev := c.state
	c.state = Detached
	children := c.children
	c.children = nil

	if prev != Attached {
		return children
	}
	if err := c.mount.Detach(c.node); err != nil {
		c.logger.Warn().Err(err).Msg("detach failed")
	}
	metrics.NodeDetached()
	c.logger.Debug().Msg("node detached")
	return children
}

// closeAll closes containers newest first.
func closeAll(cs []*Container) {
	for _, child := range slices.Backward(cs) {
		child.Close()
	}
}

// Adopt makes child part of c's lifetime: closing or finishing c closes
// child first. Adopting into a detached container closes child at once.
func (c *Container) Adopt(child *Container) {
	if child == nil || child == c {
		return
	}

	c.mu.Lock()
	if c.state == Detached {
		c.mu.Unlock()
		child.Close()
		return
	}
	c.children = append(c.children, child)
	c.mu.Unlock()
}

// State returns the current lifecycle state.
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Node returns the node the container manages.
func (c *Container) Node() dom.Node {
	return c.node
}
