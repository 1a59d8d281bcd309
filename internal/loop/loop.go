package loop

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/metrics"
)

// DefaultQueueSize is the task queue capacity used when none is configured.
const DefaultQueueSize = 1024

// Task is a unit of work run on the loop goroutine.
type Task func()

// PanicHandler is called with the recovered value and stack when a task
// panics. The loop keeps running afterwards.
type PanicHandler func(r any, stack []byte)

// Option configures a Loop.
type Option func(*Loop)

// WithQueueSize sets the task queue capacity.
func WithQueueSize(size int) Option {
	return func(l *Loop) {
		if size > 0 {
			l.queueSize = size
		}
	}
}

// WithPanicHandler sets the handler for panicking tasks.
func WithPanicHandler(h PanicHandler) Option {
	return func(l *Loop) {
		l.panicHandler = h
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loop) {
		l.logger = log
	}
}

// Loop runs posted tasks sequentially on one goroutine.
type Loop struct {
	queueSize    int
	panicHandler PanicHandler
	logger       zerolog.Logger

	mu      sync.RWMutex // guards queue against Post racing Stop
	queue   chan Task
	running atomic.Bool
	done    chan struct{}

	posted   atomic.Uint64
	executed atomic.Uint64
	panicked atomic.Uint64
	dropped  atomic.Uint64
}

// New creates a stopped loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		queueSize: DefaultQueueSize,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.panicHandler == nil {
		l.panicHandler = func(r any, stack []byte) {
			l.logger.Error().Interface("panic", r).Bytes("stack", stack).Msg("task panicked")
		}
	}
	return l
}

// Start launches the loop goroutine.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running.Load() {
		return ErrAlreadyRunning
	}

	l.queue = make(chan Task, l.queueSize)
	l.done = make(chan struct{})
	l.running.Store(true)
	go l.run(l.queue, l.done)
	return nil
}

// Stop refuses new tasks and waits for queued ones to finish or for ctx to
// end. It must not be called from a task.
func (l *Loop) Stop(ctx context.Context) error {
	l.mu.Lock()
	if !l.running.Load() {
		l.mu.Unlock()
		return ErrNotRunning
	}
	l.running.Store(false)
	close(l.queue)
	done := l.done
	l.mu.Unlock()

	select {
	case <-done:
		l.logger.Debug().Msg("loop stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the loop and stops it when ctx ends, waiting for queued tasks.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return l.Stop(context.WithoutCancel(ctx))
}

// Post queues t without waiting. It is safe to call from any goroutine,
// including from a task.
func (l *Loop) Post(t Task) error {
	if t == nil {
		return ErrNilTask
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.running.Load() {
		return ErrNotRunning
	}

	select {
	case l.queue <- t:
		l.posted.Add(1)
		return nil
	default:
		l.dropped.Add(1)
		metrics.LoopTask("dropped")
		return ErrQueueFull
	}
}

// Do posts t and waits until it has run or ctx ends. Calling Do from a task
// deadlocks.
func (l *Loop) Do(ctx context.Context, t Task) error {
	if t == nil {
		return ErrNilTask
	}
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		t()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) run(queue <-chan Task, done chan<- struct{}) {
	defer close(done)

	for t := range queue {
		l.execute(t)
	}
}

// execute runs one task with panic recovery.
func (l *Loop) execute(t Task) {
	defer func() {
		if r := recover(); r != nil {
			l.panicked.Add(1)
			metrics.LoopTask("panic")
			stack := debug.Stack()
			func() {
				defer func() { _ = recover() }()
				l.panicHandler(r, stack)
			}()
		}
	}()

	t()
	l.executed.Add(1)
	metrics.LoopTask("ok")
}

// Running reports whether the loop accepts tasks.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// QueueDepth returns the number of queued tasks.
func (l *Loop) QueueDepth() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.running.Load() {
		return 0
	}
	return len(l.queue)
}

// Stats contains loop counters.
type Stats struct {
	Posted   uint64
	Executed uint64
	Panicked uint64
	Dropped  uint64
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Posted:   l.posted.Load(),
		Executed: l.executed.Load(),
		Panicked: l.panicked.Load(),
		Dropped:  l.dropped.Load(),
	}
}
