package fswatch

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/bridge"
	"github.com/dshills/asyncui/internal/event"
	"github.com/dshills/asyncui/internal/loop"
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithLoop delivers events on l instead of the watcher's own goroutine.
func WithLoop(l *loop.Loop) Option {
	return func(w *Watcher) {
		w.loop = l
	}
}

// WithDebounce coalesces changes to the same path that arrive within d of
// each other. Zero delivers every notification as it arrives.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithIgnoreHidden skips paths whose base name starts with a dot.
func WithIgnoreHidden() Option {
	return func(w *Watcher) {
		w.ignoreHidden = true
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

type listener struct {
	id      event.ListenerID
	kind    event.Kind
	fn      event.Listener
	removed atomic.Bool
}

type pending struct {
	change Change
	timer  *time.Timer
}

// Watcher watches paths and emits a Change per notification. It implements
// event.Emitter.
type Watcher struct {
	watcher *fsnotify.Watcher

	loop         *loop.Loop
	debounce     time.Duration
	ignoreHidden bool
	logger       zerolog.Logger

	mu        sync.Mutex
	paths     map[string]bool
	listeners []*listener
	nextID    event.ListenerID
	pending   map[string]*pending
	closed    bool

	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New creates a watcher with nothing watched yet.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		logger:  zerolog.Nop(),
		paths:   make(map[string]bool),
		pending: make(map[string]*pending),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Watch starts watching a file or directory.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.paths[absPath] {
		return ErrAlreadyWatching
	}
	if err := w.watcher.Add(absPath); err != nil {
		return err
	}
	w.paths[absPath] = true
	return nil
}

// Unwatch stops watching a path.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.paths[absPath] {
		return ErrNotWatching
	}
	if err := w.watcher.Remove(absPath); err != nil {
		return err
	}
	delete(w.paths, absPath)
	return nil
}

// WatchedPaths returns every watched path, sorted.
func (w *Watcher) WatchedPaths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.paths))
	for p := range w.paths {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// AddListener implements event.Emitter. A closed watcher rejects new
// listeners with event.ErrDetached.
func (w *Watcher) AddListener(kind event.Kind, fn event.Listener) (event.ListenerID, error) {
	if !kind.Valid() {
		return 0, event.ErrInvalidKind
	}
	if fn == nil {
		return 0, event.ErrNilCallback
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, event.ErrDetached
	}
	w.nextID++
	l := &listener{id: w.nextID, kind: kind, fn: fn}
	w.listeners = append(w.listeners, l)
	return l.id, nil
}

// RemoveListener implements event.Emitter.
func (w *Watcher) RemoveListener(id event.ListenerID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, l := range w.listeners {
		if l.id == id {
			l.removed.Store(true)
			w.listeners = slices.Delete(w.listeners, i, i+1)
			return
		}
	}
}

// Close stops watching and drops every listener and pending change.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	for _, l := range w.listeners {
		l.removed.Store(true)
	}
	w.listeners = nil
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watch error")
			w.emit(KindError, err)
		}
	}
}

func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}
	if w.ignoreHidden {
		if base := filepath.Base(fsEvent.Name); len(base) > 0 && base[0] == '.' {
			return
		}
	}
	w.notify(Change{Path: fsEvent.Name, Op: op, Time: time.Now()})
}

// notify fires c now or merges it into the pending change for its path.
func (w *Watcher) notify(c Change) {
	if w.debounce <= 0 {
		w.fire(c)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if p, ok := w.pending[c.Path]; ok {
		p.change.Op |= c.Op
		p.change.Time = c.Time
		p.timer.Reset(w.debounce)
		return
	}
	path := c.Path
	w.pending[path] = &pending{
		change: c,
		timer:  time.AfterFunc(w.debounce, func() { w.flush(path) }),
	}
}

func (w *Watcher) flush(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if ok {
		delete(w.pending, path)
	}
	w.mu.Unlock()

	if ok {
		w.fire(p.change)
	}
}

// fire emits c under each kind it carries, then under KindChange.
func (w *Watcher) fire(c Change) {
	for _, ok := range opKinds {
		if c.Op.Has(ok.op) {
			w.emit(ok.kind, c)
		}
	}
	w.emit(KindChange, c)
}

// emit delivers payload to the listeners for kind, on the loop when one is
// configured.
func (w *Watcher) emit(kind event.Kind, payload any) {
	if w.loop == nil {
		w.dispatch(kind, payload)
		return
	}
	if err := w.loop.Post(func() { w.dispatch(kind, payload) }); err != nil {
		w.logger.Warn().Err(err).Str("kind", string(kind)).Msg("dropping file event")
	}
}

func (w *Watcher) dispatch(kind event.Kind, payload any) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	var snapshot []*listener
	for _, l := range w.listeners {
		if l.kind == kind {
			snapshot = append(snapshot, l)
		}
	}
	w.mu.Unlock()

	for _, l := range snapshot {
		if !l.removed.Load() {
			l.fn(payload)
		}
	}
}

// Until returns a stream of kind's payloads from w. P must be the payload
// type registered for kind: Change, or error for KindError.
func Until[P any](w *Watcher, kind event.Kind, opts ...bridge.Option) (*bridge.Stream[P], error) {
	if err := registry.Check(kind, "", reflect.TypeFor[P]()); err != nil {
		return nil, err
	}
	return bridge.New[P](w, kind, opts...)
}
