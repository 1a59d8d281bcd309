// Package app provides the main application structure and coordination
// for asyncui. It wires together the dispatch loop, the document, the
// terminal host and the root component, and manages the application
// lifecycle.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/bridge"
	"github.com/dshills/asyncui/internal/config"
	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/events"
	"github.com/dshills/asyncui/internal/fswatch"
	"github.com/dshills/asyncui/internal/logging"
	"github.com/dshills/asyncui/internal/loop"
	"github.com/dshills/asyncui/internal/render"
	"github.com/dshills/asyncui/internal/script"
	"github.com/dshills/asyncui/internal/term"
)

// ShutdownTimeout bounds how long Run waits for the loop to drain.
const ShutdownTimeout = 5 * time.Second

// Application is the central coordinator for all asyncui components.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	cfg     config.Config
	logger  zerolog.Logger
	logFile *os.File
	loop    *loop.Loop
	doc     *dom.Document

	// Terminal
	screen tcell.Screen
	host   *term.Host

	// Optional components
	watcher *fswatch.Watcher
	metrics *metricsServer
	script  *script.Script

	// Root component
	component *render.Container
	main      *dom.Element
	status    *dom.Element
	exited    chan error

	// State
	running atomic.Bool

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// Config is the resolved configuration.
	Config config.Config

	// ConfigPath is the file Config was loaded from. It is watched when
	// watch.reload is set.
	ConfigPath string

	// Screen overrides the terminal screen.
	Screen tcell.Screen

	// LogOutput receives log lines when log.file is empty. Nil discards
	// them, since the terminal owns stderr.
	LogOutput io.Writer

	// Body overrides the root component body. It defaults to the Lua
	// script named in the config, or the built-in demo.
	Body func(root *dom.Element, invalidate func()) render.Body
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		cfg:    opts.Config,
		exited: make(chan error, 1),
	}

	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	if err := app.cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 1. Logging
	out := app.opts.LogOutput
	if app.cfg.Log.File != "" {
		f, err := logging.OpenFile(app.cfg.Log.File)
		if err != nil {
			return &InitError{Component: "log", Err: err}
		}
		app.logFile = f
		out = f
	}
	if out == nil {
		out = io.Discard
	}
	// The level is applied globally so that a config reload can change it.
	app.logger = logging.New(logging.Options{
		Level:  zerolog.LevelTraceValue,
		Format: app.cfg.Log.Format,
		Output: out,
	})
	zerolog.SetGlobalLevel(app.cfg.Level())

	// 2. Dispatch loop
	app.loop = loop.New(
		loop.WithQueueSize(app.cfg.Loop.QueueSize),
		loop.WithLogger(logging.Component(app.logger, "loop")),
		loop.WithPanicHandler(func(r any, stack []byte) {
			app.logger.Error().Interface("panic", r).Bytes("stack", stack).Msg("task panicked")
		}),
	)

	// 3. Document
	app.doc = dom.NewDocument()

	// 4. Screen and terminal host
	app.screen = app.opts.Screen
	if app.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		app.screen = s
	}
	app.host = term.New(app.screen, app.doc, app.loop,
		term.WithMouse(app.cfg.Terminal.Mouse),
		term.WithPaste(app.cfg.Terminal.Paste),
		term.WithFocusReports(app.cfg.Terminal.Focus),
		term.WithLogger(logging.Component(app.logger, "term")),
	)

	// 5. Script
	if app.opts.Body == nil && app.cfg.Script.Path != "" {
		s, err := app.loadScript()
		if err != nil {
			return &InitError{Component: "script", Err: err}
		}
		app.script = s
	}

	return nil
}

// loadScript reads and compiles the configured script.
func (app *Application) loadScript() (*script.Script, error) {
	s, err := script.LoadFile(app.cfg.Script.Path,
		script.WithLogger(logging.Component(app.logger, "script")),
		script.WithStreamOptions(app.cfg.BridgeOptions()...),
		script.WithInvalidate(app.Invalidate),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run starts the application and blocks until ctx ends, the user quits
// with Ctrl+C or Escape, or the root component returns. A component error
// is returned; a normal exit returns nil. An Application runs once.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := app.loop.Start(); err != nil {
		return &InitError{Component: "loop", Err: err}
	}
	defer app.shutdown()

	if err := app.host.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}

	if app.cfg.Metrics.Enabled {
		m, err := startMetrics(app.cfg.Metrics.Addr, logging.Component(app.logger, "metrics"))
		if err != nil {
			return &InitError{Component: "metrics", Err: err}
		}
		app.setMetrics(m)
	}

	keys, err := events.UntilKeyDown(app.doc.Root(), bridge.WithQueue(16, bridge.DropOldest))
	if err != nil {
		return &InitError{Component: "keys", Err: err}
	}
	defer keys.Close()
	go app.quitOnKey(ctx, keys, cancel)

	if err := app.mount(ctx); err != nil {
		return &InitError{Component: "main", Err: err}
	}

	if err := app.startWatcher(ctx); err != nil {
		return &InitError{Component: "watcher", Err: err}
	}

	hostErr := make(chan error, 1)
	go func() { hostErr <- app.host.Run(ctx) }()
	app.Invalidate()

	app.logger.Info().Msg("application started")

	select {
	case <-ctx.Done():
	case err = <-app.exited:
		if err != nil {
			err = &ComponentError{Component: "main", Action: "run", Err: err}
		}
	case err = <-hostErr:
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}
	cancel()
	return err
}

// quitOnKey cancels the application on Ctrl+C or Escape.
func (app *Application) quitOnKey(ctx context.Context, keys *bridge.Stream[events.KeyboardEvent], cancel context.CancelFunc) {
	for ev := range keys.All(ctx) {
		if ev.Key == "Escape" || (ev.Key == "c" && ev.Modifiers.Has(events.ModCtrl)) {
			app.logger.Debug().Str("key", ev.Key).Msg("quit requested")
			cancel()
			return
		}
	}
}

// Invalidate schedules a repaint on the loop. It is safe to call from any
// goroutine.
func (app *Application) Invalidate() {
	if err := app.loop.Post(app.host.Paint); err != nil && !errors.Is(err, loop.ErrNotRunning) {
		app.logger.Debug().Err(err).Msg("repaint dropped")
	}
}

// shutdown performs cleanup in reverse initialization order.
func (app *Application) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	// 1. Root component
	if c := app.current(); c != nil {
		c.Close()
	}

	// 2. Watcher
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.Warn().Err(err).Msg("closing watcher")
		}
	}

	// 3. Metrics endpoint
	if m := app.metricsSrv(); m != nil {
		if err := m.Shutdown(ctx); err != nil {
			app.logger.Warn().Err(err).Msg("stopping metrics server")
		}
	}

	// 4. Terminal
	app.host.Fini()

	// 5. Loop
	if err := app.loop.Stop(ctx); err != nil {
		app.logger.Warn().Err(err).Msg("stopping loop")
	}

	// 6. Document
	app.doc.Close()

	app.logger.Info().Msg("application stopped")
	app.closeLog()
}

func (app *Application) closeLog() {
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the current configuration.
func (app *Application) Config() config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Document returns the document.
func (app *Application) Document() *dom.Document {
	return app.doc
}

// Loop returns the dispatch loop.
func (app *Application) Loop() *loop.Loop {
	return app.loop
}

// Host returns the terminal host.
func (app *Application) Host() *term.Host {
	return app.host
}

// Logger returns the application logger.
func (app *Application) Logger() zerolog.Logger {
	return app.logger
}

// MetricsAddr returns the address of the metrics endpoint, or "" when it
// is not serving.
func (app *Application) MetricsAddr() string {
	if m := app.metricsSrv(); m != nil {
		return m.Addr()
	}
	return ""
}

func (app *Application) metricsSrv() *metricsServer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.metrics
}

func (app *Application) setMetrics(m *metricsServer) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.metrics = m
}
