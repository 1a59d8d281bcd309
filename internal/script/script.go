package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/asyncui/internal/bridge"
	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/render"
)

// Option configures a Script.
type Option func(*Script)

// WithLogger sets the logger used by ui.log and for stream diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Script) {
		s.logger = l
	}
}

// WithStreamOptions sets the bridge options for streams a script opens
// without an explicit queue size.
func WithStreamOptions(opts ...bridge.Option) Option {
	return func(s *Script) {
		s.streamOpts = opts
	}
}

// WithInvalidate sets a function called after each document mutation made
// by the script, typically to schedule a repaint.
func WithInvalidate(fn func()) Option {
	return func(s *Script) {
		s.invalidate = fn
	}
}

// Script is a compiled-on-demand Lua component body.
type Script struct {
	name       string
	source     string
	logger     zerolog.Logger
	streamOpts []bridge.Option
	invalidate func()
}

// New creates a script from source. The name is used in error messages.
func New(name, source string, opts ...Option) *Script {
	s := &Script{
		name:   name,
		source: source,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadFile reads a script from path.
func LoadFile(path string, opts ...Option) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return New(filepath.Base(path), string(data), opts...), nil
}

// Name returns the script name.
func (s *Script) Name() string {
	return s.name
}

// Check compiles the script without running it.
func (s *Script) Check() error {
	if strings.TrimSpace(s.source) == "" {
		return ErrEmptySource
	}
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	if _, err := L.Load(strings.NewReader(s.source), s.name); err != nil {
		return fmt.Errorf("script %s: %w", s.name, err)
	}
	return nil
}

// Body returns a component body that runs the script against root's
// document. Each run gets a fresh Lua state owned by the body goroutine.
func (s *Script) Body(root *dom.Element) render.Body {
	return func(ctx context.Context) error {
		if root == nil {
			return ErrNilRoot
		}
		return s.run(ctx, root)
	}
}

// Run executes the script until it returns, fails or ctx ends.
func (s *Script) Run(ctx context.Context, root *dom.Element) error {
	return s.Body(root)(ctx)
}

func (s *Script) run(ctx context.Context, root *dom.Element) (err error) {
	if strings.TrimSpace(s.source) == "" {
		return ErrEmptySource
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)
	L.SetContext(ctx)

	rt := newRuntime(L, s, root)
	defer rt.close()
	rt.register()

	s.logger.Debug().Str("script", s.name).Msg("script started")
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script %s: lua panic: %v", s.name, r)
		}
		if err != nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		s.logger.Debug().Str("script", s.name).Err(err).Msg("script finished")
	}()

	fn, err := L.Load(strings.NewReader(s.source), s.name)
	if err != nil {
		return fmt.Errorf("script %s: %w", s.name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		var apiErr *lua.ApiError
		if errors.As(err, &apiErr) && apiErr.Object != nil {
			return fmt.Errorf("script %s: %s", s.name, apiErr.Object.String())
		}
		return fmt.Errorf("script %s: %w", s.name, err)
	}
	return nil
}

// openSafeLibraries opens the libraries a component body may use and
// removes the base functions that reach the filesystem.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}
