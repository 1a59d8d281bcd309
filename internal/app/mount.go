package app

import (
	"context"

	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/logging"
	"github.com/dshills/asyncui/internal/render"
)

// mount lays out the status line and starts the root component.
func (app *Application) mount(ctx context.Context) error {
	root := app.doc.Root()
	b := root.Bounds()

	app.status = app.doc.CreateElement("footer")
	app.status.SetID("status")
	app.status.SetBounds(dom.Rect{Y: b.Height - 1, Width: b.Width, Height: 1})
	if err := root.AppendChild(app.status); err != nil {
		return err
	}
	return app.startComponent(ctx)
}

// startComponent mounts a fresh main element and runs the root body in it.
// When the body returns on its own its result is sent to exited.
func (app *Application) startComponent(ctx context.Context) error {
	root := app.doc.Root()
	b := root.Bounds()

	main := app.doc.CreateElement("main")
	main.SetID("main")
	main.SetBounds(dom.Rect{Width: b.Width, Height: max(b.Height-1, 0)})

	c := render.New(dom.NewMount(root, 0), main, app.body(main),
		render.WithLogger(logging.Component(app.logger, "render")),
		render.WithName("main"),
	)
	if err := c.Start(ctx); err != nil {
		return err
	}

	app.mu.Lock()
	app.component = c
	app.main = main
	app.mu.Unlock()

	go func() {
		<-c.Done()
		if app.current() != c {
			return
		}
		select {
		case app.exited <- c.Wait():
		default:
		}
	}()
	return nil
}

// remount replaces the running root component with a fresh one.
func (app *Application) remount(ctx context.Context) error {
	app.mu.Lock()
	old := app.component
	app.component = nil
	app.mu.Unlock()

	if old != nil {
		old.Close()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := app.startComponent(ctx); err != nil {
		return err
	}
	app.Invalidate()
	return nil
}

// body picks the root component body.
func (app *Application) body(main *dom.Element) render.Body {
	app.mu.RLock()
	s := app.script
	opts := app.cfg.BridgeOptions()
	app.mu.RUnlock()

	switch {
	case app.opts.Body != nil:
		return app.opts.Body(main, app.Invalidate)
	case s != nil:
		return s.Body(main)
	default:
		return Demo(main, app.Invalidate, opts...)
	}
}

func (app *Application) current() *render.Container {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.component
}

// Main returns the element the root component renders into.
func (app *Application) Main() *dom.Element {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.main
}

// SetStatus shows text on the status line.
func (app *Application) SetStatus(text string) {
	if app.status == nil {
		return
	}
	app.status.SetText(text)
	app.Invalidate()
}

// Status returns the status line text.
func (app *Application) Status() string {
	if app.status == nil {
		return ""
	}
	return dom.TextContent(app.status)
}
