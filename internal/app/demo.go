package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/dshills/asyncui/internal/bridge"
	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/events"
	"github.com/dshills/asyncui/internal/render"
)

// Element ids used by the demo.
const (
	DemoCounterID = "counter"
	DemoInputID   = "name"
	DemoEchoID    = "echo"
	DemoKeyID     = "last-key"
)

// DemoTitle is the first line of the demo.
const DemoTitle = "asyncui demo: click the button, type in the box, Esc quits"

// Demo returns the built-in root component body. It renders a title, a
// click counter, a text field with an echo line and the last key pressed.
// Each part is a child container whose body awaits its own events.
func Demo(main *dom.Element, invalidate func(), opts ...bridge.Option) render.Body {
	return func(ctx context.Context) error {
		doc := main.Document()
		width := main.Bounds().Width
		mount := dom.NewMount(main, -1)

		line := func(tag, id string, y, w int) *dom.Element {
			el := doc.CreateElement(tag)
			el.SetID(id)
			el.SetBounds(dom.Rect{X: 0, Y: y, Width: w, Height: 1})
			return el
		}
		button := line("button", DemoCounterID, 2, 20)
		input := line("input", DemoInputID, 4, 30)
		echo := line("span", DemoEchoID, 5, width)
		key := line("span", DemoKeyID, 7, width)

		children := []*render.Container{
			render.NewText(doc, DemoTitle).Render(mount),
			render.New(mount, button, counter(button, invalidate, opts...)),
			render.New(mount, input, nil),
			render.New(mount, echo, echoField(input, echo, invalidate)),
			render.New(mount, key, lastKey(doc.Root(), key, invalidate, opts...)),
		}
		defer func() {
			for _, c := range slices.Backward(children) {
				c.Close()
			}
		}()

		errc := make(chan error, len(children))
		for _, c := range children {
			if err := c.Start(ctx); err != nil {
				return err
			}
			go func() {
				<-c.Done()
				errc <- c.Wait()
			}()
		}
		invalidate()

		for range children {
			select {
			case <-ctx.Done():
				return nil
			case err := <-errc:
				if err != nil && ctx.Err() == nil {
					return err
				}
			}
		}
		return nil
	}
}

// counter counts clicks on button.
func counter(button *dom.Element, invalidate func(), opts ...bridge.Option) render.Body {
	return func(ctx context.Context) error {
		button.SetText(counterLabel(0))

		clicks, err := events.UntilClick(button, opts...)
		if err != nil {
			return err
		}
		defer clicks.Close()

		n := 0
		for range clicks.All(ctx) {
			n++
			button.SetText(counterLabel(n))
			invalidate()
		}
		return nil
	}
}

func counterLabel(n int) string {
	return fmt.Sprintf("[ clicked %d ]", n)
}

// echoField mirrors input's value on echo while typing and marks it when
// the value is committed. Both streams share one waker.
func echoField(input, echo *dom.Element, invalidate func()) render.Body {
	return func(ctx context.Context) error {
		echo.SetText("typed: ")

		inputs, err := events.UntilInput(input, bridge.WithQueue(32, bridge.DropOldest))
		if err != nil {
			return err
		}
		defer inputs.Close()
		changes, err := events.UntilChange(input)
		if err != nil {
			return err
		}
		defer changes.Close()

		wake := make(chan struct{}, 1)
		w := bridge.WakerFunc(func() {
			select {
			case wake <- struct{}{}:
			default:
			}
		})

		for {
			updated, open := echoPass(input, echo, inputs, changes, w)
			if !open {
				return nil
			}
			if updated != nil {
				invalidate()
				continue
			}

			select {
			case <-wake:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// echoPass polls both streams once and applies whatever is ready, the
// keystroke before the commit. It returns the labels it set, nil when
// nothing was ready, and false once either stream is closed.
func echoPass(input, echo *dom.Element, inputs, changes *bridge.Stream[events.Event], w bridge.Waker) ([]string, bool) {
	_, in := inputs.Poll(w)
	ch, cs := changes.Poll(w)
	if in == bridge.PollClosed || cs == bridge.PollClosed {
		return nil, false
	}

	var labels []string
	if in == bridge.PollReady {
		value, _ := input.Attr("value")
		labels = append(labels, "typed: "+value)
	}
	if cs == bridge.PollReady {
		labels = append(labels, "committed: "+ch.Data)
	}
	for _, l := range labels {
		echo.SetText(l)
	}
	return labels, true
}

// lastKey shows the most recent key pressed anywhere in the document.
func lastKey(root, label *dom.Element, invalidate func(), opts ...bridge.Option) render.Body {
	return func(ctx context.Context) error {
		label.SetText("last key: none")

		keys, err := events.UntilKeyDown(root, opts...)
		if err != nil {
			return err
		}
		defer keys.Close()

		for ev := range keys.All(ctx) {
			text := "last key: " + ev.Key
			if ev.Modifiers != events.ModNone {
				text += " (" + ev.Modifiers.String() + ")"
			}
			label.SetText(text)
			invalidate()
		}
		return nil
	}
}
