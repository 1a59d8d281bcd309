package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/event"
	"github.com/dshills/asyncui/internal/events"
)

// waitFor polls cond until it holds or the test times out.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

type result struct {
	err error
}

func start(t *testing.T, ctx context.Context, s *Script, root *dom.Element) <-chan result {
	t.Helper()
	done := make(chan result, 1)
	go func() { done <- result{s.Run(ctx, root)} }()
	return done
}

func finish(t *testing.T, done <-chan result) error {
	t.Helper()
	select {
	case r := <-done:
		return r.err
	case <-time.After(2 * time.Second):
		t.Fatal("script did not finish")
		return nil
	}
}

func click(doc *dom.Document, el *dom.Element, x, y int) {
	doc.Dispatch(el, events.KindClick, events.MouseEvent{
		UIEvent: events.UIEvent{Event: events.Event{Type: events.KindClick, Target: el, Time: time.Now()}},
		X:       x,
		Y:       y,
		Button:  events.ButtonPrimary,
		Detail:  1,
	}, true)
}

func TestScript_WaitForClick(t *testing.T) {
	doc := dom.NewDocument()
	s := New("click.lua", `
		local btn = ui.create("button", "ok")
		btn:set_bounds(0, 0, 6, 1)
		btn:set_text("OK")
		ui.root:append(btn)

		local ev = ui.wait(btn, "click")
		assert(ev.target == btn, "target should be the button")
		btn:set_text("clicked " .. ev.x .. "," .. ev.y .. " " .. ev.type)
	`)
	done := start(t, context.Background(), s, doc.Root())

	var btn *dom.Element
	waitFor(t, "click listener", func() bool {
		btn = doc.ElementByID("ok")
		return btn != nil && btn.ListenerCount(events.KindClick) == 1
	})
	if got := dom.TextContent(btn); got != "OK" {
		t.Errorf("expected OK before the click, got %q", got)
	}

	click(doc, btn, 3, 0)

	if err := finish(t, done); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if got := dom.TextContent(btn); got != "clicked 3,0 click" {
		t.Errorf("unexpected text %q", got)
	}
	if n := btn.ListenerCount(""); n != 0 {
		t.Errorf("expected listeners released, got %d", n)
	}
	if r := btn.Bounds(); r.Width != 6 || r.Height != 1 {
		t.Errorf("unexpected bounds %+v", r)
	}
}

func TestScript_StreamQueue(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.Root()
	s := New("keys.lua", `
		local keys = ui.on(ui.root, "keydown", 8)
		ui.root:set_attr("ready", "yes")
		local got = {}
		while #got < 3 do
			local k = keys:next()
			got[#got + 1] = k.key
		end
		keys:close()
		ui.root:set_attr("keys", table.concat(got))
	`)
	done := start(t, context.Background(), s, root)

	waitFor(t, "keydown listener", func() bool {
		_, ok := root.Attr("ready")
		return ok
	})
	for _, k := range []string{"a", "b", "c"} {
		doc.Dispatch(root, events.KindKeyDown, events.KeyboardEvent{
			UIEvent: events.UIEvent{Event: events.Event{Type: events.KindKeyDown, Target: root}},
			Key:     k,
		}, true)
	}

	if err := finish(t, done); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if got, _ := root.Attr("keys"); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}

func TestScript_TryNextAndPending(t *testing.T) {
	doc := dom.NewDocument()
	s := New("poll.lua", `
		local s = ui.on(ui.root, "scroll")
		assert(s:try_next() == nil, "nothing delivered yet")
		assert(s:pending() == 0)
	`)
	if err := s.Run(context.Background(), doc.Root()); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if n := doc.Root().ListenerCount(""); n != 0 {
		t.Errorf("streams should be closed when the script ends, got %d listeners", n)
	}
}

func TestScript_CancelWhileWaiting(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.Root()
	s := New("wait.lua", `ui.wait(ui.root, "click")`)

	ctx, cancel := context.WithCancel(context.Background())
	done := start(t, ctx, s, root)
	waitFor(t, "click listener", func() bool {
		return root.ListenerCount(events.KindClick) == 1
	})
	cancel()

	if err := finish(t, done); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n := root.ListenerCount(""); n != 0 {
		t.Errorf("expected no listeners after cancel, got %d", n)
	}
}

func TestScript_Errors(t *testing.T) {
	doc := dom.NewDocument()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"lua error", `error("boom")`, "boom"},
		{"unknown kind", `ui.wait(ui.root, "nope")`, event.ErrUnsupportedKind.Error()},
		{"edit kind on div", `ui.on(ui.create("div"), "input")`, "input"},
		{"bad element", `ui.wait("root", "click")`, "userdata"},
		{"empty tag", `ui.create("")`, "tag cannot be empty"},
		{"os library", `os.exit(1)`, "non-table"},
		{"dofile", `dofile("/etc/passwd")`, "non-function"},
		{"syntax", `local = 1`, "click.lua"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("click.lua", tt.source).Run(context.Background(), doc.Root())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestScript_DetachedElement(t *testing.T) {
	doc := dom.NewDocument()
	s := New("detached.lua", `
		local el = ui.create("div")
		ui.root:append(el)
		el:remove()
		ui.wait(el, "click")
	`)
	err := s.Run(context.Background(), doc.Root())
	if err == nil || !strings.Contains(err.Error(), event.ErrDetached.Error()) {
		t.Errorf("expected detached error, got %v", err)
	}
}

func TestScript_FindAndAttrs(t *testing.T) {
	doc := dom.NewDocument()
	name := doc.CreateElement("input")
	name.SetID("name")
	name.SetAttr("value", "ada")
	if err := doc.Root().AppendChild(name); err != nil {
		t.Fatal(err)
	}

	s := New("find.lua", `
		local el = ui.find("name")
		assert(el ~= nil, "name should exist")
		assert(ui.find("missing") == nil)
		assert(el:tag() == "input")
		assert(el:id() == "name")
		assert(el:attr("missing") == nil)
		assert(tostring(el) == "<input>")
		el:set_value(string.upper(el:value()))
	`)
	if err := s.Run(context.Background(), doc.Root()); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if v, _ := name.Attr("value"); v != "ADA" {
		t.Errorf("expected ADA, got %q", v)
	}
}

func TestScript_Log(t *testing.T) {
	var buf bytes.Buffer
	doc := dom.NewDocument()
	s := New("log.lua", `ui.log("hello", 42, true)`, WithLogger(zerolog.New(&buf)))

	if err := s.Run(context.Background(), doc.Root()); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"message":"hello 42 true"`) || !strings.Contains(out, `"script":"log.lua"`) {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestScript_Check(t *testing.T) {
	if err := New("ok.lua", `local x = 1`).Check(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := New("bad.lua", `local = `).Check(); err == nil {
		t.Error("expected syntax error")
	}
	if err := New("empty.lua", "  \n").Check(); !errors.Is(err, ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
}

func TestScript_NilRoot(t *testing.T) {
	body := New("x.lua", `local x = 1`).Body(nil)
	if err := body(context.Background()); !errors.Is(err, ErrNilRoot) {
		t.Errorf("expected ErrNilRoot, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.lua")
	if err := os.WriteFile(path, []byte(`ui.root:set_attr("ran", "1")`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if s.Name() != "body.lua" {
		t.Errorf("expected name body.lua, got %q", s.Name())
	}

	doc := dom.NewDocument()
	if err := s.Run(context.Background(), doc.Root()); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if _, ok := doc.Root().Attr("ran"); !ok {
		t.Error("script did not run")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestScript_InvalidateOnMutation(t *testing.T) {
	var n int
	doc := dom.NewDocument()
	s := New("paint.lua", `
		ui.root:set_text("hi")
		ui.root:set_attr("a", "b")
		local _ = ui.root:text()
	`, WithInvalidate(func() { n++ }))

	if err := s.Run(context.Background(), doc.Root()); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 invalidations, got %d", n)
	}
	if got := dom.TextContent(doc.Root()); got != "hi" {
		t.Errorf("expected hi, got %q", got)
	}
}
