package fswatch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/asyncui/internal/bridge"
	"github.com/dshills/asyncui/internal/event"
	"github.com/dshills/asyncui/internal/loop"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func nextChange(t *testing.T, s *bridge.Stream[Change]) Change {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := s.Next(ctx)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	return c
}

func TestWatcher_CreateAndWrite(t *testing.T) {
	dir := t.TempDir()
	w := newWatcher(t)
	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	creates, err := Until[Change](w, KindCreate, bridge.WithQueue(16, bridge.DropOldest))
	if err != nil {
		t.Fatalf("Until failed: %v", err)
	}
	defer creates.Close()

	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c := nextChange(t, creates)
	if filepath.Base(c.Path) != "a.txt" || !c.Op.Has(OpCreate) {
		t.Errorf("unexpected change %+v", c)
	}
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	w := newWatcher(t, WithDebounce(100*time.Millisecond))
	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	changes, err := Until[Change](w, KindChange, bridge.WithQueue(16, bridge.DropOldest))
	if err != nil {
		t.Fatalf("Until failed: %v", err)
	}
	defer changes.Close()

	for range 5 {
		if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	c := nextChange(t, changes)
	if !c.Op.Has(OpWrite) {
		t.Errorf("expected a write, got %s", c.Op)
	}
	time.Sleep(300 * time.Millisecond)
	if n := changes.Pending(); n != 0 {
		t.Errorf("expected writes coalesced into one change, got %d more", n)
	}
}

func TestWatcher_DeliversOnLoop(t *testing.T) {
	l := loop.New()
	if err := l.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = l.Stop(context.Background()) }()

	dir := t.TempDir()
	w := newWatcher(t, WithLoop(l))
	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	s, err := Until[Change](w, KindChange)
	if err != nil {
		t.Fatalf("Until failed: %v", err)
	}
	defer s.Close()

	if err := os.WriteFile(filepath.Join(dir, "c.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	nextChange(t, s)

	if l.Stats().Executed == 0 {
		t.Error("expected delivery through the loop")
	}
}

func TestWatcher_IgnoreHidden(t *testing.T) {
	w := newWatcher(t, WithIgnoreHidden())

	var got []Change
	if _, err := w.AddListener(KindChange, func(p any) { got = append(got, p.(Change)) }); err != nil {
		t.Fatalf("AddListener failed: %v", err)
	}

	w.handleFSEvent(fsnotify.Event{Name: "/tmp/.swap", Op: fsnotify.Write})
	w.handleFSEvent(fsnotify.Event{Name: "/tmp/file", Op: fsnotify.Write})

	if len(got) != 1 || got[0].Path != "/tmp/file" {
		t.Errorf("expected only the visible file, got %+v", got)
	}
}

func TestWatcher_FiresEachOpKind(t *testing.T) {
	w := newWatcher(t)

	var kinds []event.Kind
	for _, k := range []event.Kind{KindCreate, KindWrite, KindRemove, KindChange} {
		if _, err := w.AddListener(k, func(any) { kinds = append(kinds, k) }); err != nil {
			t.Fatalf("AddListener failed: %v", err)
		}
	}

	w.fire(Change{Path: "x", Op: OpCreate | OpWrite})

	want := []event.Kind{KindCreate, KindWrite, KindChange}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("expected %v, got %v", want, kinds)
			break
		}
	}
}

func TestWatcher_Errors(t *testing.T) {
	w := newWatcher(t)

	if err := w.Watch(filepath.Join(t.TempDir(), "absent")); !errors.Is(err, ErrPathNotExist) {
		t.Errorf("expected ErrPathNotExist, got %v", err)
	}

	dir := t.TempDir()
	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Watch(dir); !errors.Is(err, ErrAlreadyWatching) {
		t.Errorf("expected ErrAlreadyWatching, got %v", err)
	}
	if len(w.WatchedPaths()) != 1 {
		t.Errorf("expected one watched path, got %v", w.WatchedPaths())
	}
	if err := w.Unwatch(dir); err != nil {
		t.Errorf("Unwatch failed: %v", err)
	}
	if err := w.Unwatch(dir); !errors.Is(err, ErrNotWatching) {
		t.Errorf("expected ErrNotWatching, got %v", err)
	}

	if _, err := Until[Change](w, KindError); !errors.Is(err, event.ErrPayloadMismatch) {
		t.Errorf("expected ErrPayloadMismatch, got %v", err)
	}
	es, err := Until[error](w, KindError)
	if err != nil {
		t.Fatalf("Until[error] failed: %v", err)
	}
	defer es.Close()

	boom := errors.New("boom")
	w.emit(KindError, boom)
	if got, ok := es.TryNext(); !ok || !errors.Is(got, boom) {
		t.Errorf("expected boom, got %v", got)
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s, err := Until[Change](w, KindChange)
	if err != nil {
		t.Fatalf("Until failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}

	w.fire(Change{Path: "x", Op: OpWrite})
	if s.Pending() != 0 {
		t.Error("closed watcher should not deliver")
	}
	s.Close()

	if _, err := Until[Change](w, KindChange); !errors.Is(err, event.ErrDetached) {
		t.Errorf("expected ErrDetached, got %v", err)
	}
	if err := w.Watch(t.TempDir()); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
}

func TestOp_String(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{0, "none"},
		{OpWrite, "write"},
		{OpCreate | OpChmod, "create|chmod"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
