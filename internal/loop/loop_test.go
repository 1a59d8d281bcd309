package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func startLoop(t *testing.T, opts ...Option) *Loop {
	t.Helper()
	l := New(opts...)
	if err := l.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() {
		if l.Running() {
			_ = l.Stop(context.Background())
		}
	})
	return l
}

func TestLoop_RunsTasksInOrder(t *testing.T) {
	l := startLoop(t)

	var mu sync.Mutex
	var order []int
	for i := range 50 {
		if err := l.Post(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
	}

	if err := l.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if len(order) != 50 {
		t.Fatalf("expected 50 tasks run, got %d", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("task %d ran at position %d", v, i)
		}
	}

	stats := l.Stats()
	if stats.Posted != 50 || stats.Executed != 50 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestLoop_TasksNeverOverlap(t *testing.T) {
	l := startLoop(t)

	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				_ = l.Do(context.Background(), func() {
					n := active.Add(1)
					if n > maxActive.Load() {
						maxActive.Store(n)
					}
					active.Add(-1)
				})
			}
		}()
	}
	wg.Wait()

	if maxActive.Load() != 1 {
		t.Errorf("expected tasks to run one at a time, saw %d concurrently", maxActive.Load())
	}
}

func TestLoop_PostFromTask(t *testing.T) {
	l := startLoop(t)

	done := make(chan struct{})
	err := l.Post(func() {
		_ = l.Post(func() { close(done) })
	})
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested task never ran")
	}
}

func TestLoop_PanicRecovered(t *testing.T) {
	var got atomic.Value
	l := startLoop(t, WithPanicHandler(func(r any, stack []byte) {
		got.Store(r)
	}))

	if err := l.Do(context.Background(), func() { panic("boom") }); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if err := l.Do(context.Background(), func() {}); err != nil {
		t.Fatalf("loop should survive a panicking task: %v", err)
	}

	if got.Load() != "boom" {
		t.Errorf("expected panic value boom, got %v", got.Load())
	}
	if l.Stats().Panicked != 1 {
		t.Errorf("expected 1 panic, got %d", l.Stats().Panicked)
	}
}

func TestLoop_QueueFull(t *testing.T) {
	l := startLoop(t, WithQueueSize(1))

	block := make(chan struct{})
	started := make(chan struct{})
	_ = l.Post(func() {
		close(started)
		<-block
	})
	<-started

	if err := l.Post(func() {}); err != nil {
		t.Fatalf("expected room for one queued task: %v", err)
	}
	if err := l.Post(func() {}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
	if l.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", l.QueueDepth())
	}
	close(block)

	if l.Stats().Dropped != 1 {
		t.Errorf("expected 1 dropped task, got %d", l.Stats().Dropped)
	}
}

func TestLoop_Lifecycle(t *testing.T) {
	l := New()

	if err := l.Post(func() {}); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning before Start, got %v", err)
	}
	if err := l.Stop(context.Background()); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning from Stop, got %v", err)
	}

	if err := l.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := l.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
	if err := l.Post(nil); !errors.Is(err, ErrNilTask) {
		t.Errorf("expected ErrNilTask, got %v", err)
	}
	if err := l.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := l.Post(func() {}); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning after Stop, got %v", err)
	}

	if err := l.Start(); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if err := l.Do(context.Background(), func() {}); err != nil {
		t.Errorf("Do after restart failed: %v", err)
	}
	_ = l.Stop(context.Background())
}

func TestLoop_DoContextCancelled(t *testing.T) {
	l := startLoop(t)

	block := make(chan struct{})
	defer close(block)
	_ = l.Post(func() { <-block })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Do(ctx, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestLoop_Run(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	deadline := time.After(time.Second)
	for !l.Running() {
		select {
		case <-deadline:
			t.Fatal("loop never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	ran := make(chan struct{})
	_ = l.Post(func() { close(ran) })
	<-ran

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
