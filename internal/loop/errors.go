package loop

import "errors"

// Sentinel errors for the loop package.
var (
	// ErrAlreadyRunning is returned when Start is called on a running loop.
	ErrAlreadyRunning = errors.New("loop is already running")

	// ErrNotRunning is returned when tasks are posted to a stopped loop.
	ErrNotRunning = errors.New("loop is not running")

	// ErrQueueFull is returned when the task queue is at capacity.
	ErrQueueFull = errors.New("task queue is full")

	// ErrNilTask is returned when a nil task is posted.
	ErrNilTask = errors.New("nil task")
)
