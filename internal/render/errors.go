package render

import "errors"

var (
	// ErrUseAfterCancel is returned when a detached container is started again.
	ErrUseAfterCancel = errors.New("container already detached")

	// ErrAlreadyRunning is returned when a running container is started again.
	ErrAlreadyRunning = errors.New("container already running")

	// ErrNilNode is returned by New callers that pass no node.
	ErrNilNode = errors.New("nil node")

	// ErrNilMount is returned when a container has no mount point.
	ErrNilMount = errors.New("nil mount point")

	// ErrNotStarted is returned by Wait on a container that was neither
	// started nor closed.
	ErrNotStarted = errors.New("container not started")
)
