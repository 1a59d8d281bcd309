package fswatch

import "errors"

// Sentinel errors for the fswatch package.
var (
	// ErrWatcherClosed is returned when operating on a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrPathNotExist is returned when the path to watch doesn't exist.
	ErrPathNotExist = errors.New("path does not exist")

	// ErrAlreadyWatching is returned when the path is already watched.
	ErrAlreadyWatching = errors.New("path is already being watched")

	// ErrNotWatching is returned when unwatching a path that isn't watched.
	ErrNotWatching = errors.New("path is not being watched")
)
