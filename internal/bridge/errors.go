package bridge

import "errors"

// ErrClosed is returned by Next after the stream has been closed.
var ErrClosed = errors.New("stream is closed")
