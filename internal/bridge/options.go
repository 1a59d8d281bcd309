package bridge

import (
	"github.com/rs/zerolog"
)

// Policy selects how undelivered payloads are buffered.
type Policy int

const (
	// LatestWins keeps a single slot; a new payload overwrites an unobserved one.
	LatestWins Policy = iota

	// Queue keeps up to a fixed number of payloads in firing order.
	Queue
)

// String returns a human-readable policy name.
func (p Policy) String() string {
	switch p {
	case LatestWins:
		return "latest"
	case Queue:
		return "queue"
	default:
		return "unknown"
	}
}

// Overflow selects what a full Queue does with a new payload.
type Overflow int

const (
	// DropOldest discards the head of the queue to make room.
	DropOldest Overflow = iota

	// DropNewest discards the incoming payload.
	DropNewest
)

// String returns a human-readable overflow name.
func (o Overflow) String() string {
	switch o {
	case DropOldest:
		return "drop-oldest"
	case DropNewest:
		return "drop-newest"
	default:
		return "unknown"
	}
}

// DefaultQueueSize is used by WithQueue when size is not positive.
const DefaultQueueSize = 16

// Option configures a Stream.
type Option func(*config)

type config struct {
	policy   Policy
	capacity int
	overflow Overflow
	logger   zerolog.Logger
}

func defaultConfig() config {
	return config{
		policy:   LatestWins,
		capacity: 1,
		overflow: DropOldest,
		logger:   zerolog.Nop(),
	}
}

// WithLatestWins selects the single-slot, most-recent-wins buffer. It is the
// default.
func WithLatestWins() Option {
	return func(c *config) {
		c.policy = LatestWins
		c.capacity = 1
	}
}

// WithQueue selects a bounded FIFO buffer holding up to size payloads.
func WithQueue(size int, overflow Overflow) Option {
	return func(c *config) {
		if size <= 0 {
			size = DefaultQueueSize
		}
		c.policy = Queue
		c.capacity = size
		c.overflow = overflow
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
