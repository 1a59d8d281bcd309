// Package logging builds the zerolog loggers used across asyncui.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes a logger.
type Options struct {
	// Level is a zerolog level name. Unknown names mean info.
	Level string
	// Format is "console" or "json".
	Format string
	// Output is where log lines go. Nil means stderr.
	Output io.Writer
}

// New returns a logger configured by opts with a timestamp on every event.
func New(opts Options) zerolog.Logger {
	w := opts.Output
	if w == nil {
		w = os.Stderr
	}
	if !strings.EqualFold(opts.Format, "json") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !isTerminal(w)}
	}
	return zerolog.New(w).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
}

// ParseLevel converts a level name, falling back to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// OpenFile opens path for appending log lines.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// Component returns l tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
