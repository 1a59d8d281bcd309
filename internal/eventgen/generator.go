package eventgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Options configures a Generator.
type Options struct {
	// DryRun renders without writing the output file.
	DryRun bool

	// Check fails when the output file is missing or differs from what
	// would be generated.
	Check bool

	// Log receives progress messages. Nil discards them.
	Log io.Writer
}

// Generator turns a table file into a Go source file.
type Generator struct {
	opts Options
}

// New creates a Generator.
func New(opts Options) *Generator {
	if opts.Log == nil {
		opts.Log = io.Discard
	}
	return &Generator{opts: opts}
}

// ErrStale is returned in check mode when the output is out of date.
var ErrStale = errors.New("generated file is stale")

// Generate renders the table at in and writes it to out.
func (g *Generator) Generate(in, out string) error {
	t, err := LoadFile(in)
	if err != nil {
		return fmt.Errorf("load %s: %w", in, err)
	}

	code, err := Render(t, filepath.Base(in))
	if err != nil {
		if code != nil {
			if writeErr := os.WriteFile(out+".unformatted", code, 0o644); writeErr == nil {
				fmt.Fprintf(g.opts.Log, "wrote unformatted code to %s.unformatted\n", out)
			}
		}
		return fmt.Errorf("render %s: %w", in, err)
	}

	if g.opts.Check {
		existing, err := os.ReadFile(out)
		if err != nil {
			return fmt.Errorf("read %s: %w", out, err)
		}
		if !bytes.Equal(existing, code) {
			return fmt.Errorf("%s: %w", out, ErrStale)
		}
		fmt.Fprintf(g.opts.Log, "%s is up to date (%d events)\n", out, t.Len())
		return nil
	}

	fmt.Fprintf(g.opts.Log, "generating %s (%d events)\n", out, t.Len())
	if g.opts.DryRun {
		return nil
	}
	return os.WriteFile(out, code, 0o644)
}
