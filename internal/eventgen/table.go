// Package eventgen generates the typed event accessors of package events
// from a YAML table.
package eventgen

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTable is returned when an event table fails validation.
var ErrInvalidTable = errors.New("invalid event table")

// Table is the root of an event table file.
type Table struct {
	Package string  `yaml:"package"`
	Groups  []Group `yaml:"groups"`
}

// Group is a set of events sharing documentation and target restrictions.
type Group struct {
	Name string `yaml:"name"`
	Doc  string `yaml:"doc"`

	// MDN is the interface name used to build reference links.
	MDN string `yaml:"mdn"`

	// Targets restricts the group to these element tags. Empty means any.
	Targets []string `yaml:"targets"`

	Events []Entry `yaml:"events"`
}

// Entry is one event kind.
type Entry struct {
	Name     string `yaml:"name"`
	Accessor string `yaml:"accessor"`
	Payload  string `yaml:"payload"`
}

// Load decodes a table. Unknown fields are rejected.
func Load(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}
	return &t, nil
}

// LoadFile reads and decodes the table at path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Validate checks names, identifiers and uniqueness.
func (t *Table) Validate() error {
	if !token.IsIdentifier(t.Package) {
		return fmt.Errorf("%w: package %q is not an identifier", ErrInvalidTable, t.Package)
	}
	if len(t.Groups) == 0 {
		return fmt.Errorf("%w: no groups", ErrInvalidTable)
	}

	names := make(map[string]string)
	accessors := make(map[string]string)
	for _, g := range t.Groups {
		if g.Name == "" {
			return fmt.Errorf("%w: group without a name", ErrInvalidTable)
		}
		if len(g.Events) == 0 {
			return fmt.Errorf("%w: group %s has no events", ErrInvalidTable, g.Name)
		}
		for _, tag := range g.Targets {
			if !validName(tag) {
				return fmt.Errorf("%w: group %s: bad target %q", ErrInvalidTable, g.Name, tag)
			}
		}
		for _, e := range g.Events {
			if !validName(e.Name) {
				return fmt.Errorf("%w: group %s: bad event name %q", ErrInvalidTable, g.Name, e.Name)
			}
			if !strings.HasPrefix(e.Accessor, "Until") || len(e.Accessor) == len("Until") || !token.IsExported(e.Accessor) || !token.IsIdentifier(e.Accessor) {
				return fmt.Errorf("%w: %s: accessor %q must be an exported identifier starting with Until", ErrInvalidTable, e.Name, e.Accessor)
			}
			if !token.IsIdentifier(e.Payload) || !token.IsExported(e.Payload) {
				return fmt.Errorf("%w: %s: payload %q must be an exported identifier", ErrInvalidTable, e.Name, e.Payload)
			}
			if prev, ok := names[e.Name]; ok {
				return fmt.Errorf("%w: event %s declared in %s and %s", ErrInvalidTable, e.Name, prev, g.Name)
			}
			if prev, ok := accessors[e.Accessor]; ok {
				return fmt.Errorf("%w: accessor %s used by %s and %s", ErrInvalidTable, e.Accessor, prev, e.Name)
			}
			names[e.Name] = g.Name
			accessors[e.Accessor] = e.Name
		}
	}
	return nil
}

// Len returns the number of events across all groups.
func (t *Table) Len() int {
	n := 0
	for _, g := range t.Groups {
		n += len(g.Events)
	}
	return n
}

// validName reports whether s is a lowercase event or tag name.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
