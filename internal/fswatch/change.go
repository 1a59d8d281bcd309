package fswatch

import (
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/asyncui/internal/event"
)

// Op is a bitmask of file operations.
type Op uint8

// File operations.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Has reports whether op includes other.
func (op Op) Has(other Op) bool {
	return op&other != 0
}

// String returns the operations joined with "|".
func (op Op) String() string {
	var parts []string
	if op.Has(OpCreate) {
		parts = append(parts, "create")
	}
	if op.Has(OpWrite) {
		parts = append(parts, "write")
	}
	if op.Has(OpRemove) {
		parts = append(parts, "remove")
	}
	if op.Has(OpRename) {
		parts = append(parts, "rename")
	}
	if op.Has(OpChmod) {
		parts = append(parts, "chmod")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event kinds a Watcher emits. KindChange fires for every change in
// addition to the kind of each operation it carries.
const (
	KindChange event.Kind = "change"
	KindCreate event.Kind = "create"
	KindWrite  event.Kind = "write"
	KindRemove event.Kind = "remove"
	KindRename event.Kind = "rename"
	KindChmod  event.Kind = "chmod"

	// KindError carries watch errors as error payloads.
	KindError event.Kind = "error"
)

// opKinds pairs each operation with its kind in firing order.
var opKinds = []struct {
	op   Op
	kind event.Kind
}{
	{OpCreate, KindCreate},
	{OpWrite, KindWrite},
	{OpRemove, KindRemove},
	{OpRename, KindRename},
	{OpChmod, KindChmod},
}

// Change is the payload of every non-error kind.
type Change struct {
	// Path is the changed file.
	Path string

	// Op holds every operation coalesced into this change.
	Op Op

	// Time is when the last coalesced notification arrived.
	Time time.Time
}

// convertOp converts fsnotify.Op to Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}

var registry = newRegistry()

func newRegistry() *event.Registry {
	r := event.NewRegistry()
	for _, k := range []event.Kind{KindChange, KindCreate, KindWrite, KindRemove, KindRename, KindChmod} {
		event.MustRegister[Change](r, k)
	}
	event.MustRegister[error](r, KindError)
	return r
}

// Registry returns the kinds a Watcher emits and their payload types.
func Registry() *event.Registry {
	return registry
}
