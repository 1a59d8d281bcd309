package dom

import (
	"sync"

	"github.com/dshills/asyncui/internal/event"
)

// RootTag is the tag of every document's root element.
const RootTag = "root"

// Document owns a tree of nodes. A single lock guards the whole tree.
type Document struct {
	mu           sync.Mutex
	root         *Element
	nextListener event.ListenerID
	closed       bool
}

// NewDocument creates a document with an empty root element.
func NewDocument() *Document {
	d := &Document{}
	d.root = &Element{
		node: node{doc: d, attached: true},
		tag:  RootTag,
	}
	return d
}

// Root returns the root element.
func (d *Document) Root() *Element {
	return d.root
}

// CreateElement creates an unattached element.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{
		node: node{doc: d},
		tag:  tag,
	}
}

// CreateText creates an unattached text node.
func (d *Document) CreateText(data string) *Text {
	return &Text{
		node: node{doc: d},
		data: data,
	}
}

// Close tears the document down. Afterwards every element is detached and
// Dispatch is a no-op. Existing listener registrations are dropped.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	d.walkLocked(d.root, 0, func(n Node, _ int) bool {
		if el, ok := n.(*Element); ok {
			for _, l := range el.listeners {
				l.removed.Store(true)
			}
			el.listeners = nil
		}
		return true
	})
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.closed
}

// ElementByID returns the first connected element with the given id.
func (d *Document) ElementByID(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	var found *Element
	d.walkLocked(d.root, 0, func(n Node, _ int) bool {
		if el, ok := n.(*Element); ok && el.id == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// HitTest returns the deepest connected element whose bounds contain (x, y).
// Later siblings are on top of earlier ones. It returns nil when nothing is hit.
func (d *Document) HitTest(x, y int) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	return hitLocked(d.root, x, y)
}

func hitLocked(e *Element, x, y int) *Element {
	for i := len(e.children) - 1; i >= 0; i-- {
		if child, ok := e.children[i].(*Element); ok {
			if hit := hitLocked(child, x, y); hit != nil {
				return hit
			}
		}
	}
	if e.bounds.Contains(x, y) {
		return e
	}
	return nil
}

// Walk visits every connected node depth-first in document order. The
// callback receives the node's depth below the root; returning false stops
// the walk. The walk runs over a snapshot taken under the document lock, so
// the callback may read or mutate the tree.
func (d *Document) Walk(fn func(n Node, depth int) bool) {
	type visit struct {
		n     Node
		depth int
	}

	d.mu.Lock()
	var visits []visit
	if !d.closed {
		d.walkLocked(d.root, 0, func(n Node, depth int) bool {
			visits = append(visits, visit{n, depth})
			return true
		})
	}
	d.mu.Unlock()

	for _, v := range visits {
		if !fn(v.n, v.depth) {
			return
		}
	}
}

func (d *Document) walkLocked(n Node, depth int, fn func(Node, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	if el, ok := n.(*Element); ok {
		for _, child := range el.children {
			if !d.walkLocked(child, depth+1, fn) {
				return false
			}
		}
	}
	return true
}

// TextContent returns the concatenated data of every text node under n.
func TextContent(n Node) string {
	d := n.Document()
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []byte
	d.walkLocked(n, 0, func(c Node, _ int) bool {
		if t, ok := c.(*Text); ok {
			out = append(out, t.data...)
		}
		return true
	})
	return string(out)
}
