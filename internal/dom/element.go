package dom

import (
	"maps"
	"slices"
)

// Element is a tagged container node that can have children and listeners.
type Element struct {
	node
	tag       string
	id        string
	attrs     map[string]string
	children  []Node
	bounds    Rect
	listeners []*listener
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.tag
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	return e.id
}

// SetID sets the element's id attribute.
func (e *Element) SetID(id string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	e.id = id
}

// Attr returns the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// Attrs returns a copy of all attributes.
func (e *Element) Attrs() map[string]string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	return maps.Clone(e.attrs)
}

// Bounds returns the element's screen rectangle.
func (e *Element) Bounds() Rect {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	return e.bounds
}

// SetBounds sets the element's screen rectangle used for hit-testing.
func (e *Element) SetBounds(r Rect) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	e.bounds = r
}

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	return slices.Clone(e.children)
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	return len(e.children)
}

// Contains reports whether n is e or a descendant of e.
func (e *Element) Contains(n Node) bool {
	if n == nil {
		return false
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	return e.containsLocked(n.base())
}

func (e *Element) containsLocked(n *node) bool {
	if n == &e.node {
		return true
	}
	for p := n.parent; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// AppendChild inserts n as the last child.
func (e *Element) AppendChild(n Node) error {
	return e.InsertChild(n, -1)
}

// InsertChild inserts n at index among the children. An index outside
// [0, ChildCount()] appends. A node that already has a parent is moved.
func (e *Element) InsertChild(n Node, index int) error {
	if n == nil {
		return ErrNilNode
	}
	nb := n.base()

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	if e.doc.closed {
		return ErrDocumentClosed
	}
	if nb.doc != e.doc {
		return ErrWrongDocument
	}
	if child, ok := n.(*Element); ok && child.containsLocked(&e.node) {
		return ErrHierarchy
	}

	if nb.parent != nil {
		nb.parent.removeLocked(n)
	}
	if index < 0 || index > len(e.children) {
		index = len(e.children)
	}
	e.children = slices.Insert(e.children, index, n)
	nb.parent = e
	nb.attached = true
	return nil
}

// RemoveChild removes n from e's children.
func (e *Element) RemoveChild(n Node) error {
	if n == nil {
		return ErrNilNode
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	if n.base().parent != e {
		return ErrNotChild
	}
	e.removeLocked(n)
	return nil
}

func (e *Element) removeLocked(n Node) {
	if i := slices.Index(e.children, n); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
	n.base().parent = nil
}

// SetText replaces the element's text children with a single text node
// holding s. Element children are kept.
func (e *Element) SetText(s string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	kept := e.children[:0]
	for _, c := range e.children {
		if t, ok := c.(*Text); ok {
			t.parent = nil
			continue
		}
		kept = append(kept, c)
	}
	clear(e.children[len(kept):])
	e.children = kept

	t := &Text{node: node{doc: e.doc, parent: e, attached: true}, data: s}
	e.children = append(e.children, t)
}
