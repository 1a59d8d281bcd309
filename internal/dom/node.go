package dom

// Node is an element or text node in a Document.
type Node interface {
	// Document returns the owning document.
	Document() *Document

	// Parent returns the parent element, or nil when unattached.
	Parent() *Element

	// IsConnected reports whether the node is reachable from the document root.
	IsConnected() bool

	base() *node
}

// node holds the tree links shared by every node type.
type node struct {
	doc    *Document
	parent *Element

	// attached is set once the node has been inserted under a parent.
	attached bool
}

func (n *node) base() *node {
	return n
}

// Document returns the owning document.
func (n *node) Document() *Document {
	return n.doc
}

// Parent returns the parent element, or nil when unattached.
func (n *node) Parent() *Element {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()

	return n.parent
}

// IsConnected reports whether the node is reachable from the document root.
func (n *node) IsConnected() bool {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()

	return n.connectedLocked()
}

func (n *node) connectedLocked() bool {
	if n.doc.closed {
		return false
	}
	if n == &n.doc.root.node {
		return true
	}
	for p := n.parent; p != nil; p = p.parent {
		if p == n.doc.root {
			return true
		}
	}
	return false
}

// detachedLocked reports whether the node was attached once and has since
// left the tree.
func (n *node) detachedLocked() bool {
	if n.doc.closed {
		return true
	}
	return n.attached && !n.connectedLocked()
}

// Text is a leaf node holding a string.
type Text struct {
	node
	data string
}

// Data returns the text content.
func (t *Text) Data() string {
	t.doc.mu.Lock()
	defer t.doc.mu.Unlock()

	return t.data
}

// SetData replaces the text content.
func (t *Text) SetData(s string) {
	t.doc.mu.Lock()
	defer t.doc.mu.Unlock()

	t.data = s
}

// Rect is a screen-space rectangle in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
