package dom

// Mount attaches nodes under a parent element at a fixed position. It
// satisfies the attach/detach boundary that render containers drive.
type Mount struct {
	parent *Element
	index  int
}

// NewMount returns a mount point inserting at index under parent. A negative
// index appends.
func NewMount(parent *Element, index int) *Mount {
	return &Mount{parent: parent, index: index}
}

// Parent returns the element nodes are attached under.
func (m *Mount) Parent() *Element {
	return m.parent
}

// Attach inserts n under the mount's parent.
func (m *Mount) Attach(n Node) error {
	return m.parent.InsertChild(n, m.index)
}

// Detach removes n from wherever it currently is in the tree. A node that
// has no parent is left alone.
func (m *Mount) Detach(n Node) error {
	if n == nil {
		return ErrNilNode
	}
	d := n.Document()
	d.mu.Lock()
	defer d.mu.Unlock()

	if p := n.base().parent; p != nil {
		p.removeLocked(n)
	}
	return nil
}
