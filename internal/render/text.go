package render

import "github.com/dshills/asyncui/internal/dom"

// Text is a component that shows a string for as long as it is rendered.
type Text struct {
	node *dom.Text
}

// NewText creates a text component in doc.
func NewText(doc *dom.Document, data string) *Text {
	return &Text{node: doc.CreateText(data)}
}

// Node returns the underlying text node.
func (t *Text) Node() *dom.Text {
	return t.node
}

// Data returns the current text.
func (t *Text) Data() string {
	return t.node.Data()
}

// SetData replaces the text. It takes effect whether or not the component
// is rendered.
func (t *Text) SetData(s string) {
	t.node.SetData(s)
}

// Render returns a container that keeps the text attached at mount until it
// is closed or its context ends.
func (t *Text) Render(mount MountPoint, opts ...Option) *Container {
	return New(mount, t.node, Pending, opts...)
}
