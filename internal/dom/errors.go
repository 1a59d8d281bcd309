package dom

import "errors"

// Sentinel errors for tree operations.
var (
	// ErrWrongDocument is returned when nodes from different documents are mixed.
	ErrWrongDocument = errors.New("node belongs to a different document")

	// ErrHierarchy is returned when an insertion would create a cycle.
	ErrHierarchy = errors.New("node cannot be inserted under its own descendant")

	// ErrNotChild is returned when removing a node from a parent it is not under.
	ErrNotChild = errors.New("node is not a child of this element")

	// ErrNilNode is returned when a nil node is passed to a tree operation.
	ErrNilNode = errors.New("node cannot be nil")

	// ErrDocumentClosed is returned by tree operations on a closed document.
	ErrDocumentClosed = errors.New("document is closed")
)
