package script

import "errors"

var (
	// ErrNilRoot is returned by Body when no root element is given.
	ErrNilRoot = errors.New("script: nil root element")

	// ErrEmptySource is returned when a script has no code.
	ErrEmptySource = errors.New("script: empty source")
)
