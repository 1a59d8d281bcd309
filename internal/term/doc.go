// Package term hosts a dom.Document in a terminal.
//
// The Host reads tcell events on its own goroutine and posts each one to a
// loop.Loop, where it is translated into DOM events: key presses fire
// keydown and keyup on the focused element, mouse input is hit-tested
// against element bounds, and pastes become input events on editable
// elements. Listener callbacks therefore always run on the loop goroutine.
package term
