// Package dom is a small DOM-like host tree: elements and text nodes with
// per-element listener sets, attach/detach primitives and event dispatch.
//
// It stands in for the browser DOM. Elements implement event.Emitter, so the
// subscription capability and the event bridge can be built on them, and Mount
// implements the attach/detach boundary used by render containers.
//
// # Dispatch
//
// Dispatch delivers a payload to the listeners registered on the target for
// the event kind, then (when bubbling) to each ancestor in turn. Listeners run
// without the document lock held, so a listener may add or remove listeners,
// or mutate the tree. A listener removed while a dispatch is in progress is
// not invoked for the remainder of that dispatch.
//
// # Detached Elements
//
// A freshly created element has never been attached and accepts listeners,
// which lets components subscribe before their node is first rendered. An
// element that was attached and has since been removed from the tree is
// detached: AddListener fails with event.ErrDetached until it is attached
// again. Every element of a closed Document is detached.
package dom
