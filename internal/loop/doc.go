// Package loop provides the single goroutine on which host callbacks run.
//
// Input sources (the terminal, file watchers) never touch the tree or fire
// listeners from their own goroutines. They Post a task and the loop runs
// tasks one at a time in submission order, which gives listeners the same
// single-threaded view a browser event loop gives them.
package loop
