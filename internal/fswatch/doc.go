// Package fswatch turns file system notifications into events.
//
// A Watcher is an event.Emitter, so file changes can be awaited with the
// same bridge streams used for UI input:
//
//	w, err := fswatch.New(fswatch.WithLoop(l))
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	_ = w.Watch("asyncui.toml")
//
//	writes, err := fswatch.Until(w, fswatch.KindWrite)
//	...
//	change, err := writes.Next(ctx)
package fswatch
