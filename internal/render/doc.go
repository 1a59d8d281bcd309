// Package render ties a node's presence in the tree to the lifetime of an
// asynchronous body.
//
// A Container attaches its node when it is first started and detaches it
// exactly once: when the body returns, when the surrounding context ends, or
// when Close is called, whichever happens first. A container that has been
// detached cannot be started again.
//
//	c := render.New(dom.NewMount(parent, -1), label, func(ctx context.Context) error {
//		clicks, err := events.UntilClick(button)
//		if err != nil {
//			return err
//		}
//		defer clicks.Close()
//		_, err = clicks.Next(ctx)
//		return err
//	})
//	err := c.Run(ctx)
package render
