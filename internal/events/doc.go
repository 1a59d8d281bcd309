// Package events declares the typed event table of the toolkit and one
// accessor per event kind.
//
// Every accessor is a thin wrapper over Until: it checks the kind against the
// package registry and returns a bridge.Stream of the kind's payload type.
//
//	clicks, err := events.UntilClick(button)
//	if err != nil {
//		return err
//	}
//	defer clicks.Close()
//
//	for ev := range clicks.All(ctx) {
//		log.Info().Int("x", ev.X).Int("y", ev.Y).Msg("clicked")
//	}
//
// The kind constants, accessors and the registration table are generated
// from events.yaml by cmd/eventgen.
package events

//go:generate go run ../../cmd/eventgen --in events.yaml --out zz_generated_events.go
