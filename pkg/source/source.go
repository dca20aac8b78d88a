// Package source produces edge events for the registry. The core places
// no constraint on the delivery mechanism; this package provides a
// simulated generator mirroring the gpio-sim rig the hardware pipeline
// is tested against, and a script source for deterministic replay.
package source

import (
	"context"

	"ranger/pkg/pulse"
)

// Sink receives edge events. For any one channel the source must call it
// in temporal order; the registry's state machine is only defined for
// monotonically increasing per-channel timestamps.
type Sink func(ev pulse.EdgeEvent)

// Source feeds a sink until the context is done or the source is
// exhausted.
type Source interface {
	Run(ctx context.Context, sink Sink) error
}

// Script replays a fixed event sequence and returns. Used by tests and
// offline reprocessing.
type Script struct {
	Events []pulse.EdgeEvent
}

func (s *Script) Run(ctx context.Context, sink Sink) error {
	for _, ev := range s.Events {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		sink(ev)
	}
	return nil
}
