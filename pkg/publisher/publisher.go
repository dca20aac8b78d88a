// Package publisher rate-limits snapshot export. It is the sole boundary
// between the bursty producer side and the bounded consumer side.
package publisher

import (
	"fmt"
	"time"

	"ranger/pkg/registry"
)

// Snapshotter is the slice of the registry the publisher needs.
type Snapshotter interface {
	Snapshot() registry.Snapshot
}

// Publisher emits at most one snapshot per interval.
type Publisher struct {
	src        Snapshotter
	interval   time.Duration
	lastExport time.Time
	exported   bool
}

func New(src Snapshotter, interval time.Duration) (*Publisher, error) {
	if src == nil {
		return nil, fmt.Errorf("publisher requires a snapshot source")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("export interval must be positive, got %v", interval)
	}
	return &Publisher{src: src, interval: interval}, nil
}

// Interval returns the configured minimum spacing between exports.
func (p *Publisher) Interval() time.Duration { return p.interval }

// Tick produces a snapshot when at least one interval has elapsed since
// the previous export. The first tick always exports. Not safe for
// concurrent use; the export loop is the single caller.
func (p *Publisher) Tick(now time.Time) (registry.Snapshot, bool) {
	if p.exported && now.Sub(p.lastExport) < p.interval {
		return registry.Snapshot{}, false
	}
	p.lastExport = now
	p.exported = true
	return p.src.Snapshot(), true
}
