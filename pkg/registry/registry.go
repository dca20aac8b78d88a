// Package registry owns the per-channel measurement slots and is the
// only synchronization boundary between edge producers and snapshot
// consumers.
package registry

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"ranger/pkg/median"
	"ranger/pkg/pulse"
)

// Config is the construction surface for a Registry. Invalid values are
// rejected before any edge is processed.
type Config struct {
	Channels       int
	SpeedOfSound   float64 // m/s
	SmoothingWin   int
	RisingPolicy   pulse.RisingPolicy
	ArmedTimeoutNS int64 // stuck-channel recovery threshold for Sweep
}

// ChannelState is the published per-channel view. Counters are
// monotonically non-decreasing for the process lifetime.
type ChannelState struct {
	LastDistanceM     float64
	LastDistanceUM    uint64
	SmoothedDistanceM float64
	Smoothed          bool
	PulseCount        uint64
	OverrunCount      uint64
	DisorderCount     uint64
}

// slot pairs one channel's tracker, filter and state behind its own
// lock. Contention is partitioned by channel; nothing mutable is shared
// across slots.
type slot struct {
	mu      sync.Mutex
	tracker *pulse.Tracker
	filter  *median.Filter
	state   ChannelState
	lastTS  int64
	seenTS  bool
}

// Registry holds N independent channel slots plus a global sequence
// counter, incremented once per processed edge. The sequence is a
// staleness signal for consumers, not an ordering proof.
type Registry struct {
	slots   []slot
	seq     atomic.Uint64
	timeout int64
}

func New(cfg Config) (*Registry, error) {
	if cfg.Channels < 1 {
		return nil, fmt.Errorf("channel count must be >= 1, got %d", cfg.Channels)
	}
	if cfg.SpeedOfSound <= 0 {
		return nil, fmt.Errorf("speed of sound must be positive, got %v", cfg.SpeedOfSound)
	}
	if cfg.ArmedTimeoutNS <= 0 {
		return nil, fmt.Errorf("armed timeout must be positive, got %d", cfg.ArmedTimeoutNS)
	}

	r := &Registry{
		slots:   make([]slot, cfg.Channels),
		timeout: cfg.ArmedTimeoutNS,
	}
	for i := range r.slots {
		f, err := median.NewFilter(cfg.SmoothingWin)
		if err != nil {
			return nil, err
		}
		r.slots[i].tracker = pulse.NewTracker(cfg.SpeedOfSound, cfg.RisingPolicy)
		r.slots[i].filter = f
		r.slots[i].lastTS = math.MinInt64
	}
	return r, nil
}

// Channels returns the fixed channel count.
func (r *Registry) Channels() int { return len(r.slots) }

// Sequence returns the current global edge sequence.
func (r *Registry) Sequence() uint64 { return r.seq.Load() }

// ApplyEdge is the single point of mutation for a channel. It holds only
// that channel's lock, does no allocation and no I/O, so it is safe to
// call from a time-critical producer context. Edges for the same channel
// must arrive in temporal order; a non-increasing timestamp is rejected
// and counted rather than corrupting the distance math.
func (r *Registry) ApplyEdge(ev pulse.EdgeEvent) (pulse.Pulse, pulse.Result) {
	if ev.Channel < 0 || ev.Channel >= len(r.slots) {
		return pulse.Pulse{}, pulse.ResultNone
	}
	s := &r.slots[ev.Channel]

	s.mu.Lock()
	if s.seenTS && ev.Timestamp <= s.lastTS {
		s.state.DisorderCount++
		s.mu.Unlock()
		return pulse.Pulse{}, pulse.ResultDisorder
	}
	s.lastTS = ev.Timestamp
	s.seenTS = true

	p, res := s.tracker.OnEdge(ev.Edge, ev.Timestamp)
	switch res {
	case pulse.ResultPulse:
		s.state.LastDistanceM = p.DistanceM
		s.state.LastDistanceUM = p.DistanceUM
		s.state.PulseCount++
		if m, ok := s.filter.Push(p.DistanceM); ok {
			s.state.SmoothedDistanceM = m
			s.state.Smoothed = true
		}
	case pulse.ResultOverrun:
		s.state.OverrunCount++
	case pulse.ResultRestart:
		if s.tracker.Policy() == pulse.PolicyCountOverrun {
			s.state.OverrunCount++
		}
	}
	r.seq.Add(1)
	s.mu.Unlock()
	return p, res
}

// Sweep force-disarms any channel that has been armed for longer than
// the configured timeout (no falling edge ever arrived) and counts the
// lost pulse as an overrun. Returns the channels reset. The caller
// supplies now on the same clock the edge timestamps use.
func (r *Registry) Sweep(nowNS int64) []int {
	var reset []int
	for i := range r.slots {
		s := &r.slots[i]
		s.mu.Lock()
		if s.tracker.Armed() && nowNS-s.tracker.ArmedSince() >= r.timeout {
			s.tracker.Reset()
			s.state.OverrunCount++
			reset = append(reset, i)
		}
		s.mu.Unlock()
	}
	return reset
}

// State returns a copy of one channel's published state.
func (r *Registry) State(channel int) (ChannelState, error) {
	if channel < 0 || channel >= len(r.slots) {
		return ChannelState{}, fmt.Errorf("channel %d out of range [0,%d)", channel, len(r.slots))
	}
	s := &r.slots[channel]
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	return st, nil
}
