// Package pulse converts timestamped echo-line edges into pulse widths
// and distances. One Tracker per channel; the caller owns locking.
package pulse

import "math"

// Edge is a signal transition on one channel's echo line.
type Edge int

const (
	Rising Edge = iota
	Falling
)

func (e Edge) String() string {
	if e == Rising {
		return "rising"
	}
	return "falling"
}

// EdgeEvent is a single timestamped transition delivered by an event
// source. Timestamps are monotonic nanoseconds from a stable clock and
// must be non-decreasing per channel.
type EdgeEvent struct {
	Channel   int
	Edge      Edge
	Timestamp int64 // monotonic nanoseconds
}

// Pulse is one completed echo measurement.
type Pulse struct {
	WidthNS    int64
	DistanceM  float64
	DistanceUM uint64 // fixed-point micrometers, see DistanceMicrometers
}

// Result classifies what a tracker did with an edge.
type Result int

const (
	// ResultNone: the edge armed the tracker (first rising edge).
	ResultNone Result = iota
	// ResultPulse: a falling edge completed a measurement.
	ResultPulse
	// ResultOverrun: a falling edge arrived with no rising edge pending.
	ResultOverrun
	// ResultRestart: a rising edge arrived while already armed; the
	// unterminated pulse was discarded per the configured policy.
	ResultRestart
	// ResultDisorder: the edge was rejected before reaching the tracker
	// because its timestamp did not advance. Never returned by a Tracker;
	// reserved for callers that gate on temporal order.
	ResultDisorder
)

// RisingPolicy controls what a second rising edge before a falling edge
// means. The hardware this mirrors silently restarts the measurement,
// which conflates "missed echo" with "new echo"; PolicyCountOverrun lets
// the caller account for the discarded half-pulse instead.
type RisingPolicy int

const (
	PolicyOverwrite RisingPolicy = iota
	PolicyCountOverrun
)

// SpeedOfSoundMPS is the default propagation speed used for the
// time-of-flight conversion, meters per second at ~20 C.
const SpeedOfSoundMPS = 343.0

// umPerNs1e6 converts nanoseconds of round-trip time to micrometers:
// 343 m/s / 2 = 171.5 um/us = 171500/1e6 um/ns. Exact only for c=343.
const umPerNs1e6 = 171500

// DistanceMicrometers is the pure-integer conversion used by consumers
// that need determinism without floating point. Truncating division
// bounds the error at 1 um against the floating form.
func DistanceMicrometers(widthNS int64) uint64 {
	if widthNS < 0 {
		return 0
	}
	return uint64(widthNS) * umPerNs1e6 / 1_000_000
}

// Tracker is the per-channel edge state machine. Invariant: armed iff a
// rise timestamp is held. Not safe for concurrent use.
type Tracker struct {
	armed  bool
	riseTS int64
	speed  float64 // m/s
	policy RisingPolicy
}

func NewTracker(speedMPS float64, policy RisingPolicy) *Tracker {
	return &Tracker{speed: speedMPS, policy: policy}
}

// Armed reports whether a rising edge is pending a falling edge.
func (t *Tracker) Armed() bool { return t.armed }

// ArmedSince returns the pending rise timestamp; meaningless unless Armed.
func (t *Tracker) ArmedSince() int64 { return t.riseTS }

// Reset force-disarms the tracker. Used by the stuck-channel sweep when
// no falling edge ever arrives; the tracker has no time source of its
// own, so it cannot detect a hung pulse itself.
func (t *Tracker) Reset() {
	t.armed = false
	t.riseTS = 0
}

// OnEdge advances the state machine. Allocation-free; the returned Pulse
// is only meaningful when the Result is ResultPulse.
func (t *Tracker) OnEdge(e Edge, ts int64) (Pulse, Result) {
	if e == Rising {
		restarted := t.armed
		t.armed = true
		t.riseTS = ts
		if restarted {
			return Pulse{}, ResultRestart
		}
		return Pulse{}, ResultNone
	}

	if !t.armed {
		return Pulse{}, ResultOverrun
	}

	width := ts - t.riseTS
	t.armed = false

	// Pulse width equals the round-trip time of sound, so halve it.
	dist := t.speed * float64(width) * 1e-9 / 2.0
	um := DistanceMicrometers(width)
	if t.speed != SpeedOfSoundMPS {
		// The integer constant is derived from 343 m/s; fall back to the
		// floating result when the caller calibrated a different speed.
		um = uint64(math.Round(dist * 1e6))
	}
	return Pulse{WidthNS: width, DistanceM: dist, DistanceUM: um}, ResultPulse
}

// Policy returns the configured double-rising policy.
func (t *Tracker) Policy() RisingPolicy { return t.policy }
