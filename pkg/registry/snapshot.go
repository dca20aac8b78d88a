package registry

// Snapshot is an immutable copy of all channels' latest readings. It has
// no ownership relation back to the registry: safe to hand to any
// reader, any goroutine, any process boundary.
//
// Each channel's triple (distance, pulse count, overrun count) reflects
// a single point in that channel's history, but the snapshot is NOT one
// consistent instant across channels: producers on other channels may
// advance between the per-channel copies. That trade-off keeps producer
// latency low; consumers that need staleness detection compare Sequence.
type Snapshot struct {
	Sequence       uint64
	DistancesM     []float64
	DistancesUM    []uint64
	PulseCounts    []uint64
	OverrunCounts  []uint64
	DisorderCounts []uint64
}

// Snapshot copies the registry state, taking the channel locks one at a
// time in ascending channel order. DistancesM carries the smoothed value
// once the filter is warm and the raw last measurement before that.
func (r *Registry) Snapshot() Snapshot {
	n := len(r.slots)
	snap := Snapshot{
		Sequence:       r.seq.Load(),
		DistancesM:     make([]float64, n),
		DistancesUM:    make([]uint64, n),
		PulseCounts:    make([]uint64, n),
		OverrunCounts:  make([]uint64, n),
		DisorderCounts: make([]uint64, n),
	}
	for i := range r.slots {
		s := &r.slots[i]
		s.mu.Lock()
		if s.state.Smoothed {
			snap.DistancesM[i] = s.state.SmoothedDistanceM
		} else {
			snap.DistancesM[i] = s.state.LastDistanceM
		}
		snap.DistancesUM[i] = s.state.LastDistanceUM
		snap.PulseCounts[i] = s.state.PulseCount
		snap.OverrunCounts[i] = s.state.OverrunCount
		snap.DisorderCounts[i] = s.state.DisorderCount
		s.mu.Unlock()
	}
	return snap
}
