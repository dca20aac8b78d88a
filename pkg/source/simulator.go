package source

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"ranger/pkg/pulse"
)

// SimulatorConfig describes one synthetic sensor set. Each channel gets
// its own goroutine, which preserves the per-channel ordering contract
// while letting channels run at independent rates.
type SimulatorConfig struct {
	Channels  int
	Period    time.Duration // ping period per channel
	DistanceM []float64     // simulated target distance per channel; len must equal Channels
	SpeedMPS  float64       // used to derive echo pulse widths
	JitterNS  int64         // uniform +/- jitter applied to pulse widths, 0 = none
	NowNS     func() int64  // monotonic clock; defaults to process-relative time.Since
}

// Simulator emits rising/falling pairs whose widths encode the
// configured distances, the user-space mirror of a gpio-sim pulse rig.
type Simulator struct {
	cfg SimulatorConfig
}

func NewSimulator(cfg SimulatorConfig) (*Simulator, error) {
	if cfg.Channels < 1 {
		return nil, fmt.Errorf("simulator needs at least one channel, got %d", cfg.Channels)
	}
	if len(cfg.DistanceM) != cfg.Channels {
		return nil, fmt.Errorf("simulator has %d distances for %d channels",
			len(cfg.DistanceM), cfg.Channels)
	}
	if cfg.Period <= 0 {
		return nil, fmt.Errorf("simulator period must be positive, got %v", cfg.Period)
	}
	if cfg.SpeedMPS <= 0 {
		return nil, fmt.Errorf("simulator speed of sound must be positive, got %v", cfg.SpeedMPS)
	}
	if cfg.NowNS == nil {
		start := time.Now()
		cfg.NowNS = func() int64 { return int64(time.Since(start)) }
	}
	return &Simulator{cfg: cfg}, nil
}

// Run blocks until the context is done.
func (s *Simulator) Run(ctx context.Context, sink Sink) error {
	var wg sync.WaitGroup
	for ch := 0; ch < s.cfg.Channels; ch++ {
		wg.Add(1)
		go s.runChannel(ctx, &wg, ch, sink)
	}
	wg.Wait()
	return ctx.Err()
}

func (s *Simulator) runChannel(ctx context.Context, wg *sync.WaitGroup, ch int, sink Sink) {
	defer wg.Done()

	// Round-trip time of flight for the configured distance.
	width := int64(2 * s.cfg.DistanceM[ch] / s.cfg.SpeedMPS * 1e9)
	rng := rand.New(rand.NewSource(int64(ch) + 1))

	ticker := time.NewTicker(s.cfg.Period)
	defer ticker.Stop()

	var lastTS int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		w := width
		if s.cfg.JitterNS > 0 {
			w += rng.Int63n(2*s.cfg.JitterNS+1) - s.cfg.JitterNS
			if w < 0 {
				w = 0
			}
		}

		rise := s.cfg.NowNS()
		if rise <= lastTS {
			rise = lastTS + 1
		}
		fall := rise + w
		if fall <= rise {
			fall = rise + 1
		}
		lastTS = fall

		sink(pulse.EdgeEvent{Channel: ch, Edge: pulse.Rising, Timestamp: rise})
		sink(pulse.EdgeEvent{Channel: ch, Edge: pulse.Falling, Timestamp: fall})
	}
}
