package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock interface allows for deterministic testing
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Config for telemetry settings
type Config struct {
	BufferSize        int
	MaxRecentErrors   int
	RateWindowSeconds int
	LatencySamples    int
}

func DefaultConfig() Config {
	return Config{
		BufferSize:        1000,
		MaxRecentErrors:   50,
		RateWindowSeconds: 10,
		LatencySamples:    100,
	}
}

// Aggregator consumes pipeline telemetry off a buffered channel and
// exposes aggregate stats. Publish never blocks: events are dropped
// when the buffer is full so the measurement path is never stalled by
// observability.
type Aggregator struct {
	mu    sync.RWMutex
	clock Clock
	cfg   Config
	runID string

	pulsesMeasured  uint64
	overrunsTotal   uint64
	disordersTotal  uint64
	snapshotsTotal  uint64
	bridgeSentTotal uint64
	errorsTotal     uint64
	lastSequence    uint64

	pulsesByChannel  map[int]uint64
	overrunsByReason map[string]uint64
	errorsByContext  map[string]uint64
	errorsBySeverity map[ErrorSeverity]uint64

	pulseTimes    []time.Time // ring for rate calculation
	snapshotTimes []time.Time

	recentErrors []string
	errorIndex   int

	latencies    []time.Duration
	latencyIndex int

	eventCh chan TelemetryEvent
	done    chan struct{}
	wg      sync.WaitGroup

	startTime time.Time
}

func NewAggregator(clock Clock, cfg Config) *Aggregator {
	if clock == nil {
		clock = RealClock{}
	}
	return &Aggregator{
		clock:            clock,
		cfg:              cfg,
		runID:            uuid.NewString(),
		pulsesByChannel:  make(map[int]uint64),
		overrunsByReason: make(map[string]uint64),
		errorsByContext:  make(map[string]uint64),
		errorsBySeverity: make(map[ErrorSeverity]uint64),
		pulseTimes:       make([]time.Time, 0, cfg.RateWindowSeconds*100),
		snapshotTimes:    make([]time.Time, 0, cfg.RateWindowSeconds*25),
		recentErrors:     make([]string, cfg.MaxRecentErrors),
		latencies:        make([]time.Duration, cfg.LatencySamples),
		eventCh:          make(chan TelemetryEvent, cfg.BufferSize),
		done:             make(chan struct{}),
		startTime:        clock.Now(),
	}
}

// RunID identifies this process lifetime in exported stats.
func (a *Aggregator) RunID() string { return a.runID }

// Start begins processing telemetry events
func (a *Aggregator) Start(ctx context.Context) {
	a.wg.Add(1)
	go a.processEvents(ctx)
}

// Stop gracefully shuts down the aggregator
func (a *Aggregator) Stop() {
	close(a.done)
	a.wg.Wait()
}

// Publish implements TelemetryPublisher
func (a *Aggregator) Publish(event TelemetryEvent) {
	select {
	case a.eventCh <- event:
	default:
		// Drop rather than block the measurement path.
	}
}

func (a *Aggregator) processEvents(ctx context.Context) {
	defer a.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case event := <-a.eventCh:
			a.handleEvent(event)
		}
	}
}

func (a *Aggregator) handleEvent(event TelemetryEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()

	switch e := event.(type) {
	case PulseMeasured:
		a.pulsesMeasured++
		a.pulsesByChannel[e.Channel]++
		a.pulseTimes = trimAndAppend(a.pulseTimes, now, a.rateCutoff(now))

	case OverrunDetected:
		a.overrunsTotal++
		a.overrunsByReason[e.Reason]++

	case DisorderDetected:
		a.disordersTotal++

	case SnapshotPublished:
		a.snapshotsTotal++
		a.lastSequence = e.Sequence
		a.snapshotTimes = trimAndAppend(a.snapshotTimes, now, a.rateCutoff(now))

	case BridgeSent:
		a.bridgeSentTotal++
		a.latencies[a.latencyIndex] = e.Latency
		a.latencyIndex = (a.latencyIndex + 1) % len(a.latencies)

	case PipelineError:
		a.errorsTotal++
		a.errorsByContext[e.Context]++
		a.errorsBySeverity[e.Severity]++
		a.recentErrors[a.errorIndex] = e.Err.Error()
		a.errorIndex = (a.errorIndex + 1) % len(a.recentErrors)
	}
}

func (a *Aggregator) rateCutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)
}

func trimAndAppend(times []time.Time, t, cutoff time.Time) []time.Time {
	for len(times) > 0 && times[0].Before(cutoff) {
		times = times[1:]
	}
	return append(times, t)
}

// Stats implements StatsReader.
func (a *Aggregator) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	now := a.clock.Now()

	pulsesByChannel := make(map[int]uint64, len(a.pulsesByChannel))
	for k, v := range a.pulsesByChannel {
		pulsesByChannel[k] = v
	}
	overrunsByReason := make(map[string]uint64, len(a.overrunsByReason))
	for k, v := range a.overrunsByReason {
		overrunsByReason[k] = v
	}
	errorsByContext := make(map[string]uint64, len(a.errorsByContext))
	for k, v := range a.errorsByContext {
		errorsByContext[k] = v
	}
	errorsBySeverity := make(map[ErrorSeverity]uint64, len(a.errorsBySeverity))
	for k, v := range a.errorsBySeverity {
		errorsBySeverity[k] = v
	}

	recentErrors := make([]string, 0)
	for i := 0; i < len(a.recentErrors); i++ {
		idx := (a.errorIndex - i - 1 + len(a.recentErrors)) % len(a.recentErrors)
		if a.recentErrors[idx] != "" {
			recentErrors = append(recentErrors, a.recentErrors[idx])
		}
	}

	return Stats{
		RunID:              a.runID,
		PulsesMeasured:     a.pulsesMeasured,
		OverrunsTotal:      a.overrunsTotal,
		DisordersTotal:     a.disordersTotal,
		SnapshotsPublished: a.snapshotsTotal,
		BridgeRecordsSent:  a.bridgeSentTotal,
		ErrorsTotal:        a.errorsTotal,
		LastSequence:       a.lastSequence,
		PulsesByChannel:    pulsesByChannel,
		OverrunsByReason:   overrunsByReason,
		ErrorsByContext:    errorsByContext,
		ErrorsBySeverity:   errorsBySeverity,
		RecentErrors:       recentErrors,
		PulsesPerSecond:    a.calculateRate(a.pulseTimes, now),
		SnapshotsPerSecond: a.calculateRate(a.snapshotTimes, now),
		AvgBridgeLatencyMs: a.averageLatency(),
		UptimeSeconds:      now.Sub(a.startTime).Seconds(),
		ChannelUtilization: float64(len(a.eventCh)) / float64(cap(a.eventCh)) * 100,
	}
}

func (a *Aggregator) calculateRate(times []time.Time, now time.Time) float64 {
	if len(times) == 0 {
		return 0.0
	}
	cutoff := a.rateCutoff(now)
	count := 0
	for _, t := range times {
		if t.After(cutoff) {
			count++
		}
	}
	return float64(count) / float64(a.cfg.RateWindowSeconds)
}

func (a *Aggregator) averageLatency() float64 {
	var sum time.Duration
	n := 0
	for _, lat := range a.latencies {
		if lat > 0 {
			sum += lat
			n++
		}
	}
	if n == 0 {
		return 0.0
	}
	return float64(sum) / float64(n) / float64(time.Millisecond)
}
