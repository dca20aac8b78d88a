package telemetry

import "time"

// TelemetryEvent is anything the pipeline wants counted or surfaced.
type TelemetryEvent interface {
	Timestamp() time.Time // when the event occurred
	EventType() string    // for categorization/filtering
}

type PulseMeasured struct {
	timestamp time.Time
	Channel   int
	WidthNS   int64
	DistanceM float64
}

func (e PulseMeasured) Timestamp() time.Time { return e.timestamp }
func (e PulseMeasured) EventType() string    { return "pulse_measured" }

func NewPulseMeasured(channel int, widthNS int64, distanceM float64) PulseMeasured {
	return PulseMeasured{
		timestamp: time.Now(),
		Channel:   channel,
		WidthNS:   widthNS,
		DistanceM: distanceM,
	}
}

// OverrunDetected covers every path that increments a channel's overrun
// counter: a falling edge with no rising edge, a stuck-channel sweep
// reset, and a discarded half-pulse under the count-overrun policy.
type OverrunDetected struct {
	timestamp time.Time
	Channel   int
	Reason    string // "missing_rise", "stuck_reset", "discarded_restart"
}

func (e OverrunDetected) Timestamp() time.Time { return e.timestamp }
func (e OverrunDetected) EventType() string    { return "overrun_detected" }

func NewOverrunDetected(channel int, reason string) OverrunDetected {
	return OverrunDetected{timestamp: time.Now(), Channel: channel, Reason: reason}
}

type DisorderDetected struct {
	timestamp time.Time
	Channel   int
}

func (e DisorderDetected) Timestamp() time.Time { return e.timestamp }
func (e DisorderDetected) EventType() string    { return "disorder_detected" }

func NewDisorderDetected(channel int) DisorderDetected {
	return DisorderDetected{timestamp: time.Now(), Channel: channel}
}

type SnapshotPublished struct {
	timestamp time.Time
	Sequence  uint64
}

func (e SnapshotPublished) Timestamp() time.Time { return e.timestamp }
func (e SnapshotPublished) EventType() string    { return "snapshot_published" }

func NewSnapshotPublished(sequence uint64) SnapshotPublished {
	return SnapshotPublished{timestamp: time.Now(), Sequence: sequence}
}

type BridgeSent struct {
	timestamp time.Time
	Sequence  uint64
	Latency   time.Duration // time from snapshot to send completion
}

func (e BridgeSent) Timestamp() time.Time { return e.timestamp }
func (e BridgeSent) EventType() string    { return "bridge_sent" }

func NewBridgeSent(sequence uint64, latency time.Duration) BridgeSent {
	return BridgeSent{timestamp: time.Now(), Sequence: sequence, Latency: latency}
}

type PipelineError struct {
	timestamp time.Time
	Err       error
	Context   string // e.g. "bridge_send", "jsonl_write"
	Severity  ErrorSeverity
}

func (e PipelineError) Timestamp() time.Time { return e.timestamp }
func (e PipelineError) EventType() string    { return "pipeline_error" }

func NewPipelineError(err error, context string, severity ErrorSeverity) PipelineError {
	return PipelineError{timestamp: time.Now(), Err: err, Context: context, Severity: severity}
}

type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
	ErrorSeverityCritical
)

type TelemetryPublisher interface {
	// Publish sends a telemetry event to the aggregator.
	// This is a non-blocking, fire-and-forget call.
	Publish(event TelemetryEvent)
}
