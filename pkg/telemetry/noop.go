package telemetry

// NoopPublisher is a telemetry publisher that does nothing.
// Useful for testing or when telemetry is disabled.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (n *NoopPublisher) Publish(event TelemetryEvent) {
	// No-op
}
