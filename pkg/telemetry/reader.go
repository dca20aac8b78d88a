package telemetry

// Stats is the aggregate view handed to status printers and dashboards.
type Stats struct {
	RunID string

	// Core counters
	PulsesMeasured     uint64
	OverrunsTotal      uint64
	DisordersTotal     uint64
	SnapshotsPublished uint64
	BridgeRecordsSent  uint64
	ErrorsTotal        uint64
	LastSequence       uint64

	// Breakdowns
	PulsesByChannel  map[int]uint64
	OverrunsByReason map[string]uint64
	ErrorsByContext  map[string]uint64
	ErrorsBySeverity map[ErrorSeverity]uint64
	RecentErrors     []string

	// Rates
	PulsesPerSecond    float64
	SnapshotsPerSecond float64

	// Latency
	AvgBridgeLatencyMs float64

	// System
	UptimeSeconds      float64
	ChannelUtilization float64
}

type StatsReader interface {
	Stats() Stats
}
