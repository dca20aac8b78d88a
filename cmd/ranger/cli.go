package main

import (
	"context"
	"log"
	"time"

	"ranger/pkg/config"
	"ranger/pkg/telemetry"
)

// CLI represents the quiet-mode status printer
type CLI struct {
	telemetry telemetry.StatsReader
	config    *config.Config
	logger    *log.Logger

	// State
	lastStats telemetry.Stats
	done      chan struct{}
}

// NewCLI creates a new quiet-mode status printer
func NewCLI(statsReader telemetry.StatsReader, cfg *config.Config, logger *log.Logger) *CLI {
	return &CLI{
		telemetry: statsReader,
		config:    cfg,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Run starts the status printer and blocks until shutdown
func (c *CLI) Run(ctx context.Context) error {
	c.logger.Printf("Starting ranger in quiet mode")
	c.logger.Printf("Channels: %d, smoothing window: %d", c.config.Channels, c.config.SmoothingWindow)
	c.logger.Printf("Export interval: %d ms", c.config.Export.IntervalMS)
	if c.config.Bridge.URL != "" {
		c.logger.Printf("Bridge: %s", c.config.Bridge.URL)
	}

	// Print periodic status updates
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Printf("Shutting down...")
			return nil
		case <-ticker.C:
			c.printStatus()
		case <-c.done:
			return nil
		}
	}
}

// Stop stops the status printer
func (c *CLI) Stop() {
	close(c.done)
}

// printStatus prints current telemetry status
func (c *CLI) printStatus() {
	stats := c.telemetry.Stats()

	// Only print if there are changes or significant activity
	if c.shouldPrintStatus(stats) {
		c.logger.Printf("Status - Pulses: %d (%.1f/s), snapshots: %d (%.1f/s), seq: %d",
			stats.PulsesMeasured,
			stats.PulsesPerSecond,
			stats.SnapshotsPublished,
			stats.SnapshotsPerSecond,
			stats.LastSequence)

		if stats.OverrunsTotal > 0 || stats.DisordersTotal > 0 {
			c.logger.Printf("Faults - overruns: %d, disordered edges: %d",
				stats.OverrunsTotal, stats.DisordersTotal)
		}

		if stats.BridgeRecordsSent > 0 {
			c.logger.Printf("Bridge - records: %d, avg latency: %.1f ms",
				stats.BridgeRecordsSent, stats.AvgBridgeLatencyMs)
		}

		if stats.ErrorsTotal > c.lastStats.ErrorsTotal && len(stats.RecentErrors) > 0 {
			c.logger.Printf("Last error: %s", stats.RecentErrors[0])
		}
	}

	c.lastStats = stats
}

// shouldPrintStatus determines if we should print a status update
func (c *CLI) shouldPrintStatus(stats telemetry.Stats) bool {
	// Always print first status
	if c.lastStats.PulsesMeasured == 0 && c.lastStats.SnapshotsPublished == 0 {
		return true
	}

	// Print if measurement counts changed
	if stats.PulsesMeasured != c.lastStats.PulsesMeasured ||
		stats.SnapshotsPublished != c.lastStats.SnapshotsPublished {
		return true
	}

	// Print if there are new errors or faults
	if stats.ErrorsTotal > c.lastStats.ErrorsTotal ||
		stats.OverrunsTotal > c.lastStats.OverrunsTotal ||
		stats.DisordersTotal > c.lastStats.DisordersTotal {
		return true
	}

	return false
}
