// Package pipeline wires the edge source, channel registry, snapshot
// publisher and export sinks into one supervised loop.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ranger/pkg/bridge"
	"ranger/pkg/config"
	"ranger/pkg/export"
	"ranger/pkg/publisher"
	"ranger/pkg/pulse"
	"ranger/pkg/registry"
	"ranger/pkg/source"
	"ranger/pkg/telemetry"
)

// Runner owns the measurement pipeline. Edges flow from the source into
// the registry on the producer path; the export loop drains snapshots at
// the publisher's rate. Per-edge and per-sink faults are counted and
// logged, never fatal; only a dead event source stops the run.
type Runner struct {
	cfg    *config.Config
	logger *log.Logger
	reg    *registry.Registry
	src    source.Source
	pub    *publisher.Publisher
	sinks  []export.Sink
	sender bridge.Sender

	// nowNS is the clock edge timestamps, sweeps and export stamps share.
	nowNS func() int64

	eventCh         chan telemetry.TelemetryEvent
	publisherCtx    context.Context
	publisherCancel context.CancelFunc
}

// New builds a Runner with the simulated edge source described by the
// configuration. Sinks and the bridge sender are attached by the caller.
func New(cfg *config.Config, logger *log.Logger, telemetryPublisher telemetry.TelemetryPublisher) (*Runner, error) {
	start := time.Now()
	nowNS := func() int64 { return int64(time.Since(start)) }

	sim, err := source.NewSimulator(source.SimulatorConfig{
		Channels:  cfg.Channels,
		Period:    time.Duration(cfg.Sim.PeriodMS) * time.Millisecond,
		DistanceM: cfg.Sim.DistancesM,
		SpeedMPS:  cfg.SpeedOfSoundMPS,
		JitterNS:  int64(cfg.Sim.JitterUS) * 1000,
		NowNS:     nowNS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build edge source: %w", err)
	}
	return NewWithSource(cfg, logger, sim, nowNS, telemetryPublisher)
}

// NewWithSource builds a Runner around an injected edge source. Tests
// use it with a script source and a fake clock.
func NewWithSource(cfg *config.Config, logger *log.Logger, src source.Source, nowNS func() int64, telemetryPublisher telemetry.TelemetryPublisher) (*Runner, error) {
	reg, err := registry.New(registry.Config{
		Channels:       cfg.Channels,
		SpeedOfSound:   cfg.SpeedOfSoundMPS,
		SmoothingWin:   cfg.SmoothingWindow,
		RisingPolicy:   risingPolicy(cfg.DoubleRisingPolicy),
		ArmedTimeoutNS: int64(cfg.ArmedTimeoutMS) * int64(time.Millisecond),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	pub, err := publisher.New(reg, time.Duration(cfg.Export.IntervalMS)*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to build publisher: %w", err)
	}

	r := &Runner{
		cfg:     cfg,
		logger:  logger,
		reg:     reg,
		src:     src,
		pub:     pub,
		nowNS:   nowNS,
		eventCh: make(chan telemetry.TelemetryEvent, 100),
	}

	if telemetryPublisher != nil {
		r.StartTelemetryPublisher(telemetryPublisher)
	}
	return r, nil
}

func risingPolicy(s string) pulse.RisingPolicy {
	if s == config.PolicyCountOverrun {
		return pulse.PolicyCountOverrun
	}
	return pulse.PolicyOverwrite
}

// Registry exposes the channel registry for status readers.
func (r *Runner) Registry() *registry.Registry { return r.reg }

// AddSink attaches an export sink. Must be called before Start.
func (r *Runner) AddSink(s export.Sink) { r.sinks = append(r.sinks, s) }

// SetSender attaches the bridge sender. Must be called before Start.
func (r *Runner) SetSender(s bridge.Sender) { r.sender = s }

// StartTelemetryPublisher starts a goroutine that forwards pipeline
// events to the telemetry publisher.
func (r *Runner) StartTelemetryPublisher(publisher telemetry.TelemetryPublisher) {
	r.publisherCtx, r.publisherCancel = context.WithCancel(context.Background())
	go func() {
		for {
			select {
			case event := <-r.eventCh:
				publisher.Publish(event)
			case <-r.publisherCtx.Done():
				return
			}
		}
	}()
}

// emitTelemetry sends an event to the internal channel (non-blocking).
func (r *Runner) emitTelemetry(event telemetry.TelemetryEvent) {
	select {
	case r.eventCh <- event:
	default:
		// Channel full, drop event to avoid blocking
	}
}

// Close stops the telemetry publisher goroutine.
func (r *Runner) Close() {
	if r.publisherCancel != nil {
		r.publisherCancel()
	}
}

// Start runs the pipeline until the context is done or the event source
// fails. A source that returns nil (a finite script) gets one final
// export before Start returns, so short replays are not lost to the
// rate limit.
func (r *Runner) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srcErr := make(chan error, 1)
	go func() { srcErr <- r.src.Run(ctx, r.onEdge) }()

	exportTicker := time.NewTicker(r.pub.Interval())
	defer exportTicker.Stop()
	sweepTicker := time.NewTicker(time.Duration(r.cfg.ArmedTimeoutMS) * time.Millisecond)
	defer sweepTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			<-srcErr
			return ctx.Err()

		case err := <-srcErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("event source stopped: %w", err)
			}
			r.export(ctx, time.Now())
			return nil

		case now := <-exportTicker.C:
			r.export(ctx, now)

		case <-sweepTicker.C:
			for _, ch := range r.reg.Sweep(r.nowNS()) {
				r.logger.Printf("channel %d stuck armed, force reset", ch)
				r.emitTelemetry(telemetry.NewOverrunDetected(ch, "stuck_reset"))
			}
		}
	}
}

// onEdge is the producer path: one registry call plus fire-and-forget
// telemetry, no I/O.
func (r *Runner) onEdge(ev pulse.EdgeEvent) {
	p, res := r.reg.ApplyEdge(ev)
	switch res {
	case pulse.ResultPulse:
		r.emitTelemetry(telemetry.NewPulseMeasured(ev.Channel, p.WidthNS, p.DistanceM))
	case pulse.ResultOverrun:
		r.emitTelemetry(telemetry.NewOverrunDetected(ev.Channel, "missing_rise"))
	case pulse.ResultRestart:
		if r.cfg.DoubleRisingPolicy == config.PolicyCountOverrun {
			r.emitTelemetry(telemetry.NewOverrunDetected(ev.Channel, "discarded_restart"))
		}
	case pulse.ResultDisorder:
		r.emitTelemetry(telemetry.NewDisorderDetected(ev.Channel))
	}
}

// export runs one publisher tick and fans the snapshot out to every
// sink and the bridge. Sink failures are independent; one bad sink must
// not starve the others.
func (r *Runner) export(ctx context.Context, now time.Time) {
	snap, ok := r.pub.Tick(now)
	if !ok {
		return
	}
	tsNS := r.nowNS()

	for _, sink := range r.sinks {
		if err := sink.Write(tsNS, snap); err != nil {
			r.logger.Printf("export sink failed: %v", err)
			r.emitTelemetry(telemetry.NewPipelineError(err, "sink_write", telemetry.ErrorSeverityWarning))
		}
	}

	if r.sender != nil {
		start := time.Now()
		if err := r.sender.Send(ctx, bridge.FromSnapshot(snap)); err != nil {
			r.logger.Printf("bridge send failed: %v", err)
			r.emitTelemetry(telemetry.NewPipelineError(err, "bridge_send", telemetry.ErrorSeverityWarning))
		} else {
			r.emitTelemetry(telemetry.NewBridgeSent(snap.Sequence, time.Since(start)))
		}
	}

	r.emitTelemetry(telemetry.NewSnapshotPublished(snap.Sequence))
}
