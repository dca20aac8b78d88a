package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ranger/pkg/bridge"
	"ranger/pkg/config"
	"ranger/pkg/export"
	"ranger/pkg/pipeline"
	"ranger/pkg/telemetry"
	"ranger/pkg/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		info := version.Info()
		fmt.Printf("ranger version %s, commit %s, built %s\n", info.Version, info.Commit, info.Built)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		// Help was shown
		return
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(cfg, logger); err != nil {
		logger.Fatalf("ranger failed: %v", err)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunDurationSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.RunDurationSec)*time.Second)
		defer cancel()
	}

	aggregator := telemetry.NewAggregator(telemetry.RealClock{}, telemetry.DefaultConfig())
	aggregator.Start(ctx)
	defer aggregator.Stop()

	runner, err := pipeline.New(cfg, logger, aggregator)
	if err != nil {
		return err
	}
	defer runner.Close()

	// The dashboard owns the terminal, so stdout export is only wired in
	// plain mode.
	if !cfg.Dashboard {
		runner.AddSink(export.NewLineWriter(os.Stdout, cfg.Export.Stats))
	}

	// Output files are truncated on start: each run is a fresh capture
	// stamped with its own run id, and the CSV header is only valid at
	// the top of a file.
	if cfg.Export.JSONLPath != "" {
		f, err := os.OpenFile(cfg.Export.JSONLPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open jsonl output: %w", err)
		}
		defer f.Close()
		runner.AddSink(export.NewJSONLWriter(f))
	}

	if cfg.Export.CSVPath != "" {
		f, err := os.OpenFile(cfg.Export.CSVPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open csv output: %w", err)
		}
		defer f.Close()
		runner.AddSink(export.NewCSVWriter(f))
	}

	if cfg.Bridge.URL != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		sender, err := bridge.Dial(dialCtx, cfg.Bridge.URL)
		cancel()
		if err != nil {
			return err
		}
		defer sender.Close()
		runner.SetSender(sender)
		logger.Printf("bridge connected: %s", cfg.Bridge.URL)
	}

	if cfg.Dashboard {
		return runDashboard(ctx, cfg, logger, runner, aggregator)
	}

	cli := NewCLI(aggregator, cfg, logger)
	go cli.Run(ctx)
	defer cli.Stop()

	err = runner.Start(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// runDashboard runs the pipeline in the background while the terminal UI
// blocks the main goroutine, as tview requires.
func runDashboard(ctx context.Context, cfg *config.Config, logger *log.Logger, runner *pipeline.Runner, stats telemetry.StatsReader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pipeErr := make(chan error, 1)
	go func() { pipeErr <- runner.Start(ctx) }()

	dash := NewDashboard(cfg, runner.Registry(), stats)
	if err := dash.Run(ctx); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	cancel()

	err := <-pipeErr
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
