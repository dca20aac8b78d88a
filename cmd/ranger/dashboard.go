package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ranger/pkg/config"
	"ranger/pkg/registry"
	"ranger/pkg/telemetry"
)

// Dashboard is the live terminal view: one row per channel plus a
// telemetry footer. It reads snapshots and aggregated stats; it never
// touches the producer path.
type Dashboard struct {
	app    *tview.Application
	table  *tview.Table
	footer *tview.TextView

	cfg   *config.Config
	reg   *registry.Registry
	stats telemetry.StatsReader
}

func NewDashboard(cfg *config.Config, reg *registry.Registry, stats telemetry.StatsReader) *Dashboard {
	d := &Dashboard{
		app:    tview.NewApplication(),
		table:  tview.NewTable(),
		footer: tview.NewTextView().SetDynamicColors(true),
		cfg:    cfg,
		reg:    reg,
		stats:  stats,
	}

	d.table.SetBorder(true).SetTitle(" ranger ")
	d.footer.SetBorder(true).SetTitle(" telemetry ")

	headers := []string{"CH", "DIST (m)", "DIST (um)", "PULSES", "OVERRUNS", "DISORDERED"}
	for col, h := range headers {
		d.table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}

	d.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			d.app.Stop()
			return nil
		}
		return ev
	})

	return d
}

// Run blocks until the context is done or the user quits.
func (d *Dashboard) Run(ctx context.Context) error {
	refresh := time.Duration(d.cfg.Export.IntervalMS) * time.Millisecond
	ticker := time.NewTicker(refresh)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				d.app.Stop()
				return
			case <-ticker.C:
				d.app.QueueUpdateDraw(d.redraw)
			}
		}
	}()

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.table, 0, 1, true).
		AddItem(d.footer, 6, 0, false)

	return d.app.SetRoot(flex, true).Run()
}

func (d *Dashboard) redraw() {
	snap := d.reg.Snapshot()

	for ch := 0; ch < len(snap.DistancesM); ch++ {
		row := ch + 1
		color := tcell.ColorGreen
		if snap.OverrunCounts[ch] > 0 || snap.DisorderCounts[ch] > 0 {
			color = tcell.ColorRed
		}
		cells := []string{
			fmt.Sprintf("%d", ch),
			fmt.Sprintf("%.3f", snap.DistancesM[ch]),
			fmt.Sprintf("%d", snap.DistancesUM[ch]),
			fmt.Sprintf("%d", snap.PulseCounts[ch]),
			fmt.Sprintf("%d", snap.OverrunCounts[ch]),
			fmt.Sprintf("%d", snap.DisorderCounts[ch]),
		}
		for col, text := range cells {
			d.table.SetCell(row, col, tview.NewTableCell(text).
				SetTextColor(color).
				SetExpansion(1))
		}
	}

	s := d.stats.Stats()
	d.footer.SetText(fmt.Sprintf(
		"run %s  seq %d  uptime %.0fs\npulses %d (%.1f/s)  snapshots %d (%.1f/s)\noverruns %d  disordered %d  bridge %d (%.1f ms)  errors %d",
		s.RunID, snap.Sequence, s.UptimeSeconds,
		s.PulsesMeasured, s.PulsesPerSecond, s.SnapshotsPublished, s.SnapshotsPerSecond,
		s.OverrunsTotal, s.DisordersTotal, s.BridgeRecordsSent, s.AvgBridgeLatencyMs, s.ErrorsTotal))
}
