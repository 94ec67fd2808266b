package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"PortfolioReporter/internal/account"
	"PortfolioReporter/internal/chart"
	"PortfolioReporter/internal/marketdata"
	"PortfolioReporter/internal/model"
	"PortfolioReporter/internal/notifier"
	"PortfolioReporter/internal/pricestore"
	"PortfolioReporter/internal/snapshot"
)

// ArtifactSet is the pair of files produced by one daily report.
type ArtifactSet struct {
	SpreadsheetPath string
	ChartPath       string
}

// Params carries the run configuration for an Orchestrator.
type Params struct {
	Symbol       string
	ReportRoot   string
	Recipient    string
	LinkBase     string
	FetchTimeout time.Duration
}

// Orchestrator owns one report run: it computes the shared window, fans out
// the three work units, barrier-joins them, and notifies the operator.
type Orchestrator struct {
	Fetcher     marketdata.Fetcher
	Store       pricestore.Store
	Snapshotter *snapshot.Snapshotter
	Notifier    notifier.Notifier
	Params      Params

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewOrchestrator creates an Orchestrator wired to its collaborators.
func NewOrchestrator(f marketdata.Fetcher, acc account.Service, st pricestore.Store, n notifier.Notifier, p Params) *Orchestrator {
	if p.FetchTimeout == 0 {
		p.FetchTimeout = 60 * time.Second
	}
	return &Orchestrator{
		Fetcher:     f,
		Store:       st,
		Snapshotter: &snapshot.Snapshotter{Service: acc, Symbol: p.Symbol},
		Notifier:    n,
		Params:      p,
		Now:         time.Now,
	}
}

// ArtifactPaths returns the deterministic artifact locations for a report
// date. Only the calendar date matters; the time of day does not.
func (o *Orchestrator) ArtifactPaths(date time.Time) ArtifactSet {
	day := date.Format("2006-01-02")
	dir := filepath.Join(o.Params.ReportRoot, "daily")
	return ArtifactSet{
		SpreadsheetPath: filepath.Join(dir, day+".spreadsheet.xlsx"),
		ChartPath:       filepath.Join(dir, day+".candlegraph.html"),
	}
}

type workUnit struct {
	name string
	run  func() error
}

// GenerateDailyReport runs the full pipeline for the 24 hours ending now.
// Each work unit's failure is local to that unit; the run fails if any unit
// failed, and the operator is told which ones.
func (o *Orchestrator) GenerateDailyReport(ctx context.Context) error {
	now := o.Now()
	window := model.NewReportWindow(now)
	artifacts := o.ArtifactPaths(now)

	if err := os.MkdirAll(filepath.Dir(artifacts.SpreadsheetPath), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	log.Printf("[INFO] generating daily report for %s (window %s .. %s)",
		window.Date(), window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))

	units := []workUnit{
		{"price-collection", func() error { return o.collectPrices(ctx, window) }},
		{"position-snapshot", func() error { return o.recordPosition(ctx, artifacts.SpreadsheetPath) }},
		{"chart-render", func() error { return o.writeCandles(ctx, window, artifacts.ChartPath) }},
	}

	// Start every unit before joining any. Joining each one right after
	// starting it would serialize the pipeline and let an early failure
	// keep later units from ever running.
	results := make([]error, len(units))
	var wg sync.WaitGroup
	for i, unit := range units {
		wg.Add(1)
		go func(i int, unit workUnit) {
			defer wg.Done()
			if err := unit.run(); err != nil {
				log.Printf("[ERROR] %s: %v", unit.name, err)
				results[i] = fmt.Errorf("%s: %w", unit.name, err)
			}
		}(i, unit)
	}
	wg.Wait()

	var failed []string
	for i, err := range results {
		if err != nil {
			failed = append(failed, units[i].name)
		}
	}

	if len(failed) > 0 {
		o.trySend(ctx, fmt.Sprintf("Daily report for %s is INCOMPLETE: %s failed.",
			window.Date(), strings.Join(failed, ", ")))
		return fmt.Errorf("daily report %s: %w", window.Date(), errors.Join(results...))
	}

	msg := fmt.Sprintf("Your daily report is ready: %s", o.reportLink(window.Date()))
	o.trySend(ctx, msg)
	log.Printf("[INFO] daily report %s complete: %s, %s",
		window.Date(), artifacts.SpreadsheetPath, artifacts.ChartPath)
	return nil
}

// collectPrices fetches the window's minute bars and persists them into the
// price index. Re-runs over the same window insert nothing new.
func (o *Orchestrator) collectPrices(ctx context.Context, window model.ReportWindow) error {
	fctx, cancel := context.WithTimeout(ctx, o.Params.FetchTimeout)
	defer cancel()

	bars, err := o.Fetcher.GetBars(fctx, o.Params.Symbol, model.TimeframeMinute, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("fetch minute bars: %w", err)
	}
	inserted, err := o.Store.UpsertBars(o.Params.Symbol, bars)
	if err != nil {
		return fmt.Errorf("persist minute bars: %w", err)
	}
	stored, err := o.Store.BarsBetween(o.Params.Symbol, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("verify window: %w", err)
	}
	log.Printf("[INFO] price collection: %d bars fetched, %d newly inserted, window holds %d", len(bars), inserted, len(stored))
	return nil
}

// recordPosition snapshots the account and writes the spreadsheet artifact.
func (o *Orchestrator) recordPosition(ctx context.Context, path string) error {
	sctx, cancel := context.WithTimeout(ctx, o.Params.FetchTimeout)
	defer cancel()

	sheets, err := o.Snapshotter.Snapshot(sctx)
	if err != nil {
		return fmt.Errorf("snapshot positions: %w", err)
	}
	if err := snapshot.WriteSpreadsheet(sheets, path); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}
	log.Printf("[INFO] position snapshot: %d sheets written to %s", len(sheets), path)
	return nil
}

// writeCandles fetches the window's hour bars and renders the candlestick
// chart artifact.
func (o *Orchestrator) writeCandles(ctx context.Context, window model.ReportWindow, path string) error {
	fctx, cancel := context.WithTimeout(ctx, o.Params.FetchTimeout)
	defer cancel()

	bars, err := o.Fetcher.GetBars(fctx, o.Params.Symbol, model.TimeframeHour, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("fetch hour bars: %w", err)
	}
	series := chart.BuildSeries(bars)
	if err := chart.RenderCandles(series, o.Params.Symbol, path); err != nil {
		return err
	}
	log.Printf("[INFO] chart render: %d candles written to %s", series.Len(), path)
	return nil
}

func (o *Orchestrator) reportLink(day string) string {
	if o.Params.LinkBase == "" {
		return filepath.Join(o.Params.ReportRoot, "daily", day)
	}
	return fmt.Sprintf("%s/daily/%s", strings.TrimRight(o.Params.LinkBase, "/"), day)
}

// trySend delivers the notification; delivery failure is logged, never fatal.
func (o *Orchestrator) trySend(ctx context.Context, text string) {
	if err := o.Notifier.SendWithRetry(ctx, o.Params.Recipient, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
