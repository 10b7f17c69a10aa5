package scheduler

import (
	"context"
	"fmt"
	"log"

	"EmaAnalyzer/internal/collector"
	"EmaAnalyzer/internal/notifier"
	"EmaAnalyzer/internal/pipeline"
	"EmaAnalyzer/internal/warehouse"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the refresh job on a cron schedule.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Sink       warehouse.Sink
	Notifier   *notifier.TelegramNotifier
	BinEdges   []int
	IncludeRaw bool
	Ctx        context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, sink warehouse.Sink, tn *notifier.TelegramNotifier, binEdges []int, includeRaw bool) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Collector:  col,
		Sink:       sink,
		Notifier:   tn,
		BinEdges:   binEdges,
		IncludeRaw: includeRaw,
		Ctx:        ctx,
	}
}

// Register wires the refresh task onto the cron schedule.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, func() {
		if err := s.Refresh(); err != nil {
			log.Printf("[ERROR] scheduled refresh: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// Refresh executes one full run: fetch, analyze, replace the warehouse
// tables, and notify. A validation failure aborts the run before anything
// is written, so the warehouse never holds a partial table set.
func (s *Scheduler) Refresh() error {
	log.Println("[INFO] running refresh")

	bars, err := s.Collector.Collect()
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	res, err := pipeline.Run(bars, s.BinEdges)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	log.Printf("[INFO] detected %d crossovers, %d intervals", len(res.Events), len(res.Intervals))
	for _, e := range res.LatestEvents() {
		log.Printf("[INFO] new crossover: %s", notifier.FormatEvent(e))
	}

	tables := res.Tables(s.IncludeRaw)
	if err := s.Sink.Replace(s.Ctx, tables); err != nil {
		return fmt.Errorf("replace warehouse tables: %w", err)
	}
	log.Printf("[INFO] replaced %d tables in %s sink", len(tables), s.Sink.Name())

	if s.Notifier.Enabled() {
		report := notifier.FormatRunReport(s.Collector.Symbol, res)
		if err := s.Notifier.SendWithRetry(s.Ctx, report, 3); err != nil {
			log.Printf("[ERROR] send run report: %v", err)
		}
	}
	return nil
}
