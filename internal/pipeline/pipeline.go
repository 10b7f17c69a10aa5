// Package pipeline runs the full batch computation: EMA engine, crossover
// detector and interval analyzer, then shapes the result for export.
//
// The whole run is a pure transformation of an immutable bar sequence.
// Re-running on the same input produces identical tables, which is what
// makes full-replace at the storage boundary safe.
package pipeline

import (
	"EmaAnalyzer/internal/analyzer"
	"EmaAnalyzer/internal/calculator"
	"EmaAnalyzer/internal/detector"
	"EmaAnalyzer/internal/exporter"
	"EmaAnalyzer/internal/model"
)

// Result holds every artifact of one run.
type Result struct {
	Bars         []model.PriceBar
	Emas         *model.EmaSet
	Events       []model.CrossoverEvent
	Intervals    []model.IntervalRecord
	Summaries    []model.IntervalSummary
	Distribution []model.DistributionRow
}

// Run executes the computation over a validated bar sequence. A validation
// failure in any stage aborts the run; no partial result is returned.
func Run(bars []model.PriceBar, binEdges []int) (*Result, error) {
	emas, err := calculator.ComputeSet(bars)
	if err != nil {
		return nil, err
	}

	events, err := detector.DetectAll(bars, emas, detector.DefaultRules)
	if err != nil {
		return nil, err
	}

	intervals := analyzer.Intervals(events)

	return &Result{
		Bars:         bars,
		Emas:         emas,
		Events:       events,
		Intervals:    intervals,
		Summaries:    analyzer.Summarize(intervals),
		Distribution: analyzer.Distribution(intervals, binEdges),
	}, nil
}

// Tables flattens the result into the export set. The raw OHLCV+EMA join is
// optional because it dwarfs the other tables.
func (r *Result) Tables(includeRaw bool) []exporter.Table {
	tables := []exporter.Table{
		exporter.BuildCrossoverSummary(r.Events),
		exporter.BuildIntervals(r.Intervals),
		exporter.BuildIntervalSummary(r.Summaries),
		exporter.BuildIntervalDistribution(r.Distribution),
	}
	if includeRaw {
		tables = append(tables, exporter.BuildRawSeries(r.Bars, r.Emas))
	}
	return tables
}

// LatestEvents returns the events dated on the most recent bar, if any.
// Used for run notifications.
func (r *Result) LatestEvents() []model.CrossoverEvent {
	if len(r.Bars) == 0 {
		return nil
	}
	last := r.Bars[len(r.Bars)-1].Day()
	var latest []model.CrossoverEvent
	for _, e := range r.Events {
		if e.Date.Equal(last) {
			latest = append(latest, e)
		}
	}
	return latest
}
