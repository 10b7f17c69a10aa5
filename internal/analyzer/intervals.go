// Package analyzer derives interval records, summary statistics and a
// day-gap histogram from per-category crossover event sequences.
package analyzer

import (
	"fmt"
	"math"
	"sort"

	"EmaAnalyzer/internal/model"
)

// DefaultBinEdges are the shared histogram boundaries: 50-day-wide bins up
// to 1000 days plus an open-ended overflow bin. The edge set is a policy
// input; callers may pass their own to Distribution.
var DefaultBinEdges = []int{0, 50, 100, 150, 200, 250, 300, 350, 400, 450, 500,
	550, 600, 650, 700, 750, 800, 850, 900, 950, 1000}

// Intervals walks each category's own chronological event sequence and
// produces one record per adjacent pair. Zero or one event in a category
// yields zero records; that is a normal condition, not an error.
// Output is ordered by category code, then by current date.
func Intervals(events []model.CrossoverEvent) []model.IntervalRecord {
	var records []model.IntervalRecord
	for _, cat := range model.Categories {
		var dates []model.CrossoverEvent
		for _, e := range events {
			if e.Category == cat {
				dates = append(dates, e)
			}
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Date.Before(dates[j].Date) })

		for i := 1; i < len(dates); i++ {
			prev := dates[i-1].Date
			cur := dates[i].Date
			records = append(records, model.IntervalRecord{
				Category:     cat,
				PreviousDate: prev,
				CurrentDate:  cur,
				DaysBetween:  int(cur.Sub(prev).Hours() / 24),
			})
		}
	}
	return records
}

// Summarize aggregates the day gaps per category. Categories without
// records are omitted. The standard deviation is the sample deviation and
// is nil when fewer than two gaps exist.
func Summarize(records []model.IntervalRecord) []model.IntervalSummary {
	var summaries []model.IntervalSummary
	for _, cat := range model.Categories {
		gaps := gapsFor(records, cat)
		if len(gaps) == 0 {
			continue
		}

		s := model.IntervalSummary{
			Category: cat,
			Avg:      mean(gaps),
			Median:   median(gaps),
			Min:      gaps[0],
			Max:      gaps[0],
			Count:    len(gaps),
		}
		for _, g := range gaps {
			if g < s.Min {
				s.Min = g
			}
			if g > s.Max {
				s.Max = g
			}
		}
		if len(gaps) >= 2 {
			sd := sampleStdDev(gaps, s.Avg)
			s.StdDev = &sd
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// Distribution buckets the day gaps of each category into the shared bin
// set. Every bin of a category with at least one record is emitted, zero
// frequencies included, so downstream consumers can assume complete bin
// coverage. Edges must be ascending; the last edge opens an overflow bin.
func Distribution(records []model.IntervalRecord, edges []int) []model.DistributionRow {
	if len(edges) == 0 {
		edges = DefaultBinEdges
	}
	labels := BinLabels(edges)

	var rows []model.DistributionRow
	for _, cat := range model.Categories {
		gaps := gapsFor(records, cat)
		if len(gaps) == 0 {
			continue
		}

		counts := make([]int, len(labels))
		for _, g := range gaps {
			counts[binIndex(edges, g)]++
		}
		for i, label := range labels {
			rows = append(rows, model.DistributionRow{
				Category:  cat,
				BinLabel:  label,
				Frequency: counts[i],
			})
		}
	}
	return rows
}

// BinLabels renders the edge set as human-readable range labels, e.g.
// [0, 50, 100] becomes ["0-49", "50-99", "100+"].
func BinLabels(edges []int) []string {
	labels := make([]string, len(edges))
	for i := 0; i < len(edges)-1; i++ {
		labels[i] = fmt.Sprintf("%d-%d", edges[i], edges[i+1]-1)
	}
	labels[len(edges)-1] = fmt.Sprintf("%d+", edges[len(edges)-1])
	return labels
}

// binIndex finds the half-open bin [edges[i], edges[i+1]) containing v;
// values past the last edge land in the overflow bin, values below the
// first edge in the first bin.
func binIndex(edges []int, v int) int {
	for i := len(edges) - 1; i >= 0; i-- {
		if v >= edges[i] {
			return i
		}
	}
	return 0
}

func gapsFor(records []model.IntervalRecord, cat model.Category) []int {
	var gaps []int
	for _, r := range records {
		if r.Category == cat {
			gaps = append(gaps, r.DaysBetween)
		}
	}
	return gaps
}

func mean(vals []int) float64 {
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}

func median(vals []int) float64 {
	sorted := make([]int, len(vals))
	copy(sorted, vals)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

func sampleStdDev(vals []int, avg float64) float64 {
	varianceSum := 0.0
	for _, v := range vals {
		d := float64(v) - avg
		varianceSum += d * d
	}
	return math.Sqrt(varianceSum / float64(len(vals)-1))
}
