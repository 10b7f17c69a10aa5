package analyzer

import (
	"math"
	"testing"
	"time"

	"EmaAnalyzer/internal/model"
)

func eventAt(cat model.Category, dayOffset int) model.CrossoverEvent {
	start := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	return model.CrossoverEvent{Category: cat, Date: start.AddDate(0, 0, dayOffset), Price: 100}
}

func TestIntervals_ThreeEvents(t *testing.T) {
	events := []model.CrossoverEvent{
		eventAt(model.CategoryBullish2050, 0),
		eventAt(model.CategoryBullish2050, 40),
		eventAt(model.CategoryBullish2050, 95),
	}
	records := Intervals(events)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].DaysBetween != 40 || records[1].DaysBetween != 55 {
		t.Errorf("expected gaps 40 and 55, got %d and %d", records[0].DaysBetween, records[1].DaysBetween)
	}

	summaries := Summarize(records)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	s := summaries[0]
	if s.Avg != 47.5 {
		t.Errorf("expected avg 47.5, got %f", s.Avg)
	}
	if s.Median != 47.5 {
		t.Errorf("expected median 47.5, got %f", s.Median)
	}
	if s.Min != 40 || s.Max != 55 {
		t.Errorf("expected min 40 max 55, got %d/%d", s.Min, s.Max)
	}
	if s.Count != 2 {
		t.Errorf("expected count 2, got %d", s.Count)
	}
	if s.StdDev == nil {
		t.Fatal("expected sample stddev for count >= 2")
	}
	// Sample stddev of {40, 55} = sqrt(112.5).
	if math.Abs(*s.StdDev-math.Sqrt(112.5)) > 1e-9 {
		t.Errorf("expected stddev %f, got %f", math.Sqrt(112.5), *s.StdDev)
	}
}

func TestIntervals_ZeroOrOneEvent(t *testing.T) {
	if records := Intervals(nil); len(records) != 0 {
		t.Errorf("expected no records for no events, got %d", len(records))
	}
	one := []model.CrossoverEvent{eventAt(model.CategoryGolden50200, 10)}
	if records := Intervals(one); len(records) != 0 {
		t.Errorf("expected no records for a single event, got %d", len(records))
	}
}

func TestIntervals_CategoriesNeverInteract(t *testing.T) {
	events := []model.CrossoverEvent{
		eventAt(model.CategoryBullish2050, 0),
		eventAt(model.CategoryBearish2050, 10),
		eventAt(model.CategoryBullish2050, 30),
		eventAt(model.CategoryBearish2050, 70),
	}
	records := Intervals(events)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		switch r.Category {
		case model.CategoryBullish2050:
			if r.DaysBetween != 30 {
				t.Errorf("bullish gap: expected 30, got %d", r.DaysBetween)
			}
		case model.CategoryBearish2050:
			if r.DaysBetween != 60 {
				t.Errorf("bearish gap: expected 60, got %d", r.DaysBetween)
			}
		default:
			t.Errorf("unexpected category %s", r.Category)
		}
	}
}

func TestIntervals_SortsUnorderedEvents(t *testing.T) {
	events := []model.CrossoverEvent{
		eventAt(model.CategoryDeath50200, 95),
		eventAt(model.CategoryDeath50200, 0),
		eventAt(model.CategoryDeath50200, 40),
	}
	records := Intervals(events)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].DaysBetween != 40 || records[1].DaysBetween != 55 {
		t.Errorf("expected gaps 40/55 after sorting, got %d/%d",
			records[0].DaysBetween, records[1].DaysBetween)
	}
	for _, r := range records {
		if r.DaysBetween <= 0 {
			t.Errorf("expected strictly positive gap, got %d", r.DaysBetween)
		}
	}
}

func TestSummarize_SingleRecordHasNoStdDev(t *testing.T) {
	records := []model.IntervalRecord{{Category: model.CategoryGolden50200, DaysBetween: 120}}
	summaries := Summarize(records)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	s := summaries[0]
	if s.StdDev != nil {
		t.Errorf("expected nil stddev for count < 2, got %f", *s.StdDev)
	}
	if s.Count != 1 || s.Avg != 120 || s.Min != 120 || s.Max != 120 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestDistribution_CompleteBinCoverage(t *testing.T) {
	records := []model.IntervalRecord{
		{Category: model.CategoryBullish2050, DaysBetween: 40},
		{Category: model.CategoryBullish2050, DaysBetween: 55},
		{Category: model.CategoryBullish2050, DaysBetween: 1200},
	}
	rows := Distribution(records, nil)

	wantBins := len(DefaultBinEdges)
	if len(rows) != wantBins {
		t.Fatalf("expected %d rows (every bin of one category), got %d", wantBins, len(rows))
	}

	sum := 0
	byLabel := map[string]int{}
	for _, r := range rows {
		if r.Category != model.CategoryBullish2050 {
			t.Errorf("unexpected category %s", r.Category)
		}
		sum += r.Frequency
		byLabel[r.BinLabel] = r.Frequency
	}
	if sum != len(records) {
		t.Errorf("frequency sum %d does not equal record count %d", sum, len(records))
	}
	if byLabel["0-49"] != 1 || byLabel["50-99"] != 1 || byLabel["1000+"] != 1 {
		t.Errorf("unexpected bucketing: %v", byLabel)
	}
}

func TestDistribution_CustomEdges(t *testing.T) {
	records := []model.IntervalRecord{
		{Category: model.CategoryDeath50200, DaysBetween: 3},
		{Category: model.CategoryDeath50200, DaysBetween: 12},
		{Category: model.CategoryDeath50200, DaysBetween: 200},
	}
	rows := Distribution(records, []int{0, 7, 14, 30, 60, 90, 180})
	if len(rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(rows))
	}
	byLabel := map[string]int{}
	for _, r := range rows {
		byLabel[r.BinLabel] = r.Frequency
	}
	if byLabel["0-6"] != 1 || byLabel["7-13"] != 1 || byLabel["180+"] != 1 {
		t.Errorf("unexpected bucketing: %v", byLabel)
	}
}

func TestDistribution_NoRecordsNoRows(t *testing.T) {
	if rows := Distribution(nil, nil); len(rows) != 0 {
		t.Errorf("expected no rows for no records, got %d", len(rows))
	}
}

func TestBinLabels(t *testing.T) {
	labels := BinLabels([]int{0, 50, 100})
	want := []string{"0-49", "50-99", "100+"}
	for i, w := range want {
		if labels[i] != w {
			t.Errorf("label %d: expected %q, got %q", i, w, labels[i])
		}
	}
}
