package detector

import (
	"errors"
	"testing"
	"time"

	"EmaAnalyzer/internal/model"
)

func testBars(n int) []model.PriceBar {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, n)
	for i := range bars {
		bars[i] = model.PriceBar{Date: start.AddDate(0, 0, i), Close: 100 + float64(i)}
	}
	return bars
}

// seriesFromDiff builds a (short, long) pair whose difference equals diff.
func seriesFromDiff(diff []float64) (short, long []float64) {
	long = make([]float64, len(diff))
	short = make([]float64, len(diff))
	copy(short, diff)
	return short, long
}

var rule2050 = PairRule{ShortPeriod: 20, LongPeriod: 50, Up: model.CategoryBullish2050, Down: model.CategoryBearish2050}

func TestDetect_SingleUpwardCross(t *testing.T) {
	bars := testBars(5)
	short, long := seriesFromDiff([]float64{-1, -1, 1, 1, 1})

	events, err := Detect(bars, short, long, rule2050)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Category != model.CategoryBullish2050 {
		t.Errorf("expected BULLISH_20_50, got %s", e.Category)
	}
	if !e.Date.Equal(bars[2].Day()) {
		t.Errorf("expected date %s, got %s", bars[2].Day(), e.Date)
	}
	if e.Price != bars[2].Close {
		t.Errorf("expected price %f, got %f", bars[2].Close, e.Price)
	}
}

func TestDetect_UpAndDownCross(t *testing.T) {
	// Upward cross at index 60, downward at index 120.
	diff := make([]float64, 200)
	for i := range diff {
		switch {
		case i < 60:
			diff[i] = -1
		case i < 120:
			diff[i] = 1
		default:
			diff[i] = -1
		}
	}
	bars := testBars(200)
	short, long := seriesFromDiff(diff)

	events, err := Detect(bars, short, long, rule2050)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Category != model.CategoryBullish2050 || !events[0].Date.Equal(bars[60].Day()) {
		t.Errorf("unexpected first event: %s at %s", events[0].Category, events[0].Date)
	}
	if events[1].Category != model.CategoryBearish2050 || !events[1].Date.Equal(bars[120].Day()) {
		t.Errorf("unexpected second event: %s at %s", events[1].Category, events[1].Date)
	}
}

func TestDetect_ZeroIsNonCrossing(t *testing.T) {
	// A run of exact zeros fires nothing until the tie breaks; the event
	// lands on the bar where the strict inequality first holds.
	bars := testBars(5)
	short, long := seriesFromDiff([]float64{-1, 0, 0, 0, 2})

	events, err := Detect(bars, short, long, rule2050)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].Date.Equal(bars[4].Day()) {
		t.Errorf("expected event on bar 4, got %s", events[0].Date)
	}
}

func TestDetect_ConstantEqualSeries(t *testing.T) {
	bars := testBars(250)
	short, long := seriesFromDiff(make([]float64, 250))

	events, err := Detect(bars, short, long, rule2050)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events for identical series, got %d", len(events))
	}
}

func TestDetect_FewerThanTwoPoints(t *testing.T) {
	bars := testBars(1)
	events, err := Detect(bars, []float64{1}, []float64{0}, rule2050)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty sequence, got %d events", len(events))
	}
}

func TestDetect_MismatchedLengths(t *testing.T) {
	bars := testBars(5)
	_, err := Detect(bars, []float64{1, 2, 3}, make([]float64, 5), rule2050)
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	_, err = Detect(bars, make([]float64, 5), []float64{1, 2}, rule2050)
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for long series, got %v", err)
	}
}

func TestDetectAll_IndependentPairs(t *testing.T) {
	// 20/50 crosses up at index 2; 50/200 crosses down at index 3.
	bars := testBars(5)
	emas := &model.EmaSet{
		Ema20:  []float64{1, 1, 3, 3, 3},
		Ema50:  []float64{2, 2, 2, 2, 2},
		Ema200: []float64{1, 1, 1, 3, 3},
	}

	events, err := DetectAll(bars, emas, DefaultRules)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Category != model.CategoryBullish2050 {
		t.Errorf("expected BULLISH_20_50 first, got %s", events[0].Category)
	}
	if events[1].Category != model.CategoryDeath50200 {
		t.Errorf("expected DEATH_50_200 second, got %s", events[1].Category)
	}
}

func TestDetect_EventsChronological(t *testing.T) {
	diff := make([]float64, 300)
	for i := range diff {
		if (i/25)%2 == 0 {
			diff[i] = -1
		} else {
			diff[i] = 1
		}
	}
	bars := testBars(300)
	short, long := seriesFromDiff(diff)

	events, err := Detect(bars, short, long, rule2050)
	if err != nil {
		t.Fatal(err)
	}
	byCat := map[model.Category][]model.CrossoverEvent{}
	for _, e := range events {
		byCat[e.Category] = append(byCat[e.Category], e)
	}
	for cat, seq := range byCat {
		for i := 1; i < len(seq); i++ {
			if !seq[i-1].Date.Before(seq[i].Date) {
				t.Errorf("%s: events not strictly increasing in date", cat)
			}
		}
	}
}
