package collector

import (
	"fmt"
	"log"
	"time"

	"EmaAnalyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.PriceBar
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.PriceBar, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(100, days), nil
}

// GenerateMockBars builds a deterministic drifting series for dry runs.
func GenerateMockBars(basePrice float64, count int) []model.PriceBar {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches the price history and validates it before analysis.
type Collector struct {
	Fetcher      Fetcher
	Symbol       string
	LookbackDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, lookbackDays int) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, LookbackDays: lookbackDays}
}

// Collect fetches the daily history and rejects malformed input before any
// downstream component sees it.
func (c *Collector) Collect() ([]model.PriceBar, error) {
	bars, err := c.Fetcher.FetchDailyBars(c.Symbol, c.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if err := ValidateBars(bars); err != nil {
		return nil, err
	}
	log.Printf("[INFO] collected %d daily bars for %s from %s", len(bars), c.Symbol, c.Fetcher.Name())
	return bars, nil
}

// ValidateBars checks the input contract: strictly ascending dates, one bar
// per trading day, positive close prices. Missing days are simply absent
// and are not an error.
func ValidateBars(bars []model.PriceBar) error {
	for i, b := range bars {
		if b.Close <= 0 {
			return model.Validationf("close", "bar %d (%s) has non-positive close %f",
				i, b.Day().Format("2006-01-02"), b.Close)
		}
		if i > 0 && !bars[i-1].Day().Before(b.Day()) {
			return model.Validationf("date", "bar %d (%s) is not after bar %d (%s)",
				i, b.Day().Format("2006-01-02"), i-1, bars[i-1].Day().Format("2006-01-02"))
		}
	}
	return nil
}
