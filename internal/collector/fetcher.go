package collector

import "EmaAnalyzer/internal/model"

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.PriceBar, error)
	Name() string
}
