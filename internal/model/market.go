package model

import "time"

// PriceBar represents a single daily candlestick bar.
// Close is required for analysis; the remaining OHLCV fields are carried
// through to the raw export table.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Day normalizes the bar timestamp to a UTC calendar date.
func (b PriceBar) Day() time.Time {
	y, m, d := b.Date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Closes extracts the close series from a bar sequence.
func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// EmaSet holds the three smoothed series, each index-aligned to the
// originating bar sequence and of equal length.
type EmaSet struct {
	Ema20  []float64
	Ema50  []float64
	Ema200 []float64
}

// ByPeriod returns the series for one of the three supported periods,
// or nil for anything else.
func (s *EmaSet) ByPeriod(period int) []float64 {
	switch period {
	case 20:
		return s.Ema20
	case 50:
		return s.Ema50
	case 200:
		return s.Ema200
	}
	return nil
}
