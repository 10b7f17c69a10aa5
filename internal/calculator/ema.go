package calculator

import (
	"EmaAnalyzer/internal/model"
)

// EMA periods used throughout the pipeline.
const (
	PeriodShort = 20
	PeriodMid   = 50
	PeriodLong  = 200
)

// EMA computes the exponential moving average of the given closes.
// The output has the same length as the input: the seed (arithmetic mean of
// the first min(period, len) closes) fills every index up to the seed index,
// and the standard recurrence applies afterwards with multiplier 2/(period+1).
// Fewer bars than the period is not an error, the series is just less
// smoothed.
func EMA(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, model.Validationf("period", "must be positive, got %d", period)
	}
	if len(closes) == 0 {
		return []float64{}, nil
	}

	seedIdx := period - 1
	if seedIdx >= len(closes) {
		seedIdx = len(closes) - 1
	}

	sum := 0.0
	for i := 0; i <= seedIdx; i++ {
		sum += closes[i]
	}
	seed := sum / float64(seedIdx+1)

	ema := make([]float64, len(closes))
	for i := 0; i <= seedIdx; i++ {
		ema[i] = seed
	}

	multiplier := 2.0 / float64(period+1)
	for i := seedIdx + 1; i < len(closes); i++ {
		ema[i] = closes[i]*multiplier + ema[i-1]*(1-multiplier)
	}
	return ema, nil
}

// ComputeSet runs the three EMA passes (20/50/200) over the bar sequence.
// The passes are independent; they share nothing but the input closes.
func ComputeSet(bars []model.PriceBar) (*model.EmaSet, error) {
	closes := model.Closes(bars)

	ema20, err := EMA(closes, PeriodShort)
	if err != nil {
		return nil, err
	}
	ema50, err := EMA(closes, PeriodMid)
	if err != nil {
		return nil, err
	}
	ema200, err := EMA(closes, PeriodLong)
	if err != nil {
		return nil, err
	}

	return &model.EmaSet{Ema20: ema20, Ema50: ema50, Ema200: ema200}, nil
}
