// Package detector turns aligned EMA series into typed crossover events by
// scanning for sign changes in their pairwise differences.
package detector

import (
	"EmaAnalyzer/internal/model"
)

// PairRule binds a (short, long) EMA pair to its up/down categories.
type PairRule struct {
	ShortPeriod int
	LongPeriod  int
	Up          model.Category
	Down        model.Category
}

// DefaultRules is the full rule set: 20/50 produces BULLISH/BEARISH,
// 50/200 produces GOLDEN/DEATH.
var DefaultRules = []PairRule{
	{ShortPeriod: 20, LongPeriod: 50, Up: model.CategoryBullish2050, Down: model.CategoryBearish2050},
	{ShortPeriod: 50, LongPeriod: 200, Up: model.CategoryGolden50200, Down: model.CategoryDeath50200},
}

// Detect scans one (short, long) pair and emits chronological events.
// An up event fires when diff moves from <= 0 to > 0, a down event when it
// moves from >= 0 to < 0; an exact zero counts as still on the previous
// side. The first diff has no predecessor and never fires. Fewer than two
// points yields an empty sequence, not an error.
func Detect(bars []model.PriceBar, short, long []float64, rule PairRule) ([]model.CrossoverEvent, error) {
	if len(short) != len(bars) {
		return nil, model.Validationf("short", "series length %d does not match %d bars", len(short), len(bars))
	}
	if len(long) != len(bars) {
		return nil, model.Validationf("long", "series length %d does not match %d bars", len(long), len(bars))
	}

	var events []model.CrossoverEvent
	for i := 1; i < len(bars); i++ {
		prev := short[i-1] - long[i-1]
		cur := short[i] - long[i]

		switch {
		case prev <= 0 && cur > 0:
			events = append(events, model.CrossoverEvent{
				Category: rule.Up,
				Date:     bars[i].Day(),
				Price:    bars[i].Close,
			})
		case prev >= 0 && cur < 0:
			events = append(events, model.CrossoverEvent{
				Category: rule.Down,
				Date:     bars[i].Day(),
				Price:    bars[i].Close,
			})
		}
	}
	return events, nil
}

// DetectAll runs every rule against the EMA set and concatenates the
// outputs in rule order. The per-pair scans are independent; no cross-pair
// logic interleaves them.
func DetectAll(bars []model.PriceBar, emas *model.EmaSet, rules []PairRule) ([]model.CrossoverEvent, error) {
	var all []model.CrossoverEvent
	for _, rule := range rules {
		events, err := Detect(bars, emas.ByPeriod(rule.ShortPeriod), emas.ByPeriod(rule.LongPeriod), rule)
		if err != nil {
			return nil, err
		}
		all = append(all, events...)
	}
	return all, nil
}
