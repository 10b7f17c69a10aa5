package model

import "time"

// Category identifies one of the four crossover types.
type Category string

const (
	CategoryBullish2050 Category = "BULLISH_20_50"
	CategoryBearish2050 Category = "BEARISH_20_50"
	CategoryGolden50200 Category = "GOLDEN_50_200"
	CategoryDeath50200  Category = "DEATH_50_200"
)

// Categories lists all crossover categories in stable numeric order.
var Categories = []Category{
	CategoryBullish2050,
	CategoryBearish2050,
	CategoryGolden50200,
	CategoryDeath50200,
}

// Num returns the stable numeric code (1..4) used in the exported tables.
// Unknown categories map to 0.
func (c Category) Num() int {
	switch c {
	case CategoryBullish2050:
		return 1
	case CategoryBearish2050:
		return 2
	case CategoryGolden50200:
		return 3
	case CategoryDeath50200:
		return 4
	}
	return 0
}

// CrossoverEvent marks a sign change between two EMA series.
// Immutable once created.
type CrossoverEvent struct {
	Category Category
	Date     time.Time
	Price    float64
}

// IntervalRecord is the day gap between two consecutive events of the same
// category.
type IntervalRecord struct {
	Category     Category
	PreviousDate time.Time
	CurrentDate  time.Time
	DaysBetween  int
}

// IntervalSummary aggregates the day gaps of one category.
// StdDev is the sample standard deviation and is nil when Count < 2.
type IntervalSummary struct {
	Category Category
	Avg      float64
	Median   float64
	Min      int
	Max      int
	Count    int
	StdDev   *float64
}

// DistributionRow is one (category, bin) cell of the day-gap histogram.
// Every bin of a category is present, zero frequencies included.
type DistributionRow struct {
	Category  Category
	BinLabel  string
	Frequency int
}
