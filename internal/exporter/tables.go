// Package exporter flattens the analysis artifacts into row-oriented tables
// with a stable column contract, ready for wholesale replacement in the
// warehouse. It performs no computation, only reshaping.
package exporter

import (
	"sort"

	"EmaAnalyzer/internal/model"
)

// ColumnType declares how a sink should store a column.
type ColumnType string

const (
	TypeDate    ColumnType = "DATE"
	TypeText    ColumnType = "TEXT"
	TypeInteger ColumnType = "INTEGER"
	TypeReal    ColumnType = "REAL"
)

// Column is one named, typed column of an export table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is a row-oriented export table. Column order and row order are
// deterministic for a given input so downstream consumers can bind reliably
// and repeated runs produce identical output.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// Exported table names.
const (
	TableCrossoverSummary     = "crossover_summary"
	TableIntervals            = "crossover_intervals"
	TableIntervalSummary      = "crossover_interval_summary"
	TableIntervalDistribution = "crossover_interval_distribution"
	TableRawSeries            = "raw_ohlcv_emas"
)

const dateLayout = "2006-01-02"

// BuildCrossoverSummary shapes the event stream, ordered by date then
// category code.
func BuildCrossoverSummary(events []model.CrossoverEvent) Table {
	sorted := make([]model.CrossoverEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Category.Num() < sorted[j].Category.Num()
	})

	t := Table{
		Name: TableCrossoverSummary,
		Columns: []Column{
			{Name: "date", Type: TypeDate},
			{Name: "category", Type: TypeText},
			{Name: "category_num", Type: TypeInteger},
			{Name: "price", Type: TypeReal},
		},
	}
	for _, e := range sorted {
		t.Rows = append(t.Rows, []any{
			e.Date.Format(dateLayout),
			string(e.Category),
			e.Category.Num(),
			e.Price,
		})
	}
	return t
}

// BuildIntervals shapes the per-category interval records. The input is
// already ordered by category code then date.
func BuildIntervals(records []model.IntervalRecord) Table {
	t := Table{
		Name: TableIntervals,
		Columns: []Column{
			{Name: "category", Type: TypeText},
			{Name: "category_num", Type: TypeInteger},
			{Name: "previous_date", Type: TypeDate},
			{Name: "current_date", Type: TypeDate},
			{Name: "days_between", Type: TypeInteger},
		},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []any{
			string(r.Category),
			r.Category.Num(),
			r.PreviousDate.Format(dateLayout),
			r.CurrentDate.Format(dateLayout),
			r.DaysBetween,
		})
	}
	return t
}

// BuildIntervalSummary shapes the per-category statistics. A nil standard
// deviation is exported as NULL.
func BuildIntervalSummary(summaries []model.IntervalSummary) Table {
	t := Table{
		Name: TableIntervalSummary,
		Columns: []Column{
			{Name: "category", Type: TypeText},
			{Name: "avg_days_between", Type: TypeReal},
			{Name: "median_days_between", Type: TypeReal},
			{Name: "min_days_between", Type: TypeInteger},
			{Name: "max_days_between", Type: TypeInteger},
			{Name: "stddev_days", Type: TypeReal},
			{Name: "interval_count", Type: TypeInteger},
		},
	}
	for _, s := range summaries {
		var stddev any
		if s.StdDev != nil {
			stddev = *s.StdDev
		}
		t.Rows = append(t.Rows, []any{
			string(s.Category),
			s.Avg,
			s.Median,
			s.Min,
			s.Max,
			stddev,
			s.Count,
		})
	}
	return t
}

// BuildIntervalDistribution shapes the histogram. The input already carries
// every bin per category in bin order.
func BuildIntervalDistribution(rows []model.DistributionRow) Table {
	t := Table{
		Name: TableIntervalDistribution,
		Columns: []Column{
			{Name: "category", Type: TypeText},
			{Name: "bin_label", Type: TypeText},
			{Name: "frequency", Type: TypeInteger},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			string(r.Category),
			r.BinLabel,
			r.Frequency,
		})
	}
	return t
}

// BuildRawSeries joins the bars with their EMA values for charting. The
// series must be index-aligned to the bars.
func BuildRawSeries(bars []model.PriceBar, emas *model.EmaSet) Table {
	t := Table{
		Name: TableRawSeries,
		Columns: []Column{
			{Name: "date", Type: TypeDate},
			{Name: "open", Type: TypeReal},
			{Name: "high", Type: TypeReal},
			{Name: "low", Type: TypeReal},
			{Name: "close", Type: TypeReal},
			{Name: "volume", Type: TypeReal},
			{Name: "ema_20", Type: TypeReal},
			{Name: "ema_50", Type: TypeReal},
			{Name: "ema_200", Type: TypeReal},
		},
	}
	for i, b := range bars {
		t.Rows = append(t.Rows, []any{
			b.Day().Format(dateLayout),
			b.Open,
			b.High,
			b.Low,
			b.Close,
			b.Volume,
			emas.Ema20[i],
			emas.Ema50[i],
			emas.Ema200[i],
		})
	}
	return t
}
