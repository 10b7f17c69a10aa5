package notifier

import (
	"fmt"
	"strings"
	"time"

	"EmaAnalyzer/internal/model"
	"EmaAnalyzer/internal/pipeline"
)

// FormatRunReport formats a completed run into a Telegram message.
// Fresh crossovers (those dated on the latest bar) come first, then a
// compact per-category rhythm summary.
func FormatRunReport(symbol string, res *pipeline.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>EMA crossover refresh</b> | %s | %s\n\n",
		symbol, time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Bars analyzed: %d | Crossovers on record: %d\n", len(res.Bars), len(res.Events)))

	fresh := res.LatestEvents()
	if len(fresh) > 0 {
		b.WriteString("\n🚨 <b>New crossover today:</b>\n")
		for _, e := range fresh {
			b.WriteString(fmt.Sprintf("  %s | %s | price %.2f\n",
				e.Date.Format("2006-01-02"), e.Category, e.Price))
		}
	}

	if len(res.Summaries) > 0 {
		b.WriteString("\n📈 <b>Interval rhythm:</b>\n")
		for _, s := range res.Summaries {
			b.WriteString(fmt.Sprintf("  %s: avg %.1fd (min %d / max %d, n=%d)\n",
				s.Category, s.Avg, s.Min, s.Max, s.Count))
		}
	}

	return b.String()
}

// FormatEvent formats a single crossover for logs and alerts.
func FormatEvent(e model.CrossoverEvent) string {
	return fmt.Sprintf("%s | %s | price %.2f", e.Date.Format("2006-01-02"), e.Category, e.Price)
}
