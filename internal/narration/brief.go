package narration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
)

// RenderBrief flattens the composite metrics report into the labelled
// plain-text brief embedded in the model prompt. Degraded markers are
// printed as-is so the model can acknowledge missing data instead of
// inventing numbers.
func RenderBrief(report models.MetricsReport, lookbackHours int, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Market metrics as of %s (lookback window: %d hours)\n\n", now.UTC().Format(time.RFC3339), lookbackHours)

	b.WriteString("== S&P 500 ==\n")
	fmt.Fprintf(&b, "current: %s\n", fmtNullable(report.SP500.Current))
	fmt.Fprintf(&b, "overall change %%: %s\n", fmtNullable(report.SP500.OverallChange))
	fmt.Fprintf(&b, "trend: %s\n", report.SP500.Trend)
	if report.SP500.RecentTrend != "" {
		fmt.Fprintf(&b, "recent trend: %s\n", report.SP500.RecentTrend)
	}
	if report.SP500.DataPoints > 0 {
		fmt.Fprintf(&b, "volatility: %.4f\n", report.SP500.Volatility)
		fmt.Fprintf(&b, "hourly data points: %d\n", report.SP500.DataPoints)
	}

	b.WriteString("\n== Fear & Greed Index ==\n")
	fmt.Fprintf(&b, "current: %s\n", fmtNullable(report.FearGreed.Current))
	if report.FearGreed.Classification != nil {
		fmt.Fprintf(&b, "source classification: %s\n", *report.FearGreed.Classification)
	}
	fmt.Fprintf(&b, "sentiment: %s\n", report.FearGreed.Sentiment)

	b.WriteString("\n== Currency Exchange Rates ==\n")
	fmt.Fprintf(&b, "overview: %s\n", report.Currency.Overview)
	fmt.Fprintf(&b, "avg volatility: %.4f\n", report.Currency.AvgVolatility)
	if report.Currency.DataPoints > 0 {
		fmt.Fprintf(&b, "hourly data points: %d\n", report.Currency.DataPoints)
	}

	names := make([]string, 0, len(report.Currency.Pairs))
	for name := range report.Currency.Pairs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := report.Currency.Pairs[name]
		fmt.Fprintf(&b, "%s: current=%.4f change=%.4f%% trend=%s volatility=%.4f\n",
			name, p.Current, p.OverallChange, p.Trend, p.Volatility)
	}

	return b.String()
}

func fmtNullable(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
