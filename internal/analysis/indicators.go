package analysis

import (
	"math"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
)

// recentWindow returns how many trailing points feed the recent-trend
// calculation: 20% of the series, but never fewer than 5.
func recentWindow(n int) int {
	w := int(math.Floor(float64(n) * 0.2))
	if w < 5 {
		w = 5
	}
	return w
}

// CalculateIndex derives the scalar index metrics from hourly
// aggregates. With fewer than two aggregates only the degraded
// markers are populated.
func CalculateIndex(points []models.ScalarPoint) models.IndexReport {
	if len(points) < 2 {
		return models.IndexReport{Trend: models.TrendInsufficient}
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	first := values[0]
	last := values[len(values)-1]
	current := last
	change := roundTo((last-first)/first*100, 2)

	recent := values
	if w := recentWindow(len(values)); w < len(values) {
		recent = values[len(values)-w:]
	}

	return models.IndexReport{
		Current:       &current,
		OverallChange: &change,
		Trend:         Trend(values),
		RecentTrend:   Trend(recent),
		DataPoints:    len(values),
		Volatility:    Volatility(values),
	}
}

// CalculateSentiment derives the sentiment metrics from a single
// snapshot; a nil snapshot yields the unknown bucket with null
// current/classification.
func CalculateSentiment(snapshot *models.SentimentSnapshot) models.SentimentReport {
	if snapshot == nil {
		return models.SentimentReport{Sentiment: models.SentimentUnknown}
	}

	value := snapshot.Value
	classification := snapshot.Classification
	return models.SentimentReport{
		Current:        &value,
		Classification: &classification,
		Sentiment:      SentimentLabel(&value),
		Timestamp:      snapshot.Timestamp,
	}
}

// CalculatePairs derives per-pair metrics from multi-pair hourly
// aggregates. A pair qualifies only if it is present and non-zero in
// both the first and last aggregate; its trend and volatility are
// computed on the series filtered to the hours that actually contain
// the pair, which may be shorter than DataPoints.
func CalculatePairs(points []models.PairPoint) models.CurrencyReport {
	if len(points) < 2 {
		return models.CurrencyReport{
			Pairs:    map[string]models.PairMetrics{},
			Overview: models.TrendInsufficient,
		}
	}

	first := points[0].Fields
	last := points[len(points)-1].Fields

	pairs := make(map[string]models.PairMetrics)
	sumAbsChange := 0.0

	for name, firstRate := range first {
		lastRate, ok := last[name]
		if !ok || firstRate == 0 || lastRate == 0 {
			continue
		}

		change := roundTo((lastRate-firstRate)/firstRate*100, 4)

		series := make([]float64, 0, len(points))
		for _, p := range points {
			if v, present := p.Fields[name]; present {
				series = append(series, v)
			}
		}

		pairs[name] = models.PairMetrics{
			Current:       lastRate,
			OverallChange: change,
			Trend:         Trend(series),
			Volatility:    roundTo(Volatility(series), 4),
		}
		sumAbsChange += math.Abs(change)
	}

	avgVolatility := 0.0
	if len(pairs) > 0 {
		avgVolatility = roundTo(sumAbsChange/float64(len(pairs)), 4)
	}

	overview := models.OverviewLowVolatility
	switch {
	case avgVolatility > 2.0:
		overview = models.OverviewHighVolatility
	case avgVolatility > 1.0:
		overview = models.OverviewModerateVolatility
	}

	return models.CurrencyReport{
		Pairs:         pairs,
		Overview:      overview,
		AvgVolatility: avgVolatility,
		DataPoints:    len(points),
	}
}

// BuildReport composes the three indicator reports into the composite
// consumed by the narration service. Degraded markers pass through
// untouched.
func BuildReport(index models.IndexReport, sentiment models.SentimentReport, currency models.CurrencyReport) models.MetricsReport {
	return models.MetricsReport{
		SP500:     index,
		FearGreed: sentiment,
		Currency:  currency,
	}
}
