// Package analysis derives trend, volatility and sentiment metrics
// from aggregated hourly series and assembles the composite report
// handed to the narration service.
package analysis

import (
	"math"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
)

// Trend classifies the direction of an ordered series from the
// fraction of adjacent pairs that move strictly up. It depends only on
// pairwise ordering, not magnitude: a series creeping up 99% of the
// time reads bullish exactly like a sharply rising one.
//
// Fewer than 3 points cannot establish a direction and return the
// insufficient-data marker.
func Trend(values []float64) string {
	if len(values) < 3 {
		return models.TrendInsufficient
	}

	increases := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1] {
			increases++
		}
	}

	ratio := float64(increases) / float64(len(values)-1)
	switch {
	case ratio > 0.6:
		return models.TrendBullish
	case ratio < 0.4:
		return models.TrendBearish
	default:
		return models.TrendSideways
	}
}

// Volatility returns the population standard deviation of values.
// Fewer than 2 points yield 0, not an error.
func Volatility(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	varianceSum := 0.0
	for _, v := range values {
		varianceSum += (v - mean) * (v - mean)
	}
	return math.Sqrt(varianceSum / float64(len(values)))
}

// SentimentLabel buckets a 0-100 fear & greed value. Band boundaries
// are inclusive on the upper end (25 is still extreme_fear). A nil
// value maps to unknown.
func SentimentLabel(value *float64) string {
	if value == nil {
		return models.SentimentUnknown
	}
	switch v := *value; {
	case v <= 25:
		return models.SentimentExtremeFear
	case v <= 45:
		return models.SentimentFear
	case v <= 55:
		return models.SentimentNeutral
	case v <= 75:
		return models.SentimentGreed
	default:
		return models.SentimentExtremeGreed
	}
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
