package models

import "time"

// Trend classifications shared by the index and currency calculators.
const (
	TrendBullish      = "bullish"
	TrendBearish      = "bearish"
	TrendSideways     = "sideways"
	TrendInsufficient = "insufficient_data"
)

// Sentiment buckets derived from the 0-100 fear & greed value.
const (
	SentimentExtremeFear  = "extreme_fear"
	SentimentFear         = "fear"
	SentimentNeutral      = "neutral"
	SentimentGreed        = "greed"
	SentimentExtremeGreed = "extreme_greed"
	SentimentUnknown      = "unknown"
)

// Volatility overview tiers for the currency report.
const (
	OverviewHighVolatility     = "high_volatility"
	OverviewModerateVolatility = "moderate_volatility"
	OverviewLowVolatility      = "low_volatility"
)

// IndexReport holds the calculated metrics for a scalar index series
// (S&P 500). With fewer than two hourly aggregates only Current,
// OverallChange and Trend are meaningful: the first two are null and
// Trend carries the insufficient-data marker.
type IndexReport struct {
	Current       *float64 `json:"current"`
	OverallChange *float64 `json:"overallChange"`
	Trend         string   `json:"trend"`
	RecentTrend   string   `json:"recentTrend,omitempty"`
	DataPoints    int      `json:"dataPoints,omitempty"`
	Volatility    float64  `json:"volatility,omitempty"`
}

// SentimentReport holds the metrics derived from a single fear & greed
// snapshot. A missing snapshot yields null Current/Classification and
// the "unknown" sentiment bucket.
type SentimentReport struct {
	Current        *float64 `json:"current"`
	Classification *string  `json:"classification"`
	Sentiment      string   `json:"sentiment"`
	Timestamp      int64    `json:"timestamp,omitempty"`
}

// PairMetrics is the per-pair breakdown inside a CurrencyReport.
type PairMetrics struct {
	Current       float64 `json:"current"`
	OverallChange float64 `json:"overallChange"`
	Trend         string  `json:"trend"`
	Volatility    float64 `json:"volatility"`
}

// CurrencyReport holds the metrics for the multi-pair exchange-rate
// series. Pairs contains one entry per pair present and non-zero in
// both the first and last aggregate; DataPoints is the total aggregate
// count, not a per-pair count.
type CurrencyReport struct {
	Pairs         map[string]PairMetrics `json:"pairs"`
	Overview      string                 `json:"overview"`
	AvgVolatility float64                `json:"avgVolatility"`
	DataPoints    int                    `json:"dataPoints,omitempty"`
}

// MetricsReport is the composite handed to the narration service.
type MetricsReport struct {
	SP500     IndexReport     `json:"sp500"`
	FearGreed SentimentReport `json:"fearGreed"`
	Currency  CurrencyReport  `json:"currency"`
}

// Narrative is the structured prose returned by the narration service.
// The four *Analysis fields are required; FearGreedValue may be
// defaulted from the metrics report when the model omits it.
type Narrative struct {
	SP500Analysis     string `json:"sp500_analysis"`
	FearGreedAnalysis string `json:"fear_greed_analysis"`
	CurrencyAnalysis  string `json:"currency_analysis"`
	AnalysisSummary   string `json:"analysis_summary"`
	FearGreedValue    string `json:"fear_greed_value"`
	CreatedAt         int64  `json:"createdAt,omitempty"`
}

// AnalysisRecord is one persisted analysis cycle: the narrative plus
// cycle metadata. This is what the result store appends and lists.
type AnalysisRecord struct {
	ID                int64     `json:"id"`
	SP500Analysis     string    `json:"sp500_analysis"`
	FearGreedAnalysis string    `json:"fear_greed_analysis"`
	CurrencyAnalysis  string    `json:"currency_analysis"`
	AnalysisSummary   string    `json:"analysis_summary"`
	FearGreedValue    string    `json:"fear_greed_value"`
	Model             string    `json:"model"`
	Provider          string    `json:"provider"`
	LookbackHours     int       `json:"lookback_hours"`
	CreatedAt         time.Time `json:"created_at"`
}
