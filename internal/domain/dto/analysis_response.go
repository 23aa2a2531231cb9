package dto

import (
	"time"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
)

// AnalysisResponse is the JSON shape returned for a single persisted
// analysis cycle. Fields match the API contract and may differ from
// internal domain models.
type AnalysisResponse struct {
	ID                int64     `json:"id" example:"42"`
	SP500Analysis     string    `json:"sp500_analysis"`
	FearGreedAnalysis string    `json:"fear_greed_analysis"`
	CurrencyAnalysis  string    `json:"currency_analysis"`
	AnalysisSummary   string    `json:"analysis_summary"`
	FearGreedValue    string    `json:"fear_greed_value" example:"37"`
	Model             string    `json:"model" example:"openai/gpt-4o-mini"`
	Provider          string    `json:"provider" example:"openrouter"`
	LookbackHours     int       `json:"lookback_hours" example:"168"`
	CreatedAt         time.Time `json:"created_at"`
}

// RunResponse is returned by POST /api/v1/analysis/run.
// Status is "completed" or "skipped"; Analysis is set only when a
// cycle actually ran to completion.
type RunResponse struct {
	Status   string            `json:"status" example:"completed"`
	Analysis *AnalysisResponse `json:"analysis,omitempty"`
}

// FromRecord maps a stored analysis record onto the API response shape.
func FromRecord(rec models.AnalysisRecord) AnalysisResponse {
	return AnalysisResponse{
		ID:                rec.ID,
		SP500Analysis:     rec.SP500Analysis,
		FearGreedAnalysis: rec.FearGreedAnalysis,
		CurrencyAnalysis:  rec.CurrencyAnalysis,
		AnalysisSummary:   rec.AnalysisSummary,
		FearGreedValue:    rec.FearGreedValue,
		Model:             rec.Model,
		Provider:          rec.Provider,
		LookbackHours:     rec.LookbackHours,
		CreatedAt:         rec.CreatedAt,
	}
}
