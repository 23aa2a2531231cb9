package storage

import (
	"database/sql"
	"fmt"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
)

// AnalysisRepository defines the contract for the analysis result
// store: append one record, list the most recent N.
type AnalysisRepository interface {
	InsertAnalysis(rec models.AnalysisRecord) (models.AnalysisRecord, error)
	ListRecent(limit int) ([]models.AnalysisRecord, error)
}

type analysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// InsertAnalysis appends one completed cycle and returns the stored
// record with its assigned id and created_at.
func (r *analysisRepository) InsertAnalysis(rec models.AnalysisRecord) (models.AnalysisRecord, error) {
	row := r.db.QueryRow(`
		INSERT INTO macro_analyses (
			sp500_analysis, fear_greed_analysis, currency_analysis,
			analysis_summary, fear_greed_value, model, provider, lookback_hours
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`,
		rec.SP500Analysis,
		rec.FearGreedAnalysis,
		rec.CurrencyAnalysis,
		rec.AnalysisSummary,
		rec.FearGreedValue,
		rec.Model,
		rec.Provider,
		rec.LookbackHours,
	)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return models.AnalysisRecord{}, fmt.Errorf("insert analysis: %w", err)
	}
	return rec, nil
}

// ListRecent returns up to limit records, newest first.
func (r *analysisRepository) ListRecent(limit int) ([]models.AnalysisRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, sp500_analysis, fear_greed_analysis, currency_analysis,
		       analysis_summary, fear_greed_value, model, provider,
		       lookback_hours, created_at
		FROM macro_analyses
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.AnalysisRecord
	for rows.Next() {
		var rec models.AnalysisRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.SP500Analysis,
			&rec.FearGreedAnalysis,
			&rec.CurrencyAnalysis,
			&rec.AnalysisSummary,
			&rec.FearGreedValue,
			&rec.Model,
			&rec.Provider,
			&rec.LookbackHours,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}
