// Package service orchestrates one analysis cycle: concurrent data
// fetch, hourly aggregation, metric calculation, narration and
// persistence. The computation itself is stateless; the only state
// the service owns is the single-flight guard.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackswanwtf/macro-indicators-service/internal/aggregation"
	"github.com/blackswanwtf/macro-indicators-service/internal/analysis"
	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
	"github.com/blackswanwtf/macro-indicators-service/internal/fetcher"
	"github.com/blackswanwtf/macro-indicators-service/internal/logger"
	"github.com/blackswanwtf/macro-indicators-service/internal/metrics"
	"github.com/blackswanwtf/macro-indicators-service/internal/narration"
	"github.com/blackswanwtf/macro-indicators-service/internal/storage"
)

var (
	// ErrCycleInProgress is returned when a cycle is requested while
	// another is in flight. The request is a no-op: never queued,
	// never run concurrently.
	ErrCycleInProgress = errors.New("analysis cycle already in progress")

	// ErrNoData marks a skipped cycle: all three indicators came back
	// empty. Distinct from a collaborator failure.
	ErrNoData = errors.New("no indicator data available")
)

// scalarField is the named field extracted from equity index samples.
const scalarField = "price"

// Options carries the per-service analysis parameters.
type Options struct {
	LookbackHours int
	Model         string
	Provider      string
}

// Analyzer runs analysis cycles over the three macro indicators.
type Analyzer struct {
	sources  fetcher.Sources
	narrator narration.Narrator
	repo     storage.AnalysisRepository
	recorder *metrics.Recorder
	opts     Options

	running atomic.Bool
}

func NewAnalyzer(sources fetcher.Sources, narrator narration.Narrator, repo storage.AnalysisRepository, recorder *metrics.Recorder, opts Options) *Analyzer {
	if opts.LookbackHours <= 0 {
		opts.LookbackHours = 168
	}
	return &Analyzer{
		sources:  sources,
		narrator: narrator,
		repo:     repo,
		recorder: recorder,
		opts:     opts,
	}
}

// Running reports whether a cycle is currently in flight.
func (a *Analyzer) Running() bool {
	return a.running.Load()
}

// RunCycle executes one full analysis cycle and returns the persisted
// record. It returns ErrCycleInProgress when called concurrently and
// ErrNoData when every indicator came back empty; any other error is a
// hard cycle failure. The in-flight guard is released on every path.
func (a *Analyzer) RunCycle(ctx context.Context) (*models.AnalysisRecord, error) {
	if !a.running.CompareAndSwap(false, true) {
		return nil, ErrCycleInProgress
	}
	defer a.running.Store(false)

	start := time.Now()
	rec, err := a.runLocked(ctx)
	a.observe(start, err)
	return rec, err
}

func (a *Analyzer) observe(start time.Time, err error) {
	if a.recorder == nil {
		return
	}
	switch {
	case err == nil:
		a.recorder.RecordCycle(metrics.OutcomeCompleted)
		a.recorder.RecordDuration(time.Since(start).Seconds())
	case errors.Is(err, ErrNoData):
		a.recorder.RecordCycle(metrics.OutcomeSkipped)
	default:
		a.recorder.RecordCycle(metrics.OutcomeFailed)
	}
}

func (a *Analyzer) runLocked(ctx context.Context) (*models.AnalysisRecord, error) {
	log := logger.L()
	start := time.Now()
	log.Info().Int("lookback_hours", a.opts.LookbackHours).Msg("analysis cycle start")

	var (
		indexSamples    []models.RawSample
		currencySamples []models.RawSample
		snapshot        *models.SentimentSnapshot
	)

	// The three upstream fetches run concurrently; the first error
	// cancels the siblings and fails the cycle.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		indexSamples, err = a.sources.IndexSamples(gctx, a.opts.LookbackHours)
		if err != nil {
			return fmt.Errorf("fetch index samples: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snapshot, err = a.sources.Sentiment(gctx)
		if err != nil {
			return fmt.Errorf("fetch sentiment: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		currencySamples, err = a.sources.CurrencySamples(gctx, a.opts.LookbackHours)
		if err != nil {
			return fmt.Errorf("fetch currency samples: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("analysis cycle failed during fetch")
		return nil, err
	}

	if len(indexSamples) == 0 && len(currencySamples) == 0 && snapshot == nil {
		log.Warn().Msg("analysis cycle skipped: no indicator data")
		return nil, ErrNoData
	}

	indexPoints := aggregation.HourlyScalar(indexSamples, scalarField)
	pairPoints := aggregation.HourlyPairs(currencySamples)

	report := analysis.BuildReport(
		analysis.CalculateIndex(indexPoints),
		analysis.CalculateSentiment(snapshot),
		analysis.CalculatePairs(pairPoints),
	)
	log.Debug().
		Int("index_points", len(indexPoints)).
		Int("pair_points", len(pairPoints)).
		Str("sp500_trend", report.SP500.Trend).
		Str("currency_overview", report.Currency.Overview).
		Msg("metrics report assembled")

	narrative, err := a.narrator.Narrate(ctx, report, a.opts.LookbackHours)
	if err != nil {
		log.Error().Err(err).Msg("analysis cycle failed during narration")
		return nil, fmt.Errorf("narrate: %w", err)
	}
	if narrative.FearGreedValue == "" && report.FearGreed.Current != nil {
		narrative.FearGreedValue = fmt.Sprintf("%.0f", *report.FearGreed.Current)
	}

	rec, err := a.repo.InsertAnalysis(models.AnalysisRecord{
		SP500Analysis:     narrative.SP500Analysis,
		FearGreedAnalysis: narrative.FearGreedAnalysis,
		CurrencyAnalysis:  narrative.CurrencyAnalysis,
		AnalysisSummary:   narrative.AnalysisSummary,
		FearGreedValue:    narrative.FearGreedValue,
		Model:             a.opts.Model,
		Provider:          a.opts.Provider,
		LookbackHours:     a.opts.LookbackHours,
	})
	if err != nil {
		log.Error().Err(err).Msg("analysis cycle failed during persistence")
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	log.Info().
		Int64("analysis_id", rec.ID).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("analysis cycle completed")
	return &rec, nil
}
