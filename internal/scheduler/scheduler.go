// Package scheduler drives periodic analysis cycles.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
	"github.com/blackswanwtf/macro-indicators-service/internal/logger"
	"github.com/blackswanwtf/macro-indicators-service/internal/service"
)

// CycleRunner is the slice of the analyzer the scheduler needs.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*models.AnalysisRecord, error)
}

// Scheduler triggers a cycle every Interval until the context is
// cancelled. Per-cycle errors are logged and swallowed: a failed or
// skipped cycle must never block the next one.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
}

func New(runner CycleRunner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{runner: runner, interval: interval}
}

// Run blocks until ctx is cancelled, executing one cycle immediately
// and then one per tick.
func (s *Scheduler) Run(ctx context.Context) {
	log := logger.L()
	log.Info().Dur("interval", s.interval).Msg("scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	rec, err := s.runner.RunCycle(ctx)
	switch {
	case err == nil:
		logger.L().Info().Int64("analysis_id", rec.ID).Msg("scheduled cycle completed")
	case errors.Is(err, service.ErrCycleInProgress):
		logger.L().Warn().Msg("scheduled cycle skipped: previous still running")
	case errors.Is(err, service.ErrNoData):
		logger.L().Warn().Msg("scheduled cycle skipped: no indicator data")
	default:
		logger.L().Error().Err(err).Msg("scheduled cycle failed")
	}
}
