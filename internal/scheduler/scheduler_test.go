package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
	"github.com/blackswanwtf/macro-indicators-service/internal/service"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) RunCycle(_ context.Context) (*models.AnalysisRecord, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &models.AnalysisRecord{ID: int64(r.calls.Load())}, nil
}

func TestScheduler_RunsImmediatelyAndOnTicks(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	// One immediate run plus at least two ticks.
	if n := runner.calls.Load(); n < 3 {
		t.Fatalf("expected >=3 cycles, got %d", n)
	}
}

func TestScheduler_ErrorsDoNotStopIt(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"hard failure", errors.New("boom")},
		{"busy skip", service.ErrCycleInProgress},
		{"no data skip", service.ErrNoData},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &countingRunner{err: tc.err}
			s := New(runner, 10*time.Millisecond)

			ctx, cancel := context.WithTimeout(context.Background(), 45*time.Millisecond)
			defer cancel()
			s.Run(ctx)

			if n := runner.calls.Load(); n < 2 {
				t.Fatalf("scheduler stopped after an error, cycles=%d", n)
			}
		})
	}
}
