// Package scheduler runs a job on a cron schedule until the context is
// cancelled. It backs the watch mode, regenerating the playlist at the
// configured times.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is the work executed at each scheduled time. A returned error is
// logged; it does not stop the schedule.
type Job func(ctx context.Context) error

// Scheduler executes a job on a standard 5-field cron schedule.
type Scheduler struct {
	expr       string
	schedule   cron.Schedule
	job        Job
	logger     *slog.Logger
	runOnStart bool
}

// New creates a scheduler from a 5-field cron expression.
func New(expr string, job Job) (*Scheduler, error) {
	if job == nil {
		return nil, fmt.Errorf("job is required")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", expr, err)
	}

	return &Scheduler{
		expr:     expr,
		schedule: schedule,
		job:      job,
		logger:   slog.Default(),
	}, nil
}

// WithLogger sets a custom logger.
func (s *Scheduler) WithLogger(logger *slog.Logger) *Scheduler {
	s.logger = logger
	return s
}

// WithRunOnStart makes Run execute the job once immediately before
// waiting for the first scheduled time.
func (s *Scheduler) WithRunOnStart(run bool) *Scheduler {
	s.runOnStart = run
	return s
}

// Next returns the first scheduled time after from.
func (s *Scheduler) Next(from time.Time) time.Time {
	return s.schedule.Next(from)
}

// Run blocks, executing the job at each scheduled time until the
// context is cancelled. It returns the context's error.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("schedule started",
		slog.String("schedule", s.expr),
		slog.Time("next_run", s.Next(time.Now())),
	)

	if s.runOnStart {
		s.execute(ctx)
	}

	for {
		next := s.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("schedule stopped")
			return ctx.Err()
		case <-timer.C:
			s.execute(ctx)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context) {
	start := time.Now()
	if err := s.job(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("scheduled run failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return
	}
	s.logger.Info("scheduled run completed",
		slog.Duration("duration", time.Since(start)),
		slog.Time("next_run", s.Next(time.Now())),
	)
}
