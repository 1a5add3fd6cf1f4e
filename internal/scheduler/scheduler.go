// Package scheduler drives the daily pipeline cadence: a mapping run
// followed by an aggregation run at a fixed UTC hour, with a periodic
// credibility recomputation.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/config"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/dto"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/service"
)

// Scheduler runs the daily jobs at the configured UTC hour.
type Scheduler struct {
	runs        *service.RunService
	credibility *service.CredibilityService
	cfg         config.Scheduler
	log         *zap.Logger

	now   func() time.Time
	after func(d time.Duration) <-chan time.Time
}

// New creates a scheduler.
func New(runs *service.RunService, credibility *service.CredibilityService, cfg config.Scheduler, log *zap.Logger) *Scheduler {
	return &Scheduler{
		runs:        runs,
		credibility: credibility,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
		after:       time.After,
	}
}

// nextRun returns the next occurrence of the daily run hour after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.DailyRunHourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// credibilityDue reports whether the credibility job runs on the given day.
// The day number since the Unix epoch keeps the cadence stable across
// restarts.
func (s *Scheduler) credibilityDue(day time.Time) bool {
	if s.cfg.CredibilityEveryDays <= 0 {
		return false
	}
	epochDay := int(day.UTC().Unix() / 86400)
	return epochDay%s.cfg.CredibilityEveryDays == 0
}

// Run blocks until the context is canceled, executing the daily jobs on
// schedule. A failed job is logged and retried at the next scheduled run.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := s.nextRun(s.now())
		s.log.Info("Next scheduled run", zap.Time("at", next))

		select {
		case <-ctx.Done():
			s.log.Info("Scheduler shutting down")
			return
		case <-s.after(next.Sub(s.now())):
			s.runDaily(ctx, next)
		}
	}
}

// runDaily executes mapping, then aggregation for the day that just ended,
// then the credibility job when due. Aggregation runs even when mapping
// fails: yesterday's approved evidence still deserves a snapshot.
func (s *Scheduler) runDaily(ctx context.Context, at time.Time) {
	if _, err := s.runs.TriggerMapping(); err != nil {
		s.log.Error("Scheduled mapping run failed", zap.Error(err))
	}

	date := at.UTC().Add(-24 * time.Hour).Format("2006-01-02")
	if _, err := s.runs.TriggerAggregation(&dto.TriggerAggregationRequest{Date: date}); err != nil {
		s.log.Error("Scheduled aggregation run failed",
			zap.String("date", date),
			zap.Error(err))
	}

	if s.credibilityDue(at) {
		if _, err := s.runs.Execute(ctx, domain.RunKindCredibility, s.credibility.Run); err != nil {
			s.log.Error("Scheduled credibility run failed", zap.Error(err))
		}
	}
}
