package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/dto"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

const defaultRunLimit = 50

// MappingRunner maps pending events to signposts.
type MappingRunner interface {
	Run(ctx context.Context) (domain.RunCounts, error)
}

// AggregationRunner computes and persists an index snapshot.
type AggregationRunner interface {
	Run(ctx context.Context, preset *domain.WeightPreset, date string) (*domain.IndexSnapshot, error)
}

// RunService triggers pipeline runs and records their lifecycle in the
// telemetry store. Each run is written twice: once as running, then again as
// completed or failed with its counters.
type RunService struct {
	mapping     MappingRunner
	aggregation AggregationRunner
	presets     repository.PresetRepository
	runs        repository.RunRepository
	log         *zap.Logger
	now         func() time.Time
}

// NewRunService creates a new run service
func NewRunService(
	mapping MappingRunner,
	aggregation AggregationRunner,
	presets repository.PresetRepository,
	runs repository.RunRepository,
	log *zap.Logger,
) *RunService {
	return &RunService{
		mapping:     mapping,
		aggregation: aggregation,
		presets:     presets,
		runs:        runs,
		log:         log,
		now:         time.Now,
	}
}

func runData(run *domain.IngestRun) dto.RunData {
	data := dto.RunData{
		RunID:        run.RunID,
		Kind:         string(run.Kind),
		Status:       string(run.Status),
		StartedAt:    run.StartedAt.UTC().Format(time.RFC3339),
		Ingested:     run.Counts.Ingested,
		Duplicates:   run.Counts.Duplicates,
		TierBlocked:  run.Counts.TierBlocked,
		Mapped:       run.Counts.Mapped,
		AutoApproved: run.Counts.AutoApproved,
		Queued:       run.Counts.Queued,
		Deferred:     run.Counts.Deferred,
		Failed:       run.Counts.Failed,
		Error:        run.Error,
	}
	if !run.FinishedAt.IsZero() {
		data.FinishedAt = run.FinishedAt.UTC().Format(time.RFC3339)
	}
	return data
}

// Execute runs a job under a fresh run ID, recording the running state
// before the job and the terminal state after it. The job's error is
// recorded and returned; degraded-but-successful runs surface through the
// counters instead.
func (s *RunService) Execute(ctx context.Context, kind domain.RunKind, job func(ctx context.Context) (domain.RunCounts, error)) (*dto.RunData, error) {
	run := &domain.IngestRun{
		RunID:     uuid.NewString(),
		Kind:      kind,
		Status:    domain.RunStatusRunning,
		StartedAt: s.now().UTC(),
	}

	if err := s.runs.RecordRun(ctx, run); err != nil {
		// Telemetry must not block the pipeline.
		s.log.Error("Failed to record run start",
			zap.String("run_id", run.RunID),
			zap.Error(err))
	}

	counts, jobErr := job(ctx)

	run.Counts = counts
	run.FinishedAt = s.now().UTC()
	run.Version = 0 // let the store assign the next version
	if jobErr != nil {
		run.Status = domain.RunStatusFailed
		run.Error = jobErr.Error()
	} else {
		run.Status = domain.RunStatusCompleted
	}

	if err := s.runs.RecordRun(ctx, run); err != nil {
		s.log.Error("Failed to record run finish",
			zap.String("run_id", run.RunID),
			zap.Error(err))
	}

	s.log.Info("Run finished",
		zap.String("run_id", run.RunID),
		zap.String("kind", string(kind)),
		zap.String("status", string(run.Status)),
		zap.Error(jobErr))

	data := runData(run)
	return &data, jobErr
}

// TriggerMapping runs the signpost mapper over all mappable events.
func (s *RunService) TriggerMapping() (*dto.RunData, error) {
	return s.Execute(context.Background(), domain.RunKindMapping, s.mapping.Run)
}

// TriggerAggregation computes a snapshot for the requested preset and date,
// defaulting to the equal-weight preset and today (UTC).
func (s *RunService) TriggerAggregation(req *dto.TriggerAggregationRequest) (*dto.RunData, error) {
	ctx := context.Background()

	var preset *domain.WeightPreset
	var err error
	if req.Preset == "" {
		preset, err = s.presets.EnsureDefault(ctx)
	} else {
		preset, err = s.presets.GetByName(ctx, req.Preset)
	}
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	}

	return s.Execute(ctx, domain.RunKindAggregation, func(ctx context.Context) (domain.RunCounts, error) {
		_, err := s.aggregation.Run(ctx, preset, date)
		return domain.RunCounts{}, err
	})
}

// ListRuns returns recent runs, newest first.
func (s *RunService) ListRuns(limit int) (*dto.RunListResponse, error) {
	ctx := context.Background()

	if limit <= 0 {
		limit = defaultRunLimit
	}

	runs, err := s.runs.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RunData, 0, len(runs))
	for _, run := range runs {
		out = append(out, runData(run))
	}

	return &dto.RunListResponse{Runs: out, Count: len(out)}, nil
}
