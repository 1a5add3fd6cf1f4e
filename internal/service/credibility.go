package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// wilsonZ is the z-score for a 95% confidence interval.
const wilsonZ = 1.96

// CredibilityService recomputes per-source reliability scores from the
// observed retraction history.
type CredibilityService struct {
	sources repository.SourceRepository
	events  repository.EventRepository
	log     *zap.Logger
}

// NewCredibilityService creates a new credibility service
func NewCredibilityService(sources repository.SourceRepository, events repository.EventRepository, log *zap.Logger) *CredibilityService {
	return &CredibilityService{
		sources: sources,
		events:  events,
		log:     log,
	}
}

// wilsonLowerBound returns the lower bound of the Wilson score interval for
// the proportion of non-retracted events. A source with few events scores
// conservatively even when none have been retracted yet.
func wilsonLowerBound(kept, total int64) float64 {
	if total == 0 {
		return 0.5
	}

	n := float64(total)
	p := float64(kept) / n
	z2 := wilsonZ * wilsonZ

	center := p + z2/(2*n)
	margin := wilsonZ * math.Sqrt((p*(1-p)+z2/(4*n))/n)
	return (center - margin) / (1 + z2/n)
}

// Run recomputes the reliability score of every source. Sources that have
// not published yet keep the neutral prior.
func (s *CredibilityService) Run(ctx context.Context) (domain.RunCounts, error) {
	var counts domain.RunCounts

	sources, err := s.sources.List(ctx)
	if err != nil {
		return counts, fmt.Errorf("failed to list sources: %w", err)
	}

	for _, source := range sources {
		eventCounts, err := s.events.CountBySource(ctx, source.ID)
		if err != nil {
			counts.Failed++
			s.log.Warn("Failed to count events for source",
				zap.String("domain", source.Domain),
				zap.Error(err))
			continue
		}

		kept := eventCounts.Total - eventCounts.Retracted
		score := wilsonLowerBound(kept, eventCounts.Total)

		if err := s.sources.UpdateReliability(ctx, source.ID, score, eventCounts); err != nil {
			counts.Failed++
			s.log.Warn("Failed to update source reliability",
				zap.String("domain", source.Domain),
				zap.Error(err))
			continue
		}

		counts.Mapped++
		s.log.Debug("Source reliability updated",
			zap.String("domain", source.Domain),
			zap.Float64("score", score),
			zap.Int64("events", eventCounts.Total),
			zap.Int64("retracted", eventCounts.Retracted))
	}

	return counts, nil
}
