// Package aggregator folds approved, non-retracted, A/B-tier evidence links
// into per-category scores and a harmonic-mean overall score, producing one
// immutable snapshot per (preset, date).
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// ErrNoCatalog is returned when no signposts exist. Like the mapper, this is
// a fatal configuration error rather than a degradable one.
var ErrNoCatalog = errors.New("signpost catalog is empty")

// Aggregator computes and persists index snapshots.
type Aggregator struct {
	signposts repository.SignpostRepository
	links     repository.LinkRepository
	snapshots repository.SnapshotRepository
	log       *zap.Logger
}

// NewAggregator creates an index aggregator.
func NewAggregator(
	signposts repository.SignpostRepository,
	links repository.LinkRepository,
	snapshots repository.SnapshotRepository,
	log *zap.Logger,
) *Aggregator {
	return &Aggregator{
		signposts: signposts,
		links:     links,
		snapshots: snapshots,
		log:       log,
	}
}

// Run computes the scores for a preset and date (YYYY-MM-DD, UTC) and
// persists the snapshot. Re-running for the same (preset, date) replaces the
// snapshot instead of duplicating it, so a day is always safely re-runnable.
func (a *Aggregator) Run(ctx context.Context, preset *domain.WeightPreset, date string) (*domain.IndexSnapshot, error) {
	weights := preset.Weights()
	if err := ValidateWeights(weights); err != nil {
		return nil, fmt.Errorf("invalid preset %s: %w", preset.Name, err)
	}

	scores, err := a.ComputeScores(ctx, date, true)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.IndexSnapshot{
		PresetID:     preset.ID,
		SnapshotDate: date,
		Capabilities: scores[domain.CategoryCapabilities],
		Agents:       scores[domain.CategoryAgents],
		Inputs:       scores[domain.CategoryInputs],
		Security:     scores[domain.CategorySecurity],
		Overall:      Overall(scores, weights),
	}

	if err := a.snapshots.Upsert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	a.log.Info("Snapshot persisted",
		zap.String("preset", preset.Name),
		zap.String("date", date),
		zap.Float64("overall", snapshot.Overall))

	return snapshot, nil
}

// Preview computes the scores for caller-supplied weights without persisting
// anything. Custom presets reuse the same category computation as the daily
// snapshot path.
func (a *Aggregator) Preview(ctx context.Context, weights map[domain.Category]float64, date string) (map[domain.Category]float64, float64, error) {
	if err := ValidateWeights(weights); err != nil {
		return nil, 0, err
	}

	scores, err := a.ComputeScores(ctx, date, false)
	if err != nil {
		return nil, 0, err
	}
	return scores, Overall(scores, weights), nil
}

// ComputeScores derives the four category scores as of the end of the given
// day. Per signpost, the most recent qualifying link (approved, A/B-tier,
// not retracted) supplies the progress fraction; signposts without evidence
// count as zero. When updateCurrent is set, each signpost's stored current
// value is refreshed from the evidence.
func (a *Aggregator) ComputeScores(ctx context.Context, date string, updateCurrent bool) (map[domain.Category]float64, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot date %q: %w", date, err)
	}
	asOf := day.Add(24*time.Hour - time.Nanosecond)

	catalog, err := a.signposts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load signpost catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil, ErrNoCatalog
	}

	progressByCategory := make(map[domain.Category][]float64)
	for _, signpost := range catalog {
		fraction := 0.0

		link, err := a.links.LatestQualifying(ctx, signpost.ID, asOf)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// No qualifying evidence: the signpost still counts, at zero.
		case err != nil:
			return nil, fmt.Errorf("failed to resolve evidence for signpost %s: %w", signpost.Code, err)
		default:
			var current float64
			fraction, current = SignpostProgress(signpost, link.ImpactEstimate)
			if updateCurrent {
				if err := a.signposts.UpdateCurrent(ctx, signpost.ID, current); err != nil {
					return nil, fmt.Errorf("failed to update signpost %s: %w", signpost.Code, err)
				}
			}
		}

		progressByCategory[signpost.Category] = append(progressByCategory[signpost.Category], fraction)
	}

	scores := make(map[domain.Category]float64, len(domain.Categories))
	for _, category := range domain.Categories {
		scores[category] = CategoryScore(progressByCategory[category])
	}
	return scores, nil
}
