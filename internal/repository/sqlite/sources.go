package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// SourceRepository implements repository.SourceRepository on the core store.
type SourceRepository struct {
	client *Client
	log    *zap.Logger
}

// NewSourceRepository creates a source repository.
func NewSourceRepository(client *Client, log *zap.Logger) *SourceRepository {
	return &SourceRepository{client: client, log: log}
}

// UpsertByDomain inserts the source on first sighting; on conflict the
// existing row wins and is returned. Sources are never deleted.
func (r *SourceRepository) UpsertByDomain(ctx context.Context, source *domain.Source) (*domain.Source, error) {
	res := r.client.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "domain"}},
			DoNothing: true,
		}).
		Create(source)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to upsert source: %w", res.Error)
	}

	var stored domain.Source
	if err := r.client.db.WithContext(ctx).
		Where("domain = ?", source.Domain).
		First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to load source after upsert: %w", err)
	}
	return &stored, nil
}

// List returns all known sources.
func (r *SourceRepository) List(ctx context.Context) ([]*domain.Source, error) {
	var sources []*domain.Source
	if err := r.client.db.WithContext(ctx).
		Order("domain ASC").
		Find(&sources).Error; err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	return sources, nil
}

// UpdateReliability stores a recomputed reliability score and the counts it
// was derived from.
func (r *SourceRepository) UpdateReliability(ctx context.Context, id uint, score float64, counts repository.SourceCounts) error {
	res := r.client.db.WithContext(ctx).
		Model(&domain.Source{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reliability_score": score,
			"event_count":       counts.Total,
			"retraction_count":  counts.Retracted,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update source reliability: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
