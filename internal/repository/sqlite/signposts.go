package sqlite

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// SignpostRepository implements repository.SignpostRepository on the core
// store.
type SignpostRepository struct {
	client *Client
	log    *zap.Logger
}

// NewSignpostRepository creates a signpost repository.
func NewSignpostRepository(client *Client, log *zap.Logger) *SignpostRepository {
	return &SignpostRepository{client: client, log: log}
}

// List returns the full signpost catalog.
func (r *SignpostRepository) List(ctx context.Context) ([]*domain.Signpost, error) {
	var signposts []*domain.Signpost
	if err := r.client.db.WithContext(ctx).
		Order("code ASC").
		Find(&signposts).Error; err != nil {
		return nil, fmt.Errorf("failed to list signposts: %w", err)
	}
	return signposts, nil
}

// ListByCategory returns the signposts in one index category.
func (r *SignpostRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Signpost, error) {
	var signposts []*domain.Signpost
	if err := r.client.db.WithContext(ctx).
		Where("category = ?", category).
		Order("code ASC").
		Find(&signposts).Error; err != nil {
		return nil, fmt.Errorf("failed to list signposts for category %s: %w", category, err)
	}
	return signposts, nil
}

// GetByCode fetches one signpost by its catalog code.
func (r *SignpostRepository) GetByCode(ctx context.Context, code string) (*domain.Signpost, error) {
	var signpost domain.Signpost
	err := r.client.db.WithContext(ctx).
		Where("code = ?", code).
		First(&signpost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signpost %s: %w", code, err)
	}
	return &signpost, nil
}

// UpdateCurrent stores the recomputed current value for a signpost.
func (r *SignpostRepository) UpdateCurrent(ctx context.Context, id uint, current float64) error {
	res := r.client.db.WithContext(ctx).
		Model(&domain.Signpost{}).
		Where("id = ?", id).
		Update("current", current)
	if res.Error != nil {
		return fmt.Errorf("failed to update signpost current value: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Seed inserts catalog entries that do not exist yet, keyed by code. Existing
// entries are left untouched so re-seeding is safe.
func (r *SignpostRepository) Seed(ctx context.Context, signposts []domain.Signpost) error {
	if len(signposts) == 0 {
		return nil
	}
	res := r.client.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).
		Create(&signposts)
	if res.Error != nil {
		return fmt.Errorf("failed to seed signposts: %w", res.Error)
	}
	r.log.Info("Signpost catalog seeded",
		zap.Int("catalog_size", len(signposts)),
		zap.Int64("inserted", res.RowsAffected))
	return nil
}
