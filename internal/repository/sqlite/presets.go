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

// DefaultPresetName is the equal-weight preset created on startup.
const DefaultPresetName = "equal"

// PresetRepository implements repository.PresetRepository on the core store.
type PresetRepository struct {
	client *Client
	log    *zap.Logger
}

// NewPresetRepository creates a preset repository.
func NewPresetRepository(client *Client, log *zap.Logger) *PresetRepository {
	return &PresetRepository{client: client, log: log}
}

// Create stores a new weighting preset.
func (r *PresetRepository) Create(ctx context.Context, preset *domain.WeightPreset) error {
	if err := r.client.db.WithContext(ctx).Create(preset).Error; err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}
	return nil
}

// GetByName fetches a preset by its unique name.
func (r *PresetRepository) GetByName(ctx context.Context, name string) (*domain.WeightPreset, error) {
	var preset domain.WeightPreset
	err := r.client.db.WithContext(ctx).
		Where("name = ?", name).
		First(&preset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset %s: %w", name, err)
	}
	return &preset, nil
}

// List returns all registered presets.
func (r *PresetRepository) List(ctx context.Context) ([]*domain.WeightPreset, error) {
	var presets []*domain.WeightPreset
	if err := r.client.db.WithContext(ctx).
		Order("name ASC").
		Find(&presets).Error; err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	return presets, nil
}

// EnsureDefault creates the equal-weight default preset if it does not exist
// and returns the stored row.
func (r *PresetRepository) EnsureDefault(ctx context.Context) (*domain.WeightPreset, error) {
	preset := &domain.WeightPreset{
		Name:         DefaultPresetName,
		Capabilities: 0.25,
		Agents:       0.25,
		Inputs:       0.25,
		Security:     0.25,
		IsDefault:    true,
	}

	res := r.client.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(preset)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to ensure default preset: %w", res.Error)
	}

	return r.GetByName(ctx, DefaultPresetName)
}
