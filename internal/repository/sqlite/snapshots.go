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

// SnapshotRepository implements repository.SnapshotRepository on the core
// store.
type SnapshotRepository struct {
	client *Client
	log    *zap.Logger
}

// NewSnapshotRepository creates a snapshot repository.
func NewSnapshotRepository(client *Client, log *zap.Logger) *SnapshotRepository {
	return &SnapshotRepository{client: client, log: log}
}

// Upsert writes the snapshot keyed on (preset, date) in one statement, so two
// concurrent aggregation runs for the same day resolve single-writer-wins
// instead of producing diverging rows.
func (r *SnapshotRepository) Upsert(ctx context.Context, snapshot *domain.IndexSnapshot) error {
	res := r.client.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "preset_id"}, {Name: "snapshot_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"capabilities", "agents", "inputs", "security", "overall",
			}),
		}).
		Create(snapshot)
	if res.Error != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", res.Error)
	}
	return nil
}

// Latest returns the newest snapshot for a preset.
func (r *SnapshotRepository) Latest(ctx context.Context, presetID uint) (*domain.IndexSnapshot, error) {
	var snapshot domain.IndexSnapshot
	err := r.client.db.WithContext(ctx).
		Preload("Preset").
		Where("preset_id = ?", presetID).
		Order("snapshot_date DESC").
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return &snapshot, nil
}

// Range returns snapshots for a preset within an inclusive date range,
// oldest-first.
func (r *SnapshotRepository) Range(ctx context.Context, presetID uint, from, to string) ([]*domain.IndexSnapshot, error) {
	var snapshots []*domain.IndexSnapshot
	err := r.client.db.WithContext(ctx).
		Where("preset_id = ?", presetID).
		Where("snapshot_date >= ? AND snapshot_date <= ?", from, to).
		Order("snapshot_date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}
