package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// EventRepository implements repository.EventRepository on the core store.
type EventRepository struct {
	client *Client
	log    *zap.Logger
}

// NewEventRepository creates an event repository.
func NewEventRepository(client *Client, log *zap.Logger) *EventRepository {
	return &EventRepository{client: client, log: log}
}

// InsertOrSkip inserts the event, relying on the unique indexes over
// dedup_hash, content_hash and url to reject duplicates atomically. Zero rows
// affected means one of the three keys already exists.
func (r *EventRepository) InsertOrSkip(ctx context.Context, event *domain.Event) (bool, error) {
	res := r.client.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert event: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetByID fetches an event with its source.
func (r *EventRepository) GetByID(ctx context.Context, id uint) (*domain.Event, error) {
	var event domain.Event
	err := r.client.db.WithContext(ctx).
		Preload("Source").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// GetByDedupHash fetches an event by its public identifier, the
// deduplication hash handed back at publish time.
func (r *EventRepository) GetByDedupHash(ctx context.Context, hash string) (*domain.Event, error) {
	var event domain.Event
	err := r.client.db.WithContext(ctx).
		Preload("Source").
		Where("dedup_hash = ?", hash).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event by dedup hash: %w", err)
	}
	return &event, nil
}

// ListMappable returns A/B-tier, non-retracted, unmapped events oldest-first.
// Events deferred by an exhausted budget are included so they queue for the
// following day instead of failing.
func (r *EventRepository) ListMappable(ctx context.Context, limit int) ([]*domain.Event, error) {
	var events []*domain.Event
	err := r.client.db.WithContext(ctx).
		Preload("Source").
		Where("evidence_tier IN ?", []domain.Tier{domain.TierA, domain.TierB}).
		Where("retracted = ?", false).
		Where("mapped_at IS NULL").
		Where("needs_review = ? OR review_reason = ?", false, domain.ReviewReasonBudgetExceeded).
		Order("published_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mappable events: %w", err)
	}
	return events, nil
}

// MarkMapped stamps the event as processed by the mapper.
func (r *EventRepository) MarkMapped(ctx context.Context, id uint, at time.Time) error {
	res := r.client.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"mapped_at":     at,
			"needs_review":  false,
			"review_reason": "",
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark event mapped: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FlagForReview marks the event for manual attention.
func (r *EventRepository) FlagForReview(ctx context.Context, id uint, reason string) error {
	res := r.client.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"needs_review":  true,
			"review_reason": reason,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to flag event for review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ClearReviewFlag resets the review state.
func (r *EventRepository) ClearReviewFlag(ctx context.Context, id uint) error {
	res := r.client.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"needs_review":  false,
			"review_reason": "",
		})
	if res.Error != nil {
		return fmt.Errorf("failed to clear review flag: %w", res.Error)
	}
	return nil
}

// Retract marks the event retracted. The row is never deleted and past
// snapshots are never rewritten; only future aggregation runs see the change.
func (r *EventRepository) Retract(ctx context.Context, id uint, reason, evidenceURL string, at time.Time) error {
	res := r.client.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"retracted":               true,
			"retracted_reason":        reason,
			"retracted_at":            at,
			"retraction_evidence_url": evidenceURL,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to retract event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountBySource returns total and retracted event counts for a source.
func (r *EventRepository) CountBySource(ctx context.Context, sourceID uint) (repository.SourceCounts, error) {
	var counts repository.SourceCounts
	err := r.client.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("source_id = ?", sourceID).
		Count(&counts.Total).Error
	if err != nil {
		return counts, fmt.Errorf("failed to count source events: %w", err)
	}
	err = r.client.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("source_id = ? AND retracted = ?", sourceID, true).
		Count(&counts.Retracted).Error
	if err != nil {
		return counts, fmt.Errorf("failed to count retracted source events: %w", err)
	}
	return counts, nil
}
