package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// LinkRepository implements repository.LinkRepository on the core store.
type LinkRepository struct {
	client *Client
	log    *zap.Logger
}

// NewLinkRepository creates a link repository.
func NewLinkRepository(client *Client, log *zap.Logger) *LinkRepository {
	return &LinkRepository{client: client, log: log}
}

// Create stores a new event-signpost link.
func (r *LinkRepository) Create(ctx context.Context, link *domain.EventSignpostLink) error {
	if err := r.client.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

// GetByID fetches a link with its event and signpost.
func (r *LinkRepository) GetByID(ctx context.Context, id uint) (*domain.EventSignpostLink, error) {
	var link domain.EventSignpostLink
	err := r.client.db.WithContext(ctx).
		Preload("Event").
		Preload("Signpost").
		First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return &link, nil
}

// Approve marks the link approved. Already-approved links are left untouched
// so the transition is idempotent.
func (r *LinkRepository) Approve(ctx context.Context, id uint, actor string, at time.Time) error {
	var link domain.EventSignpostLink
	err := r.client.db.WithContext(ctx).First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load link for approval: %w", err)
	}
	if link.Approved {
		return nil
	}

	res := r.client.db.WithContext(ctx).
		Model(&domain.EventSignpostLink{}).
		Where("id = ? AND approved = ?", id, false).
		Updates(map[string]interface{}{
			"approved":    true,
			"approved_at": at,
			"approved_by": actor,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to approve link: %w", res.Error)
	}
	return nil
}

// Delete removes the link row.
func (r *LinkRepository) Delete(ctx context.Context, id uint) error {
	res := r.client.db.WithContext(ctx).Delete(&domain.EventSignpostLink{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete link: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListPending returns unapproved links oldest-first, optionally filtered by
// signpost code.
func (r *LinkRepository) ListPending(ctx context.Context, signpostCode string, limit int) ([]*domain.EventSignpostLink, error) {
	q := r.client.db.WithContext(ctx).
		Preload("Event").
		Preload("Signpost").
		Where("event_signpost_links.approved = ?", false)

	if signpostCode != "" {
		q = q.Joins("JOIN signposts ON signposts.id = event_signpost_links.signpost_id").
			Where("signposts.code = ?", signpostCode)
	}

	var links []*domain.EventSignpostLink
	if err := q.Order("event_signpost_links.created_at ASC").
		Limit(limit).
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending links: %w", err)
	}
	return links, nil
}

// LatestQualifying returns the most recent approved link for the signpost
// whose parent event is A/B tier and not retracted. Tier and retraction state
// are read from the event row at query time rather than from the denormalized
// copy on the link, so a retraction is reflected immediately in the next run.
func (r *LinkRepository) LatestQualifying(ctx context.Context, signpostID uint, asOf time.Time) (*domain.EventSignpostLink, error) {
	var link domain.EventSignpostLink
	err := r.client.db.WithContext(ctx).
		Joins("JOIN events ON events.id = event_signpost_links.event_id").
		Where("event_signpost_links.signpost_id = ?", signpostID).
		Where("event_signpost_links.approved = ?", true).
		Where("event_signpost_links.created_at <= ?", asOf).
		Where("events.retracted = ?", false).
		Where("events.evidence_tier IN ?", []domain.Tier{domain.TierA, domain.TierB}).
		Order("event_signpost_links.created_at DESC").
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query qualifying link: %w", err)
	}
	return &link, nil
}
