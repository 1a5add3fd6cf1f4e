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

const defaultQueueLimit = 50

// ReviewService manages the human review queue for low-confidence links.
type ReviewService struct {
	links repository.LinkRepository
	runs  repository.RunRepository
	log   *zap.Logger
	now   func() time.Time
}

// NewReviewService creates a new review service
func NewReviewService(links repository.LinkRepository, runs repository.RunRepository, log *zap.Logger) *ReviewService {
	return &ReviewService{
		links: links,
		runs:  runs,
		log:   log,
		now:   time.Now,
	}
}

// GetQueue lists pending links oldest-first, optionally filtered by
// signpost code.
func (s *ReviewService) GetQueue(req *dto.GetReviewQueueRequest) (*dto.ReviewQueueResponse, error) {
	ctx := context.Background()

	limit := req.Limit
	if limit <= 0 {
		limit = defaultQueueLimit
	}

	links, err := s.links.ListPending(ctx, req.Signpost, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReviewLinkData, 0, len(links))
	for _, link := range links {
		data := dto.ReviewLinkData{
			LinkID:     link.ID,
			Confidence: link.Confidence,
			Impact:     link.ImpactEstimate,
			Rationale:  link.Rationale,
			Tier:       string(link.Tier),
			CreatedAt:  link.CreatedAt.UTC().Format(time.RFC3339),
		}
		if link.Event != nil {
			data.EventID = link.Event.DedupHash
			data.EventTitle = link.Event.Title
		}
		if link.Signpost != nil {
			data.SignpostCode = link.Signpost.Code
		}
		out = append(out, data)
	}

	return &dto.ReviewQueueResponse{Links: out, Count: len(out)}, nil
}

// Approve promotes a pending link into the scored evidence set. Approving an
// already-approved link is a no-op, so double-clicks and retried requests
// are safe.
func (s *ReviewService) Approve(linkID uint, actor string) error {
	ctx := context.Background()

	link, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return err
	}
	if link.Approved {
		return nil
	}

	approvedAt := s.now().UTC()
	if err := s.links.Approve(ctx, linkID, actor, approvedAt); err != nil {
		return err
	}

	s.audit(ctx, domain.AuditActionApprove, actor, linkID, "", approvedAt)

	s.log.Info("Link approved",
		zap.Uint("link_id", linkID),
		zap.String("actor", actor))

	return nil
}

// Reject discards a pending link. The link row is deleted; the parent event
// stays, and is never mapped to the same signpost again because the mapper
// marks events as mapped once processed.
func (s *ReviewService) Reject(linkID uint, actor string) error {
	ctx := context.Background()

	if _, err := s.links.GetByID(ctx, linkID); err != nil {
		return err
	}

	if err := s.links.Delete(ctx, linkID); err != nil {
		return err
	}

	s.audit(ctx, domain.AuditActionReject, actor, linkID, "rejected in review", s.now().UTC())

	s.log.Info("Link rejected",
		zap.Uint("link_id", linkID),
		zap.String("actor", actor))

	return nil
}

func (s *ReviewService) audit(ctx context.Context, action domain.AuditAction, actor string, linkID uint, reason string, at time.Time) {
	entry := &domain.AuditEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Actor:     actor,
		Entity:    "link",
		EntityID:  uint64(linkID),
		Reason:    reason,
		CreatedAt: at,
	}
	if err := s.runs.AppendAudit(ctx, entry); err != nil {
		s.log.Error("Failed to append review audit entry",
			zap.Uint("link_id", linkID),
			zap.Error(err))
	}
}
