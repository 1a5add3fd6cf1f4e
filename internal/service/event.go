package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/dedup"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/dto"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/queue"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// EventService accepts raw events for ingestion and handles retractions.
type EventService struct {
	publisher queue.QueuePublisher
	events    repository.EventRepository
	runs      repository.RunRepository
	log       *zap.Logger
	now       func() time.Time
}

// NewEventService creates a new event service
func NewEventService(publisher queue.QueuePublisher, events repository.EventRepository, runs repository.RunRepository, log *zap.Logger) *EventService {
	return &EventService{
		publisher: publisher,
		events:    events,
		runs:      runs,
		log:       log,
		now:       time.Now,
	}
}

// toRawEvent validates the request timestamps and converts to the queue tuple.
func toRawEvent(req *dto.PublishEventRequest) (*domain.RawEvent, error) {
	publishedAt, err := time.Parse(time.RFC3339, req.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid published_at %q: %w", req.PublishedAt, err)
	}

	return &domain.RawEvent{
		Title:        req.Title,
		Summary:      req.Summary,
		Body:         req.Body,
		URL:          req.URL,
		PublishedAt:  publishedAt,
		SourceDomain: req.SourceDomain,
		SourceName:   req.SourceName,
		SourceType:   req.SourceType,
	}, nil
}

// PublishEvent queues a single raw event for ingestion. The returned ID is
// the event's deduplication hash, so republishing the same event yields the
// same ID and the consumer will skip it as a duplicate.
func (s *EventService) PublishEvent(req *dto.PublishEventRequest) (string, error) {
	ctx := context.Background()

	raw, err := toRawEvent(req)
	if err != nil {
		s.log.Warn("Rejected raw event",
			zap.String("url", req.URL),
			zap.Error(err))
		return "", err
	}

	if raw.PublishedAt.After(s.now().Add(time.Minute)) {
		s.log.Warn("Rejected raw event with future publication time",
			zap.String("url", raw.URL),
			zap.Time("published_at", raw.PublishedAt))
		return "", fmt.Errorf("published_at cannot be in the future: %s", req.PublishedAt)
	}

	eventID := dedup.DedupHash(raw.Title, raw.SourceDomain, raw.PublishedAt)

	if err := s.publisher.PublishRawEvent(ctx, raw, eventID); err != nil {
		return "", fmt.Errorf("failed to publish event to queue: %w", err)
	}

	return eventID, nil
}

// PublishBulkEvents queues multiple raw events, collecting per-event errors
// instead of failing the whole batch.
func (s *EventService) PublishBulkEvents(events []dto.PublishEventRequest) ([]string, []string, error) {
	var eventIDs []string
	var errors []string

	for i, event := range events {
		eventID, err := s.PublishEvent(&event)
		if err != nil {
			errors = append(errors, err.Error())
			s.log.Warn("Failed to queue event in bulk",
				zap.Int("index", i),
				zap.String("url", event.URL),
				zap.Error(err))
			continue
		}
		eventIDs = append(eventIDs, eventID)
	}

	return eventIDs, errors, nil
}

// RetractEvent soft-deletes an event and records the action in the audit
// log. The event is addressed by its deduplication hash, the same identifier
// the publish endpoints and the review queue hand out. Snapshots computed
// before the retraction are never revised; the event simply stops
// contributing from the next aggregation run onward.
func (s *EventService) RetractEvent(eventID string, req *dto.RetractEventRequest) error {
	ctx := context.Background()

	event, err := s.events.GetByDedupHash(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Retracted {
		// Retraction is idempotent; keep the original reason and timestamp.
		return nil
	}

	retractedAt := s.now().UTC()
	if err := s.events.Retract(ctx, event.ID, req.Reason, req.EvidenceURL, retractedAt); err != nil {
		return fmt.Errorf("failed to retract event: %w", err)
	}

	if event.NeedsReview {
		// A retracted event is out of the mapping backlog for good.
		if err := s.events.ClearReviewFlag(ctx, event.ID); err != nil {
			s.log.Error("Failed to clear review flag on retraction",
				zap.Uint("event_id", event.ID),
				zap.Error(err))
		}
	}

	entry := &domain.AuditEntry{
		ID:        uuid.NewString(),
		Action:    domain.AuditActionRetract,
		Actor:     req.Actor,
		Entity:    "event",
		EntityID:  uint64(event.ID),
		Reason:    req.Reason,
		Detail:    req.EvidenceURL,
		CreatedAt: retractedAt,
	}
	if err := s.runs.AppendAudit(ctx, entry); err != nil {
		// The retraction itself succeeded; a missing audit row is logged,
		// not surfaced to the caller.
		s.log.Error("Failed to append retraction audit entry",
			zap.Uint("event_id", event.ID),
			zap.Error(err))
	}

	s.log.Info("Event retracted",
		zap.Uint("event_id", event.ID),
		zap.String("dedup_hash", eventID),
		zap.String("reason", req.Reason))

	return nil
}
