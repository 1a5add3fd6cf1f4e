package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/dedup"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/tier"
)

// WriterConfig configures the ingest writer
type WriterConfig struct {
	// RunFlushInterval is how often accumulated counters are flushed to the
	// telemetry store as an ingest run record.
	RunFlushInterval time.Duration
}

// Writer is the terminal pipeline stage. For each raw event it resolves the
// source, assigns the evidence tier, computes the deduplication keys and
// inserts the event, skipping duplicates. Every message is acked once stored
// or recognized as a duplicate; storage failures nack so SQS redelivers.
type Writer struct {
	events  repository.EventRepository
	sources repository.SourceRepository
	runs    repository.RunRepository
	config  WriterConfig
	log     *zap.Logger

	counts runCounters
}

type runCounters struct {
	ingested    atomic.Uint64
	duplicates  atomic.Uint64
	tierBlocked atomic.Uint64
	failed      atomic.Uint64
}

// NewWriter creates a new ingest writer
func NewWriter(events repository.EventRepository, sources repository.SourceRepository, runs repository.RunRepository, config WriterConfig, log *zap.Logger) *Writer {
	return &Writer{
		events:  events,
		sources: sources,
		runs:    runs,
		config:  config,
		log:     log,
	}
}

// Start begins processing envelopes and periodically flushing run counters
func (w *Writer) Start(ctx context.Context, in <-chan *Envelope) {
	ticker := time.NewTicker(w.config.RunFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Ingest writer shutting down")
			w.flushCounters(context.WithoutCancel(ctx))
			return

		case envelope, ok := <-in:
			if !ok {
				w.log.Info("Ingest writer input channel closed")
				w.flushCounters(context.WithoutCancel(ctx))
				return
			}
			w.process(ctx, envelope)

		case <-ticker.C:
			w.flushCounters(ctx)
		}
	}
}

// process stores a single raw event and acks or nacks its message.
func (w *Writer) process(ctx context.Context, envelope *Envelope) {
	raw := envelope.Raw

	source, err := w.sources.UpsertByDomain(ctx, &domain.Source{
		Domain:     raw.SourceDomain,
		Name:       raw.SourceName,
		SourceType: raw.SourceType,
	})
	if err != nil {
		w.log.Error("Failed to upsert source",
			zap.String("domain", raw.SourceDomain),
			zap.Error(err))
		w.counts.failed.Add(1)
		w.nack(ctx, envelope)
		return
	}

	classification := tier.Classify(raw.SourceType)
	keys := dedup.Compute(raw)

	event := &domain.Event{
		Title:        raw.Title,
		Summary:      raw.Summary,
		Body:         raw.Body,
		URL:          raw.URL,
		PublishedAt:  raw.PublishedAt,
		SourceID:     source.ID,
		EvidenceTier: classification.Tier,
		Provisional:  classification.Provisional,
		DedupHash:    keys.DedupHash,
	}
	if keys.ContentHash != "" {
		event.ContentHash = &keys.ContentHash
	}

	inserted, err := w.events.InsertOrSkip(ctx, event)
	if err != nil {
		w.log.Error("Failed to insert event",
			zap.String("url", raw.URL),
			zap.Error(err))
		w.counts.failed.Add(1)
		w.nack(ctx, envelope)
		return
	}

	if !inserted {
		w.counts.duplicates.Add(1)
		w.log.Debug("Skipped duplicate event",
			zap.String("url", raw.URL),
			zap.String("dedup_hash", keys.DedupHash))
	} else {
		w.counts.ingested.Add(1)
		if !event.Scorable() {
			w.counts.tierBlocked.Add(1)
		}
		w.log.Info("Event ingested",
			zap.String("url", raw.URL),
			zap.String("tier", string(classification.Tier)))
	}

	// Duplicates ack too: the message did its job.
	if err := envelope.Ack(ctx); err != nil {
		w.log.Error("Failed to ack envelope",
			zap.String("url", raw.URL),
			zap.Error(err))
	}
}

func (w *Writer) nack(ctx context.Context, envelope *Envelope) {
	if err := envelope.Nack(ctx); err != nil {
		w.log.Error("Failed to nack envelope", zap.Error(err))
	}
}

// flushCounters writes a completed ingest run record covering everything
// processed since the previous flush. Idle intervals produce no record.
func (w *Writer) flushCounters(ctx context.Context) {
	counts := domain.RunCounts{
		Ingested:    w.counts.ingested.Swap(0),
		Duplicates:  w.counts.duplicates.Swap(0),
		TierBlocked: w.counts.tierBlocked.Swap(0),
		Failed:      w.counts.failed.Swap(0),
	}
	if counts.Ingested == 0 && counts.Duplicates == 0 && counts.Failed == 0 {
		return
	}

	now := time.Now().UTC()
	run := &domain.IngestRun{
		RunID:      uuid.NewString(),
		Kind:       domain.RunKindIngest,
		Status:     domain.RunStatusCompleted,
		Counts:     counts,
		StartedAt:  now.Add(-w.config.RunFlushInterval),
		FinishedAt: now,
	}
	if err := w.runs.RecordRun(ctx, run); err != nil {
		w.log.Error("Failed to record ingest run", zap.Error(err))
		return
	}

	w.log.Info("Ingest run recorded",
		zap.Uint64("ingested", counts.Ingested),
		zap.Uint64("duplicates", counts.Duplicates),
		zap.Uint64("tier_blocked", counts.TierBlocked),
		zap.Uint64("failed", counts.Failed))
}
