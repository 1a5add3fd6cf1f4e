// Package mapper turns A/B-tier events into event-signpost links by asking
// an LLM to match each event against the signpost catalog. Proposals at or
// above the auto-approve threshold become approved links immediately;
// everything else waits in the human review queue.
package mapper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/budget"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/config"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/llm"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// ErrNoCatalog is returned when the signpost catalog is empty. This is a
// fatal configuration error that aborts the run instead of degrading.
var ErrNoCatalog = errors.New("signpost catalog is empty")

// batchLimit bounds how many events one mapping run pulls from the backlog.
const batchLimit = 500

// proposal is one candidate link decoded from model output.
type proposal struct {
	SignpostCode   string  `json:"signpost_code"`
	Confidence     float64 `json:"confidence"`
	ImpactEstimate float64 `json:"impact_estimate"`
	Rationale      string  `json:"rationale"`
}

// Mapper maps pending events to signposts.
type Mapper struct {
	events    repository.EventRepository
	links     repository.LinkRepository
	signposts repository.SignpostRepository
	provider  llm.Provider
	guard     budget.Guard
	cfg       config.Mapper
	log       *zap.Logger

	// sleep and now are injected for tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewMapper creates a signpost mapper. The budget guard is passed in
// explicitly rather than reached through global state so the gate can be
// exercised in isolation.
func NewMapper(
	events repository.EventRepository,
	links repository.LinkRepository,
	signposts repository.SignpostRepository,
	provider llm.Provider,
	guard budget.Guard,
	cfg config.Mapper,
	log *zap.Logger,
) *Mapper {
	return &Mapper{
		events:    events,
		links:     links,
		signposts: signposts,
		provider:  provider,
		guard:     guard,
		cfg:       cfg,
		log:       log,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Run maps the pending backlog. Events are processed sequentially per source
// but different sources run as independent workers. Every recoverable
// failure is scoped to a single event; only a missing catalog aborts.
func (m *Mapper) Run(ctx context.Context) (domain.RunCounts, error) {
	var counts domain.RunCounts

	catalog, err := m.signposts.List(ctx)
	if err != nil {
		return counts, fmt.Errorf("failed to load signpost catalog: %w", err)
	}
	if len(catalog) == 0 {
		return counts, ErrNoCatalog
	}

	events, err := m.events.ListMappable(ctx, batchLimit)
	if err != nil {
		return counts, fmt.Errorf("failed to list mappable events: %w", err)
	}
	if len(events) == 0 {
		m.log.Info("No events pending signpost mapping")
		return counts, nil
	}

	byCode := make(map[string]*domain.Signpost, len(catalog))
	for _, s := range catalog {
		byCode[s.Code] = s
	}

	bySource := make(map[uint][]*domain.Event)
	for _, e := range events {
		bySource[e.SourceID] = append(bySource[e.SourceID], e)
	}

	m.log.Info("Mapping run starting",
		zap.Int("events", len(events)),
		zap.Int("sources", len(bySource)),
		zap.Int("catalog_size", len(catalog)))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, sourceEvents := range bySource {
		wg.Add(1)
		go func(sourceEvents []*domain.Event) {
			defer wg.Done()
			var local domain.RunCounts
			for _, event := range sourceEvents {
				m.mapEvent(ctx, event, catalog, byCode, &local)
			}
			mu.Lock()
			mergeCounts(&counts, &local)
			mu.Unlock()
		}(sourceEvents)
	}
	wg.Wait()

	m.log.Info("Mapping run complete",
		zap.Uint64("mapped", counts.Mapped),
		zap.Uint64("auto_approved", counts.AutoApproved),
		zap.Uint64("queued", counts.Queued),
		zap.Uint64("deferred", counts.Deferred),
		zap.Uint64("failed", counts.Failed))

	return counts, nil
}

func (m *Mapper) mapEvent(ctx context.Context, event *domain.Event, catalog []*domain.Signpost, byCode map[string]*domain.Signpost, counts *domain.RunCounts) {
	st, err := m.guard.Check(ctx)
	if err != nil {
		m.log.Error("Budget check failed", zap.Uint("event_id", event.ID), zap.Error(err))
		counts.Failed++
		return
	}
	if st.Blocked {
		// Deferred, not dropped: the flag makes the backlog visible and the
		// next day's run picks the event up again.
		if err := m.events.FlagForReview(ctx, event.ID, domain.ReviewReasonBudgetExceeded); err != nil {
			m.log.Error("Failed to flag deferred event", zap.Uint("event_id", event.ID), zap.Error(err))
		}
		counts.Deferred++
		return
	}

	resp, err := m.generateWithRetry(ctx, llm.Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   buildUserPrompt(event, catalog, m.cfg.MaxEventChars),
		MaxTokens:    1024,
	})
	if err != nil {
		m.log.Warn("Mapping call failed after retry",
			zap.Uint("event_id", event.ID),
			zap.Error(err))
		m.queueForReview(ctx, event, counts)
		return
	}

	// The cost was incurred regardless of whether the output parses.
	if _, err := m.guard.Record(ctx, resp.Usage.CostUSD); err != nil {
		m.log.Error("Failed to record budget spend", zap.Uint("event_id", event.ID), zap.Error(err))
	}

	var proposals []proposal
	if err := llm.ExtractJSONArray(resp.Content, &proposals); err != nil {
		// Never retried against the same payload.
		m.log.Warn("Unparseable mapping output",
			zap.Uint("event_id", event.ID),
			zap.String("raw", resp.Content))
		m.queueForReview(ctx, event, counts)
		return
	}

	for _, p := range proposals {
		signpost, ok := byCode[p.SignpostCode]
		if !ok {
			m.log.Warn("Model proposed unknown signpost code",
				zap.Uint("event_id", event.ID),
				zap.String("code", p.SignpostCode))
			continue
		}

		confidence := clamp01(p.Confidence)
		approved := confidence >= m.cfg.AutoApproveThreshold

		link := &domain.EventSignpostLink{
			EventID:        event.ID,
			SignpostID:     signpost.ID,
			Confidence:     confidence,
			ImpactEstimate: clamp01(p.ImpactEstimate),
			Rationale:      p.Rationale,
			Tier:           event.EvidenceTier,
			Approved:       approved,
		}
		if approved {
			at := m.now()
			link.ApprovedAt = &at
			link.ApprovedBy = "auto"
		}

		if err := m.links.Create(ctx, link); err != nil {
			m.log.Error("Failed to create link",
				zap.Uint("event_id", event.ID),
				zap.String("signpost", signpost.Code),
				zap.Error(err))
			continue
		}

		if approved {
			counts.AutoApproved++
		} else {
			counts.Queued++
		}
	}

	if err := m.events.MarkMapped(ctx, event.ID, m.now()); err != nil {
		m.log.Error("Failed to mark event mapped", zap.Uint("event_id", event.ID), zap.Error(err))
		counts.Failed++
		return
	}
	counts.Mapped++
}

// generateWithRetry gives transport errors exactly one retry with backoff.
func (m *Mapper) generateWithRetry(ctx context.Context, req llm.Request) (llm.Response, error) {
	resp, err := m.provider.Generate(ctx, req)
	if err == nil {
		return resp, nil
	}

	m.log.Warn("Mapping call failed, retrying once", zap.Error(err))
	m.sleep(time.Duration(m.cfg.RetryBackoffSec) * time.Second)

	return m.provider.Generate(ctx, req)
}

func (m *Mapper) queueForReview(ctx context.Context, event *domain.Event, counts *domain.RunCounts) {
	if err := m.events.FlagForReview(ctx, event.ID, domain.ReviewReasonMappingFailed); err != nil {
		m.log.Error("Failed to queue event for review", zap.Uint("event_id", event.ID), zap.Error(err))
	}
	counts.Failed++
}

func mergeCounts(dst, src *domain.RunCounts) {
	dst.Mapped += src.Mapped
	dst.AutoApproved += src.AutoApproved
	dst.Queued += src.Queued
	dst.Deferred += src.Deferred
	dst.Failed += src.Failed
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
