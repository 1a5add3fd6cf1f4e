package mapper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/budget"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/config"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/llm"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) InsertOrSkip(ctx context.Context, event *domain.Event) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id uint) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) GetByDedupHash(ctx context.Context, hash string) (*domain.Event, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) ListMappable(ctx context.Context, limit int) ([]*domain.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventRepository) MarkMapped(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockEventRepository) FlagForReview(ctx context.Context, id uint, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockEventRepository) ClearReviewFlag(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) Retract(ctx context.Context, id uint, reason, evidenceURL string, at time.Time) error {
	args := m.Called(ctx, id, reason, evidenceURL, at)
	return args.Error(0)
}

func (m *MockEventRepository) CountBySource(ctx context.Context, sourceID uint) (repository.SourceCounts, error) {
	args := m.Called(ctx, sourceID)
	return args.Get(0).(repository.SourceCounts), args.Error(1)
}

// MockLinkRepository is a mock implementation of repository.LinkRepository
type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) Create(ctx context.Context, link *domain.EventSignpostLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) GetByID(ctx context.Context, id uint) (*domain.EventSignpostLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventSignpostLink), args.Error(1)
}

func (m *MockLinkRepository) Approve(ctx context.Context, id uint, actor string, at time.Time) error {
	args := m.Called(ctx, id, actor, at)
	return args.Error(0)
}

func (m *MockLinkRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLinkRepository) ListPending(ctx context.Context, signpostCode string, limit int) ([]*domain.EventSignpostLink, error) {
	args := m.Called(ctx, signpostCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EventSignpostLink), args.Error(1)
}

func (m *MockLinkRepository) LatestQualifying(ctx context.Context, signpostID uint, asOf time.Time) (*domain.EventSignpostLink, error) {
	args := m.Called(ctx, signpostID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventSignpostLink), args.Error(1)
}

// MockSignpostRepository is a mock implementation of repository.SignpostRepository
type MockSignpostRepository struct {
	mock.Mock
}

func (m *MockSignpostRepository) List(ctx context.Context) ([]*domain.Signpost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Signpost), args.Error(1)
}

func (m *MockSignpostRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Signpost, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Signpost), args.Error(1)
}

func (m *MockSignpostRepository) GetByCode(ctx context.Context, code string) (*domain.Signpost, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Signpost), args.Error(1)
}

func (m *MockSignpostRepository) UpdateCurrent(ctx context.Context, id uint, current float64) error {
	args := m.Called(ctx, id, current)
	return args.Error(0)
}

func (m *MockSignpostRepository) Seed(ctx context.Context, signposts []domain.Signpost) error {
	args := m.Called(ctx, signposts)
	return args.Error(0)
}

// MockProvider is a mock implementation of llm.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Available() bool {
	return true
}

func (m *MockProvider) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(llm.Response), args.Error(1)
}

func testCatalog() []*domain.Signpost {
	return []*domain.Signpost{
		{ID: 1, Code: "CAP-01", Name: "SWE-bench verified", Category: domain.CategoryCapabilities},
		{ID: 2, Code: "SEC-01", Name: "Frontier security audits", Category: domain.CategorySecurity},
	}
}

func testEvent(id uint) *domain.Event {
	return &domain.Event{
		ID:           id,
		Title:        "Lab announces new model",
		Body:         "model details",
		EvidenceTier: domain.TierB,
		Provisional:  true,
		SourceID:     7,
		PublishedAt:  time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}
}

func newTestMapper(events *MockEventRepository, links *MockLinkRepository, signposts *MockSignpostRepository, provider *MockProvider, guard budget.Guard) *Mapper {
	m := NewMapper(events, links, signposts, provider, guard, config.Mapper{
		AutoApproveThreshold: 0.6,
		MaxEventChars:        4000,
		RetryBackoffSec:      1,
	}, zap.NewNop())
	m.sleep = func(time.Duration) {}
	return m
}

func TestMapper_EmptyCatalogIsFatal(t *testing.T) {
	events := new(MockEventRepository)
	links := new(MockLinkRepository)
	signposts := new(MockSignpostRepository)
	provider := new(MockProvider)
	guard := budget.NewMemoryGuard(10, 0.8)

	signposts.On("List", mock.Anything).Return([]*domain.Signpost{}, nil)

	m := newTestMapper(events, links, signposts, provider, guard)
	_, err := m.Run(context.Background())

	assert.ErrorIs(t, err, ErrNoCatalog)
	events.AssertNotCalled(t, "ListMappable")
	provider.AssertNotCalled(t, "Generate")
}

func TestMapper_ConfidenceGate(t *testing.T) {
	events := new(MockEventRepository)
	links := new(MockLinkRepository)
	signposts := new(MockSignpostRepository)
	provider := new(MockProvider)
	guard := budget.NewMemoryGuard(10, 0.8)

	signposts.On("List", mock.Anything).Return(testCatalog(), nil)
	events.On("ListMappable", mock.Anything, mock.Anything).Return([]*domain.Event{testEvent(1)}, nil)

	provider.On("Generate", mock.Anything, mock.Anything).Return(llm.Response{
		Content: `[
			{"signpost_code":"CAP-01","confidence":0.9,"impact_estimate":0.4,"rationale":"benchmark jump"},
			{"signpost_code":"SEC-01","confidence":0.55,"impact_estimate":0.2,"rationale":"weak signal"}
		]`,
		Usage: llm.Usage{CostUSD: 0.01},
	}, nil)

	var created []*domain.EventSignpostLink
	links.On("Create", mock.Anything, mock.AnythingOfType("*domain.EventSignpostLink")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*domain.EventSignpostLink))
		}).Return(nil)
	events.On("MarkMapped", mock.Anything, uint(1), mock.Anything).Return(nil)

	m := newTestMapper(events, links, signposts, provider, guard)
	counts, err := m.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, uint64(1), counts.Mapped)
	assert.Equal(t, uint64(1), counts.AutoApproved)
	assert.Equal(t, uint64(1), counts.Queued)

	assert.Len(t, created, 2)
	for _, link := range created {
		// approved iff confidence >= threshold at creation time
		assert.Equal(t, link.Confidence >= 0.6, link.Approved)
		assert.Equal(t, domain.TierB, link.Tier)
	}

	// Actual cost was recorded.
	st, _ := guard.Check(context.Background())
	assert.InDelta(t, 0.01, st.Spend, 1e-9)
}

func TestMapper_BudgetBlockedDefersWithoutLLMCall(t *testing.T) {
	events := new(MockEventRepository)
	links := new(MockLinkRepository)
	signposts := new(MockSignpostRepository)
	provider := new(MockProvider)

	guard := budget.NewMemoryGuard(1.0, 0.8)
	_, err := guard.Record(context.Background(), 2.0)
	assert.NoError(t, err)

	signposts.On("List", mock.Anything).Return(testCatalog(), nil)
	events.On("ListMappable", mock.Anything, mock.Anything).Return([]*domain.Event{testEvent(1)}, nil)
	events.On("FlagForReview", mock.Anything, uint(1), domain.ReviewReasonBudgetExceeded).Return(nil)

	m := newTestMapper(events, links, signposts, provider, guard)
	counts, err := m.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, uint64(1), counts.Deferred)
	assert.Equal(t, uint64(0), counts.Mapped)
	provider.AssertNotCalled(t, "Generate")
	links.AssertNotCalled(t, "Create")
	events.AssertExpectations(t)
}

func TestMapper_UnparseableOutputQueuesForReview(t *testing.T) {
	events := new(MockEventRepository)
	links := new(MockLinkRepository)
	signposts := new(MockSignpostRepository)
	provider := new(MockProvider)
	guard := budget.NewMemoryGuard(10, 0.8)

	signposts.On("List", mock.Anything).Return(testCatalog(), nil)
	events.On("ListMappable", mock.Anything, mock.Anything).Return([]*domain.Event{testEvent(1)}, nil)
	events.On("FlagForReview", mock.Anything, uint(1), domain.ReviewReasonMappingFailed).Return(nil)

	provider.On("Generate", mock.Anything, mock.Anything).Return(llm.Response{
		Content: "I could not find any structured matches, sorry!",
		Usage:   llm.Usage{CostUSD: 0.005},
	}, nil).Once()

	m := newTestMapper(events, links, signposts, provider, guard)
	counts, err := m.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, uint64(1), counts.Failed)
	// Malformed output is never retried against the same payload.
	provider.AssertNumberOfCalls(t, "Generate", 1)
	links.AssertNotCalled(t, "Create")
	events.AssertExpectations(t)

	// Cost is still recorded for the wasted call.
	st, _ := guard.Check(context.Background())
	assert.InDelta(t, 0.005, st.Spend, 1e-9)
}

func TestMapper_TransportErrorRetriesOnceThenQueues(t *testing.T) {
	events := new(MockEventRepository)
	links := new(MockLinkRepository)
	signposts := new(MockSignpostRepository)
	provider := new(MockProvider)
	guard := budget.NewMemoryGuard(10, 0.8)

	signposts.On("List", mock.Anything).Return(testCatalog(), nil)
	events.On("ListMappable", mock.Anything, mock.Anything).Return([]*domain.Event{testEvent(1)}, nil)
	events.On("FlagForReview", mock.Anything, uint(1), domain.ReviewReasonMappingFailed).Return(nil)

	provider.On("Generate", mock.Anything, mock.Anything).
		Return(llm.Response{}, errors.New("connection reset")).Twice()

	m := newTestMapper(events, links, signposts, provider, guard)
	counts, err := m.Run(context.Background())

	assert.NoError(t, err, "a single event's failure must not abort the batch")
	assert.Equal(t, uint64(1), counts.Failed)
	provider.AssertNumberOfCalls(t, "Generate", 2)
	events.AssertExpectations(t)
}

func TestMapper_TransportErrorRecoversOnRetry(t *testing.T) {
	events := new(MockEventRepository)
	links := new(MockLinkRepository)
	signposts := new(MockSignpostRepository)
	provider := new(MockProvider)
	guard := budget.NewMemoryGuard(10, 0.8)

	signposts.On("List", mock.Anything).Return(testCatalog(), nil)
	events.On("ListMappable", mock.Anything, mock.Anything).Return([]*domain.Event{testEvent(1)}, nil)
	events.On("MarkMapped", mock.Anything, uint(1), mock.Anything).Return(nil)

	provider.On("Generate", mock.Anything, mock.Anything).
		Return(llm.Response{}, errors.New("timeout")).Once()
	provider.On("Generate", mock.Anything, mock.Anything).
		Return(llm.Response{Content: "[]", Usage: llm.Usage{CostUSD: 0.002}}, nil).Once()

	m := newTestMapper(events, links, signposts, provider, guard)
	counts, err := m.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, uint64(1), counts.Mapped)
	assert.Equal(t, uint64(0), counts.Failed)
	provider.AssertNumberOfCalls(t, "Generate", 2)
}

func TestMapper_UnknownSignpostCodeDropped(t *testing.T) {
	events := new(MockEventRepository)
	links := new(MockLinkRepository)
	signposts := new(MockSignpostRepository)
	provider := new(MockProvider)
	guard := budget.NewMemoryGuard(10, 0.8)

	signposts.On("List", mock.Anything).Return(testCatalog(), nil)
	events.On("ListMappable", mock.Anything, mock.Anything).Return([]*domain.Event{testEvent(1)}, nil)
	events.On("MarkMapped", mock.Anything, uint(1), mock.Anything).Return(nil)

	// The model must select only from the closed catalog; invented codes are
	// dropped rather than stored.
	provider.On("Generate", mock.Anything, mock.Anything).Return(llm.Response{
		Content: `[{"signpost_code":"MADE-UP-99","confidence":0.95,"impact_estimate":0.9,"rationale":"hallucinated"}]`,
		Usage:   llm.Usage{CostUSD: 0.003},
	}, nil)

	m := newTestMapper(events, links, signposts, provider, guard)
	counts, err := m.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, uint64(1), counts.Mapped)
	assert.Equal(t, uint64(0), counts.AutoApproved)
	assert.Equal(t, uint64(0), counts.Queued)
	links.AssertNotCalled(t, "Create")
}

func TestMapper_ClampsConfidenceAndImpact(t *testing.T) {
	events := new(MockEventRepository)
	links := new(MockLinkRepository)
	signposts := new(MockSignpostRepository)
	provider := new(MockProvider)
	guard := budget.NewMemoryGuard(10, 0.8)

	signposts.On("List", mock.Anything).Return(testCatalog(), nil)
	events.On("ListMappable", mock.Anything, mock.Anything).Return([]*domain.Event{testEvent(1)}, nil)
	events.On("MarkMapped", mock.Anything, uint(1), mock.Anything).Return(nil)

	provider.On("Generate", mock.Anything, mock.Anything).Return(llm.Response{
		Content: `[{"signpost_code":"CAP-01","confidence":1.7,"impact_estimate":-0.3,"rationale":"overshoot"}]`,
		Usage:   llm.Usage{CostUSD: 0.003},
	}, nil)

	var created *domain.EventSignpostLink
	links.On("Create", mock.Anything, mock.AnythingOfType("*domain.EventSignpostLink")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.EventSignpostLink)
		}).Return(nil)

	m := newTestMapper(events, links, signposts, provider, guard)
	_, err := m.Run(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, 1.0, created.Confidence)
	assert.Equal(t, 0.0, created.ImpactEstimate)
	assert.True(t, created.Approved)
}
