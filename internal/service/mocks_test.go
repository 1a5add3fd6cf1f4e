package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// MockQueuePublisher is a mock implementation of queue.QueuePublisher
type MockQueuePublisher struct {
	mock.Mock
}

func (m *MockQueuePublisher) PublishRawEvent(ctx context.Context, raw *domain.RawEvent, eventID string) error {
	args := m.Called(ctx, raw, eventID)
	return args.Error(0)
}

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

// MockSourceRepository is a mock implementation of repository.SourceRepository
type MockSourceRepository struct {
	mock.Mock
}

func (m *MockSourceRepository) UpsertByDomain(ctx context.Context, source *domain.Source) (*domain.Source, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Source), args.Error(1)
}

func (m *MockSourceRepository) List(ctx context.Context) ([]*domain.Source, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Source), args.Error(1)
}

func (m *MockSourceRepository) UpdateReliability(ctx context.Context, id uint, score float64, counts repository.SourceCounts) error {
	args := m.Called(ctx, id, score, counts)
	return args.Error(0)
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

// MockSnapshotRepository is a mock implementation of repository.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Upsert(ctx context.Context, snapshot *domain.IndexSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Latest(ctx context.Context, presetID uint) (*domain.IndexSnapshot, error) {
	args := m.Called(ctx, presetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndexSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Range(ctx context.Context, presetID uint, from, to string) ([]*domain.IndexSnapshot, error) {
	args := m.Called(ctx, presetID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.IndexSnapshot), args.Error(1)
}

// MockPresetRepository is a mock implementation of repository.PresetRepository
type MockPresetRepository struct {
	mock.Mock
}

func (m *MockPresetRepository) Create(ctx context.Context, preset *domain.WeightPreset) error {
	args := m.Called(ctx, preset)
	return args.Error(0)
}

func (m *MockPresetRepository) GetByName(ctx context.Context, name string) (*domain.WeightPreset, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeightPreset), args.Error(1)
}

func (m *MockPresetRepository) List(ctx context.Context) ([]*domain.WeightPreset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeightPreset), args.Error(1)
}

func (m *MockPresetRepository) EnsureDefault(ctx context.Context) (*domain.WeightPreset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeightPreset), args.Error(1)
}

// MockRunRepository is a mock implementation of repository.RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRunRepository) RecordRun(ctx context.Context, run *domain.IngestRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) ListRuns(ctx context.Context, limit int) ([]*domain.IngestRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.IngestRun), args.Error(1)
}

func (m *MockRunRepository) AppendAudit(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRunRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRunRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMappingRunner is a mock implementation of MappingRunner
type MockMappingRunner struct {
	mock.Mock
}

func (m *MockMappingRunner) Run(ctx context.Context) (domain.RunCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RunCounts), args.Error(1)
}

// MockAggregationRunner is a mock implementation of AggregationRunner
type MockAggregationRunner struct {
	mock.Mock
}

func (m *MockAggregationRunner) Run(ctx context.Context, preset *domain.WeightPreset, date string) (*domain.IndexSnapshot, error) {
	args := m.Called(ctx, preset, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndexSnapshot), args.Error(1)
}

// MockPreviewer is a mock implementation of Previewer
type MockPreviewer struct {
	mock.Mock
}

func (m *MockPreviewer) Preview(ctx context.Context, weights map[domain.Category]float64, date string) (map[domain.Category]float64, float64, error) {
	args := m.Called(ctx, weights, date)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(map[domain.Category]float64), args.Get(1).(float64), args.Error(2)
}
