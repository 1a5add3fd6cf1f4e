package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/dto"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// MockEventService is a mock implementation of service.EventServicer
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) PublishEvent(event *dto.PublishEventRequest) (string, error) {
	args := m.Called(event)
	return args.String(0), args.Error(1)
}

func (m *MockEventService) PublishBulkEvents(events []dto.PublishEventRequest) ([]string, []string, error) {
	args := m.Called(events)
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

func (m *MockEventService) RetractEvent(eventID string, req *dto.RetractEventRequest) error {
	args := m.Called(eventID, req)
	return args.Error(0)
}

// MockReviewService is a mock implementation of service.ReviewServicer
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) GetQueue(req *dto.GetReviewQueueRequest) (*dto.ReviewQueueResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewQueueResponse), args.Error(1)
}

func (m *MockReviewService) Approve(linkID uint, actor string) error {
	args := m.Called(linkID, actor)
	return args.Error(0)
}

func (m *MockReviewService) Reject(linkID uint, actor string) error {
	args := m.Called(linkID, actor)
	return args.Error(0)
}

// MockIndexService is a mock implementation of service.IndexServicer
type MockIndexService struct {
	mock.Mock
}

func (m *MockIndexService) GetCurrent(presetName string) (*dto.IndexResponse, error) {
	args := m.Called(presetName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.IndexResponse), args.Error(1)
}

func (m *MockIndexService) GetHistory(req *dto.GetHistoryRequest) (*dto.HistoryResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HistoryResponse), args.Error(1)
}

func (m *MockIndexService) Preview(req *dto.PreviewIndexRequest) (*dto.PreviewResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PreviewResponse), args.Error(1)
}

func (m *MockIndexService) CreatePreset(req *dto.CreatePresetRequest) (*dto.PresetData, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PresetData), args.Error(1)
}

func (m *MockIndexService) ListPresets() (*dto.PresetListResponse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PresetListResponse), args.Error(1)
}

// MockRunService is a mock implementation of service.RunServicer
type MockRunService struct {
	mock.Mock
}

func (m *MockRunService) TriggerMapping() (*dto.RunData, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RunData), args.Error(1)
}

func (m *MockRunService) TriggerAggregation(req *dto.TriggerAggregationRequest) (*dto.RunData, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RunData), args.Error(1)
}

func (m *MockRunService) ListRuns(limit int) (*dto.RunListResponse, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RunListResponse), args.Error(1)
}

func newTestHandler() (*Handler, *MockEventService, *MockReviewService, *MockIndexService, *MockRunService) {
	mockEvents := new(MockEventService)
	mockReview := new(MockReviewService)
	mockIndex := new(MockIndexService)
	mockRuns := new(MockRunService)
	h := NewHandler(mockEvents, mockReview, mockIndex, mockRuns, zap.NewNop())
	return h, mockEvents, mockReview, mockIndex, mockRuns
}

func TestHandler_HealthCheck(t *testing.T) {
	handler, _, _, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestHandler_PublishEvent_Success(t *testing.T) {
	handler, mockEvents, _, _, _ := newTestHandler()

	eventReq := dto.PublishEventRequest{
		Title:        "Frontier lab announces new coding model",
		URL:          "https://lab.example.com/blog/new-model",
		PublishedAt:  "2026-08-26T09:30:00Z",
		SourceDomain: "lab.example.com",
		SourceType:   "official_lab",
	}

	mockEvents.On("PublishEvent", mock.AnythingOfType("*dto.PublishEventRequest")).Return("abc123", nil)

	body, _ := json.Marshal(eventReq)
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response dto.PublishEventResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "abc123", response.EventID)
	assert.Equal(t, "accepted", response.Status)
	mockEvents.AssertExpectations(t)
}

func TestHandler_PublishEvent_MissingFields(t *testing.T) {
	handler, mockEvents, _, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(`{"title":"no url"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockEvents.AssertNotCalled(t, "PublishEvent", mock.Anything)
}

func TestHandler_RetractEvent(t *testing.T) {
	handler, mockEvents, _, _, _ := newTestHandler()

	mockEvents.On("RetractEvent", "1a79a4d60de6718e8e5b326e338ae533", mock.MatchedBy(func(r *dto.RetractEventRequest) bool {
		return r.Reason == "withdrawn"
	})).Return(nil)

	body := []byte(`{"reason":"withdrawn"}`)
	req := httptest.NewRequest(http.MethodPost, "/events/1a79a4d60de6718e8e5b326e338ae533/retract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockEvents.AssertExpectations(t)
}

func TestHandler_RetractEvent_NotFound(t *testing.T) {
	handler, mockEvents, _, _, _ := newTestHandler()

	mockEvents.On("RetractEvent", "deadbeef", mock.Anything).Return(repository.ErrNotFound)

	body := []byte(`{"reason":"withdrawn"}`)
	req := httptest.NewRequest(http.MethodPost, "/events/deadbeef/retract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_RetractEvent_MissingReason(t *testing.T) {
	handler, mockEvents, _, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/events/7/retract", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockEvents.AssertNotCalled(t, "RetractEvent", mock.Anything, mock.Anything)
}

func TestHandler_GetIndex(t *testing.T) {
	handler, _, _, mockIndex, _ := newTestHandler()

	mockIndex.On("GetCurrent", "").Return(&dto.IndexResponse{
		Snapshot: dto.SnapshotData{Preset: "equal", Date: "2026-08-26", Overall: 0.166},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/index", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.IndexResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.InDelta(t, 0.166, response.Snapshot.Overall, 0.0001)
}

func TestHandler_GetIndex_NoSnapshotYet(t *testing.T) {
	handler, _, _, mockIndex, _ := newTestHandler()

	mockIndex.On("GetCurrent", "custom").Return(nil, repository.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/index?preset=custom", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_PreviewIndex(t *testing.T) {
	handler, _, _, mockIndex, _ := newTestHandler()

	mockIndex.On("Preview", mock.MatchedBy(func(r *dto.PreviewIndexRequest) bool {
		return r.Security == 0.4
	})).Return(&dto.PreviewResponse{Overall: 0.12, Date: "2026-08-26"}, nil)

	body := []byte(`{"capabilities":0.2,"agents":0.2,"inputs":0.2,"security":0.4}`)
	req := httptest.NewRequest(http.MethodPost, "/index/preview", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_ReviewQueueAndActions(t *testing.T) {
	handler, _, mockReview, _, _ := newTestHandler()

	mockReview.On("GetQueue", mock.Anything).Return(&dto.ReviewQueueResponse{
		Links: []dto.ReviewLinkData{{LinkID: 42, SignpostCode: "CAP-01"}},
		Count: 1,
	}, nil)
	mockReview.On("Approve", uint(42), "reviewer").Return(nil)
	mockReview.On("Reject", uint(43), "").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/review", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/review/42/approve", bytes.NewReader([]byte(`{"actor":"reviewer"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/review/43/reject", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	mockReview.AssertExpectations(t)
}

func TestHandler_CreatePreset_InvalidWeights(t *testing.T) {
	handler, _, _, mockIndex, _ := newTestHandler()

	mockIndex.On("CreatePreset", mock.Anything).Return(nil, assert.AnError)

	body := []byte(`{"name":"lopsided","capabilities":0.9,"agents":0.9,"inputs":0.1,"security":0.1}`)
	req := httptest.NewRequest(http.MethodPost, "/presets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_TriggerRuns(t *testing.T) {
	handler, _, _, _, mockRuns := newTestHandler()

	mockRuns.On("TriggerMapping").Return(&dto.RunData{RunID: "r1", Kind: "mapping", Status: "completed"}, nil)
	mockRuns.On("TriggerAggregation", mock.Anything).Return(&dto.RunData{RunID: "r2", Kind: "aggregation", Status: "completed"}, nil)
	mockRuns.On("ListRuns", 50).Return(&dto.RunListResponse{Count: 2}, nil)

	req := httptest.NewRequest(http.MethodPost, "/runs/mapping", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/runs/aggregation", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/runs", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	mockRuns.AssertExpectations(t)
}
