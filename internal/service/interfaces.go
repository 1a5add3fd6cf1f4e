package service

import (
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/dto"
)

// EventServicer defines the interface for event intake and retraction
type EventServicer interface {
	PublishEvent(event *dto.PublishEventRequest) (string, error)
	PublishBulkEvents(events []dto.PublishEventRequest) ([]string, []string, error)
	RetractEvent(eventID string, req *dto.RetractEventRequest) error
}

// ReviewServicer defines the interface for the human review queue
type ReviewServicer interface {
	GetQueue(req *dto.GetReviewQueueRequest) (*dto.ReviewQueueResponse, error)
	Approve(linkID uint, actor string) error
	Reject(linkID uint, actor string) error
}

// IndexServicer defines the interface for index reads, previews and presets
type IndexServicer interface {
	GetCurrent(presetName string) (*dto.IndexResponse, error)
	GetHistory(req *dto.GetHistoryRequest) (*dto.HistoryResponse, error)
	Preview(req *dto.PreviewIndexRequest) (*dto.PreviewResponse, error)
	CreatePreset(req *dto.CreatePresetRequest) (*dto.PresetData, error)
	ListPresets() (*dto.PresetListResponse, error)
}

// RunServicer defines the interface for triggering and listing pipeline runs
type RunServicer interface {
	TriggerMapping() (*dto.RunData, error)
	TriggerAggregation(req *dto.TriggerAggregationRequest) (*dto.RunData, error)
	ListRuns(limit int) (*dto.RunListResponse, error)
}
