package dto

// PublishEventRequest is one raw event tuple published to the intake queue.
type PublishEventRequest struct {
	Title        string `json:"title" binding:"required" example:"Frontier lab announces new coding model"`
	Summary      string `json:"summary" example:"Short abstract of the announcement"`
	Body         string `json:"body" example:"Full article text"`
	URL          string `json:"url" binding:"required,url" example:"https://lab.example.com/blog/new-model"`
	PublishedAt  string `json:"published_at" binding:"required" example:"2026-08-26T09:30:00Z"`
	SourceDomain string `json:"source_domain" binding:"required" example:"lab.example.com"`
	SourceName   string `json:"source_name" example:"Example Lab Blog"`
	SourceType   string `json:"source_type" binding:"required" example:"official_lab"`
}

// PublishEventsBulkRequest carries multiple raw events.
type PublishEventsBulkRequest struct {
	Events []PublishEventRequest `json:"events" binding:"required,min=1,max=500,dive"`
}

// RetractEventRequest marks an event as no longer trustworthy.
type RetractEventRequest struct {
	Reason      string `json:"reason" binding:"required" example:"benchmark result withdrawn by authors"`
	EvidenceURL string `json:"evidence_url" example:"https://lab.example.com/blog/correction"`
	Actor       string `json:"actor" example:"ops@tracker"`
}

// ReviewActionRequest identifies who approved or rejected a pending link.
type ReviewActionRequest struct {
	Actor string `json:"actor" example:"reviewer@tracker"`
}

// GetReviewQueueRequest filters the pending link queue.
type GetReviewQueueRequest struct {
	Signpost string `form:"signpost" example:"CAP-01"`
	Limit    int    `form:"limit,default=50" example:"50"`
}

// CreatePresetRequest registers a custom weighting preset. Weights must sum
// to 1.0 within tolerance.
type CreatePresetRequest struct {
	Name         string  `json:"name" binding:"required" example:"security_first"`
	Capabilities float64 `json:"capabilities" binding:"min=0,max=1" example:"0.2"`
	Agents       float64 `json:"agents" binding:"min=0,max=1" example:"0.2"`
	Inputs       float64 `json:"inputs" binding:"min=0,max=1" example:"0.2"`
	Security     float64 `json:"security" binding:"min=0,max=1" example:"0.4"`
}

// PreviewIndexRequest computes the index for ad-hoc weights without
// persisting a snapshot.
type PreviewIndexRequest struct {
	Capabilities float64 `json:"capabilities" binding:"min=0,max=1" example:"0.25"`
	Agents       float64 `json:"agents" binding:"min=0,max=1" example:"0.25"`
	Inputs       float64 `json:"inputs" binding:"min=0,max=1" example:"0.25"`
	Security     float64 `json:"security" binding:"min=0,max=1" example:"0.25"`
	Date         string  `json:"date" example:"2026-08-26"`
}

// GetIndexRequest selects the preset for the current index.
type GetIndexRequest struct {
	Preset string `form:"preset" example:"equal"`
}

// GetHistoryRequest selects a snapshot date range.
type GetHistoryRequest struct {
	Preset string `form:"preset" example:"equal"`
	From   string `form:"from" binding:"required" example:"2026-08-01"`
	To     string `form:"to" binding:"required" example:"2026-08-26"`
}

// TriggerAggregationRequest starts an on-demand aggregation run.
type TriggerAggregationRequest struct {
	Preset string `json:"preset" example:"equal"`
	Date   string `json:"date" example:"2026-08-26"`
}
