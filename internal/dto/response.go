package dto

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message" example:"Key: 'PublishEventRequest.URL' Error:Field validation failed"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// PublishEventResponse acknowledges a queued event. The ID is deterministic,
// derived from title, source domain and publication day, so republishing the
// same event yields the same ID.
type PublishEventResponse struct {
	EventID string `json:"event_id" example:"3f2c9a1b8d0e"`
	Status  string `json:"status" example:"accepted"`
}

// PublishBulkEventsResponse acknowledges a batch publish.
type PublishBulkEventsResponse struct {
	Accepted int      `json:"accepted" example:"2"`
	Rejected int      `json:"rejected" example:"1"`
	EventIDs []string `json:"event_ids"`
	Errors   []string `json:"errors,omitempty"`
}

// RetractEventResponse confirms a retraction. EventID is the deduplication
// hash the event was addressed by.
type RetractEventResponse struct {
	EventID string `json:"event_id" example:"3f2c9a1b8d0e"`
	Status  string `json:"status" example:"retracted"`
}

// SnapshotData is one persisted daily index value.
type SnapshotData struct {
	Preset       string  `json:"preset" example:"equal"`
	Date         string  `json:"date" example:"2026-08-26"`
	Overall      float64 `json:"overall" example:"0.166"`
	Capabilities float64 `json:"capabilities" example:"0.8"`
	Agents       float64 `json:"agents" example:"0.6"`
	Inputs       float64 `json:"inputs" example:"0.5"`
	Security     float64 `json:"security" example:"0.05"`
	CreatedAt    string  `json:"created_at" example:"2026-08-27T00:05:00Z"`
}

// IndexResponse wraps the latest snapshot for a preset.
type IndexResponse struct {
	Snapshot SnapshotData `json:"snapshot"`
}

// HistoryResponse is an ordered range of snapshots.
type HistoryResponse struct {
	Snapshots []SnapshotData `json:"snapshots"`
	Count     int            `json:"count" example:"26"`
}

// PreviewResponse carries an unpersisted index computation.
type PreviewResponse struct {
	Overall    float64            `json:"overall" example:"0.166"`
	Categories map[string]float64 `json:"categories"`
	Date       string             `json:"date" example:"2026-08-26"`
}

// ReviewLinkData is one pending event-signpost link awaiting a human.
type ReviewLinkData struct {
	LinkID       uint    `json:"link_id" example:"42"`
	EventID      string  `json:"event_id" example:"3f2c9a1b8d0e"`
	EventTitle   string  `json:"event_title" example:"Frontier lab announces new coding model"`
	SignpostCode string  `json:"signpost_code" example:"CAP-01"`
	Confidence   float64 `json:"confidence" example:"0.55"`
	Impact       float64 `json:"impact" example:"0.3"`
	Rationale    string  `json:"rationale" example:"Announcement claims SWE-bench improvement"`
	Tier         string  `json:"tier" example:"B"`
	CreatedAt    string  `json:"created_at" example:"2026-08-26T10:00:00Z"`
}

// ReviewQueueResponse lists pending links oldest first.
type ReviewQueueResponse struct {
	Links []ReviewLinkData `json:"links"`
	Count int              `json:"count" example:"3"`
}

// ReviewActionResponse confirms an approve or reject.
type ReviewActionResponse struct {
	Message string `json:"message" example:"Link approved"`
	LinkID  uint   `json:"link_id" example:"42"`
}

// PresetData is one stored weight preset.
type PresetData struct {
	Name         string  `json:"name" example:"equal"`
	Capabilities float64 `json:"capabilities" example:"0.25"`
	Agents       float64 `json:"agents" example:"0.25"`
	Inputs       float64 `json:"inputs" example:"0.25"`
	Security     float64 `json:"security" example:"0.25"`
}

// PresetListResponse lists all registered presets.
type PresetListResponse struct {
	Presets []PresetData `json:"presets"`
	Count   int          `json:"count" example:"2"`
}

// RunData summarizes one pipeline run.
type RunData struct {
	RunID        string `json:"run_id" example:"7b0f2c64-1d9a-4f1e-9c6a-1a2b3c4d5e6f"`
	Kind         string `json:"kind" example:"mapping"`
	Status       string `json:"status" example:"completed"`
	StartedAt    string `json:"started_at" example:"2026-08-26T06:00:00Z"`
	FinishedAt   string `json:"finished_at" example:"2026-08-26T06:02:11Z"`
	Ingested     uint64 `json:"ingested" example:"120"`
	Duplicates   uint64 `json:"duplicates" example:"14"`
	TierBlocked  uint64 `json:"tier_blocked" example:"30"`
	Mapped       uint64 `json:"mapped" example:"70"`
	AutoApproved uint64 `json:"auto_approved" example:"52"`
	Queued       uint64 `json:"queued" example:"18"`
	Deferred     uint64 `json:"deferred" example:"0"`
	Failed       uint64 `json:"failed" example:"2"`
	Error        string `json:"error,omitempty"`
}

// RunListResponse lists recent runs newest first.
type RunListResponse struct {
	Runs  []RunData `json:"runs"`
	Count int       `json:"count" example:"10"`
}

// TriggerRunResponse acknowledges an on-demand run.
type TriggerRunResponse struct {
	Message string  `json:"message" example:"Mapping run completed"`
	Run     RunData `json:"run"`
}
