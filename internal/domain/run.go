package domain

import "time"

// RunKind identifies which pipeline stage a run record describes.
type RunKind string

const (
	RunKindIngest      RunKind = "ingest"
	RunKindMapping     RunKind = "mapping"
	RunKindAggregation RunKind = "aggregation"
	RunKindCredibility RunKind = "credibility"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunCounts carries the per-run counters that make degraded runs visible
// without treating them as outages.
type RunCounts struct {
	Ingested     uint64 `json:"ingested" ch:"ingested"`
	Duplicates   uint64 `json:"duplicates" ch:"duplicates"`
	TierBlocked  uint64 `json:"tier_blocked" ch:"tier_blocked"`
	Mapped       uint64 `json:"mapped" ch:"mapped"`
	AutoApproved uint64 `json:"auto_approved" ch:"auto_approved"`
	Queued       uint64 `json:"queued" ch:"queued"`
	Deferred     uint64 `json:"deferred" ch:"deferred"`
	Failed       uint64 `json:"failed" ch:"failed"`
}

// IngestRun records one execution of an ingestion, mapping, aggregation or
// credibility job. Stored in ClickHouse with a version column; status
// transitions are written as new versions of the same run_id.
type IngestRun struct {
	RunID      string    `ch:"run_id"`
	Kind       RunKind   `ch:"kind"`
	Status     RunStatus `ch:"status"`
	Error      string    `ch:"error"`
	Counts     RunCounts `ch:"-"`
	StartedAt  time.Time `ch:"started_at"`
	FinishedAt time.Time `ch:"finished_at"`
	Version    uint64    `ch:"version"`
}

// AuditAction enumerates administrative actions recorded in the audit log.
type AuditAction string

const (
	AuditActionRetract AuditAction = "retract"
	AuditActionApprove AuditAction = "approve"
	AuditActionReject  AuditAction = "reject"
)

// AuditEntry is one append-only audit record of an administrative action.
type AuditEntry struct {
	ID        string      `ch:"id"`
	Action    AuditAction `ch:"action"`
	Actor     string      `ch:"actor"`
	Entity    string      `ch:"entity"`
	EntityID  uint64      `ch:"entity_id"`
	Reason    string      `ch:"reason"`
	Detail    string      `ch:"detail"`
	CreatedAt time.Time   `ch:"created_at"`
}
