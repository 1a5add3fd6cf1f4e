package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// SourceCounts holds the evidence history used for credibility recomputation.
type SourceCounts struct {
	Total     int64
	Retracted int64
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	// InsertOrSkip inserts the event unless one of its deduplication keys
	// already exists. The uniqueness check is enforced by the store itself,
	// not by a select-then-insert, so concurrent ingestion cannot race.
	// Returns false when the event was skipped as a duplicate.
	InsertOrSkip(ctx context.Context, event *domain.Event) (bool, error)

	GetByID(ctx context.Context, id uint) (*domain.Event, error)

	// GetByDedupHash resolves the public event identifier (the deduplication
	// hash returned by the publish endpoints) to the stored row.
	GetByDedupHash(ctx context.Context, hash string) (*domain.Event, error)

	// ListMappable returns A/B-tier, non-retracted events that have not been
	// mapped yet, including events deferred by an exhausted budget on a
	// previous day. Ordered oldest-first.
	ListMappable(ctx context.Context, limit int) ([]*domain.Event, error)

	MarkMapped(ctx context.Context, id uint, at time.Time) error

	// FlagForReview marks the event for manual attention with a reason,
	// e.g. "budget exceeded" or "mapping failed".
	FlagForReview(ctx context.Context, id uint, reason string) error
	ClearReviewFlag(ctx context.Context, id uint) error

	// Retract soft-deletes the event. Past snapshots are never touched.
	Retract(ctx context.Context, id uint, reason, evidenceURL string, at time.Time) error

	CountBySource(ctx context.Context, sourceID uint) (SourceCounts, error)
}

// SourceRepository defines storage operations for publishers.
type SourceRepository interface {
	// UpsertByDomain creates the source on first sighting of a new domain and
	// returns the stored row either way.
	UpsertByDomain(ctx context.Context, source *domain.Source) (*domain.Source, error)
	List(ctx context.Context) ([]*domain.Source, error)
	UpdateReliability(ctx context.Context, id uint, score float64, counts SourceCounts) error
}

// SignpostRepository defines storage operations for the signpost catalog.
type SignpostRepository interface {
	List(ctx context.Context) ([]*domain.Signpost, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Signpost, error)
	GetByCode(ctx context.Context, code string) (*domain.Signpost, error)
	UpdateCurrent(ctx context.Context, id uint, current float64) error

	// Seed inserts catalog entries that do not exist yet, keyed by code.
	Seed(ctx context.Context, signposts []domain.Signpost) error
}

// LinkRepository defines storage operations for event-signpost links.
type LinkRepository interface {
	Create(ctx context.Context, link *domain.EventSignpostLink) error
	GetByID(ctx context.Context, id uint) (*domain.EventSignpostLink, error)

	// Approve is an idempotent state transition; approving an approved link
	// is a no-op.
	Approve(ctx context.Context, id uint, actor string, at time.Time) error

	// Delete removes the link row. Used by review rejection; the parent
	// event is never deleted.
	Delete(ctx context.Context, id uint) error

	// ListPending returns unapproved links oldest-first, optionally filtered
	// by signpost code.
	ListPending(ctx context.Context, signpostCode string, limit int) ([]*domain.EventSignpostLink, error)

	// LatestQualifying returns the most recent approved link for the
	// signpost whose parent event is A/B tier and not retracted, considering
	// only links created before asOf. Returns ErrNotFound when the signpost
	// has no qualifying evidence.
	LatestQualifying(ctx context.Context, signpostID uint, asOf time.Time) (*domain.EventSignpostLink, error)
}

// SnapshotRepository defines storage operations for index snapshots.
type SnapshotRepository interface {
	// Upsert writes the snapshot keyed on (preset, date) atomically;
	// re-running aggregation for the same day replaces instead of
	// duplicating.
	Upsert(ctx context.Context, snapshot *domain.IndexSnapshot) error

	Latest(ctx context.Context, presetID uint) (*domain.IndexSnapshot, error)
	Range(ctx context.Context, presetID uint, from, to string) ([]*domain.IndexSnapshot, error)
}

// PresetRepository defines storage operations for weighting presets.
type PresetRepository interface {
	Create(ctx context.Context, preset *domain.WeightPreset) error
	GetByName(ctx context.Context, name string) (*domain.WeightPreset, error)
	List(ctx context.Context) ([]*domain.WeightPreset, error)

	// EnsureDefault creates the equal-weight default preset if missing and
	// returns it.
	EnsureDefault(ctx context.Context) (*domain.WeightPreset, error)
}

// RunRepository defines operations on the operational telemetry store.
type RunRepository interface {
	InitSchema(ctx context.Context) error

	// RecordRun appends a new version of the run record; status transitions
	// are written as higher versions of the same run ID.
	RecordRun(ctx context.Context, run *domain.IngestRun) error

	ListRuns(ctx context.Context, limit int) ([]*domain.IngestRun, error)
	AppendAudit(ctx context.Context, entry *domain.AuditEntry) error
	Ping(ctx context.Context) error
	Close() error
}
