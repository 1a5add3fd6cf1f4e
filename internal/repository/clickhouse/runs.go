package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

// RunRepository implements repository.RunRepository on ClickHouse. Run
// records use a ReplacingMergeTree with a version column, so status
// transitions are simply higher-versioned rows of the same run_id; the audit
// log is plain append-only.
type RunRepository struct {
	client *Client
	log    *zap.Logger
}

// NewRunRepository creates a new run repository.
func NewRunRepository(client *Client, log *zap.Logger) *RunRepository {
	return &RunRepository{client: client, log: log}
}

// InitSchema creates the telemetry tables if they do not exist.
func (r *RunRepository) InitSchema(ctx context.Context) error {
	runsTable := `
	CREATE TABLE IF NOT EXISTS ingest_runs (
		run_id String,
		kind LowCardinality(String),
		status LowCardinality(String),
		error String,
		ingested UInt64,
		duplicates UInt64,
		tier_blocked UInt64,
		mapped UInt64,
		auto_approved UInt64,
		queued UInt64,
		deferred UInt64,
		failed UInt64,
		started_at DateTime64(3),
		finished_at DateTime64(3),
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	PRIMARY KEY (run_id)
	ORDER BY (run_id, started_at)
	PARTITION BY toYYYYMM(started_at)
	SETTINGS index_granularity = 8192
	`

	auditTable := `
	CREATE TABLE IF NOT EXISTS audit_log (
		id String,
		action LowCardinality(String),
		actor String,
		entity LowCardinality(String),
		entity_id UInt64,
		reason String,
		detail String,
		created_at DateTime64(3) DEFAULT now64(3)
	) ENGINE = MergeTree()
	ORDER BY (created_at, id)
	PARTITION BY toYYYYMM(created_at)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, runsTable); err != nil {
		return fmt.Errorf("failed to create ingest_runs table: %w", err)
	}
	if err := r.client.Conn().Exec(ctx, auditTable); err != nil {
		return fmt.Errorf("failed to create audit_log table: %w", err)
	}

	r.log.Info("ClickHouse telemetry schema initialized")
	return nil
}

// RecordRun appends a version of the run record.
func (r *RunRepository) RecordRun(ctx context.Context, run *domain.IngestRun) error {
	if run.Version == 0 {
		run.Version = uint64(time.Now().UnixNano())
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO ingest_runs")
	if err != nil {
		return fmt.Errorf("failed to prepare run batch: %w", err)
	}

	err = batch.Append(
		run.RunID,
		string(run.Kind),
		string(run.Status),
		run.Error,
		run.Counts.Ingested,
		run.Counts.Duplicates,
		run.Counts.TierBlocked,
		run.Counts.Mapped,
		run.Counts.AutoApproved,
		run.Counts.Queued,
		run.Counts.Deferred,
		run.Counts.Failed,
		run.StartedAt,
		run.FinishedAt,
		run.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to append run record: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send run record: %w", err)
	}
	return nil
}

// ListRuns returns the most recent run records, newest first, with replaced
// versions collapsed.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*domain.IngestRun, error) {
	query := `
		SELECT
			run_id, kind, status, error,
			ingested, duplicates, tier_blocked, mapped,
			auto_approved, queued, deferred, failed,
			started_at, finished_at, version
		FROM ingest_runs FINAL
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := r.client.Conn().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func(rows driver.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error("Failed to close run rows", zap.Error(err))
		}
	}(rows)

	var runs []*domain.IngestRun
	for rows.Next() {
		var (
			run          domain.IngestRun
			kind, status string
		)
		if err := rows.Scan(
			&run.RunID, &kind, &status, &run.Error,
			&run.Counts.Ingested, &run.Counts.Duplicates, &run.Counts.TierBlocked, &run.Counts.Mapped,
			&run.Counts.AutoApproved, &run.Counts.Queued, &run.Counts.Deferred, &run.Counts.Failed,
			&run.StartedAt, &run.FinishedAt, &run.Version,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.Kind = domain.RunKind(kind)
		run.Status = domain.RunStatus(status)
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}
	return runs, nil
}

// AppendAudit writes one audit entry.
func (r *RunRepository) AppendAudit(ctx context.Context, entry *domain.AuditEntry) error {
	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO audit_log")
	if err != nil {
		return fmt.Errorf("failed to prepare audit batch: %w", err)
	}

	err = batch.Append(
		entry.ID,
		string(entry.Action),
		entry.Actor,
		entry.Entity,
		entry.EntityID,
		entry.Reason,
		entry.Detail,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send audit entry: %w", err)
	}
	return nil
}

// Ping checks if the ClickHouse connection is alive.
func (r *RunRepository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the underlying connection.
func (r *RunRepository) Close() error {
	return r.client.Close()
}
