package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/jackc/pgx/v5"
)

// Enqueue ставит задачу заполнения кэша, нулевой availableAt означает now()
func (ds *DatabaseStore) Enqueue(ctx context.Context, linkID int64, payload json.RawMessage, availableAt time.Time) (int64, error) {
	return enqueue(ctx, ds.pool, linkID, payload, availableAt)
}

func enqueue(ctx context.Context, q querier, linkID int64, payload json.RawMessage, availableAt time.Time) (int64, error) {
	var at *time.Time
	if !availableAt.IsZero() {
		at = &availableAt
	}

	query := `
		INSERT INTO link_task (link_id, payload, available_at)
		VALUES ($1, $2::jsonb, COALESCE($3::timestamptz, now()))
		RETURNING id
	`

	var id int64
	if err := q.QueryRow(ctx, query, linkID, []byte(payload), at).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to enqueue job: %w", err)
	}

	return id, nil
}

// ReclaimStaleJobs возвращает в pending задачи, зависшие в processing дольше visibilityTimeout
func (ds *DatabaseStore) ReclaimStaleJobs(ctx context.Context, visibilityTimeout time.Duration) (int64, error) {
	query := `
		UPDATE link_task
		SET status = 'pending', available_at = now(), locked_at = NULL, locked_by = NULL
		WHERE status = 'processing' AND locked_at < now() - make_interval(secs => $1)
	`

	tag, err := ds.pool.Exec(ctx, query, visibilityTimeout.Seconds())
	if err != nil {
		return 0, fmt.Errorf("failed to reclaim stale jobs: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ClaimJobs атомарно забирает до limit готовых задач
// SKIP LOCKED гарантирует, что параллельные обработчики получают непересекающиеся наборы
func (ds *DatabaseStore) ClaimJobs(ctx context.Context, workerID string, limit int) ([]model.PopulationJob, error) {
	query := `
		WITH ready AS (
			SELECT id
			FROM link_task
			WHERE status = 'pending' AND available_at <= now()
			ORDER BY available_at, id
			FOR UPDATE SKIP LOCKED
			LIMIT $1
		)
		UPDATE link_task t
		SET status = 'processing', locked_at = now(), locked_by = $2, attempts = t.attempts + 1
		FROM ready
		WHERE t.id = ready.id
		RETURNING t.id, t.link_id, t.payload, t.status, t.available_at, t.locked_at, t.locked_by,
			t.attempts, t.last_error, t.last_error_at, t.processed_at, t.created_at
	`

	var jobs []model.PopulationJob
	err := pgx.BeginFunc(ctx, ds.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, limit, workerID)
		if err != nil {
			return fmt.Errorf("failed to claim jobs: %w", err)
		}

		jobs, err = pgx.CollectRows(rows, scanJob)
		if err != nil {
			return fmt.Errorf("failed to scan claimed jobs: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(jobs, func(a, b model.PopulationJob) int {
		if c := a.AvailableAt.Compare(b.AvailableAt); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})

	return jobs, nil
}

func scanJob(row pgx.CollectableRow) (model.PopulationJob, error) {
	var (
		job     model.PopulationJob
		status  string
		payload []byte
	)

	err := row.Scan(&job.ID, &job.LinkID, &payload, &status, &job.AvailableAt, &job.LockedAt, &job.LockedBy,
		&job.Attempts, &job.LastError, &job.LastErrorAt, &job.ProcessedAt, &job.CreatedAt)
	if err != nil {
		return model.PopulationJob{}, err
	}

	job.Status = model.JobStatus(status)
	job.Payload = payload

	return job, nil
}

// GetJob читает задачу по id
func (ds *DatabaseStore) GetJob(ctx context.Context, id int64) (model.PopulationJob, error) {
	query := `
		SELECT id, link_id, payload, status, available_at, locked_at, locked_by,
			attempts, last_error, last_error_at, processed_at, created_at
		FROM link_task
		WHERE id = $1
	`

	rows, err := ds.pool.Query(ctx, query, id)
	if err != nil {
		return model.PopulationJob{}, fmt.Errorf("failed to read job: %w", err)
	}

	job, err := pgx.CollectExactlyOneRow(rows, scanJob)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.PopulationJob{}, fmt.Errorf("job %d: %w", id, ErrNotFound)
		}
		return model.PopulationJob{}, fmt.Errorf("failed to scan job: %w", err)
	}

	return job, nil
}

func (ds *DatabaseStore) CompleteJob(ctx context.Context, id int64) error {
	query := `
		UPDATE link_task
		SET status = 'done', processed_at = now(), locked_at = NULL, locked_by = NULL
		WHERE id = $1 AND status = 'processing'
	`

	return ds.finishJob(ctx, id, query, id)
}

func (ds *DatabaseStore) FailJob(ctx context.Context, id int64, reason string) error {
	query := `
		UPDATE link_task
		SET status = 'failed', processed_at = now(), last_error = $2, last_error_at = now(),
			locked_at = NULL, locked_by = NULL
		WHERE id = $1 AND status = 'processing'
	`

	return ds.finishJob(ctx, id, query, id, reason)
}

// RetryJob возвращает задачу в pending со сдвигом available_at на delay
func (ds *DatabaseStore) RetryJob(ctx context.Context, id int64, delay time.Duration, reason string) error {
	query := `
		UPDATE link_task
		SET status = 'pending', available_at = now() + make_interval(secs => $2),
			last_error = $3, last_error_at = now(), locked_at = NULL, locked_by = NULL
		WHERE id = $1 AND status = 'processing'
	`

	return ds.finishJob(ctx, id, query, id, delay.Seconds(), reason)
}

func (ds *DatabaseStore) finishJob(ctx context.Context, id int64, query string, args ...any) error {
	tag, err := ds.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %d: %w", id, ErrNotClaimed)
	}

	return nil
}
