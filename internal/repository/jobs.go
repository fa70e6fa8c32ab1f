package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
)

func (r Repository) Enqueue(ctx context.Context, linkID int64, payload json.RawMessage, availableAt time.Time) (int64, error) {
	id, err := r.underlying.Enqueue(ctx, linkID, payload, availableAt)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue job: %w", err)
	}
	return id, nil
}

func (r Repository) ReclaimStaleJobs(ctx context.Context, visibilityTimeout time.Duration) (int64, error) {
	n, err := r.underlying.ReclaimStaleJobs(ctx, visibilityTimeout)
	if err != nil {
		return 0, fmt.Errorf("failed to reclaim jobs: %w", err)
	}
	return n, nil
}

func (r Repository) ClaimJobs(ctx context.Context, workerID string, limit int) ([]model.PopulationJob, error) {
	jobs, err := r.underlying.ClaimJobs(ctx, workerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim jobs: %w", err)
	}
	return jobs, nil
}

func (r Repository) CompleteJob(ctx context.Context, id int64) error {
	if err := r.underlying.CompleteJob(ctx, id); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	return nil
}

func (r Repository) FailJob(ctx context.Context, id int64, reason string) error {
	if err := r.underlying.FailJob(ctx, id, reason); err != nil {
		return fmt.Errorf("failed to fail job: %w", err)
	}
	return nil
}

func (r Repository) RetryJob(ctx context.Context, id int64, delay time.Duration, reason string) error {
	if err := r.underlying.RetryJob(ctx, id, delay, reason); err != nil {
		return fmt.Errorf("failed to reschedule job: %w", err)
	}
	return nil
}

func (r Repository) WriteUsage(ctx context.Context, event model.UsageEvent) error {
	if err := r.underlying.WriteUsage(ctx, event); err != nil {
		return fmt.Errorf("failed to write usage: %w", err)
	}
	return nil
}
