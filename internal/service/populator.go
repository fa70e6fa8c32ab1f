package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc-dev/link-resolver/internal/cache"
	"github.com/avc-dev/link-resolver/internal/config"
	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/avc-dev/link-resolver/internal/store"
	"go.uber.org/zap"
)

// PopulateStats итоги одного прохода очереди
type PopulateStats struct {
	Reclaimed int64
	Claimed   int
	Done      int
	Failed    int
	Retried   int
}

// Populator обработчик очереди заполнения кэша
// Несколько экземпляров могут работать параллельно, взаимное исключение обеспечивает выборка задач в хранилище
type Populator struct {
	jobs    JobRepository
	cache   cache.Cache
	policy  StaticChecker
	backoff Backoff
	cfg     config.QueueConfig
	logger  *zap.Logger

	now func() time.Time
}

// NewPopulator создает обработчик очереди
func NewPopulator(jobs JobRepository, c cache.Cache, policy StaticChecker, cfg config.QueueConfig, logger *zap.Logger) *Populator {
	return &Populator{
		jobs:    jobs,
		cache:   c,
		policy:  policy,
		backoff: Backoff{Base: cfg.BackoffBase, Cap: cfg.BackoffCap},
		cfg:     cfg,
		logger:  logger.With(zap.String("worker_id", cfg.WorkerID)),
		now:     time.Now,
	}
}

// Run выполняет проходы с интервалом PollInterval до отмены контекста
func (p *Populator) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := p.RunOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("population pass failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce возвращает зависшие задачи, забирает пачку готовых и обрабатывает их по одной
func (p *Populator) RunOnce(ctx context.Context) (PopulateStats, error) {
	var stats PopulateStats

	reclaimed, err := p.jobs.ReclaimStaleJobs(ctx, p.cfg.VisibilityTimeout)
	if err != nil {
		return stats, fmt.Errorf("failed to reclaim stale jobs: %w", err)
	}
	stats.Reclaimed = reclaimed

	jobs, err := p.jobs.ClaimJobs(ctx, p.cfg.WorkerID, p.cfg.BatchSize)
	if err != nil {
		return stats, fmt.Errorf("failed to claim jobs: %w", err)
	}
	stats.Claimed = len(jobs)

	for _, job := range jobs {
		switch p.process(ctx, job) {
		case model.JobDone:
			stats.Done++
		case model.JobFailed:
			stats.Failed++
		case model.JobPending:
			stats.Retried++
		}
	}

	if stats.Claimed > 0 || stats.Reclaimed > 0 {
		p.logger.Info("population pass finished",
			zap.Int64("reclaimed", stats.Reclaimed),
			zap.Int("claimed", stats.Claimed),
			zap.Int("done", stats.Done),
			zap.Int("failed", stats.Failed),
			zap.Int("retried", stats.Retried),
		)
	} else {
		p.logger.Debug("no pending population jobs")
	}

	return stats, nil
}

// process обрабатывает одну задачу и возвращает ее новое состояние
func (p *Populator) process(ctx context.Context, job model.PopulationJob) model.JobStatus {
	payload, err := job.DecodePayload()
	if err != nil {
		return p.fail(ctx, job, err.Error())
	}

	if job.Attempts >= p.cfg.MaxAttempts {
		return p.fail(ctx, job, "attempts exhausted")
	}

	if err := p.policy.CheckStatic(string(payload.Destination)); err != nil {
		return p.fail(ctx, job, err.Error())
	}

	key := cache.PositiveKey(payload.Code)
	ttl := cache.RemainingTTL(*payload.ExpiresAt, p.now())

	if ttl <= 0 {
		// Истекшая ссылка не ошибка, убираем устаревшую запись
		if err := p.cache.Delete(ctx, key); err != nil {
			return p.retry(ctx, job, err)
		}
		return p.complete(ctx, job)
	}

	if err := p.cache.Set(ctx, key, string(payload.Destination), ttl); err != nil {
		return p.retry(ctx, job, err)
	}

	return p.complete(ctx, job)
}

func (p *Populator) complete(ctx context.Context, job model.PopulationJob) model.JobStatus {
	if err := p.jobs.CompleteJob(ctx, job.ID); err != nil {
		p.logTransitionError(job, model.JobDone, err)
	}
	return model.JobDone
}

func (p *Populator) fail(ctx context.Context, job model.PopulationJob, reason string) model.JobStatus {
	p.logger.Warn("population job failed", zap.Int64("job_id", job.ID), zap.Int("attempts", job.Attempts), zap.String("reason", reason))
	if err := p.jobs.FailJob(ctx, job.ID, reason); err != nil {
		p.logTransitionError(job, model.JobFailed, err)
	}
	return model.JobFailed
}

func (p *Populator) retry(ctx context.Context, job model.PopulationJob, cause error) model.JobStatus {
	delay := p.backoff.Delay(job.Attempts)
	p.logger.Warn("cache write failed, rescheduling job",
		zap.Int64("job_id", job.ID),
		zap.Int("attempts", job.Attempts),
		zap.Duration("delay", delay),
		zap.Error(cause),
	)
	if err := p.jobs.RetryJob(ctx, job.ID, delay, cause.Error()); err != nil {
		p.logTransitionError(job, model.JobPending, err)
	}
	return model.JobPending
}

func (p *Populator) logTransitionError(job model.PopulationJob, to model.JobStatus, err error) {
	level := p.logger.Error
	if errors.Is(err, store.ErrNotClaimed) {
		// Задачу вернул в очередь другой обработчик после таймаута видимости
		level = p.logger.Warn
	}
	level("failed to update job state", zap.Int64("job_id", job.ID), zap.String("to", string(to)), zap.Error(err))
}
