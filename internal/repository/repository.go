package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
)

// Store хранилище ссылок, очереди задач и журнала использования
// Реализуется store.Store (память) и store.DatabaseStore (PostgreSQL)
type Store interface {
	FindActiveByCode(ctx context.Context, code model.Code) (model.Link, error)
	CreateLink(ctx context.Context, destination model.URL, expiresAt time.Time, creatorIP string, codeFor func(id int64) model.Code) (model.Link, error)
	DeactivateLink(ctx context.Context, id int64) (model.Link, error)
	DeleteLink(ctx context.Context, id int64) (model.Link, error)
	ListLinks(ctx context.Context, filter model.LinkFilter) (model.LinkPage, error)
	DeactivateExpired(ctx context.Context) (int64, error)
	ListInactiveCodes(ctx context.Context) ([]model.Code, error)

	Enqueue(ctx context.Context, linkID int64, payload json.RawMessage, availableAt time.Time) (int64, error)
	ReclaimStaleJobs(ctx context.Context, visibilityTimeout time.Duration) (int64, error)
	ClaimJobs(ctx context.Context, workerID string, limit int) ([]model.PopulationJob, error)
	CompleteJob(ctx context.Context, id int64) error
	FailJob(ctx context.Context, id int64, reason string) error
	RetryJob(ctx context.Context, id int64, delay time.Duration, reason string) error

	WriteUsage(ctx context.Context, event model.UsageEvent) error
}

type Repository struct {
	underlying Store
}

func New(underlying Store) *Repository {
	return &Repository{underlying}
}
