package service

import (
	"context"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
)

// LinkFinder источник истины для резолвера
type LinkFinder interface {
	// FindActiveByCode возвращает активную и не истекшую ссылку
	// Отсутствие записи обозначается ошибкой store.ErrNotFound в цепочке
	FindActiveByCode(ctx context.Context, code model.Code) (model.Link, error)
}

// JobRepository операции очереди заполнения кэша
type JobRepository interface {
	ReclaimStaleJobs(ctx context.Context, visibilityTimeout time.Duration) (int64, error)
	ClaimJobs(ctx context.Context, workerID string, limit int) ([]model.PopulationJob, error)
	CompleteJob(ctx context.Context, id int64) error
	FailJob(ctx context.Context, id int64, reason string) error
	RetryJob(ctx context.Context, id int64, delay time.Duration, reason string) error
}

// MaintenanceRepository операции периодической очистки
type MaintenanceRepository interface {
	DeactivateExpired(ctx context.Context) (int64, error)
	ListInactiveCodes(ctx context.Context) ([]model.Code, error)
}

// UsageSink получатель журнала использования (PostgreSQL, Kafka)
type UsageSink interface {
	WriteUsage(ctx context.Context, event model.UsageEvent) error
}

// UsageRecorder неблокирующая запись события использования
type UsageRecorder interface {
	Record(event model.UsageEvent)
}

// DestinationChecker полная проверка безопасности адреса, включая разрешение имени
type DestinationChecker interface {
	Check(ctx context.Context, raw string) error
}

// StaticChecker проверка адреса без сетевых обращений
type StaticChecker interface {
	CheckStatic(raw string) error
}
