package usecase

import (
	"context"
	"time"

	"github.com/avc-dev/link-resolver/internal/config"
	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/avc-dev/link-resolver/internal/service"
	"go.uber.org/zap"
)

//go:generate mockery --name LinkRepository

// LinkRepository определяет интерфейс для работы с хранилищем ссылок
type LinkRepository interface {
	CreateLink(ctx context.Context, destination model.URL, expiresAt time.Time, creatorIP string, codeFor func(int64) model.Code) (model.Link, error)
	DeactivateLink(ctx context.Context, id int64) (model.Link, error)
	DeleteLink(ctx context.Context, id int64) (model.Link, error)
	ListLinks(ctx context.Context, filter model.LinkFilter) (model.LinkPage, error)
}

//go:generate mockery --name Resolver

// Resolver определяет интерфейс пути чтения
type Resolver interface {
	Resolve(ctx context.Context, raw string, meta model.RequestMeta) (service.Resolution, error)
}

//go:generate mockery --name URLNormalizer

// URLNormalizer проверяет и нормализует адрес назначения
type URLNormalizer interface {
	Normalize(ctx context.Context, raw string) (model.URL, error)
}

// CodeGenerator выводит короткий код из id записи
type CodeGenerator interface {
	CodeFor(id int64) model.Code
}

// CacheInvalidator удаляет производные записи кэша
type CacheInvalidator interface {
	Delete(ctx context.Context, keys ...string) error
}

// URLUsecase содержит бизнес-логику для работы со ссылками
type URLUsecase struct {
	repo       LinkRepository
	resolver   Resolver
	normalizer URLNormalizer
	codes      CodeGenerator
	cache      CacheInvalidator
	cfg        *config.Config
	logger     *zap.Logger

	now func() time.Time
}

// NewURLUsecase создает новый экземпляр URLUsecase
func NewURLUsecase(
	repo LinkRepository,
	resolver Resolver,
	normalizer URLNormalizer,
	codes CodeGenerator,
	cache CacheInvalidator,
	cfg *config.Config,
	logger *zap.Logger,
) *URLUsecase {
	return &URLUsecase{
		repo:       repo,
		resolver:   resolver,
		normalizer: normalizer,
		codes:      codes,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}
