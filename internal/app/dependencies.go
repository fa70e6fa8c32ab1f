package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/avc-dev/link-resolver/internal/broker"
	"github.com/avc-dev/link-resolver/internal/cache"
	"github.com/avc-dev/link-resolver/internal/config"
	"github.com/avc-dev/link-resolver/internal/config/db"
	"github.com/avc-dev/link-resolver/internal/handler"
	"github.com/avc-dev/link-resolver/internal/middleware"
	"github.com/avc-dev/link-resolver/internal/migrations"
	"github.com/avc-dev/link-resolver/internal/repository"
	"github.com/avc-dev/link-resolver/internal/service"
	"github.com/avc-dev/link-resolver/internal/store"
	"github.com/avc-dev/link-resolver/internal/usecase"
)

// dependencies собранные компоненты приложения
type dependencies struct {
	db        db.Database
	cache     *cache.RedisCache
	usageSink io.Closer

	health    handler.HealthChecker
	handler   *handler.Handler
	auth      *middleware.AuthMiddleware
	usage     *service.UsageLogger
	populator *service.Populator
	sweeper   *service.Sweeper
}

// initDependencies инициализирует все зависимости приложения
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*dependencies, error) {
	deps := &dependencies{}

	redisCache, err := cache.New(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	deps.cache = redisCache

	storage, err := deps.initStorage(ctx, cfg, logger)
	if err != nil {
		deps.close(logger)
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	repo := repository.New(storage)

	sink, err := deps.initUsageSink(cfg, repo, logger)
	if err != nil {
		deps.close(logger)
		return nil, fmt.Errorf("failed to initialize usage sink: %w", err)
	}

	policy := service.NewURLPolicy(cfg.Policy, nil)
	codes := service.NewCodeGenerator(cfg.CodeMinLength)

	deps.usage = service.NewUsageLogger(sink, cfg.Usage, logger)
	resolver := service.NewResolver(redisCache, repo, policy, deps.usage, cfg.Resolver, logger)
	deps.populator = service.NewPopulator(repo, redisCache, policy, cfg.Queue, logger)
	deps.sweeper = service.NewSweeper(repo, redisCache, redisCache.Client(), cfg.Sweeper, logger)

	urlUsecase := usecase.NewURLUsecase(repo, resolver, policy, codes, redisCache, cfg, logger)
	deps.handler = handler.New(urlUsecase, logger, deps.health, cfg)
	deps.auth = middleware.NewAuthMiddleware(service.NewAuthService(cfg.JWTSecret), logger)

	return deps, nil
}

// initStorage создает хранилище на основе конфигурации
// Без DSN используется хранилище в памяти
func (d *dependencies) initStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	if cfg.DatabaseDSN == "" {
		logger.Info("Using in-memory storage")
		memory := store.NewStore()
		d.health = memory
		return memory, nil
	}

	database, err := db.NewConfig(cfg.DatabaseDSN).Connect(ctx)
	if err != nil {
		return nil, err
	}
	d.db = database
	d.health = database

	if err := migrations.NewMigrator(database.DB(), logger).RunUp(); err != nil {
		return nil, err
	}

	logger.Info("Using database storage")
	return store.NewDatabaseStore(database), nil
}

// initUsageSink выбирает получателя журнала использования
func (d *dependencies) initUsageSink(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) (service.UsageSink, error) {
	switch cfg.Usage.Sink {
	case config.UsageSinkKafka:
		producer, err := broker.Dial(cfg.Usage.KafkaBrokers, cfg.Usage.KafkaTopic, logger)
		if err != nil {
			return nil, err
		}
		d.usageSink = producer
		logger.Info("Usage events go to kafka", zap.String("topic", cfg.Usage.KafkaTopic))
		return producer, nil
	case config.UsageSinkNone:
		return service.DiscardUsage{}, nil
	default:
		return repo, nil
	}
}

// close освобождает подключения в обратном порядке
func (d *dependencies) close(logger *zap.Logger) {
	if d.usageSink != nil {
		if err := d.usageSink.Close(); err != nil {
			logger.Warn("failed to close usage sink", zap.Error(err))
		}
	}
	if d.db != nil {
		d.db.Close()
	}
	if d.cache != nil {
		if err := d.cache.Close(); err != nil {
			logger.Warn("failed to close cache", zap.Error(err))
		}
	}
}
