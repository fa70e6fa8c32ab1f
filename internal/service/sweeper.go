package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"go.uber.org/zap"

	"github.com/avc-dev/link-resolver/internal/cache"
	"github.com/avc-dev/link-resolver/internal/config"
)

const (
	sweepLockKey   = "lock:maintenance:sweep"
	sweepChunkSize = 500
)

// SweepStats итоги прохода очистки
type SweepStats struct {
	Skipped     bool
	Deactivated int64
	Unlinked    int
}

// Sweeper периодически выключает истекшие ссылки и убирает из кэша записи выключенных
// Проход выполняет только экземпляр, получивший блокировку лидера
type Sweeper struct {
	links  MaintenanceRepository
	cache  cache.Cache
	locker *redislock.Client
	cfg    config.SweeperConfig
	logger *zap.Logger
}

// NewSweeper создает очистку, блокировка лидера берется через client
func NewSweeper(links MaintenanceRepository, c cache.Cache, client redislock.RedisClient, cfg config.SweeperConfig, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		links:  links,
		cache:  c,
		locker: redislock.New(client),
		cfg:    cfg,
		logger: logger,
	}
}

// Run выполняет проходы с интервалом Interval до отмены контекста
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("maintenance sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOnce выполняет один проход, если удалось стать лидером
func (s *Sweeper) SweepOnce(ctx context.Context) (SweepStats, error) {
	lock, err := s.locker.Obtain(ctx, sweepLockKey, s.cfg.LockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		s.logger.Debug("maintenance sweep already running elsewhere")
		return SweepStats{Skipped: true}, nil
	}
	if err != nil {
		return SweepStats{}, fmt.Errorf("failed to obtain sweep lock: %w", err)
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			s.logger.Warn("failed to release sweep lock", zap.Error(err))
		}
	}()

	var stats SweepStats

	stats.Deactivated, err = s.links.DeactivateExpired(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to deactivate expired links: %w", err)
	}

	codes, err := s.links.ListInactiveCodes(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list inactive codes: %w", err)
	}

	for start := 0; start < len(codes); start += sweepChunkSize {
		end := min(start+sweepChunkSize, len(codes))
		keys := make([]string, 0, end-start)
		for _, code := range codes[start:end] {
			keys = append(keys, cache.PositiveKey(code))
		}
		if err := s.cache.Delete(ctx, keys...); err != nil {
			return stats, fmt.Errorf("failed to unlink cache entries: %w", err)
		}
		stats.Unlinked += len(keys)
	}

	s.logger.Info("maintenance sweep finished",
		zap.Int64("deactivated", stats.Deactivated),
		zap.Int("unlinked", stats.Unlinked),
	)

	return stats, nil
}
