package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/avc-dev/link-resolver/internal/cache"
	"github.com/avc-dev/link-resolver/internal/config"
	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/avc-dev/link-resolver/internal/store"
	"go.uber.org/zap"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Source откуда получен ответ резолвера
type Source string

const (
	SourceCache Source = "cache"
	SourceStore Source = "store"
)

// Resolution результат успешного разрешения кода
type Resolution struct {
	Code        model.Code
	Destination model.URL
	// LinkID известен только при чтении из хранилища
	LinkID *int64
	Source Source
}

type cacheVerdict int

const (
	verdictMiss cacheVerdict = iota
	verdictTombstone
	verdictHit
)

// Resolver путь чтения: cache-aside с негативным кэшем и распределенной блокировкой на код
type Resolver struct {
	cache  cache.Cache
	locker *cache.Locker
	links  LinkFinder
	policy DestinationChecker
	usage  UsageRecorder
	cfg    config.ResolverConfig
	logger *zap.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewResolver создает резолвер
func NewResolver(c cache.Cache, links LinkFinder, policy DestinationChecker, usage UsageRecorder, cfg config.ResolverConfig, logger *zap.Logger) *Resolver {
	return &Resolver{
		cache:  c,
		locker: cache.NewLocker(c),
		links:  links,
		policy: policy,
		usage:  usage,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Resolve возвращает адрес назначения для кода
// Ошибки: ErrInvalidCode, ErrNotFound, ErrUnsafeDestination, либо ошибка хранилища
func (r *Resolver) Resolve(ctx context.Context, raw string, meta model.RequestMeta) (Resolution, error) {
	code, err := r.parseCode(raw)
	if err != nil {
		return Resolution{}, err
	}

	verdict, dest, err := r.lookupCache(ctx, code)
	if err != nil {
		r.logger.Warn("cache unavailable, reading from store", zap.String("code", string(code)), zap.Error(err))
		return r.fromStore(ctx, code, meta, false)
	}
	if res, done, err := r.answer(code, verdict, dest, meta); done {
		return res, err
	}

	lock, err := r.locker.TryAcquire(ctx, cache.LockKey(code), r.cfg.LockTTL)
	if err != nil {
		r.logger.Warn("failed to acquire resolution lock, reading from store", zap.String("code", string(code)), zap.Error(err))
		return r.fromStore(ctx, code, meta, false)
	}
	if lock == nil {
		return r.wait(ctx, code, meta)
	}

	defer func() {
		// Освобождение не должно зависеть от отмены запроса
		released, err := lock.Release(context.WithoutCancel(ctx))
		switch {
		case err != nil:
			r.logger.Warn("failed to release resolution lock", zap.String("code", string(code)), zap.Error(err))
		case !released:
			r.logger.Warn("resolution lock expired before release", zap.String("code", string(code)))
		}
	}()

	// Предыдущий лидер мог заполнить кэш между нашей проверкой и захватом блокировки
	verdict, dest, err = r.lookupCache(ctx, code)
	if err == nil {
		if res, done, err := r.answer(code, verdict, dest, meta); done {
			return res, err
		}
	}

	return r.fromStore(ctx, code, meta, true)
}

func (r *Resolver) parseCode(raw string) (model.Code, error) {
	code := strings.TrimSpace(raw)
	if code == "" || len(code) > r.cfg.MaxCodeLength || !codePattern.MatchString(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, raw)
	}
	return model.Code(code), nil
}

// lookupCache проверяет негативный, затем позитивный ключ
// Закэшированный адрес перепроверяется, при нарушении политики ключ удаляется и считается промахом
func (r *Resolver) lookupCache(ctx context.Context, code model.Code) (cacheVerdict, model.URL, error) {
	tomb, err := r.cache.Exists(ctx, cache.TombstoneKey(code))
	if err != nil {
		return verdictMiss, "", err
	}
	if tomb {
		return verdictTombstone, "", nil
	}

	cached, err := r.cache.Get(ctx, cache.PositiveKey(code))
	if errors.Is(err, cache.ErrMiss) {
		return verdictMiss, "", nil
	}
	if err != nil {
		return verdictMiss, "", err
	}

	if err := r.policy.Check(ctx, cached); err != nil {
		r.logger.Warn("dropping unsafe cached destination", zap.String("code", string(code)), zap.Error(err))
		if err := r.cache.Delete(ctx, cache.PositiveKey(code)); err != nil {
			r.logger.Warn("failed to delete dirty cache entry", zap.String("code", string(code)), zap.Error(err))
		}
		return verdictMiss, "", nil
	}

	return verdictHit, model.URL(cached), nil
}

// answer превращает окончательный ответ кэша в результат, done == false для промаха
func (r *Resolver) answer(code model.Code, verdict cacheVerdict, dest model.URL, meta model.RequestMeta) (Resolution, bool, error) {
	switch verdict {
	case verdictTombstone:
		r.logger.Debug("tombstone hit", zap.String("code", string(code)))
		r.record(nil, "tombstone hit", meta)
		return Resolution{}, true, fmt.Errorf("code %s: %w", code, ErrNotFound)
	case verdictHit:
		r.logger.Debug("cache hit", zap.String("code", string(code)))
		r.record(nil, "cache hit", meta)
		return Resolution{Code: code, Destination: dest, Source: SourceCache}, true, nil
	default:
		return Resolution{}, false, nil
	}
}

// wait ожидает результат лидера ограниченное число раундов
func (r *Resolver) wait(ctx context.Context, code model.Code, meta model.RequestMeta) (Resolution, error) {
	for round := 0; round < r.cfg.WaitRounds; round++ {
		if err := r.sleep(ctx, r.cfg.WaitInterval); err != nil {
			return Resolution{}, err
		}

		verdict, dest, err := r.lookupCache(ctx, code)
		if err != nil {
			r.logger.Warn("cache unavailable while waiting, reading from store", zap.String("code", string(code)), zap.Error(err))
			return r.fromStore(ctx, code, meta, false)
		}
		if res, done, err := r.answer(code, verdict, dest, meta); done {
			return res, err
		}
	}

	if r.cfg.WaitFallbackToStore {
		// Без блокировки кэш пишет только лидер
		return r.fromStore(ctx, code, meta, false)
	}

	r.logger.Debug("gave up waiting for resolution leader", zap.String("code", string(code)))
	return Resolution{}, fmt.Errorf("code %s unresolved after waiting: %w", code, ErrNotFound)
}

// fromStore читает хранилище и, если writeCache, записывает результат в кэш
func (r *Resolver) fromStore(ctx context.Context, code model.Code, meta model.RequestMeta, writeCache bool) (Resolution, error) {
	link, err := r.links.FindActiveByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		if writeCache {
			err := r.cache.Set(ctx, cache.TombstoneKey(code), cache.TombstoneValue, r.cfg.TombstoneTTL)
			if err != nil {
				r.logger.Warn("failed to write tombstone", zap.String("code", string(code)), zap.Error(err))
			}
		}
		r.logger.Debug("link not found", zap.String("code", string(code)))
		return Resolution{}, fmt.Errorf("code %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to query store: %w", err)
	}

	if err := r.policy.Check(ctx, string(link.Destination)); err != nil {
		r.logger.Error("stored destination violates policy",
			zap.String("code", string(code)),
			zap.Int64("link_id", link.ID),
			zap.Error(err),
		)
		return Resolution{}, fmt.Errorf("link %d: %w", link.ID, err)
	}

	if writeCache {
		ttl := max(cache.RemainingTTL(link.ExpiresAt, r.now()), time.Second)
		if err := r.cache.Set(ctx, cache.PositiveKey(code), string(link.Destination), ttl); err != nil {
			r.logger.Warn("failed to write cache entry", zap.String("code", string(code)), zap.Error(err))
		}
	}

	id := link.ID
	r.record(&id, "store hit", meta)

	return Resolution{Code: code, Destination: link.Destination, LinkID: &id, Source: SourceStore}, nil
}

func (r *Resolver) record(linkID *int64, info string, meta model.RequestMeta) {
	if r.usage == nil {
		return
	}
	r.usage.Record(model.UsageEvent{LinkID: linkID, Info: info, Meta: meta})
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
