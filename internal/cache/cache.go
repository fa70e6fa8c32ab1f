package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss возвращается, когда ключа нет в кэше
var ErrMiss = errors.New("cache miss")

// Cache общий кэш с TTL и атомарными примитивами
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	RunScript(ctx context.Context, script string, keys []string, args ...any) (any, error)
}

// Options настройки подключения к Redis
type Options struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// RedisCache реализует Cache поверх go-redis
type RedisCache struct {
	client redis.UniversalClient
}

// New создает клиент Redis и проверяет подключение
func New(ctx context.Context, opts Options) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis %s: %w", opts.Addr, err)
	}

	return NewRedisCache(client), nil
}

// NewRedisCache оборачивает готовый клиент
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Client возвращает исходный клиент для библиотек, которым нужен redis.Scripter
func (c *RedisCache) Client() redis.UniversalClient {
	return c.client
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Set перезаписывает значение, ttl должен быть положительным
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("redis set %s: non-positive ttl %s", key, ttl)
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// SetIfNotExists атомарно записывает значение, только если ключа нет (SET NX PX)
func (c *RedisCache) SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

// RunScript выполняет Lua-скрипт атомарно на стороне Redis
func (c *RedisCache) RunScript(ctx context.Context, script string, keys []string, args ...any) (any, error) {
	res, err := c.client.Eval(ctx, script, keys, args...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis eval: %w", err)
	}
	return res, nil
}

// Close закрывает клиент
func (c *RedisCache) Close() error {
	return c.client.Close()
}
