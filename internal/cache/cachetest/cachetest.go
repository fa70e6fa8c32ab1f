// Package cachetest поднимает in-process Redis для тестов
package cachetest

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/avc-dev/link-resolver/internal/cache"
)

// New запускает miniredis и возвращает подключенный к нему кэш
// Сервер и клиент закрываются по завершении теста
func New(t testing.TB) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
	t.Cleanup(func() {
		client.Close()
	})

	return cache.NewRedisCache(client), mr
}
