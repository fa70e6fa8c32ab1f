package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// releaseScript удаляет ключ, только если в нем лежит токен владельца
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// Locker выдает короткоживущие блокировки с проверкой владельца при снятии
type Locker struct {
	cache    Cache
	newToken func() string
}

// NewLocker создает Locker поверх кэша
func NewLocker(c Cache) *Locker {
	return &Locker{
		cache:    c,
		newToken: uuid.NewString,
	}
}

// Lock удерживаемая блокировка
type Lock struct {
	cache Cache
	key   string
	token string
}

// TryAcquire пытается взять блокировку без ожидания
// Возвращает nil без ошибки, если блокировку уже держит кто-то другой
func (l *Locker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (*Lock, error) {
	token := l.newToken()

	ok, err := l.cache.SetIfNotExists(ctx, key, token, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}

	return &Lock{cache: l.cache, key: key, token: token}, nil
}

// Key возвращает ключ блокировки
func (lk *Lock) Key() string {
	return lk.key
}

// Token возвращает токен владельца
func (lk *Lock) Token() string {
	return lk.token
}

// Release снимает блокировку, если она все еще принадлежит этому владельцу
// false означает, что блокировка истекла и, возможно, уже взята другим владельцем
func (lk *Lock) Release(ctx context.Context) (bool, error) {
	res, err := lk.cache.RunScript(ctx, releaseScript, []string{lk.key}, lk.token)
	if err != nil {
		return false, fmt.Errorf("failed to release lock %s: %w", lk.key, err)
	}

	n, _ := res.(int64)
	return n == 1, nil
}
