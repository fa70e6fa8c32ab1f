package cache

import (
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
)

const (
	positivePrefix  = "short:"
	tombstonePrefix = "short404:"
	lockPrefix      = "lock:short:"

	// TombstoneValue маркер отрицательного кэша
	TombstoneValue = `{"reason":"NOT_FOUND_OR_INACTIVE_OR_EXPIRED"}`
)

// PositiveKey ключ с адресом назначения для кода
func PositiveKey(code model.Code) string {
	return positivePrefix + string(code)
}

// TombstoneKey ключ отрицательного кэша для кода
func TombstoneKey(code model.Code) string {
	return tombstonePrefix + string(code)
}

// LockKey ключ блокировки холодного разрешения кода
func LockKey(code model.Code) string {
	return lockPrefix + string(code)
}

// RemainingTTL возвращает оставшееся время жизни записи с точностью до миллисекунды
// Ноль означает, что запись уже истекла
func RemainingTTL(expiresAt, now time.Time) time.Duration {
	ttl := expiresAt.Sub(now).Truncate(time.Millisecond)
	if ttl <= 0 {
		return 0
	}
	return ttl
}
