package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avc-dev/link-resolver/internal/cache"
	"github.com/avc-dev/link-resolver/internal/cache/cachetest"
	"github.com/avc-dev/link-resolver/internal/config"
	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/avc-dev/link-resolver/internal/store"
)

// fakeLinks считает обращения к хранилищу
type fakeLinks struct {
	mu    sync.Mutex
	calls int
	links map[model.Code]model.Link
	err   error
	delay time.Duration
}

func (f *fakeLinks) FindActiveByCode(_ context.Context, code model.Code) (model.Link, error) {
	f.mu.Lock()
	f.calls++
	link, ok := f.links[code]
	err, delay := f.err, f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return model.Link{}, err
	}
	if !ok {
		return model.Link{}, fmt.Errorf("code %s: %w", code, store.ErrNotFound)
	}
	return link, nil
}

func (f *fakeLinks) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type usageSpy struct {
	mu     sync.Mutex
	events []model.UsageEvent
}

func (u *usageSpy) Record(event model.UsageEvent) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.events = append(u.events, event)
}

func (u *usageSpy) Events() []model.UsageEvent {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]model.UsageEvent(nil), u.events...)
}

func newTestResolver(t *testing.T, links *fakeLinks) (*Resolver, *miniredis.Miniredis, *usageSpy) {
	t.Helper()

	c, mr := cachetest.New(t)
	usage := &usageSpy{}
	r := NewResolver(c, links, newTestPolicy(), usage, config.NewDefaultConfig().Resolver, zap.NewNop())

	return r, mr, usage
}

func liveLink(id int64, code model.Code, dest model.URL, ttl time.Duration) model.Link {
	return model.Link{
		ID:          id,
		Code:        code,
		Destination: dest,
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(ttl),
		IsActive:    true,
	}
}

// TestResolver_InvalidCode проверяет отказ без обращений к кэшу и хранилищу
func TestResolver_InvalidCode(t *testing.T) {
	links := &fakeLinks{}
	r, _, _ := newTestResolver(t, links)

	tests := []struct {
		name string
		code string
	}{
		{name: "Empty", code: ""},
		{name: "Spaces only", code: "   "},
		{name: "Forbidden characters", code: "bad code!"},
		{name: "Path traversal", code: "../etc"},
		{name: "Too long", code: strings.Repeat("a", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tt.code, model.RequestMeta{})
			assert.ErrorIs(t, err, ErrInvalidCode)
		})
	}
	assert.Zero(t, links.Calls())
}

// TestResolver_SingleFlight проверяет, что параллельные запросы холодного кода дают одно обращение к хранилищу
func TestResolver_SingleFlight(t *testing.T) {
	// Arrange
	links := &fakeLinks{
		links: map[model.Code]model.Link{
			"abc123": liveLink(1, "abc123", "https://example.com/landing", time.Hour),
		},
		delay: 100 * time.Millisecond,
	}
	r, mr, _ := newTestResolver(t, links)
	r.cfg.WaitRounds = 25

	const callers = 10
	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]Resolution, callers)
		errs    = make([]error, callers)
	)

	// Act
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = r.Resolve(context.Background(), "abc123", model.RequestMeta{})
		}(i)
	}
	close(start)
	wg.Wait()

	// Assert
	assert.Equal(t, 1, links.Calls())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, model.URL("https://example.com/landing"), results[i].Destination)
	}

	ttl := mr.TTL(cache.PositiveKey("abc123"))
	assert.LessOrEqual(t, ttl, time.Hour)
	assert.Greater(t, ttl, time.Hour-10*time.Second)
	assert.False(t, mr.Exists(cache.LockKey("abc123")))
}

// TestResolver_SingleFlight_NotFound проверяет одно обращение к хранилищу для отсутствующего кода
func TestResolver_SingleFlight_NotFound(t *testing.T) {
	// Arrange
	links := &fakeLinks{delay: 100 * time.Millisecond}
	r, mr, _ := newTestResolver(t, links)
	r.cfg.WaitRounds = 25

	const callers = 10
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, callers)
	)

	// Act
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = r.Resolve(context.Background(), "zzz999", model.RequestMeta{})
		}(i)
	}
	close(start)
	wg.Wait()

	// Assert
	assert.Equal(t, 1, links.Calls())
	for i := 0; i < callers; i++ {
		assert.ErrorIs(t, errs[i], ErrNotFound)
	}
	assert.True(t, mr.Exists(cache.TombstoneKey("zzz999")))
	assert.False(t, mr.Exists(cache.LockKey("zzz999")))
}

// TestResolver_TombstoneTTL проверяет окно негативного кэша
func TestResolver_TombstoneTTL(t *testing.T) {
	links := &fakeLinks{}
	r, mr, _ := newTestResolver(t, links)
	ctx := context.Background()

	_, err := r.Resolve(ctx, "zzz999", model.RequestMeta{})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, links.Calls())
	assert.Equal(t, 60*time.Second, mr.TTL(cache.TombstoneKey("zzz999")))

	mr.FastForward(30 * time.Second)
	_, err = r.Resolve(ctx, "zzz999", model.RequestMeta{})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, links.Calls(), "tombstone must absorb the second lookup")

	mr.FastForward(31 * time.Second)
	_, err = r.Resolve(ctx, "zzz999", model.RequestMeta{})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, links.Calls())
}

// TestResolver_WaiterGivesUp проверяет ограниченное ожидание при чужой блокировке
func TestResolver_WaiterGivesUp(t *testing.T) {
	links := &fakeLinks{
		links: map[model.Code]model.Link{
			"abc123": liveLink(1, "abc123", "https://example.com/", time.Hour),
		},
	}
	r, mr, _ := newTestResolver(t, links)
	require.NoError(t, mr.Set(cache.LockKey("abc123"), "another-leader"))

	sleeps := 0
	r.sleep = func(context.Context, time.Duration) error {
		sleeps++
		return nil
	}

	_, err := r.Resolve(context.Background(), "abc123", model.RequestMeta{})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, sleeps)
	assert.Zero(t, links.Calls())
	assert.False(t, mr.Exists(cache.TombstoneKey("abc123")), "waiter must not write a tombstone")
}

// TestResolver_WaiterFallbackToStore проверяет переход ожидающего к хранилищу по настройке
func TestResolver_WaiterFallbackToStore(t *testing.T) {
	links := &fakeLinks{
		links: map[model.Code]model.Link{
			"abc123": liveLink(1, "abc123", "https://example.com/", time.Hour),
		},
	}
	r, mr, _ := newTestResolver(t, links)
	r.cfg.WaitFallbackToStore = true
	r.sleep = func(context.Context, time.Duration) error { return nil }
	require.NoError(t, mr.Set(cache.LockKey("abc123"), "another-leader"))
	require.NoError(t, mr.Set(cache.LockKey("zzz999"), "another-leader"))

	res, err := r.Resolve(context.Background(), "abc123", model.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, SourceStore, res.Source)
	assert.Equal(t, 1, links.Calls())
	assert.False(t, mr.Exists(cache.PositiveKey("abc123")), "waiter must not write the positive entry")

	_, err = r.Resolve(context.Background(), "zzz999", model.RequestMeta{})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, links.Calls())
	assert.False(t, mr.Exists(cache.TombstoneKey("zzz999")), "waiter must not write a tombstone")
}

// TestResolver_WaiterSeesLeaderResult проверяет, что ожидающий получает запись лидера из кэша
func TestResolver_WaiterSeesLeaderResult(t *testing.T) {
	links := &fakeLinks{}
	r, mr, usage := newTestResolver(t, links)
	require.NoError(t, mr.Set(cache.LockKey("abc123"), "another-leader"))

	r.sleep = func(context.Context, time.Duration) error {
		// Лидер успевает записать результат за время первого раунда
		return mr.Set(cache.PositiveKey("abc123"), "https://example.com/")
	}

	res, err := r.Resolve(context.Background(), "abc123", model.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, SourceCache, res.Source)
	assert.Equal(t, model.URL("https://example.com/"), res.Destination)
	assert.Zero(t, links.Calls())
	assert.Len(t, usage.Events(), 1)
}

// TestResolver_WaiterContextCancelled проверяет, что ожидание прерывается отменой запроса
func TestResolver_WaiterContextCancelled(t *testing.T) {
	r, mr, _ := newTestResolver(t, &fakeLinks{})
	require.NoError(t, mr.Set(cache.LockKey("abc123"), "another-leader"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepContext(ctx, d)
	}

	_, err := r.Resolve(ctx, "abc123", model.RequestMeta{})
	assert.ErrorIs(t, err, context.Canceled)
}

// TestResolver_UnsafeStoredDestination проверяет, что небезопасный адрес не кэшируется
func TestResolver_UnsafeStoredDestination(t *testing.T) {
	links := &fakeLinks{
		links: map[model.Code]model.Link{
			"evil01": liveLink(9, "evil01", "http://127.0.0.1/admin", time.Hour),
		},
	}
	r, mr, usage := newTestResolver(t, links)

	_, err := r.Resolve(context.Background(), "evil01", model.RequestMeta{})

	assert.ErrorIs(t, err, ErrUnsafeDestination)
	assert.False(t, mr.Exists(cache.PositiveKey("evil01")))
	assert.False(t, mr.Exists(cache.TombstoneKey("evil01")))
	assert.False(t, mr.Exists(cache.LockKey("evil01")), "lock must be released")
	assert.Empty(t, usage.Events())
}

// TestResolver_DirtyCacheEntry проверяет удаление испорченной записи кэша и повторное чтение хранилища
func TestResolver_DirtyCacheEntry(t *testing.T) {
	links := &fakeLinks{
		links: map[model.Code]model.Link{
			"abc123": liveLink(1, "abc123", "https://example.com/", time.Hour),
		},
	}
	r, mr, _ := newTestResolver(t, links)
	require.NoError(t, mr.Set(cache.PositiveKey("abc123"), "javascript:alert(1)"))

	res, err := r.Resolve(context.Background(), "abc123", model.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, SourceStore, res.Source)
	assert.Equal(t, 1, links.Calls())
	cached, err := mr.Get(cache.PositiveKey("abc123"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", cached)
}

// TestResolver_CacheHit проверяет ответ из кэша и запись журнала без id
func TestResolver_CacheHit(t *testing.T) {
	links := &fakeLinks{}
	r, mr, usage := newTestResolver(t, links)
	require.NoError(t, mr.Set(cache.PositiveKey("abc123"), "https://example.com/"))

	res, err := r.Resolve(context.Background(), "abc123", model.RequestMeta{IP: "192.0.2.1"})

	require.NoError(t, err)
	assert.Equal(t, SourceCache, res.Source)
	assert.Nil(t, res.LinkID)
	assert.Zero(t, links.Calls())

	events := usage.Events()
	require.Len(t, events, 1)
	assert.Nil(t, events[0].LinkID)
	assert.Equal(t, "cache hit", events[0].Info)
	assert.Equal(t, "192.0.2.1", events[0].Meta.IP)
}

// TestResolver_StoreHitRecordsLinkID проверяет запись журнала с id при чтении хранилища
func TestResolver_StoreHitRecordsLinkID(t *testing.T) {
	links := &fakeLinks{
		links: map[model.Code]model.Link{
			"abc123": liveLink(42, "abc123", "https://example.com/", time.Hour),
		},
	}
	r, _, usage := newTestResolver(t, links)

	res, err := r.Resolve(context.Background(), "abc123", model.RequestMeta{})

	require.NoError(t, err)
	require.NotNil(t, res.LinkID)
	assert.Equal(t, int64(42), *res.LinkID)

	events := usage.Events()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].LinkID)
	assert.Equal(t, int64(42), *events[0].LinkID)
}

// TestResolver_CacheUnavailable проверяет переход к хранилищу при недоступном Redis
func TestResolver_CacheUnavailable(t *testing.T) {
	links := &fakeLinks{
		links: map[model.Code]model.Link{
			"abc123": liveLink(1, "abc123", "https://example.com/", time.Hour),
		},
	}
	r, mr, _ := newTestResolver(t, links)
	mr.Close()

	res, err := r.Resolve(context.Background(), "abc123", model.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, SourceStore, res.Source)
	assert.Equal(t, 1, links.Calls())
}

// TestResolver_StoreError проверяет, что ошибка хранилища не кэшируется как отсутствие
func TestResolver_StoreError(t *testing.T) {
	links := &fakeLinks{err: errors.New("connection refused")}
	r, mr, _ := newTestResolver(t, links)

	_, err := r.Resolve(context.Background(), "abc123", model.RequestMeta{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists(cache.TombstoneKey("abc123")))
}

// TestResolver_ShortLivedLinkTTL проверяет минимальный TTL в одну секунду
func TestResolver_ShortLivedLinkTTL(t *testing.T) {
	links := &fakeLinks{
		links: map[model.Code]model.Link{
			"abc123": liveLink(1, "abc123", "https://example.com/", 500*time.Millisecond),
		},
	}
	r, mr, _ := newTestResolver(t, links)

	_, err := r.Resolve(context.Background(), "abc123", model.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, time.Second, mr.TTL(cache.PositiveKey("abc123")))
}
