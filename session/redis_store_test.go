package session

import (
	"context"
	"testing"
	"time"

	"workideas/config"
	"workideas/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(&config.RedisConfig{Addr: mr.Addr(), Prefix: "workideas:test:"}, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	store, mr := newTestRedisStore(t, 24*time.Hour)

	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	sess := &models.Session{ID: "redis-test", UserID: 9, UserName: "Rui", IP: "10.1.1.1", CreatedAt: now, LastSeenAt: now}
	require.NoError(t, store.Create(ctx, sess))
	assert.True(t, mr.Exists("workideas:test:redis-test"))
	assert.Equal(t, 24*time.Hour, mr.TTL("workideas:test:redis-test"))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(9), got.UserID)
	assert.Equal(t, "Rui", got.UserName)
	assert.Equal(t, "10.1.1.1", got.IP)

	// Touch 更新时间并重置 TTL
	mr.FastForward(time.Hour)
	later := now.Add(5 * time.Minute)
	require.NoError(t, store.Touch(ctx, sess.ID, later))
	got, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, got.LastSeenAt.Equal(later))
	assert.Equal(t, 24*time.Hour, mr.TTL("workideas:test:redis-test"))

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Touch(ctx, sess.ID, later), ErrNotFound)

	n, err := store.DeleteIdle(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRedisStore_KeyExpiresAfterTTL(t *testing.T) {
	store, mr := newTestRedisStore(t, 24*time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.Session{ID: "short", UserID: 1, LastSeenAt: time.Now()}))

	// 空闲超时之后键仍然存在，Validate 可以识别超时
	mr.FastForward(45 * time.Minute)
	_, err := store.Get(ctx, "short")
	require.NoError(t, err)

	mr.FastForward(24 * time.Hour)
	_, err = store.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Redis 驱动下空闲超时的会话返回 ErrExpired，随后删除
func TestRedisStore_ManagerReportsExpired(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewRedisStoreWithClient(client, "workideas:test:", 24*time.Hour)

	m, clock := newTestManager(store)
	r := newTestRouter(m)

	w := doRequest(r, "POST", "/login", "10.0.0.1", nil)
	require.Equal(t, 200, w.Code)
	cookies := sessionCookies(w)
	require.Len(t, cookies, 1)
	key := "workideas:test:" + w.Body.String()
	require.True(t, mr.Exists(key))

	clock.t = clock.t.Add(45 * time.Minute)
	mr.FastForward(45 * time.Minute)

	w = doRequest(r, "GET", "/private", "10.0.0.1", cookies)
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, "expired", w.Body.String())
	assert.False(t, mr.Exists(key))
}
