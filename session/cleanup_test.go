package session

import (
	"context"
	"testing"
	"time"

	"workideas/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_RunOnce(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.Session{ID: "stale", LastSeenAt: now.Add(-25 * time.Hour)}))
	require.NoError(t, store.Create(ctx, &models.Session{ID: "idle", LastSeenAt: now.Add(-45 * time.Minute)}))
	require.NoError(t, store.Create(ctx, &models.Session{ID: "fresh", LastSeenAt: now.Add(-5 * time.Minute)}))

	cl := NewCleaner(store, 24*time.Hour)
	cl.now = func() time.Time { return now }

	n, err := cl.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
	// 空闲超时但未超过保留期的会话仍保留
	_, err = store.Get(ctx, "idle")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}

// 清理任务运行后，空闲超时的会话仍应被识别为超时而不是“无会话”
func TestCleaner_KeepsTimedOutSessionForValidate(t *testing.T) {
	store := NewMemoryStore()
	m, clock := newTestManager(store)
	r := newTestRouter(m)

	w := doRequest(r, "POST", "/login", "10.0.0.1", nil)
	require.Equal(t, 200, w.Code)
	cookies := sessionCookies(w)
	require.Len(t, cookies, 1)

	clock.t = clock.t.Add(45 * time.Minute)

	cl := NewCleaner(store, m.maxAge)
	cl.now = clock.now
	n, err := cl.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	w = doRequest(r, "GET", "/private", "10.0.0.1", cookies)
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, "expired", w.Body.String())
	assert.Equal(t, 0, store.Len())
}

func TestCleaner_DeletesAfterRetention(t *testing.T) {
	store := NewMemoryStore()
	m, clock := newTestManager(store)
	r := newTestRouter(m)

	w := doRequest(r, "POST", "/login", "10.0.0.1", nil)
	require.Equal(t, 200, w.Code)
	require.Equal(t, 1, store.Len())

	clock.t = clock.t.Add(m.maxAge + time.Minute)

	cl := NewCleaner(store, m.maxAge)
	cl.now = clock.now
	n, err := cl.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 0, store.Len())
}

func TestCleaner_StartInvalidSpec(t *testing.T) {
	cl := NewCleaner(NewMemoryStore(), 24*time.Hour)
	assert.Error(t, cl.Start("not a cron expression"))

	require.NoError(t, cl.Start("@every 1h"))
	cl.Stop()
}
