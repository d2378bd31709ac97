package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workideas/config"
	"workideas/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func newTestManager(store Store) (*Manager, *testClock) {
	cfg := &config.SessionConfig{
		Secret:      "test-session-secret",
		CookieName:  "workideas_session",
		IdleTimeout: 30 * time.Minute,
		MaxAge:      24 * time.Hour,
	}
	m := NewManager(store, cfg, false)
	clock := &testClock{t: time.Now()}
	m.SetClock(clock.now)
	return m, clock
}

func newTestRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		sess, err := m.Establish(c, &models.User{ID: 7, Name: "Ana"})
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, sess.ID)
	})
	r.GET("/private", func(c *gin.Context) {
		sess, err := m.Validate(c)
		switch err {
		case nil:
			c.String(http.StatusOK, "user:%d", sess.UserID)
		case ErrExpired:
			c.String(http.StatusUnauthorized, "expired")
		case ErrAddressChanged:
			c.String(http.StatusUnauthorized, "address")
		case ErrNoSession:
			c.String(http.StatusUnauthorized, "none")
		default:
			c.String(http.StatusInternalServerError, err.Error())
		}
	})
	r.GET("/logout", func(c *gin.Context) {
		m.Destroy(c)
		c.String(http.StatusOK, "bye")
	})
	return r
}

func doRequest(r http.Handler, method, path, ip string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":40000"
	req.Header.Set("User-Agent", "test-agent")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "workideas_session" && c.Value != "" {
			out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return out
}

func TestManager_EstablishAndValidate(t *testing.T) {
	store := NewMemoryStore()
	m, clock := newTestManager(store)
	r := newTestRouter(m)

	w := doRequest(r, "POST", "/login", "10.0.0.1", nil)
	require.Equal(t, 200, w.Code)
	cookies := sessionCookies(w)
	require.Len(t, cookies, 1)

	// cookie 为 HttpOnly
	for _, c := range w.Result().Cookies() {
		if c.Name == "workideas_session" {
			assert.True(t, c.HttpOnly)
		}
	}

	stored, err := store.Get(context.Background(), w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, uint(7), stored.UserID)
	assert.Equal(t, "Ana", stored.UserName)
	assert.Equal(t, "10.0.0.1", stored.IP)
	assert.Equal(t, "test-agent", stored.UserAgent)

	clock.t = clock.t.Add(10 * time.Minute)
	w2 := doRequest(r, "GET", "/private", "10.0.0.1", cookies)
	assert.Equal(t, 200, w2.Code)
	assert.Equal(t, "user:7", w2.Body.String())

	// 通过校验后更新最后访问时间
	touched, err := store.Get(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.True(t, touched.LastSeenAt.Equal(clock.t))
}

func TestManager_IdleTimeout(t *testing.T) {
	store := NewMemoryStore()
	m, clock := newTestManager(store)
	r := newTestRouter(m)

	w := doRequest(r, "POST", "/login", "10.0.0.1", nil)
	cookies := sessionCookies(w)

	// 每次访问都会刷新时间，25 分钟内的连续访问不会过期
	clock.t = clock.t.Add(25 * time.Minute)
	assert.Equal(t, 200, doRequest(r, "GET", "/private", "10.0.0.1", cookies).Code)
	clock.t = clock.t.Add(25 * time.Minute)
	assert.Equal(t, 200, doRequest(r, "GET", "/private", "10.0.0.1", cookies).Code)

	// 超过 30 分钟无访问后会话失效并被删除
	clock.t = clock.t.Add(31 * time.Minute)
	w2 := doRequest(r, "GET", "/private", "10.0.0.1", cookies)
	assert.Equal(t, 401, w2.Code)
	assert.Equal(t, "expired", w2.Body.String())
	assert.Equal(t, 0, store.Len())

	// 再次访问视为未登录
	w3 := doRequest(r, "GET", "/private", "10.0.0.1", cookies)
	assert.Equal(t, "none", w3.Body.String())
}

func TestManager_AddressChanged(t *testing.T) {
	store := NewMemoryStore()
	m, _ := newTestManager(store)
	r := newTestRouter(m)

	w := doRequest(r, "POST", "/login", "10.0.0.1", nil)
	cookies := sessionCookies(w)

	w2 := doRequest(r, "GET", "/private", "10.0.0.99", cookies)
	assert.Equal(t, 401, w2.Code)
	assert.Equal(t, "address", w2.Body.String())
	assert.Equal(t, 0, store.Len())

	// 回到原地址也无法恢复
	w3 := doRequest(r, "GET", "/private", "10.0.0.1", cookies)
	assert.Equal(t, "none", w3.Body.String())
}

func TestManager_EstablishRegeneratesID(t *testing.T) {
	store := NewMemoryStore()
	m, _ := newTestManager(store)
	r := newTestRouter(m)

	w1 := doRequest(r, "POST", "/login", "10.0.0.1", nil)
	firstID := w1.Body.String()

	w2 := doRequest(r, "POST", "/login", "10.0.0.1", sessionCookies(w1))
	secondID := w2.Body.String()

	assert.NotEqual(t, firstID, secondID)
	_, err := store.Get(context.Background(), firstID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestManager_Destroy(t *testing.T) {
	store := NewMemoryStore()
	m, _ := newTestManager(store)
	r := newTestRouter(m)

	w := doRequest(r, "POST", "/login", "10.0.0.1", nil)
	cookies := sessionCookies(w)

	w2 := doRequest(r, "GET", "/logout", "10.0.0.1", cookies)
	assert.Equal(t, 200, w2.Code)
	assert.Equal(t, 0, store.Len())

	var cleared bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == "workideas_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)

	w3 := doRequest(r, "GET", "/private", "10.0.0.1", cookies)
	assert.Equal(t, "none", w3.Body.String())
}

func TestManager_TamperedCookie(t *testing.T) {
	store := NewMemoryStore()
	m, _ := newTestManager(store)
	r := newTestRouter(m)

	doRequest(r, "POST", "/login", "10.0.0.1", nil)

	bad := []*http.Cookie{{Name: "workideas_session", Value: "eyJhbGciOiJIUzI1NiJ9.e30.invalid"}}
	w := doRequest(r, "GET", "/private", "10.0.0.1", bad)
	assert.Equal(t, "none", w.Body.String())

	w2 := doRequest(r, "GET", "/private", "10.0.0.1", nil)
	assert.Equal(t, "none", w2.Body.String())
}
