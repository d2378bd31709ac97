package session

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"workideas/config"
	"workideas/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	// ErrNoSession 请求未携带有效会话
	ErrNoSession = errors.New("no session")
	// ErrAddressChanged 请求地址与创建会话时的地址不一致
	ErrAddressChanged = errors.New("session address changed")
	// ErrExpired 会话空闲超时
	ErrExpired = errors.New("session expired")
)

// Manager 会话管理：建立、校验、注销
//
// 地址校验只比较客户端 IP：共享 NAT 或代理后的用户更换出口地址时会被误判为劫持，
// 属于已知限制。
type Manager struct {
	store      Store
	tokens     *TokenSigner
	idle       time.Duration
	maxAge     time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

// NewManager 创建会话管理器，secure=true 时 cookie 仅通过 HTTPS 传输
func NewManager(store Store, cfg *config.SessionConfig, secure bool) *Manager {
	return &Manager{
		store:      store,
		tokens:     NewTokenSigner(cfg.Secret, cfg.MaxAge),
		idle:       cfg.IdleTimeout,
		maxAge:     cfg.MaxAge,
		cookieName: cfg.CookieName,
		secure:     secure,
		now:        time.Now,
	}
}

// SetClock 替换时间来源（测试用）
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// IdleTimeout 空闲超时时长
func (m *Manager) IdleTimeout() time.Duration {
	return m.idle
}

// Store 底层会话存储
func (m *Manager) Store() Store {
	return m.store
}

// Establish 凭据校验通过后建立新会话
// 总是生成新的会话 ID，并销毁请求中携带的旧会话，防止会话固定攻击
func (m *Manager) Establish(c *gin.Context, user *models.User) (*models.Session, error) {
	ctx := c.Request.Context()

	if oldID, err := m.sessionID(c); err == nil {
		if err := m.store.Delete(ctx, oldID); err != nil {
			log.Printf("[session] 删除旧会话失败: %v", err)
		}
	}

	now := m.now()
	sess := &models.Session{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		UserName:   user.Name,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := m.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("保存会话失败: %w", err)
	}

	token, err := m.tokens.Sign(sess.ID, now)
	if err != nil {
		return nil, err
	}
	m.setCookie(c, token, int(m.maxAge.Seconds()))
	return sess, nil
}

// Validate 校验当前请求的会话
// 通过时刷新最后访问时间；地址变化或空闲超时时销毁会话
func (m *Manager) Validate(c *gin.Context) (*models.Session, error) {
	ctx := c.Request.Context()

	id, err := m.sessionID(c)
	if err != nil {
		return nil, ErrNoSession
	}

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			m.clearCookie(c)
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("读取会话失败: %w", err)
	}

	if sess.IP != c.ClientIP() {
		m.destroy(c, id)
		return nil, ErrAddressChanged
	}

	now := m.now()
	if sess.IsExpired(now, m.idle) {
		m.destroy(c, id)
		return nil, ErrExpired
	}

	if err := m.store.Touch(ctx, id, now); err != nil {
		return nil, fmt.Errorf("更新会话失败: %w", err)
	}
	sess.LastSeenAt = now
	return sess, nil
}

// Destroy 注销：删除服务端会话并清除 cookie
func (m *Manager) Destroy(c *gin.Context) {
	id, err := m.sessionID(c)
	if err != nil {
		m.clearCookie(c)
		return
	}
	m.destroy(c, id)
}

func (m *Manager) destroy(c *gin.Context, id string) {
	if err := m.store.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[session] 删除会话 %s 失败: %v", id, err)
	}
	m.clearCookie(c)
}

func (m *Manager) sessionID(c *gin.Context) (string, error) {
	token, err := c.Cookie(m.cookieName)
	if err != nil {
		return "", err
	}
	return m.tokens.Parse(token)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
}

func (m *Manager) clearCookie(c *gin.Context) {
	m.setCookie(c, "", -1)
}
