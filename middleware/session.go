package middleware

import (
	"errors"
	"log"
	"net/http"

	"workideas/models"
	"workideas/session"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "session"
	userIDKey  = "userID"
)

// SessionExpiredMessage 接口请求未登录或会话过期时的提示
const SessionExpiredMessage = "Sessão expirada. Faça login novamente."

// PageGuard 页面路由的会话校验
// 未登录重定向到首页，空闲超时重定向到 /?timeout=1
func PageGuard(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.Validate(c)
		switch {
		case err == nil:
			setSession(c, sess)
			c.Next()
		case errors.Is(err, session.ErrExpired):
			c.Redirect(http.StatusFound, "/?timeout=1")
			c.Abort()
		case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrAddressChanged):
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		default:
			log.Printf("[session] 校验会话失败: %v", err)
			c.String(http.StatusInternalServerError, "Erro interno. Tente novamente.")
			c.Abort()
		}
	}
}

// APIGuard 接口路由的会话校验，未通过时返回 401 JSON
func APIGuard(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.Validate(c)
		if err == nil {
			setSession(c, sess)
			c.Next()
			return
		}

		status := http.StatusUnauthorized
		if !errors.Is(err, session.ErrExpired) &&
			!errors.Is(err, session.ErrNoSession) &&
			!errors.Is(err, session.ErrAddressChanged) {
			log.Printf("[session] 校验会话失败: %v", err)
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{
			"sucesso": false,
			"erro":    SessionExpiredMessage,
		})
		c.Abort()
	}
}

func setSession(c *gin.Context, sess *models.Session) {
	c.Set(sessionKey, sess)
	c.Set(userIDKey, sess.UserID)
}

// GetCurrentSession 获取当前请求的会话
func GetCurrentSession(c *gin.Context) *models.Session {
	if v, exists := c.Get(sessionKey); exists {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	return nil
}

// GetCurrentUserID 获取当前登录用户ID
func GetCurrentUserID(c *gin.Context) uint {
	if userID, exists := c.Get(userIDKey); exists {
		if id, ok := userID.(uint); ok {
			return id
		}
	}
	return 0
}
