package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken cookie 中的会话令牌无效（签名错误、格式错误或已过期）
var ErrInvalidToken = errors.New("invalid session token")

type tokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenSigner 将会话 ID 签名为 cookie 值
type TokenSigner struct {
	secret []byte
	maxAge time.Duration
}

// NewTokenSigner 创建令牌签名器，maxAge 为令牌的绝对有效期
func NewTokenSigner(secret string, maxAge time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), maxAge: maxAge}
}

// Sign 生成携带会话 ID 的 HS256 令牌
func (t *TokenSigner) Sign(sessionID string, issuedAt time.Time) (string, error) {
	claims := tokenClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.maxAge)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse 校验令牌并返回会话 ID
func (t *TokenSigner) Parse(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
