package session

import (
	"context"
	"errors"
	"time"

	"workideas/models"
)

// ErrNotFound 会话不存在（已删除、已过期或从未创建）
var ErrNotFound = errors.New("session not found")

// Store 服务端会话存储
type Store interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// DeleteIdle 删除最后访问时间早于 before 的会话，返回删除数量
	DeleteIdle(ctx context.Context, before time.Time) (int64, error)
}
