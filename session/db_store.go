package session

import (
	"context"
	"errors"
	"time"

	"workideas/models"

	"gorm.io/gorm"
)

// DBStore 基于 gorm 的会话存储（sessoes 表）
type DBStore struct {
	db *gorm.DB
}

// NewDBStore 创建数据库会话存储
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Create(ctx context.Context, sess *models.Session) error {
	return s.db.WithContext(ctx).Create(sess).Error
}

func (s *DBStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *DBStore) Touch(ctx context.Context, id string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		Update("last_seen_at", at).Error
}

func (s *DBStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error
}

func (s *DBStore) DeleteIdle(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("last_seen_at < ?", before).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
