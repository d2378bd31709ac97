package service

import (
	"context"
	"log"
	"time"

	"workideas/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryLimit 历史记录最多返回的条数
const HistoryLimit = 20

// InteractionService 问答记录的写入与查询
type InteractionService struct {
	db *gorm.DB
}

// NewInteractionService 创建问答记录服务
func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

// Record 保存一次成功的问答；失败只记录日志，不影响已经得到的回答
func (s *InteractionService) Record(ctx context.Context, userID uint, question, answer string) {
	// 客户端断开不应导致记录丢失
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	row := models.Interaction{
		UserID:   userID,
		Question: question,
		Answer:   answer,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		log.Printf("[interaction] 保存问答记录失败 (usuario_id=%d): %v", userID, err)
	}
}

// Recent 按时间倒序返回该用户最近的问答记录，最多 HistoryLimit 条
func (s *InteractionService) Recent(ctx context.Context, userID uint, limit int) ([]models.Interaction, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}

	var list []models.Interaction
	err := s.db.WithContext(ctx).
		Where("usuario_id = ?", userID).
		Order("data_interacao DESC").
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
