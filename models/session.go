package models

import "time"

// Session 服务端会话（session.driver=database 时持久化到数据库）
type Session struct {
	ID         string    `json:"id" gorm:"primaryKey;size:64"`
	UserID     uint      `json:"usuario_id" gorm:"column:usuario_id;index;not null"`
	UserName   string    `json:"usuario_nome" gorm:"column:usuario_nome;size:100"`
	IP         string    `json:"ip" gorm:"size:64"`
	UserAgent  string    `json:"user_agent" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at" gorm:"index"`
}

// TableName 设置表名
func (Session) TableName() string {
	return "sessoes"
}

// IdleFor 距离最后一次访问经过的时间
func (s *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.LastSeenAt)
}

// IsExpired 检查会话是否已超过空闲超时
func (s *Session) IsExpired(now time.Time, idle time.Duration) bool {
	return s.IdleFor(now) > idle
}
