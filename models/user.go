package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"nome" gorm:"column:nome;size:100;not null"`
	Email     string    `json:"email" gorm:"column:email;uniqueIndex;size:100;not null"`
	Password  string    `json:"-" gorm:"column:senha;size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (User) TableName() string {
	return "usuarios"
}
