package models

import (
	"time"
	"unicode/utf8"
)

// HistoryPreviewLength 历史列表中回答的截断长度（字符）
const HistoryPreviewLength = 200

// Interaction AI问答记录（单轮：用户提问 + AI回答），创建后不可修改
type Interaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"usuario_id" gorm:"column:usuario_id;index;not null"`
	Question  string    `json:"pergunta" gorm:"column:pergunta;type:text;not null"`
	Answer    string    `json:"resposta" gorm:"column:resposta;type:text;not null"`
	CreatedAt time.Time `json:"data_interacao" gorm:"column:data_interacao;index"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Interaction) TableName() string {
	return "historico_ia"
}

// AnswerPreview 回答的前 n 个字符，超出部分以 "..." 结尾
func (i Interaction) AnswerPreview(n int) string {
	if utf8.RuneCountInString(i.Answer) <= n {
		return i.Answer
	}
	runes := []rune(i.Answer)
	return string(runes[:n]) + "..."
}

// FormattedTime 按 dd/mm/yyyy HH:MM 格式化提问时间
func (i Interaction) FormattedTime(loc *time.Location) string {
	t := i.CreatedAt
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006 15:04")
}
