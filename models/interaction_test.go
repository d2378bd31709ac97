package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInteraction_AnswerPreview(t *testing.T) {
	short := Interaction{Answer: "Resposta curta"}
	assert.Equal(t, "Resposta curta", short.AnswerPreview(HistoryPreviewLength))

	exact := Interaction{Answer: strings.Repeat("a", 200)}
	assert.Equal(t, strings.Repeat("a", 200), exact.AnswerPreview(200))

	long := Interaction{Answer: strings.Repeat("b", 250)}
	assert.Equal(t, strings.Repeat("b", 200)+"...", long.AnswerPreview(200))

	// 按字符截断，不会切开多字节字符
	accented := Interaction{Answer: strings.Repeat("ç", 201)}
	preview := accented.AnswerPreview(200)
	assert.Equal(t, strings.Repeat("ç", 200)+"...", preview)
}

func TestInteraction_FormattedTime(t *testing.T) {
	i := Interaction{CreatedAt: time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)}
	assert.Equal(t, "05/03/2024 14:07", i.FormattedTime(nil))

	loc := time.FixedZone("BRT", -3*3600)
	assert.Equal(t, "05/03/2024 11:07", i.FormattedTime(loc))
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()

	s := &Session{LastSeenAt: now.Add(-31 * time.Minute)}
	assert.True(t, s.IsExpired(now, 30*time.Minute))

	s2 := &Session{LastSeenAt: now.Add(-29 * time.Minute)}
	assert.False(t, s2.IsExpired(now, 30*time.Minute))

	// 恰好 30 分钟不算过期
	s3 := &Session{LastSeenAt: now.Add(-30 * time.Minute)}
	assert.False(t, s3.IsExpired(now, 30*time.Minute))
}
