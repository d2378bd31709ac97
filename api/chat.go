package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"workideas/middleware"
	"workideas/service"

	"github.com/gin-gonic/gin"
)

// 提问接口的输入错误提示
const (
	MsgQuestionMissing = "Pergunta não enviada."
	MsgQuestionEmpty   = "Pergunta vazia. Digite algo para continuar."
	MsgQuestionTooLong = "Pergunta muito longa. Limite: 1000 caracteres."
	msgUnknownAIError  = "Erro desconhecido"
)

// TimestampLayout 响应中时间戳的格式
const TimestampLayout = "2006-01-02 15:04:05"

// Recorder 保存成功的问答
type Recorder interface {
	Record(ctx context.Context, userID uint, question, answer string)
}

// ChatHandler AI 问答处理器
type ChatHandler struct {
	asker    service.Asker
	recorder Recorder
	loc      *time.Location
	now      func() time.Time
}

// NewChatHandler 创建问答处理器
func NewChatHandler(asker service.Asker, recorder Recorder, loc *time.Location) *ChatHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ChatHandler{
		asker:    asker,
		recorder: recorder,
		loc:      loc,
		now:      time.Now,
	}
}

// Ask 向 AI 提问
// @Summary 向 AI 提问
// @Description 校验问题后调用一次 Gemini，成功时保存问答记录
// @Tags 问答
// @Accept x-www-form-urlencoded
// @Produce json
// @Param pergunta formData string true "问题（最多 1000 个字符）"
// @Success 200 {object} ChatResponse "回答"
// @Failure 400 {object} ChatResponse "问题缺失、为空或过长"
// @Failure 401 {object} ChatResponse "未登录或会话过期"
// @Failure 502 {object} ChatResponse "AI 服务调用失败"
// @Router /chat [post]
func (h *ChatHandler) Ask(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	raw, ok := c.GetPostForm("pergunta")
	if !ok {
		chatFail(c, http.StatusBadRequest, MsgQuestionMissing)
		return
	}

	question, err := service.ValidateQuestion(raw)
	if err != nil {
		chatFail(c, http.StatusBadRequest, questionErrorMessage(err))
		return
	}

	answer, err := h.asker.Ask(c.Request.Context(), question)
	if err != nil {
		var aiErr *service.AIError
		switch {
		case errors.As(err, &aiErr):
			log.Printf("[chat] AI 调用失败 (usuario_id=%d): %v", userID, aiErr)
			chatFail(c, http.StatusBadGateway, aiErr.UserMessage())
		case errors.Is(err, service.ErrEmptyQuestion), errors.Is(err, service.ErrQuestionTooLong):
			chatFail(c, http.StatusBadRequest, questionErrorMessage(err))
		default:
			log.Printf("[chat] AI 调用失败 (usuario_id=%d): %v", userID, err)
			chatFail(c, http.StatusBadGateway, SafeErrorMessage(err, msgUnknownAIError))
		}
		return
	}

	h.recorder.Record(c.Request.Context(), userID, question, answer)

	c.JSON(http.StatusOK, ChatResponse{
		Sucesso:   true,
		Resposta:  answer,
		Timestamp: h.now().In(h.loc).Format(TimestampLayout),
	})
}

func questionErrorMessage(err error) string {
	if errors.Is(err, service.ErrQuestionTooLong) {
		return MsgQuestionTooLong
	}
	return MsgQuestionEmpty
}
