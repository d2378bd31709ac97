package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"workideas/middleware"
	"workideas/models"
	"workideas/service"
	"workideas/session"

	"github.com/gin-gonic/gin"
)

const msgHistoryFailed = "Erro ao carregar o histórico."

// HistoryReader 读取用户的问答记录
type HistoryReader interface {
	Recent(ctx context.Context, userID uint, limit int) ([]models.Interaction, error)
}

// HistoryItem 历史记录接口返回的单条记录
type HistoryItem struct {
	ID            uint   `json:"id"`
	Pergunta      string `json:"pergunta"`
	Resposta      string `json:"resposta"`
	DataInteracao string `json:"data_interacao"`
}

// HistoryRow 控制台页面展示的单条记录
type HistoryRow struct {
	Pergunta string
	Resposta string
	Data     string
}

// DashboardPage 控制台页面数据
type DashboardPage struct {
	Nome      string
	Historico []HistoryRow
	Erro      string
	MaxLength int
}

// DashboardHandler 控制台、历史记录与导出
type DashboardHandler struct {
	sessions *session.Manager
	history  HistoryReader
	loc      *time.Location
}

// NewDashboardHandler 创建控制台处理器
func NewDashboardHandler(sessions *session.Manager, history HistoryReader, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardHandler{sessions: sessions, history: history, loc: loc}
}

// Dashboard 控制台页面：用户名 + 最近的问答记录；?logout=1 时注销
// @Summary 控制台页面
// @Tags 控制台
// @Produce html
// @Param logout query string false "注销 (1)"
// @Success 200 {string} string "HTML 页面"
// @Success 302 {string} string "未登录或已注销"
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	if c.Query("logout") == "1" {
		h.sessions.Destroy(c)
		c.Redirect(http.StatusFound, "/?logout=sucesso")
		return
	}

	page := DashboardPage{MaxLength: service.MaxQuestionLength}
	if sess := middleware.GetCurrentSession(c); sess != nil {
		page.Nome = sess.UserName
	}

	list, err := h.history.Recent(c.Request.Context(), middleware.GetCurrentUserID(c), service.HistoryLimit)
	if err != nil {
		log.Printf("[dashboard] 读取历史记录失败: %v", err)
		page.Erro = SafeErrorMessage(err, msgHistoryFailed)
		c.HTML(http.StatusInternalServerError, "dashboard.html", page)
		return
	}

	for _, item := range list {
		page.Historico = append(page.Historico, HistoryRow{
			Pergunta: item.Question,
			Resposta: item.AnswerPreview(models.HistoryPreviewLength),
			Data:     item.FormattedTime(h.loc),
		})
	}
	c.HTML(http.StatusOK, "dashboard.html", page)
}

// History 历史记录接口
// @Summary 最近的问答记录
// @Description 当前用户最近 20 条问答，按时间倒序
// @Tags 控制台
// @Produce json
// @Success 200 {object} Response{data=[]HistoryItem} "历史记录"
// @Failure 401 {object} ChatResponse "未登录或会话过期"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/history [get]
func (h *DashboardHandler) History(c *gin.Context) {
	list, ok := h.load(c)
	if !ok {
		return
	}

	items := make([]HistoryItem, 0, len(list))
	for _, item := range list {
		items = append(items, HistoryItem{
			ID:            item.ID,
			Pergunta:      item.Question,
			Resposta:      item.Answer,
			DataInteracao: item.CreatedAt.In(h.loc).Format(TimestampLayout),
		})
	}
	Success(c, items)
}

// load 读取当前用户的历史记录，失败时已写入 500 响应
func (h *DashboardHandler) load(c *gin.Context) ([]models.Interaction, bool) {
	list, err := h.history.Recent(c.Request.Context(), middleware.GetCurrentUserID(c), service.HistoryLimit)
	if err != nil {
		log.Printf("[history] 读取历史记录失败: %v", err)
		InternalError(c, SafeErrorMessage(err, msgHistoryFailed))
		return nil, false
	}
	return list, true
}
