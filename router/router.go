package router

import (
	"log"
	"net/http"

	"workideas/api"
	"workideas/config"
	_ "workideas/docs"
	"workideas/middleware"
	"workideas/service"
	"workideas/session"
	"workideas/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps 路由依赖的组件
type Deps struct {
	Sessions *session.Manager
	Asker    service.Asker
	Recorder api.Recorder
	History  api.HistoryReader
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// 会话绑定客户端地址，只使用连接的远端地址，不信任转发头
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("设置可信代理失败: %v", err)
	}

	// 嵌入的页面模板
	r.SetHTMLTemplate(web.MustTemplates())

	authHandler := api.NewAuthHandler(cfg, deps.Sessions)
	chatHandler := api.NewChatHandler(deps.Asker, deps.Recorder, cfg.Server.Location)
	dashboardHandler := api.NewDashboardHandler(deps.Sessions, deps.History, cfg.Server.Location)

	// 登录、注册、注销（无需登录）
	r.GET("/", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", authHandler.Logout)

	// 页面路由：未登录时重定向
	r.GET("/dashboard", middleware.PageGuard(deps.Sessions), dashboardHandler.Dashboard)

	// 接口路由：未登录时返回 401 JSON
	authorized := r.Group("")
	authorized.Use(middleware.APIGuard(deps.Sessions))
	{
		authorized.POST("/chat", chatHandler.Ask)
		authorized.GET("/api/history", dashboardHandler.History)

		export := authorized.Group("/export")
		{
			export.GET("/csv", dashboardHandler.ExportCSV)
			export.GET("/excel", dashboardHandler.ExportExcel)
		}
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}
