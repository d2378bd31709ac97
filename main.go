package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"workideas/config"
	"workideas/database"
	"workideas/router"
	"workideas/service"
	"workideas/session"
)

// @title Work-Ideas API
// @version 1.0
// @description 学术项目建议助手：会话登录、Gemini 问答代理与问答记录
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", ".env", "配置文件路径（必须存在）")
	flag.StringVar(&configFile, "c", ".env", "配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

// newSessionStore 按配置选择会话存储
func newSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Driver {
	case "", "database":
		return session.NewDBStore(database.GetDB()), nil
	case "redis":
		return session.NewRedisStore(&cfg.Redis, cfg.Session.MaxAge)
	case "memory":
		return session.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("不支持的会话存储: %s", cfg.Session.Driver)
	}
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("Work-Ideas v1.0.0")
		return
	}

	// 加载配置：配置文件不存在时拒绝启动
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 打印配置信息
	config.PrintConfig()

	// 初始化数据库
	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	// 会话存储与定期清理
	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("会话存储初始化失败: %v", err)
	}
	// 过期会话保留到 Cookie 失效为止，超时提示才能显示
	cleaner := session.NewCleaner(store, cfg.Session.MaxAge)
	if cfg.Session.CleanupCron != "" {
		if err := cleaner.Start(cfg.Session.CleanupCron); err != nil {
			log.Fatalf("启动会话清理任务失败: %v", err)
		}
	}
	sessions := session.NewManager(store, &cfg.Session, cfg.Server.Mode == "release")

	interactions := service.NewInteractionService(database.GetDB())

	// 设置路由
	r := router.SetupRouter(cfg, router.Deps{
		Sessions: sessions,
		Asker:    service.NewGeminiClient(&cfg.Gemini),
		Recorder: interactions,
		History:  interactions,
	})

	// 启动服务器
	log.Printf("==========================================")
	log.Printf("  📚 Work-Ideas 已启动")
	log.Printf("==========================================")
	log.Printf("  首页:     http://localhost%s/", cfg.Server.Port)
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		cleaner.Stop()
		log.Fatalf("服务器启动失败: %v", err)
	}
}
