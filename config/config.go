package config

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrEnvFileNotFound 外部 .env 配置文件不存在
var ErrEnvFileNotFound = errors.New("env file not found")

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Email    EmailConfig    `mapstructure:"email"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port     string         `mapstructure:"port"`
	Mode     string         `mapstructure:"mode"`
	Timezone string         `mapstructure:"timezone"`
	Location *time.Location `mapstructure:"-"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // mysql | postgres
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
	SSLMode  string `mapstructure:"sslmode"`
}

// GeminiConfig Gemini API 配置
type GeminiConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	MaxRedirects   int           `mapstructure:"max_redirects"`
	Timeout        time.Duration `mapstructure:"-"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	Driver      string        `mapstructure:"driver"` // database | redis
	Secret      string        `mapstructure:"secret"`
	CookieName  string        `mapstructure:"cookie_name"`
	IdleMinutes int           `mapstructure:"idle_minutes"`
	MaxAgeHours int           `mapstructure:"max_age_hours"`
	CleanupCron string        `mapstructure:"cleanup_cron"`
	IdleTimeout time.Duration `mapstructure:"-"`
	MaxAge      time.Duration `mapstructure:"-"`
}

// RedisConfig Redis 配置（session.driver=redis 时使用）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// envKeys .env 文件中的键与配置项的对应关系
var envKeys = map[string]string{
	"DB_DRIVER":       "database.driver",
	"DB_HOST":         "database.host",
	"DB_PORT":         "database.port",
	"DB_USER":         "database.username",
	"DB_PASS":         "database.password",
	"DB_NAME":         "database.dbname",
	"DB_CHARSET":      "database.charset",
	"DB_SSLMODE":      "database.sslmode",
	"GEMINI_API_KEY":  "gemini.api_key",
	"GEMINI_BASE_URL": "gemini.base_url",
	"GEMINI_MODEL":    "gemini.model",
	"SERVER_PORT":     "server.port",
	"SERVER_MODE":     "server.mode",
	"SERVER_TIMEZONE": "server.timezone",
	"SESSION_DRIVER":  "session.driver",
	"SESSION_SECRET":  "session.secret",
	"REDIS_ADDR":      "redis.addr",
	"REDIS_PASSWORD":  "redis.password",
	"REDIS_DB":        "redis.db",
	"EMAIL_ENABLED":   "email.enabled",
	"EMAIL_HOST":      "email.host",
	"EMAIL_PORT":      "email.port",
	"EMAIL_USERNAME":  "email.username",
	"EMAIL_PASSWORD":  "email.password",
	"EMAIL_FROM":      "email.from",
}

// LoadConfig 加载配置
// 优先级: 环境变量(WORKIDEAS_*) > .env 文件 > 嵌入的默认配置
// envPath 指向的 .env 文件必须存在，否则拒绝启动
func LoadConfig(envPath string) (*Config, error) {
	if envPath == "" {
		envPath = ".env"
	}
	if _, err := os.Stat(envPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s（请参考 .env.example 创建）", ErrEnvFileNotFound, envPath)
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	// 2. 合并 .env 文件
	values, err := godotenv.Read(envPath)
	if err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", envPath, err)
	}
	if err := v.MergeConfigMap(envToSettings(values)); err != nil {
		return nil, fmt.Errorf("合并配置文件失败: %w", err)
	}
	log.Printf("已加载配置文件: %s", envPath)

	// 3. 环境变量覆盖
	v.SetEnvPrefix("WORKIDEAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// envToSettings 将 .env 键值转换为嵌套的配置 map，未识别的键忽略
func envToSettings(values map[string]string) map[string]interface{} {
	settings := make(map[string]interface{})
	for key, value := range values {
		path, ok := envKeys[strings.ToUpper(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		parts := strings.SplitN(path, ".", 2)
		section, ok := settings[parts[0]].(map[string]interface{})
		if !ok {
			section = make(map[string]interface{})
			settings[parts[0]] = section
		}
		section[parts[1]] = value
	}
	return settings
}

// normalize 补全默认值并计算派生字段
func (c *Config) normalize() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return errors.New("GEMINI_API_KEY 未配置")
	}

	if c.Server.Port != "" && !strings.HasPrefix(c.Server.Port, ":") {
		c.Server.Port = ":" + c.Server.Port
	}

	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		log.Printf("警告: 无法加载时区 %q，使用本地时区: %v", c.Server.Timezone, err)
		loc = time.Local
	}
	c.Server.Location = loc

	if c.Gemini.TimeoutSeconds <= 0 {
		c.Gemini.TimeoutSeconds = 30
	}
	c.Gemini.Timeout = time.Duration(c.Gemini.TimeoutSeconds) * time.Second
	if c.Gemini.MaxRedirects < 0 {
		c.Gemini.MaxRedirects = 10
	}

	if c.Session.IdleMinutes <= 0 {
		c.Session.IdleMinutes = 30
	}
	c.Session.IdleTimeout = time.Duration(c.Session.IdleMinutes) * time.Minute
	if c.Session.MaxAgeHours <= 0 {
		c.Session.MaxAgeHours = 24
	}
	c.Session.MaxAge = time.Duration(c.Session.MaxAgeHours) * time.Hour
	if c.Session.MaxAge < c.Session.IdleTimeout {
		c.Session.MaxAge = c.Session.IdleTimeout
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "workideas_session"
	}
	if c.Session.Secret == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("生成会话密钥失败: %w", err)
		}
		c.Session.Secret = hex.EncodeToString(secret)
		log.Println("警告: SESSION_SECRET 未配置，已生成临时密钥，重启后所有会话失效")
	}
	return nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(envPath string) *Config {
	cfg, err := LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s, 时区: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode, GlobalConfig.Server.Location)
	log.Printf("  数据库: %s://%s@%s:%s/%s",
		GlobalConfig.Database.Driver,
		GlobalConfig.Database.Username,
		GlobalConfig.Database.Host,
		GlobalConfig.Database.Port,
		GlobalConfig.Database.DBName)
	log.Printf("  Gemini: %s (key: %s)", GlobalConfig.Gemini.Model, maskSecret(GlobalConfig.Gemini.APIKey))
	log.Printf("  会话存储: %s (空闲超时: %s)", GlobalConfig.Session.Driver, GlobalConfig.Session.IdleTimeout)
	log.Printf("  邮件服务: %v", GlobalConfig.Email.Enabled)
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
