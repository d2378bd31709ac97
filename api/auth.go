package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"workideas/config"
	"workideas/database"
	"workideas/models"
	"workideas/service"
	"workideas/session"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 登录与注册页面的提示信息
const (
	MsgFillAllFields     = "Preencha todos os campos!"
	MsgUserNotFound      = "Usuário não encontrado. Faça seu cadastro!"
	MsgWrongPassword     = "Senha incorreta!"
	MsgPasswordsMismatch = "As senhas não coincidem!"
	MsgInvalidEmail      = "Email inválido!"
	MsgEmailTaken        = "Este email já está cadastrado!"
	MsgRegisterOK        = "Cadastro realizado com sucesso! Faça login."
	MsgRegisterFailed    = "Erro ao cadastrar. Tente novamente."
	MsgSessionTimeout    = "Sua sessão expirou por inatividade. Faça login novamente."
	MsgLogoutOK          = "Logout realizado com sucesso!"
	msgInternalError     = "Erro interno. Tente novamente."
)

// LoginPage 登录/注册页面数据
type LoginPage struct {
	Erro     string
	Sucesso  string
	Aviso    string
	Cadastro bool // 是否默认显示注册表单
	Email    string
	Nome     string
}

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg          *config.Config
	sessions     *session.Manager
	emailService *service.EmailService
	validate     *validator.Validate
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		sessions:     sessions,
		emailService: service.NewEmailService(&cfg.Email),
		validate:     validator.New(),
	}
}

func renderLogin(c *gin.Context, status int, page LoginPage) {
	c.HTML(status, "login.html", page)
}

// ShowLogin 登录/注册页面，已登录时直接进入控制台
// @Summary 登录页面
// @Tags 认证
// @Produce html
// @Param timeout query string false "会话超时提示 (1)"
// @Param logout query string false "注销提示 (sucesso)"
// @Success 200 {string} string "HTML 页面"
// @Success 302 {string} string "已登录，跳转到 /dashboard"
// @Router / [get]
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if _, err := h.sessions.Validate(c); err == nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	page := LoginPage{}
	switch {
	case c.Query("timeout") == "1":
		page.Aviso = MsgSessionTimeout
	case c.Query("logout") == "sucesso":
		page.Aviso = MsgLogoutOK
	}
	renderLogin(c, http.StatusOK, page)
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验邮箱和密码，成功后建立会话并跳转到控制台
// @Tags 认证
// @Accept x-www-form-urlencoded
// @Produce html
// @Param email formData string true "邮箱"
// @Param senha formData string true "密码"
// @Success 302 {string} string "跳转到 /dashboard"
// @Failure 400 {string} string "参数缺失"
// @Failure 401 {string} string "用户不存在或密码错误"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("senha")

	if email == "" || password == "" {
		renderLogin(c, http.StatusBadRequest, LoginPage{Erro: MsgFillAllFields, Email: email})
		return
	}

	var user models.User
	if err := database.DB.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderLogin(c, http.StatusUnauthorized, LoginPage{Erro: MsgUserNotFound, Email: email})
			return
		}
		log.Printf("[auth] 查询用户失败: %v", err)
		renderLogin(c, http.StatusInternalServerError, LoginPage{Erro: SafeErrorMessage(err, msgInternalError), Email: email})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		renderLogin(c, http.StatusUnauthorized, LoginPage{Erro: MsgWrongPassword, Email: email})
		return
	}

	if _, err := h.sessions.Establish(c, &user); err != nil {
		log.Printf("[auth] 建立会话失败 (usuario_id=%d): %v", user.ID, err)
		renderLogin(c, http.StatusInternalServerError, LoginPage{Erro: SafeErrorMessage(err, msgInternalError), Email: email})
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// Register 用户注册
// @Summary 用户注册
// @Description 依次校验：必填、两次密码一致、邮箱格式、邮箱未注册
// @Tags 认证
// @Accept x-www-form-urlencoded
// @Produce html
// @Param nome formData string true "姓名"
// @Param email_cadastro formData string true "邮箱"
// @Param senha_cadastro formData string true "密码"
// @Param confirmar_senha formData string true "确认密码"
// @Success 200 {string} string "注册成功"
// @Failure 400 {string} string "参数错误"
// @Failure 409 {string} string "邮箱已注册"
// @Failure 500 {string} string "服务器错误"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("nome"))
	email := strings.TrimSpace(c.PostForm("email_cadastro"))
	password := c.PostForm("senha_cadastro")
	confirm := c.PostForm("confirmar_senha")

	fail := func(status int, msg string) {
		renderLogin(c, status, LoginPage{Erro: msg, Cadastro: true, Nome: name, Email: email})
	}

	if name == "" || email == "" || password == "" {
		fail(http.StatusBadRequest, MsgFillAllFields)
		return
	}
	if password != confirm {
		fail(http.StatusBadRequest, MsgPasswordsMismatch)
		return
	}
	if err := h.validate.Var(email, "email"); err != nil {
		fail(http.StatusBadRequest, MsgInvalidEmail)
		return
	}

	db := database.DB.WithContext(c.Request.Context())

	// 检查邮箱是否已注册
	var existing models.User
	err := db.Select("id").Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		fail(http.StatusConflict, MsgEmailTaken)
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("[auth] 检查邮箱失败: %v", err)
		fail(http.StatusInternalServerError, MsgRegisterFailed)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fail(http.StatusInternalServerError, MsgRegisterFailed)
		return
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("[auth] 创建用户失败: %v", err)
		fail(http.StatusInternalServerError, MsgRegisterFailed)
		return
	}

	if h.emailService.Enabled() {
		go func(to, name string) {
			if err := h.emailService.SendWelcomeEmail(to, name); err != nil {
				log.Printf("[auth] 发送欢迎邮件失败 (%s): %v", to, err)
			}
		}(user.Email, user.Name)
	}

	renderLogin(c, http.StatusOK, LoginPage{Sucesso: MsgRegisterOK, Email: email})
}

// Logout 注销
// @Summary 注销
// @Tags 认证
// @Success 302 {string} string "跳转到 /?logout=sucesso"
// @Router /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Destroy(c)
	c.Redirect(http.StatusFound, "/?logout=sucesso")
}
