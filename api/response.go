package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ChatResponse 提问接口的响应结构
type ChatResponse struct {
	Sucesso   bool   `json:"sucesso"`
	Resposta  string `json:"resposta,omitempty"`
	Erro      string `json:"erro,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// chatFail 提问失败响应
func chatFail(c *gin.Context, status int, message string) {
	c.JSON(status, ChatResponse{Sucesso: false, Erro: message})
}
