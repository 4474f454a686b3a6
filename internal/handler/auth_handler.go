package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akkares0101/workshopIT/internal/dto"
	"github.com/akkares0101/workshopIT/internal/middleware"
	"github.com/akkares0101/workshopIT/internal/service"
	"github.com/akkares0101/workshopIT/internal/utils"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请填写邮箱和密码")
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		utils.Unauthorized(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMe 获取当前用户信息(不含密码)
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "未登录")
		return
	}

	c.JSON(http.StatusOK, user)
}
