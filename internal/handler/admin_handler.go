package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akkares0101/workshopIT/internal/repository"
	"github.com/akkares0101/workshopIT/internal/service"
)

// AdminHandler 管理员处理器
type AdminHandler struct {
	userRepo         *repository.UserRepository
	worksheetService *service.WorksheetService
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(userRepo *repository.UserRepository, worksheetService *service.WorksheetService) *AdminHandler {
	return &AdminHandler{
		userRepo:         userRepo,
		worksheetService: worksheetService,
	}
}

// ListUsers 获取全部用户(密码哈希不序列化)
func (h *AdminHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.userRepo.List())
}

// ListWorksheets 获取全部习题,ID降序
func (h *AdminHandler) ListWorksheets(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(h.worksheetService.List(repository.WorksheetFilter{})))
}
