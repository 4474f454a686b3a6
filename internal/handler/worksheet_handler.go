package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akkares0101/workshopIT/internal/dto"
	"github.com/akkares0101/workshopIT/internal/middleware"
	"github.com/akkares0101/workshopIT/internal/models"
	"github.com/akkares0101/workshopIT/internal/repository"
	"github.com/akkares0101/workshopIT/internal/service"
	"github.com/akkares0101/workshopIT/internal/utils"
)

// WorksheetHandler 习题处理器
type WorksheetHandler struct {
	worksheetService *service.WorksheetService
	// publicBaseURL 配置的对外基础地址,为空时按请求推导
	publicBaseURL string
}

// NewWorksheetHandler 创建习题处理器
func NewWorksheetHandler(worksheetService *service.WorksheetService, publicBaseURL string) *WorksheetHandler {
	return &WorksheetHandler{
		worksheetService: worksheetService,
		publicBaseURL:    publicBaseURL,
	}
}

// List 按条件列出习题(公开接口)
func (h *WorksheetHandler) List(c *gin.Context) {
	filter := repository.WorksheetFilter{
		Subject: c.Query("subject"),
		Grade:   c.Query("grade"),
		Search:  c.Query("search"),
	}

	c.JSON(http.StatusOK, nonNil(h.worksheetService.List(filter)))
}

// Mine 列出当前用户上传的习题
func (h *WorksheetHandler) Mine(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "未登录")
		return
	}

	c.JSON(http.StatusOK, nonNil(h.worksheetService.Mine(user.ID)))
}

// Create 上传习题(teacher/admin)
func (h *WorksheetHandler) Create(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "未登录")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "请附上习题文件")
		return
	}

	var form dto.CreateWorksheetForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, "学科和年级是必填项")
		return
	}

	ws, err := h.worksheetService.Create(&form, file, user, h.baseURL(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ws)
}

// Update 部分更新习题(admin)
func (h *WorksheetHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.NotFound(c, "未找到该习题")
		return
	}

	var req dto.UpdateWorksheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "无效的请求内容")
		return
	}

	ws, err := h.worksheetService.Update(id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// Delete 删除习题及其附件(admin)
func (h *WorksheetHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.NotFound(c, "未找到该习题")
		return
	}

	if err := h.worksheetService.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}

	utils.Message(c, "习题删除成功")
}

// baseURL 生成附件URL用的基础地址
func (h *WorksheetHandler) baseURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// respondError 把服务层错误映射为HTTP响应
// 持久化失败时内存记录已生效,响应里明确说明状态不一致
func (h *WorksheetHandler) respondError(c *gin.Context, err error) {
	var persistErr *repository.PersistError
	switch {
	case errors.Is(err, repository.ErrWorksheetNotFound):
		utils.NotFound(c, "未找到该习题")
	case errors.As(err, &persistErr):
		utils.InternalError(c, "操作已生效,但保存到磁盘失败,重启后可能丢失")
	default:
		utils.InternalError(c, "服务器内部错误")
	}
}

// nonNil 空结果返回[]而不是null
func nonNil(worksheets []models.Worksheet) []models.Worksheet {
	if worksheets == nil {
		return []models.Worksheet{}
	}
	return worksheets
}
