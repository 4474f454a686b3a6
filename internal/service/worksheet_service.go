package service

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/akkares0101/workshopIT/internal/dto"
	"github.com/akkares0101/workshopIT/internal/models"
	"github.com/akkares0101/workshopIT/internal/repository"
	"github.com/akkares0101/workshopIT/internal/storage"
)

// WorksheetService 习题服务
// 协调元数据仓库和附件存储:创建和删除必须两边联动
type WorksheetService struct {
	repo    *repository.WorksheetRepository
	uploads *storage.UploadStore
	logger  *logrus.Logger
}

// NewWorksheetService 创建习题服务
func NewWorksheetService(repo *repository.WorksheetRepository, uploads *storage.UploadStore, logger *logrus.Logger) *WorksheetService {
	return &WorksheetService{
		repo:    repo,
		uploads: uploads,
		logger:  logger,
	}
}

// List 按条件筛选习题
func (s *WorksheetService) List(filter repository.WorksheetFilter) []models.Worksheet {
	return s.repo.List(filter)
}

// Mine 获取某个用户上传的习题
func (s *WorksheetService) Mine(userID uint) []models.Worksheet {
	return s.repo.ListByUploader(userID)
}

// Create 保存附件并新增习题记录
// baseURL 形如 http://host,用于拼出附件的绝对URL
// 返回 *repository.PersistError 时记录已在内存中生效,返回值仍然可用
func (s *WorksheetService) Create(form *dto.CreateWorksheetForm, file *multipart.FileHeader, uploader *models.User, baseURL string) (*models.Worksheet, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer src.Close()

	storedName, err := s.uploads.Save(src, file.Filename)
	if err != nil {
		return nil, err
	}

	title := form.Title
	if title == "" {
		title = file.Filename
	}
	difficulty := form.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyEasy
	}

	ws := &models.Worksheet{
		Title:        title,
		Subject:      form.Subject,
		Grade:        form.Grade,
		Description:  form.Description,
		Difficulty:   difficulty,
		Pages:        parsePagesForm(form.Pages),
		FileURL:      strings.TrimSuffix(baseURL, "/") + storage.URLPrefix + storedName,
		OriginalName: file.Filename,
		UploadedBy:   uploader.ID,
		UploaderName: uploader.Name,
	}

	if err := s.repo.Create(ws); err != nil {
		return ws, err
	}
	return ws, nil
}

// Update 部分更新习题
func (s *WorksheetService) Update(id int64, req *dto.UpdateWorksheetRequest) (*models.Worksheet, error) {
	upd := repository.WorksheetUpdate{
		Title:       req.Title,
		Subject:     req.Subject,
		Grade:       req.Grade,
		Description: req.Description,
		Difficulty:  req.Difficulty,
	}
	upd.Pages, upd.PagesPresent = parsePagesUpdate(req.Pages)

	return s.repo.Update(id, upd)
}

// Delete 删除习题记录并清理附件
// 附件清理是尽力而为:文件已不在不算错误,其他失败只记日志
func (s *WorksheetService) Delete(id int64) error {
	removed, err := s.repo.Delete(id)
	if removed == nil {
		return err
	}

	if name := storage.NameFromURL(removed.FileURL); name != "" {
		if rmErr := s.uploads.Remove(name); rmErr != nil {
			s.logger.WithError(rmErr).WithField("worksheet_id", id).Warn("清理附件失败")
		}
	}

	return err
}

// parsePagesForm 解析上传表单里的页数字段
// 空串或非数字按"未填写"处理
func parsePagesForm(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// parsePagesUpdate 解析更新请求里的页数字段
// 未携带 -> 不变;null或空串 -> 清空;数字或数字串 -> 覆盖;其他 -> 不变
func parsePagesUpdate(raw json.RawMessage) (*int, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false
	}

	switch v := value.(type) {
	case nil:
		return nil, true
	case float64:
		n := int(v)
		return &n, true
	case string:
		if v == "" {
			return nil, true
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, false
		}
		return &n, true
	default:
		return nil, false
	}
}
