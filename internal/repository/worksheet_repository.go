package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akkares0101/workshopIT/internal/models"
)

// FilterAll 保留筛选值,表示"不过滤该字段"
const FilterAll = "all"

// ErrWorksheetNotFound 习题不存在
var ErrWorksheetNotFound = errors.New("未找到该习题")

// PersistError 持久化失败
// 内存集合已经更新,但镜像文件写入失败,两者在下一次成功写入前可能不一致
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("写入习题镜像文件失败: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// WorksheetFilter 列表筛选条件
type WorksheetFilter struct {
	Subject string
	Grade   string
	Search  string
}

// WorksheetUpdate 部分更新
// 指针为nil表示请求未携带该字段;携带的字段(包括空字符串)直接覆盖
// PagesPresent 为true且Pages为nil时清空页数
type WorksheetUpdate struct {
	Title        *string
	Subject      *string
	Grade        *string
	Description  *string
	Difficulty   *string
	Pages        *int
	PagesPresent bool
}

// WorksheetRepository 习题数据访问层
// 集合的唯一持有者:内存切片加镜像文件,所有变更都在锁内完成并立即落盘
type WorksheetRepository struct {
	mu         sync.Mutex
	path       string
	logger     *logrus.Logger
	worksheets []*models.Worksheet
	nextID     int64
}

// NewWorksheetRepository 创建习题Repository并从镜像文件加载集合
// 镜像文件不存在时写入一条示例记录(首次启动)
func NewWorksheetRepository(path string, logger *logrus.Logger) (*WorksheetRepository, error) {
	r := &WorksheetRepository{
		path:   path,
		logger: logger,
		nextID: 1,
	}

	if err := r.load(); err != nil {
		return nil, err
	}

	return r, nil
}

// load 从镜像文件加载集合
func (r *WorksheetRepository) load() error {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		r.seed()
		if perr := r.persistLocked(); perr != nil {
			return perr
		}
		r.logger.WithField("path", r.path).Info("创建习题镜像文件,写入1条示例记录")
		return nil
	}
	if err != nil {
		return fmt.Errorf("读取习题镜像文件失败: %w", err)
	}

	var worksheets []*models.Worksheet
	if err := json.Unmarshal(raw, &worksheets); err != nil {
		return fmt.Errorf("解析习题镜像文件失败: %w", err)
	}

	r.worksheets = worksheets
	for _, w := range r.worksheets {
		if w.ID >= r.nextID {
			r.nextID = w.ID + 1
		}
	}

	r.logger.WithField("count", len(r.worksheets)).Info("从镜像文件加载习题")
	return nil
}

// seed 首次启动时的示例记录
func (r *WorksheetRepository) seed() {
	pages := 2
	r.worksheets = []*models.Worksheet{{
		ID:           1,
		Title:        "数数练习 1-10",
		Subject:      "数学",
		Grade:        "幼儿园",
		Description:  "简单的数数练习,配有图片",
		Difficulty:   models.DifficultyEasy,
		Pages:        &pages,
		FileURL:      "",
		OriginalName: "",
		UploadedBy:   2,
		UploaderName: "Teacher A",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}}
	r.nextID = 2
}

// List 按条件筛选习题,ID降序(新的在前)
// subject/grade 为空或为 FilterAll 时不过滤;search 对标题和描述做不区分大小写的子串匹配
func (r *WorksheetRepository) List(filter WorksheetFilter) []models.Worksheet {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Worksheet
	search := strings.ToLower(filter.Search)

	for _, w := range r.worksheets {
		if filter.Subject != "" && filter.Subject != FilterAll && w.Subject != filter.Subject {
			continue
		}
		if filter.Grade != "" && filter.Grade != FilterAll && w.Grade != filter.Grade {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(w.Title), search) &&
			!strings.Contains(strings.ToLower(w.Description), search) {
			continue
		}
		out = append(out, cloneWorksheet(w))
	}

	sortByIDDesc(out)
	return out
}

// ListByUploader 获取某个用户上传的习题,ID降序
func (r *WorksheetRepository) ListByUploader(userID uint) []models.Worksheet {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Worksheet
	for _, w := range r.worksheets {
		if w.UploadedBy == userID {
			out = append(out, cloneWorksheet(w))
		}
	}

	sortByIDDesc(out)
	return out
}

// GetByID 根据ID获取习题
func (r *WorksheetRepository) GetByID(id int64) (*models.Worksheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(id)
	if w == nil {
		return nil, ErrWorksheetNotFound
	}
	c := cloneWorksheet(w)
	return &c, nil
}

// Create 新增习题并落盘
// ID由序号计数器分配(单调递增,锁内无碰撞),CreatedAt取当前UTC时间,精确到秒
// 返回 *PersistError 时记录已在内存中生效
func (r *WorksheetRepository) Create(ws *models.Worksheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws.ID = r.nextID
	r.nextID++
	ws.CreatedAt = time.Now().UTC().Truncate(time.Second)

	stored := cloneWorksheet(ws)
	r.worksheets = append(r.worksheets, &stored)

	return r.persistLocked()
}

// Update 部分更新习题并落盘
// 未携带的字段保持原值;空补丁也会触发一次落盘
func (r *WorksheetRepository) Update(id int64, upd WorksheetUpdate) (*models.Worksheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(id)
	if w == nil {
		return nil, ErrWorksheetNotFound
	}

	if upd.Title != nil {
		w.Title = *upd.Title
	}
	if upd.Subject != nil {
		w.Subject = *upd.Subject
	}
	if upd.Grade != nil {
		w.Grade = *upd.Grade
	}
	if upd.Description != nil {
		w.Description = *upd.Description
	}
	if upd.Difficulty != nil {
		w.Difficulty = *upd.Difficulty
	}
	if upd.PagesPresent {
		if upd.Pages == nil {
			w.Pages = nil
		} else {
			pages := *upd.Pages
			w.Pages = &pages
		}
	}

	c := cloneWorksheet(w)
	if err := r.persistLocked(); err != nil {
		return &c, err
	}
	return &c, nil
}

// Delete 删除习题并落盘,返回被删除的记录(调用方负责清理附件)
// ID不存在时不触碰镜像文件
func (r *WorksheetRepository) Delete(id int64) (*models.Worksheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, w := range r.worksheets {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrWorksheetNotFound
	}

	removed := cloneWorksheet(r.worksheets[idx])
	r.worksheets = append(r.worksheets[:idx], r.worksheets[idx+1:]...)

	if err := r.persistLocked(); err != nil {
		return &removed, err
	}
	return &removed, nil
}

// findLocked 在锁内按ID查找,未找到返回nil
func (r *WorksheetRepository) findLocked(id int64) *models.Worksheet {
	for _, w := range r.worksheets {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// persistLocked 在锁内把整个集合重写到镜像文件
// 先写临时文件再改名,避免写一半的镜像
func (r *WorksheetRepository) persistLocked() error {
	data, err := json.MarshalIndent(r.worksheets, "", "  ")
	if err != nil {
		r.logger.WithError(err).Error("序列化习题集合失败")
		return &PersistError{Err: err}
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".worksheets-*.json")
	if err != nil {
		r.logger.WithError(err).Error("创建临时镜像文件失败")
		return &PersistError{Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		r.logger.WithError(err).Error("写入临时镜像文件失败")
		return &PersistError{Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &PersistError{Err: err}
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		r.logger.WithError(err).Error("替换镜像文件失败")
		return &PersistError{Err: err}
	}

	return nil
}

// cloneWorksheet 拷贝一条记录,Pages指针也一并拷贝
// 对外只交出副本,原始集合不外露
func cloneWorksheet(w *models.Worksheet) models.Worksheet {
	c := *w
	if w.Pages != nil {
		pages := *w.Pages
		c.Pages = &pages
	}
	return c
}

func sortByIDDesc(worksheets []models.Worksheet) {
	sort.Slice(worksheets, func(i, j int) bool {
		return worksheets[i].ID > worksheets[j].ID
	})
}
