package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// URLPrefix 附件对外访问的路径前缀
const URLPrefix = "/uploads/"

var whitespacePattern = regexp.MustCompile(`\s+`)

// UploadStore 附件存储
// 每条习题记录最多对应一个附件文件,生命周期由调用方协调
type UploadStore struct {
	dir string
}

// NewUploadStore 创建附件存储,目录不存在时创建
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建附件目录失败: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Dir 附件目录(交给静态文件路由)
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save 写入附件并返回存储文件名
// 文件名为 <毫秒时间戳>-<原始文件名,空白替换为下划线>;原始文件名来自客户端,不可信,
// 先取basename去掉路径成分
func (s *UploadStore) Save(src io.Reader, originalName string) (string, error) {
	name := filepath.Base(strings.TrimSpace(originalName))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "file"
	}
	name = whitespacePattern.ReplaceAllString(name, "_")

	// O_EXCL防止同一毫秒内同名上传互相覆盖,冲突时把时间戳往后挪重试
	for attempt := int64(0); attempt < 100; attempt++ {
		storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli()+attempt, name)

		dst, err := os.OpenFile(filepath.Join(s.dir, storedName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("创建附件文件失败: %w", err)
		}

		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			os.Remove(dst.Name())
			return "", fmt.Errorf("写入附件文件失败: %w", err)
		}
		if err := dst.Close(); err != nil {
			os.Remove(dst.Name())
			return "", fmt.Errorf("写入附件文件失败: %w", err)
		}

		return storedName, nil
	}

	return "", fmt.Errorf("创建附件文件失败: 文件名 %q 冲突次数过多", name)
}

// Remove 删除附件,文件已不存在时不算错误
func (s *UploadStore) Remove(storedName string) error {
	storedName = filepath.Base(storedName)
	if storedName == "" || storedName == "." {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除附件文件失败: %w", err)
	}
	return nil
}

// NameFromURL 从附件URL反推存储文件名,URL里没有 /uploads/ 段时返回空串
func NameFromURL(fileURL string) string {
	_, after, found := strings.Cut(fileURL, URLPrefix)
	if !found {
		return ""
	}
	return filepath.Base(after)
}
