package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *UploadStore {
	t.Helper()
	store, err := NewUploadStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return store
}

func TestSaveGeneratesStoredName(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(strings.NewReader("pdf-bytes"), "my count sheet.pdf")
	require.NoError(t, err)

	// <毫秒时间戳>-<空白替换为下划线的原始名>
	assert.Regexp(t, regexp.MustCompile(`^\d+-my_count_sheet\.pdf$`), name)

	raw, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(raw))
}

func TestSaveSameNameNeverOverwrites(t *testing.T) {
	store := newTestStore(t)

	// 同一毫秒内连续保存同名文件,两份内容都要保留
	first, err := store.Save(strings.NewReader("第一份"), "a.pdf")
	require.NoError(t, err)
	second, err := store.Save(strings.NewReader("第二份"), "a.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	raw, err := os.ReadFile(filepath.Join(store.Dir(), first))
	require.NoError(t, err)
	assert.Equal(t, "第一份", string(raw))

	raw, err = os.ReadFile(filepath.Join(store.Dir(), second))
	require.NoError(t, err)
	assert.Equal(t, "第二份", string(raw))
}

func TestSaveStripsPathComponents(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(strings.NewReader("x"), "../../etc/passwd")
	require.NoError(t, err)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")

	// 附件只会出现在附件目录里
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, name, entries[0].Name())
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Save(strings.NewReader("x"), "a.pdf")
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	_, err = os.Stat(filepath.Join(store.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	// 文件已不存在时不算错误
	assert.NoError(t, store.Remove(name))
	assert.NoError(t, store.Remove(""))
}

func TestNameFromURL(t *testing.T) {
	assert.Equal(t, "123-a.pdf", NameFromURL("http://localhost:14000/uploads/123-a.pdf"))
	assert.Equal(t, "123-a.pdf", NameFromURL("https://example.com/uploads/123-a.pdf"))
	assert.Equal(t, "", NameFromURL(""))
	assert.Equal(t, "", NameFromURL("http://example.com/files/123-a.pdf"))
}
