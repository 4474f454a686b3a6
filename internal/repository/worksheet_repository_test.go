package repository

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akkares0101/workshopIT/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRepo(t *testing.T) (*WorksheetRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worksheets.json")
	repo, err := NewWorksheetRepository(path, quietLogger())
	require.NoError(t, err)
	return repo, path
}

func makeWorksheet(title, subject, grade, description string) *models.Worksheet {
	return &models.Worksheet{
		Title:        title,
		Subject:      subject,
		Grade:        grade,
		Description:  description,
		Difficulty:   models.DifficultyEasy,
		UploadedBy:   2,
		UploaderName: "Teacher A",
	}
}

func TestSeedOnFirstLoad(t *testing.T) {
	repo, path := newTestRepo(t)

	list := repo.List(WorksheetFilter{})
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)

	// 镜像文件在首次启动时立即写出
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	repo, _ := newTestRepo(t)

	var prev int64
	for _, w := range repo.List(WorksheetFilter{}) {
		if w.ID > prev {
			prev = w.ID
		}
	}

	for i := 0; i < 3; i++ {
		ws := makeWorksheet("练习", "数学", "一年级", "")
		require.NoError(t, repo.Create(ws))
		assert.Greater(t, ws.ID, prev, "新ID必须严格大于已有最大ID")
		prev = ws.ID

		list := repo.List(WorksheetFilter{})
		assert.Equal(t, ws.ID, list[0].ID, "无筛选列表必须包含新记录且排在最前")
	}
}

func TestListFilterAndOrder(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Create(makeWorksheet("Count to 10", "Math", "K", "counting practice")))
	require.NoError(t, repo.Create(makeWorksheet("Shapes", "Math", "1", "circle and square")))
	require.NoError(t, repo.Create(makeWorksheet("Animals", "Science", "K", "farm ABC animals")))

	// 学科精确匹配
	math := repo.List(WorksheetFilter{Subject: "Math"})
	require.Len(t, math, 2)
	for _, w := range math {
		assert.Equal(t, "Math", w.Subject)
	}

	// 大小写不同不算匹配
	assert.Empty(t, repo.List(WorksheetFilter{Subject: "math"}))

	// 保留值 all 等于不过滤
	all := repo.List(WorksheetFilter{Subject: FilterAll, Grade: FilterAll})
	assert.Len(t, all, 4) // 含种子记录

	// 年级加学科组合
	mathK := repo.List(WorksheetFilter{Subject: "Math", Grade: "K"})
	require.Len(t, mathK, 1)
	assert.Equal(t, "Count to 10", mathK[0].Title)

	// ID降序
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].ID, all[i].ID)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Create(makeWorksheet("ABC Tracing", "English", "K", "")))
	require.NoError(t, repo.Create(makeWorksheet("Numbers", "Math", "K", "contains abc in description")))
	require.NoError(t, repo.Create(makeWorksheet("Colors", "Art", "K", "")))

	// 标题或描述命中都算
	got := repo.List(WorksheetFilter{Search: "abc"})
	require.Len(t, got, 2)

	got = repo.List(WorksheetFilter{Search: "ABC"})
	assert.Len(t, got, 2)

	assert.Empty(t, repo.List(WorksheetFilter{Search: "xyz"}))
}

func TestListByUploader(t *testing.T) {
	repo, _ := newTestRepo(t)

	mine := makeWorksheet("Mine", "Math", "K", "")
	mine.UploadedBy = 7
	require.NoError(t, repo.Create(mine))
	require.NoError(t, repo.Create(makeWorksheet("Other", "Math", "K", "")))

	got := repo.ListByUploader(7)
	require.Len(t, got, 1)
	assert.Equal(t, "Mine", got[0].Title)
}

func TestUpdatePartial(t *testing.T) {
	repo, _ := newTestRepo(t)

	ws := makeWorksheet("原标题", "数学", "一年级", "原描述")
	require.NoError(t, repo.Create(ws))

	// 只改标题,其余保持
	title := "新标题"
	got, err := repo.Update(ws.ID, WorksheetUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "新标题", got.Title)
	assert.Equal(t, "数学", got.Subject)
	assert.Equal(t, "原描述", got.Description)

	// 携带的空字符串同样覆盖
	empty := ""
	got, err = repo.Update(ws.ID, WorksheetUpdate{Description: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", got.Description)

	// 设置页数再清空
	pages := 5
	got, err = repo.Update(ws.ID, WorksheetUpdate{Pages: &pages, PagesPresent: true})
	require.NoError(t, err)
	require.NotNil(t, got.Pages)
	assert.Equal(t, 5, *got.Pages)

	got, err = repo.Update(ws.ID, WorksheetUpdate{PagesPresent: true})
	require.NoError(t, err)
	assert.Nil(t, got.Pages)

	_, err = repo.Update(99999, WorksheetUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrWorksheetNotFound)
}

func TestEmptyUpdateStillPersists(t *testing.T) {
	repo, path := newTestRepo(t)

	ws := makeWorksheet("标题", "数学", "一年级", "")
	require.NoError(t, repo.Create(ws))
	before, err := repo.GetByID(ws.ID)
	require.NoError(t, err)

	// 删掉镜像文件,空补丁也必须触发一次重写
	require.NoError(t, os.Remove(path))

	got, err := repo.Update(ws.ID, WorksheetUpdate{})
	require.NoError(t, err)
	assert.Equal(t, *before, *got)

	_, err = os.Stat(path)
	require.NoError(t, err, "空补丁后镜像文件应当被重写")
}

func TestDelete(t *testing.T) {
	repo, path := newTestRepo(t)

	ws := makeWorksheet("待删除", "数学", "一年级", "")
	ws.FileURL = "http://localhost:14000/uploads/123-a.pdf"
	require.NoError(t, repo.Create(ws))

	removed, err := repo.Delete(ws.ID)
	require.NoError(t, err)
	assert.Equal(t, ws.ID, removed.ID)
	assert.Equal(t, ws.FileURL, removed.FileURL)

	for _, w := range repo.List(WorksheetFilter{}) {
		assert.NotEqual(t, ws.ID, w.ID)
	}

	// 删除不存在的ID不触碰镜像文件
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = repo.Delete(ws.ID)
	assert.ErrorIs(t, err, ErrWorksheetNotFound)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, after)
}

func TestMutationsSurfacePersistError(t *testing.T) {
	repo, path := newTestRepo(t)

	ws := makeWorksheet("原标题", "数学", "一年级", "")
	require.NoError(t, repo.Create(ws))

	// 用非空目录顶替镜像文件,让temp+rename写入必然失败
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "occupied"), []byte("x"), 0644))

	var persistErr *PersistError

	title := "改过的标题"
	got, err := repo.Update(ws.ID, WorksheetUpdate{Title: &title})
	require.ErrorAs(t, err, &persistErr)
	require.NotNil(t, got)
	assert.Equal(t, "改过的标题", got.Title)

	// 内存集合已生效,后续读取看到新值
	again, err := repo.GetByID(ws.ID)
	require.NoError(t, err)
	assert.Equal(t, "改过的标题", again.Title)

	// Create 同样:记录已入集合,错误只报告镜像落盘失败
	ws2 := makeWorksheet("第二份", "数学", "一年级", "")
	err = repo.Create(ws2)
	require.ErrorAs(t, err, &persistErr)
	assert.Greater(t, ws2.ID, ws.ID)
	found, err := repo.GetByID(ws2.ID)
	require.NoError(t, err)
	assert.Equal(t, "第二份", found.Title)

	// Delete 同样:记录已移出集合
	removed, err := repo.Delete(ws.ID)
	require.ErrorAs(t, err, &persistErr)
	require.NotNil(t, removed)
	_, err = repo.GetByID(ws.ID)
	assert.ErrorIs(t, err, ErrWorksheetNotFound)
}

func TestReloadRoundTrip(t *testing.T) {
	repo, path := newTestRepo(t)

	pages := 3
	ws1 := makeWorksheet("Count to 10", "Math", "K", "counting")
	ws1.Pages = &pages
	ws1.FileURL = "http://localhost:14000/uploads/1-count.pdf"
	ws1.OriginalName = "count.pdf"
	require.NoError(t, repo.Create(ws1))

	ws2 := makeWorksheet("Shapes", "Math", "1", "")
	require.NoError(t, repo.Create(ws2))

	title := "Shapes v2"
	_, err := repo.Update(ws2.ID, WorksheetUpdate{Title: &title})
	require.NoError(t, err)

	_, err = repo.Delete(1) // 种子记录
	require.NoError(t, err)

	want := repo.List(WorksheetFilter{})

	// 模拟进程重启:同一镜像文件重新加载
	reloaded, err := NewWorksheetRepository(path, quietLogger())
	require.NoError(t, err)

	got := reloaded.List(WorksheetFilter{})
	require.Equal(t, want, got, "重启后集合必须与内存状态完全一致")

	// 重启后继续创建,ID仍然单调递增
	ws3 := makeWorksheet("After restart", "Math", "K", "")
	require.NoError(t, reloaded.Create(ws3))
	assert.Greater(t, ws3.ID, want[0].ID)
}

func TestGetByIDReturnsCopy(t *testing.T) {
	repo, _ := newTestRepo(t)

	ws := makeWorksheet("标题", "数学", "一年级", "")
	require.NoError(t, repo.Create(ws))

	got, err := repo.GetByID(ws.ID)
	require.NoError(t, err)

	// 改副本不影响仓库里的记录
	got.Title = "改掉"
	again, err := repo.GetByID(ws.ID)
	require.NoError(t, err)
	assert.Equal(t, "标题", again.Title)

	_, err = repo.GetByID(99999)
	assert.ErrorIs(t, err, ErrWorksheetNotFound)
}
