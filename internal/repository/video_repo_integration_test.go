package repository

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 连接集成测试库，没配NOVA_TUBE_TEST_DSN就跳过
func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("NOVA_TUBE_TEST_DSN")
	if dsn == "" {
		t.Skip("未设置NOVA_TUBE_TEST_DSN，跳过数据库集成测试")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	tables := []interface{}{&model.User{}, &model.Video{}}
	db.Migrator().DropTable(tables...)
	require.NoError(t, db.AutoMigrate(tables...))
	t.Cleanup(func() {
		db.Migrator().DropTable(tables...)
	})
	return db
}

// 一个作者发15个视频，limit=10：第1页10条，第2页5条，总数和总页数不随页码变
func TestSearchPagination(t *testing.T) {
	db := setupRepoDB(t)
	ctx := context.Background()

	owner := model.User{Username: "creator", Password: "x"}
	require.NoError(t, db.Create(&owner).Error)

	repo := NewVideoRepository(db, nil)
	for i := 0; i < 15; i++ {
		require.NoError(t, repo.Create(ctx, &model.Video{
			OwnerID:   owner.ID,
			Title:     fmt.Sprintf("视频 %02d", i),
			Published: true,
		}))
	}

	filter := VideoFilter{OwnerID: owner.ID}

	page1, total, err := repo.Search(ctx, filter, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.Equal(t, int64(15), total)

	page2, total, err := repo.Search(ctx, filter, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	assert.Equal(t, int64(15), total)
	// 作者信息被join出来了，投影层不用再查
	assert.Equal(t, "creator", page2[0].Owner.Username)

	// 超出最后一页：空结果但不是错误，总数照常返回
	page3, total, err := repo.Search(ctx, filter, pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3, 0)
	assert.Equal(t, int64(15), total)

	res := pagination.NewResult(page2, total, pagination.Params{Page: 2, Limit: 10})
	assert.Equal(t, int64(2), res.TotalPages)
}

// 未发布的视频只有作者自己的列表里能看到
func TestSearchVisibility(t *testing.T) {
	db := setupRepoDB(t)
	ctx := context.Background()

	owner := model.User{Username: "creator", Password: "x"}
	require.NoError(t, db.Create(&owner).Error)

	repo := NewVideoRepository(db, nil)
	require.NoError(t, repo.Create(ctx, &model.Video{OwnerID: owner.ID, Title: "公开", Published: true}))
	require.NoError(t, repo.Create(ctx, &model.Video{OwnerID: owner.ID, Title: "草稿", Published: false}))

	p := pagination.Params{Page: 1, Limit: 10}

	// 匿名只看到已发布的
	videos, total, err := repo.Search(ctx, VideoFilter{}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "公开", videos[0].Title)

	// 作者自己两个都能看到
	_, total, err = repo.Search(ctx, VideoFilter{ViewerID: owner.ID}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// 其他登录用户还是只能看到已发布的
	_, total, err = repo.Search(ctx, VideoFilter{ViewerID: owner.ID + 1}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
