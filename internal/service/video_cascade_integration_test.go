package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/data"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupCascadeDB 连接集成测试库，没配NOVA_TUBE_TEST_DSN就跳过
// 级联删除会碰到的表全部建一套干净的，测完删掉
func setupCascadeDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("NOVA_TUBE_TEST_DSN")
	if dsn == "" {
		t.Skip("未设置NOVA_TUBE_TEST_DSN，跳过数据库集成测试")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	tables := []interface{}{
		&model.User{}, &model.Video{}, &model.Comment{}, &model.Like{},
		&model.Playlist{}, &model.PlaylistVideo{}, &model.WatchHistory{}, &model.Tweet{},
	}
	db.Migrator().DropTable(tables...)
	require.NoError(t, db.AutoMigrate(tables...))
	t.Cleanup(func() {
		db.Migrator().DropTable(tables...)
	})
	return db
}

func newCascadeVideoService(db *gorm.DB) VideoService {
	videoRepo := repository.NewVideoRepository(db, nil)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	uow := data.NewUnitOfWork(db, videoRepo, commentRepo, likeRepo, playlistRepo, historyRepo, tweetRepo)
	return NewVideoService(videoRepo, historyRepo, uow, nil)
}

// 删除视频必须连带清掉它的评论、点赞（视频的+评论的）、播放列表引用和观看历史
func TestDeleteVideoCascades(t *testing.T) {
	db := setupCascadeDB(t)
	ctx := context.Background()
	svc := newCascadeVideoService(db)

	owner := model.User{Username: "creator", Password: "x"}
	viewer := model.User{Username: "viewer", Password: "x"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&viewer).Error)

	video := model.Video{OwnerID: owner.ID, Title: "待删", Published: true, VideoURL: "v", CoverURL: "c"}
	require.NoError(t, db.Create(&video).Error)

	// 3条评论，第1条还被点了赞
	var comments []model.Comment
	for i := 0; i < 3; i++ {
		c := model.Comment{VideoID: video.ID, OwnerID: viewer.ID, Content: fmt.Sprintf("评论 %d", i)}
		require.NoError(t, db.Create(&c).Error)
		comments = append(comments, c)
	}
	likes := []model.Like{
		{UserID: owner.ID, TargetType: model.TargetVideo, TargetID: video.ID},
		{UserID: viewer.ID, TargetType: model.TargetVideo, TargetID: video.ID},
		{UserID: viewer.ID, TargetType: model.TargetComment, TargetID: comments[0].ID},
	}
	for i := range likes {
		require.NoError(t, db.Create(&likes[i]).Error)
	}

	playlist := model.Playlist{OwnerID: viewer.ID, Name: "收藏"}
	require.NoError(t, db.Create(&playlist).Error)
	require.NoError(t, db.Create(&model.PlaylistVideo{PlaylistID: playlist.ID, VideoID: video.ID}).Error)
	require.NoError(t, db.Create(&model.WatchHistory{UserID: viewer.ID, VideoID: video.ID, WatchedAt: time.Now()}).Error)

	// 非作者删除被Forbidden挡住，所有关联数据原封不动
	err := svc.Delete(ctx, video.ID, viewer.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	var n int64
	require.NoError(t, db.Model(&model.Comment{}).Where("video_id = ?", video.ID).Count(&n).Error)
	assert.Equal(t, int64(3), n)

	require.NoError(t, svc.Delete(ctx, video.ID, owner.ID))

	// 视频本身对外NotFound
	_, err = svc.GetByID(ctx, video.ID, owner.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// 评论没了
	require.NoError(t, db.Model(&model.Comment{}).Where("video_id = ?", video.ID).Count(&n).Error)
	assert.Zero(t, n)
	// 视频的赞和评论的赞一起没了
	require.NoError(t, db.Model(&model.Like{}).Count(&n).Error)
	assert.Zero(t, n)
	// 播放列表里的引用没了，列表本身还在
	require.NoError(t, db.Model(&model.PlaylistVideo{}).Where("video_id = ?", video.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&model.Playlist{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	// 观看历史没了
	require.NoError(t, db.Model(&model.WatchHistory{}).Where("video_id = ?", video.ID).Count(&n).Error)
	assert.Zero(t, n)
}

// 级联中途失败必须整体回滚，不能留下删了一半的状态
// 把观看历史表拆掉，让级联走到倒数第二步才报错
func TestDeleteVideoRollsBackAsOne(t *testing.T) {
	db := setupCascadeDB(t)
	ctx := context.Background()
	svc := newCascadeVideoService(db)

	owner := model.User{Username: "creator", Password: "x"}
	require.NoError(t, db.Create(&owner).Error)
	video := model.Video{OwnerID: owner.ID, Title: "保住", Published: true, VideoURL: "v", CoverURL: "c"}
	require.NoError(t, db.Create(&video).Error)
	comment := model.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: "评论"}
	require.NoError(t, db.Create(&comment).Error)

	require.NoError(t, db.Migrator().DropTable(&model.WatchHistory{}))

	err := svc.Delete(ctx, video.ID, owner.ID)
	require.Error(t, err)

	// 事务回滚：先被删掉的评论和视频本身都还在
	var n int64
	require.NoError(t, db.Model(&model.Video{}).Where("id = ?", video.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, db.Model(&model.Comment{}).Where("video_id = ?", video.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
