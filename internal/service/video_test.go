package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"Nova_Tube/pkg/logger"
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = logrus.New()
	logger.Log.SetLevel(logrus.PanicLevel)
	m.Run()
}

// fakeVideoRepo 只实现GetByID路径用到的方法，其余panic以暴露误用
type fakeVideoRepo struct {
	repository.VideoRepository
	video     *model.Video
	cached    *model.Video
	findCalls int
	setCalls  int
}

func (f *fakeVideoRepo) FindByID(ctx context.Context, videoID uint64) (*model.Video, error) {
	f.findCalls++
	if f.video == nil || f.video.ID != videoID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.video, nil
}

func (f *fakeVideoRepo) GetVideoCache(ctx context.Context, videoID uint64) (*model.Video, error) {
	if f.cached != nil && f.cached.ID == videoID {
		return f.cached, nil
	}
	return nil, nil
}

func (f *fakeVideoRepo) SetVideoCache(ctx context.Context, video *model.Video) error {
	f.setCalls++
	return nil
}

type fakeHistoryRepo struct {
	repository.WatchHistoryRepository
	upserts []uint64
}

func (f *fakeHistoryRepo) Upsert(ctx context.Context, userID, videoID uint64, watchedAt time.Time) error {
	f.upserts = append(f.upserts, videoID)
	return nil
}

func makeVideo(id, ownerID uint64, published bool) *model.Video {
	v := &model.Video{OwnerID: ownerID, Title: "测试", Published: published}
	v.ID = id
	return v
}

func TestGetByIDPublished(t *testing.T) {
	videoRepo := &fakeVideoRepo{video: makeVideo(1, 10, true)}
	historyRepo := &fakeHistoryRepo{}
	svc := NewVideoService(videoRepo, historyRepo, nil, nil)

	got, err := svc.GetByID(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ID)
	// 回源后写了缓存
	assert.Equal(t, 1, videoRepo.setCalls)
	// 匿名查看不记观看历史
	assert.Empty(t, historyRepo.upserts)
}

// 未发布的视频对外等同于不存在，但作者自己能看
func TestGetByIDUnpublishedVisibility(t *testing.T) {
	videoRepo := &fakeVideoRepo{video: makeVideo(1, 10, false)}
	svc := NewVideoService(videoRepo, &fakeHistoryRepo{}, nil, nil)

	_, err := svc.GetByID(context.Background(), 1, 99)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	got, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ID)
}

func TestGetByIDRecordsWatchHistory(t *testing.T) {
	videoRepo := &fakeVideoRepo{video: makeVideo(1, 10, true)}
	historyRepo := &fakeHistoryRepo{}
	svc := NewVideoService(videoRepo, historyRepo, nil, nil)

	_, err := svc.GetByID(context.Background(), 1, 33)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, historyRepo.upserts)
}

func TestGetByIDCacheHitSkipsDB(t *testing.T) {
	cached := makeVideo(1, 10, true)
	videoRepo := &fakeVideoRepo{video: cached, cached: cached}
	svc := NewVideoService(videoRepo, &fakeHistoryRepo{}, nil, nil)

	_, err := svc.GetByID(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Zero(t, videoRepo.findCalls, "缓存命中不应该查数据库")
}

func TestGetByIDNotFound(t *testing.T) {
	videoRepo := &fakeVideoRepo{}
	svc := NewVideoService(videoRepo, &fakeHistoryRepo{}, nil, nil)

	_, err := svc.GetByID(context.Background(), 404, 0)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

// 修改别人的视频必须被Forbidden挡住
func TestUpdateDetailsOwnership(t *testing.T) {
	videoRepo := &fakeVideoRepo{video: makeVideo(1, 10, true)}
	svc := NewVideoService(videoRepo, &fakeHistoryRepo{}, nil, nil)

	title := "新标题"
	_, err := svc.UpdateDetails(context.Background(), 1, 99, UpdateVideoInput{Title: &title})
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}
