package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/data"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/repository"
	"Nova_Tube/internal/storage"
	"Nova_Tube/pkg/logger"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// PublishVideoInput 承载发布视频时的表单字段和两个文件流
type PublishVideoInput struct {
	Title         string
	Description   string
	Duration      float64
	VideoFilename string
	VideoFile     io.Reader
	CoverFilename string
	CoverFile     io.Reader
}

type UpdateVideoInput struct {
	Title       *string
	Description *string
	CoverFile   io.Reader // 可选的新封面
	CoverName   string
}

type VideoService interface {
	Publish(ctx context.Context, ownerID uint64, input PublishVideoInput) (*model.Video, error)
	// GetByID：viewerID为0表示匿名；未发布的视频只有作者能看
	GetByID(ctx context.Context, videoID, viewerID uint64) (*model.Video, error)
	List(ctx context.Context, filter repository.VideoFilter, p pagination.Params) ([]model.Video, int64, error)
	UpdateDetails(ctx context.Context, videoID, actorID uint64, input UpdateVideoInput) (*model.Video, error)
	Delete(ctx context.Context, videoID, actorID uint64) error
	TogglePublished(ctx context.Context, videoID, actorID uint64) (*model.Video, error)
}

type videoService struct {
	videoRepo   repository.VideoRepository
	historyRepo repository.WatchHistoryRepository
	uow         data.UnitOfWork
	uploader    storage.Uploader
	sf          singleflight.Group
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	historyRepo repository.WatchHistoryRepository,
	uow data.UnitOfWork,
	uploader storage.Uploader,
) VideoService {
	return &videoService{
		videoRepo:   videoRepo,
		historyRepo: historyRepo,
		uow:         uow,
		uploader:    uploader,
	}
}

// Publish 先把视频和封面传到对象存储，再落库
// 对象Key用uuid，避免用户文件名互相覆盖
func (s *videoService) Publish(ctx context.Context, ownerID uint64, input PublishVideoInput) (*model.Video, error) {
	videoKey := fmt.Sprintf("videos/%s%s", uuid.New().String(), path.Ext(input.VideoFilename))
	videoURL, err := s.uploader.Save(ctx, videoKey, input.VideoFile)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "视频上传失败", err)
	}

	coverKey := fmt.Sprintf("covers/%s%s", uuid.New().String(), path.Ext(input.CoverFilename))
	coverURL, err := s.uploader.Save(ctx, coverKey, input.CoverFile)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "封面上传失败", err)
	}

	video := &model.Video{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		Published:   true,
		VideoURL:    videoURL,
		CoverURL:    coverURL,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, apperr.FromDB(err, "视频不存在")
	}
	// Create不会把Owner带回来，重查一次拿完整的关联
	return s.loadVideo(ctx, video.ID)
}

// GetByID 缓存优先，miss时用singleflight合并并发回源，防止缓存击穿
// 登录用户查看成功后顺手记观看历史（尽力而为，失败只记日志）
func (s *videoService) GetByID(ctx context.Context, videoID, viewerID uint64) (*model.Video, error) {
	video, err := s.getVideoCached(ctx, videoID)
	if err != nil {
		return nil, err
	}

	// 可见性规则：未发布的视频只对作者本人存在
	if !video.Published && video.OwnerID != viewerID {
		return nil, apperr.New(apperr.NotFound, "视频不存在")
	}

	if viewerID != 0 {
		if err := s.historyRepo.Upsert(ctx, viewerID, videoID, time.Now()); err != nil {
			// 观看历史是附属功能，不能因为它挂掉让播放页打不开
			logger.Log.WithError(err).
				WithField("user_id", viewerID).
				WithField("video_id", videoID).
				Warn("记录观看历史失败")
		}
	}
	return video, nil
}

func (s *videoService) getVideoCached(ctx context.Context, videoID uint64) (*model.Video, error) {
	if cached, err := s.videoRepo.GetVideoCache(ctx, videoID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		// Redis故障降级直连数据库，只记日志
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("读取视频缓存失败")
	}

	// 同一个视频的并发回源被合并成一次数据库查询
	key := fmt.Sprintf("get_video_%d", videoID)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		video, err := s.videoRepo.FindByID(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if err := s.videoRepo.SetVideoCache(ctx, video); err != nil {
			logger.Log.WithError(err).WithField("video_id", videoID).Warn("写入视频缓存失败")
		}
		return video, nil
	})
	if err != nil {
		return nil, apperr.FromDB(err, "视频不存在")
	}
	return v.(*model.Video), nil
}

func (s *videoService) List(ctx context.Context, filter repository.VideoFilter, p pagination.Params) ([]model.Video, int64, error) {
	videos, total, err := s.videoRepo.Search(ctx, filter, p)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "视频不存在")
	}
	return videos, total, nil
}

// UpdateDetails 只有作者本人能改；改完让缓存失效
func (s *videoService) UpdateDetails(ctx context.Context, videoID, actorID uint64, input UpdateVideoInput) (*model.Video, error) {
	video, err := s.mustOwnVideo(ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		video.Title = *input.Title
	}
	if input.Description != nil {
		video.Description = *input.Description
	}
	if input.CoverFile != nil {
		coverKey := fmt.Sprintf("covers/%s%s", uuid.New().String(), path.Ext(input.CoverName))
		coverURL, err := s.uploader.Save(ctx, coverKey, input.CoverFile)
		if err != nil {
			return nil, apperr.Wrap(apperr.Unavailable, "封面上传失败", err)
		}
		video.CoverURL = coverURL
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, apperr.FromDB(err, "视频不存在")
	}
	s.invalidateCache(ctx, videoID)
	return video, nil
}

// Delete 级联清理：评论、点赞（视频的+评论的）、播放列表引用、观看历史
// 全部塞进一个事务，要么都删掉，要么一个都不动
func (s *videoService) Delete(ctx context.Context, videoID, actorID uint64) error {
	if _, err := s.mustOwnVideo(ctx, videoID, actorID); err != nil {
		return err
	}

	err := s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		commentIDs, err := repos.CommentRepo.IDsByVideoID(ctx, videoID)
		if err != nil {
			return err
		}
		// 先删孙辈（评论的点赞），再删子辈（评论、视频的点赞），最后删视频本身
		if err := repos.LikeRepo.DeleteByTargets(ctx, model.TargetComment, commentIDs); err != nil {
			return err
		}
		if err := repos.LikeRepo.DeleteByTarget(ctx, model.TargetVideo, videoID); err != nil {
			return err
		}
		if err := repos.CommentRepo.DeleteByVideoID(ctx, videoID); err != nil {
			return err
		}
		if err := repos.PlaylistRepo.RemoveVideoEverywhere(ctx, videoID); err != nil {
			return err
		}
		if err := repos.HistoryRepo.DeleteByVideoID(ctx, videoID); err != nil {
			return err
		}
		return repos.VideoRepo.Delete(ctx, videoID)
	})
	if err != nil {
		return apperr.FromDB(err, "视频不存在")
	}
	s.invalidateCache(ctx, videoID)
	return nil
}

func (s *videoService) TogglePublished(ctx context.Context, videoID, actorID uint64) (*model.Video, error) {
	video, err := s.mustOwnVideo(ctx, videoID, actorID)
	if err != nil {
		return nil, err
	}
	video.Published = !video.Published
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, apperr.FromDB(err, "视频不存在")
	}
	s.invalidateCache(ctx, videoID)
	return video, nil
}

// mustOwnVideo 取视频并校验所有权：不是作者就是Forbidden
func (s *videoService) mustOwnVideo(ctx context.Context, videoID, actorID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, apperr.FromDB(err, "视频不存在")
	}
	if video.OwnerID != actorID {
		return nil, apperr.New(apperr.Forbidden, "无权操作他人的视频")
	}
	return video, nil
}

func (s *videoService) loadVideo(ctx context.Context, videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, apperr.FromDB(err, "视频不存在")
	}
	return video, nil
}

func (s *videoService) invalidateCache(ctx context.Context, videoID uint64) {
	if err := s.videoRepo.InvalidateVideoCache(ctx, videoID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("视频缓存失效失败")
	}
}
