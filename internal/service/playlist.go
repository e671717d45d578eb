package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/repository"
	"context"
)

type PlaylistService interface {
	Create(ctx context.Context, ownerID uint64, name, description string) (*model.Playlist, error)
	ListForUser(ctx context.Context, userID uint64, p pagination.Params) ([]model.Playlist, int64, error)
	// GetByID 返回播放列表及其全部成员（含视频和视频作者）
	GetByID(ctx context.Context, playlistID uint64) (*model.Playlist, []model.PlaylistVideo, error)
	AddVideo(ctx context.Context, playlistID, videoID, actorID uint64) (*model.Playlist, []model.PlaylistVideo, error)
	RemoveVideo(ctx context.Context, playlistID, videoID, actorID uint64) (*model.Playlist, []model.PlaylistVideo, error)
	UpdateInfo(ctx context.Context, playlistID, actorID uint64, name, description *string) (*model.Playlist, error)
	Delete(ctx context.Context, playlistID, actorID uint64) error
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) PlaylistService {
	return &playlistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
	}
}

func (s *playlistService) Create(ctx context.Context, ownerID uint64, name, description string) (*model.Playlist, error) {
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "播放列表名称不能为空")
	}
	playlist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, apperr.FromDB(err, "播放列表不存在")
	}
	return s.loadPlaylist(ctx, playlist.ID)
}

func (s *playlistService) ListForUser(ctx context.Context, userID uint64, p pagination.Params) ([]model.Playlist, int64, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, 0, apperr.FromDB(err, "用户不存在")
	}
	playlists, total, err := s.playlistRepo.FindByOwner(ctx, userID, p)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "播放列表不存在")
	}
	return playlists, total, nil
}

func (s *playlistService) GetByID(ctx context.Context, playlistID uint64) (*model.Playlist, []model.PlaylistVideo, error) {
	playlist, err := s.loadPlaylist(ctx, playlistID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.playlistRepo.FindEntries(ctx, playlistID)
	if err != nil {
		return nil, nil, apperr.FromDB(err, "播放列表不存在")
	}
	return playlist, entries, nil
}

// AddVideo 集合语义：重复添加同一个视频是no-op，不报错
// 唯一索引撞1062就说明已经在列表里了
func (s *playlistService) AddVideo(ctx context.Context, playlistID, videoID, actorID uint64) (*model.Playlist, []model.PlaylistVideo, error) {
	playlist, err := s.mustOwnPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		return nil, nil, apperr.FromDB(err, "视频不存在")
	}

	if err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		if !repository.IsDuplicateEntry(err) {
			return nil, nil, apperr.FromDB(err, "播放列表不存在")
		}
		// 已在列表中，按成功处理
	}

	entries, err := s.playlistRepo.FindEntries(ctx, playlistID)
	if err != nil {
		return nil, nil, apperr.FromDB(err, "播放列表不存在")
	}
	return playlist, entries, nil
}

// RemoveVideo 移除不存在的成员同样是no-op
func (s *playlistService) RemoveVideo(ctx context.Context, playlistID, videoID, actorID uint64) (*model.Playlist, []model.PlaylistVideo, error) {
	playlist, err := s.mustOwnPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, nil, apperr.FromDB(err, "播放列表不存在")
	}
	entries, err := s.playlistRepo.FindEntries(ctx, playlistID)
	if err != nil {
		return nil, nil, apperr.FromDB(err, "播放列表不存在")
	}
	return playlist, entries, nil
}

func (s *playlistService) UpdateInfo(ctx context.Context, playlistID, actorID uint64, name, description *string) (*model.Playlist, error) {
	playlist, err := s.mustOwnPlaylist(ctx, playlistID, actorID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		if *name == "" {
			return nil, apperr.New(apperr.InvalidArgument, "播放列表名称不能为空")
		}
		playlist.Name = *name
	}
	if description != nil {
		playlist.Description = *description
	}
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, apperr.FromDB(err, "播放列表不存在")
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, playlistID, actorID uint64) error {
	if _, err := s.mustOwnPlaylist(ctx, playlistID, actorID); err != nil {
		return err
	}
	// 成员关系在repo层和列表一起删
	if err := s.playlistRepo.Delete(ctx, playlistID); err != nil {
		return apperr.FromDB(err, "播放列表不存在")
	}
	return nil
}

func (s *playlistService) mustOwnPlaylist(ctx context.Context, playlistID, actorID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, apperr.FromDB(err, "播放列表不存在")
	}
	if playlist.OwnerID != actorID {
		return nil, apperr.New(apperr.Forbidden, "无权操作他人的播放列表")
	}
	return playlist, nil
}

func (s *playlistService) loadPlaylist(ctx context.Context, playlistID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, apperr.FromDB(err, "播放列表不存在")
	}
	return playlist, nil
}
