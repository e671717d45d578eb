package repository

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"context"

	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	FindByID(ctx context.Context, playlistID uint64) (*model.Playlist, error)
	FindByOwner(ctx context.Context, ownerID uint64, p pagination.Params) ([]model.Playlist, int64, error)
	Update(ctx context.Context, playlist *model.Playlist) error
	Delete(ctx context.Context, playlistID uint64) error

	// 集合语义：重复加同一个视频撞唯一索引，上层按no-op处理
	AddVideo(ctx context.Context, playlistID, videoID uint64) error
	RemoveVideo(ctx context.Context, playlistID, videoID uint64) error
	FindEntries(ctx context.Context, playlistID uint64) ([]model.PlaylistVideo, error)

	// 视频被删时把它从所有播放列表里摘掉
	RemoveVideoEverywhere(ctx context.Context, videoID uint64) error

	WithTx(tx *gorm.DB) PlaylistRepository
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) WithTx(tx *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: tx}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *playlistRepository) FindByID(ctx context.Context, playlistID uint64) (*model.Playlist, error) {
	var result model.Playlist
	err := r.db.WithContext(ctx).Preload("Owner").First(&result, playlistID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *playlistRepository) FindByOwner(ctx context.Context, ownerID uint64, p pagination.Params) ([]model.Playlist, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Playlist{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var playlists []model.Playlist
	err := query.
		Preload("Owner").
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&playlists).Error
	if err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Save(playlist).Error
}

// 删除播放列表连同它的成员关系
func (r *playlistRepository) Delete(ctx context.Context, playlistID uint64) error {
	if err := r.db.WithContext(ctx).
		Unscoped().
		Where("playlist_id = ?", playlistID).
		Delete(&model.PlaylistVideo{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Playlist{}, playlistID).Error
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uint64) error {
	entry := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uint64) error {
	// 硬删除，软删除会让唯一索引挡住下一次添加
	return r.db.WithContext(ctx).
		Unscoped().
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{}).Error
}

// 列表成员按加入时间正序，嵌套preload把视频和视频作者一起带出来
func (r *playlistRepository) FindEntries(ctx context.Context, playlistID uint64) ([]model.PlaylistVideo, error) {
	var entries []model.PlaylistVideo
	err := r.db.WithContext(ctx).
		Preload("Video").
		Preload("Video.Owner").
		Where("playlist_id = ?", playlistID).
		Order("created_at asc").
		Find(&entries).Error
	return entries, err
}

func (r *playlistRepository) RemoveVideoEverywhere(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("video_id = ?", videoID).
		Delete(&model.PlaylistVideo{}).Error
}
