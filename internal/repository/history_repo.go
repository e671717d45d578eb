package repository

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchHistoryRepository interface {
	// Upsert：第一次观看插入，重复观看只刷新watched_at，靠OnConflict一条语句搞定
	Upsert(ctx context.Context, userID, videoID uint64, watchedAt time.Time) error
	// 按watched_at倒序分页，嵌套preload视频和视频作者（两层join）
	FindByUser(ctx context.Context, userID uint64, p pagination.Params) ([]model.WatchHistory, int64, error)

	DeleteByVideoID(ctx context.Context, videoID uint64) error

	WithTx(tx *gorm.DB) WatchHistoryRepository
}

type watchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) WatchHistoryRepository {
	return &watchHistoryRepository{db: db}
}

func (r *watchHistoryRepository) WithTx(tx *gorm.DB) WatchHistoryRepository {
	return &watchHistoryRepository{db: tx}
}

func (r *watchHistoryRepository) Upsert(ctx context.Context, userID, videoID uint64, watchedAt time.Time) error {
	entry := &model.WatchHistory{
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: watchedAt,
	}
	// 撞(user_id, video_id)唯一索引时不报错，改成更新watched_at
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"watched_at": watchedAt}),
	}).Create(entry).Error
}

func (r *watchHistoryRepository) FindByUser(ctx context.Context, userID uint64, p pagination.Params) ([]model.WatchHistory, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.WatchHistory{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.WatchHistory
	err := query.
		Preload("Video").
		Preload("Video.Owner").
		Order("watched_at desc"). // 最近看的在最前面
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *watchHistoryRepository) DeleteByVideoID(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("video_id = ?", videoID).
		Delete(&model.WatchHistory{}).Error
}
