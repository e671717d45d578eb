package repository

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"context"

	"gorm.io/gorm"
)

type LikeRepository interface {
	// Create直接插入，撞唯一索引的1062错误原样抛出，由toggle引擎解释
	Create(ctx context.Context, like *model.Like) error
	DeleteByActorTarget(ctx context.Context, userID uint64, targetType string, targetID uint64) error
	CountForTarget(ctx context.Context, targetType string, targetID uint64) (int64, error)

	// 当前用户点赞过的视频，分页，按点赞时间倒序
	FindVideoLikes(ctx context.Context, userID uint64, p pagination.Params) ([]model.Like, int64, error)

	// 级联删除用
	DeleteByTarget(ctx context.Context, targetType string, targetID uint64) error
	DeleteByTargets(ctx context.Context, targetType string, targetIDs []uint64) error

	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) DeleteByActorTarget(ctx context.Context, userID uint64, targetType string, targetID uint64) error {
	// 硬删除关系记录，软删除会让唯一索引挡住下一次点赞
	return r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&model.Like{}).Error
}

func (r *likeRepository) CountForTarget(ctx context.Context, targetType string, targetID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) FindVideoLikes(ctx context.Context, userID uint64, p pagination.Params) ([]model.Like, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND target_type = ?", userID, model.TargetVideo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likes []model.Like
	err := query.
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&likes).Error
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

func (r *likeRepository) DeleteByTarget(ctx context.Context, targetType string, targetID uint64) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Delete(&model.Like{}).Error
}

func (r *likeRepository) DeleteByTargets(ctx context.Context, targetType string, targetIDs []uint64) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Unscoped().
		Where("target_type = ? AND target_id IN (?)", targetType, targetIDs).
		Delete(&model.Like{}).Error
}
