package repository

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"context"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	// 分页获取视频的评论，同时返回pre-pagination的总数
	FindByVideoID(ctx context.Context, videoID uint64, p pagination.Params) ([]model.Comment, int64, error)
	UpdateContent(ctx context.Context, commentID uint64, content string) error
	Delete(ctx context.Context, commentID uint64) error

	// 级联删除用：拿到某视频全部评论ID，再整体删除
	IDsByVideoID(ctx context.Context, videoID uint64) ([]uint64, error)
	DeleteByVideoID(ctx context.Context, videoID uint64) error

	IncrementLikeCount(ctx context.Context, commentID uint64) error
	DecrementLikeCount(ctx context.Context, commentID uint64) error

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 commentRepository 实例
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// 利用commentID找comment，顺便把作者Preload进去
func (r *commentRepository) FindByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var result model.Comment
	err := r.db.WithContext(ctx).Preload("Owner").First(&result, commentID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// 分页获取一个视频下的评论，总数在分页前单独Count
func (r *commentRepository) FindByVideoID(ctx context.Context, videoID uint64, p pagination.Params) ([]model.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.
		Preload("Owner"). // 预加载评论的作者信息
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, commentID uint64, content string) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", commentID).
		Update("content", content).Error
}

func (r *commentRepository) Delete(ctx context.Context, commentID uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error
}

func (r *commentRepository) IDsByVideoID(ctx context.Context, videoID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *commentRepository) DeleteByVideoID(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.Comment{}).Error
}

func (r *commentRepository) IncrementLikeCount(ctx context.Context, commentID uint64) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", commentID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
}

func (r *commentRepository) DecrementLikeCount(ctx context.Context, commentID uint64) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ? AND like_count > 0", commentID).
		UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
}
