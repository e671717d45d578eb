package repository

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"context"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	FindByID(ctx context.Context, tweetID uint64) (*model.Tweet, error)
	FindByOwner(ctx context.Context, ownerID uint64, p pagination.Params) ([]model.Tweet, int64, error)
	UpdateContent(ctx context.Context, tweetID uint64, content string) error
	Delete(ctx context.Context, tweetID uint64) error

	IncrementLikeCount(ctx context.Context, tweetID uint64) error
	DecrementLikeCount(ctx context.Context, tweetID uint64) error

	WithTx(tx *gorm.DB) TweetRepository
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) WithTx(tx *gorm.DB) TweetRepository {
	return &tweetRepository{db: tx}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) FindByID(ctx context.Context, tweetID uint64) (*model.Tweet, error) {
	var result model.Tweet
	err := r.db.WithContext(ctx).Preload("Owner").First(&result, tweetID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *tweetRepository) FindByOwner(ctx context.Context, ownerID uint64, p pagination.Params) ([]model.Tweet, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []model.Tweet
	err := query.
		Preload("Owner").
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, tweetID uint64, content string) error {
	return r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", tweetID).
		Update("content", content).Error
}

func (r *tweetRepository) Delete(ctx context.Context, tweetID uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Tweet{}, tweetID).Error
}

func (r *tweetRepository) IncrementLikeCount(ctx context.Context, tweetID uint64) error {
	return r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", tweetID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
}

func (r *tweetRepository) DecrementLikeCount(ctx context.Context, tweetID uint64) error {
	return r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ? AND like_count > 0", tweetID).
		UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
}
