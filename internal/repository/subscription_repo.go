package repository

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"context"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	// Create直接插入，1062由toggle引擎解释成“已订阅，转为退订”
	Create(ctx context.Context, sub *model.Subscription) error
	DeleteBySubscriberChannel(ctx context.Context, subscriberID, channelID uint64) error
	CountForChannel(ctx context.Context, channelID uint64) (int64, error)
	CountForSubscriber(ctx context.Context, subscriberID uint64) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID uint64) (bool, error)

	// 频道的订阅者 / 用户订阅的频道，都走分页join引擎
	FindSubscribers(ctx context.Context, channelID uint64, p pagination.Params) ([]model.Subscription, int64, error)
	FindSubscribedChannels(ctx context.Context, subscriberID uint64, p pagination.Params) ([]model.Subscription, int64, error)

	WithTx(tx *gorm.DB) SubscriptionRepository
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) WithTx(tx *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: tx}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) DeleteBySubscriberChannel(ctx context.Context, subscriberID, channelID uint64) error {
	// 硬删除，软删除会让唯一索引挡住下一次订阅
	return r.db.WithContext(ctx).
		Unscoped().
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{}).Error
}

func (r *subscriptionRepository) CountForChannel(ctx context.Context, channelID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountForSubscriber(ctx context.Context, subscriberID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) FindSubscribers(ctx context.Context, channelID uint64, p pagination.Params) ([]model.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Subscription
	err := query.
		Preload("Subscriber"). // 只preload订阅者一侧，DTO再做白名单投影
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *subscriptionRepository) FindSubscribedChannels(ctx context.Context, subscriberID uint64, p pagination.Params) ([]model.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Subscription
	err := query.
		Preload("Channel").
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
