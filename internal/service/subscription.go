package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/relation"
	"Nova_Tube/internal/repository"
	"context"
)

type SubscriptionService interface {
	// Toggle 翻转订阅状态，返回(是否已订阅, 频道当前订阅者总数)
	Toggle(ctx context.Context, subscriberID, channelID uint64) (*relation.Result, error)
	Subscribers(ctx context.Context, channelID uint64, p pagination.Params) ([]model.Subscription, int64, error)
	SubscribedChannels(ctx context.Context, subscriberID uint64, p pagination.Params) ([]model.Subscription, int64, error)
}

type subscriptionService struct {
	engine   relation.Engine
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(
	engine relation.Engine,
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) SubscriptionService {
	return &subscriptionService{
		engine:   engine,
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// Toggle 订阅自己的频道不拦截，和点赞自己的视频一样合法
func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID uint64) (*relation.Result, error) {
	return s.engine.Toggle(ctx, subscriberID, channelID, relation.KindSubscription)
}

func (s *subscriptionService) Subscribers(ctx context.Context, channelID uint64, p pagination.Params) ([]model.Subscription, int64, error) {
	if _, err := s.userRepo.FindByID(ctx, channelID); err != nil {
		return nil, 0, apperr.FromDB(err, "频道不存在")
	}
	subs, total, err := s.subRepo.FindSubscribers(ctx, channelID, p)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "频道不存在")
	}
	return subs, total, nil
}

func (s *subscriptionService) SubscribedChannels(ctx context.Context, subscriberID uint64, p pagination.Params) ([]model.Subscription, int64, error) {
	if _, err := s.userRepo.FindByID(ctx, subscriberID); err != nil {
		return nil, 0, apperr.FromDB(err, "用户不存在")
	}
	subs, total, err := s.subRepo.FindSubscribedChannels(ctx, subscriberID, p)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "用户不存在")
	}
	return subs, total, nil
}
