package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/data"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/repository"
	"context"
)

type TweetService interface {
	Create(ctx context.Context, ownerID uint64, content string) (*model.Tweet, error)
	ListForUser(ctx context.Context, userID uint64, p pagination.Params) ([]model.Tweet, int64, error)
	Update(ctx context.Context, tweetID, actorID uint64, content string) (*model.Tweet, error)
	Delete(ctx context.Context, tweetID, actorID uint64) error
}

type tweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
	uow       data.UnitOfWork
}

func NewTweetService(
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
	uow data.UnitOfWork,
) TweetService {
	return &tweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
		uow:       uow,
	}
}

func (s *tweetService) Create(ctx context.Context, ownerID uint64, content string) (*model.Tweet, error) {
	if content == "" {
		return nil, apperr.New(apperr.InvalidArgument, "动态内容不能为空")
	}
	tweet := &model.Tweet{
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, apperr.FromDB(err, "动态不存在")
	}
	return s.loadTweet(ctx, tweet.ID)
}

func (s *tweetService) ListForUser(ctx context.Context, userID uint64, p pagination.Params) ([]model.Tweet, int64, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, 0, apperr.FromDB(err, "用户不存在")
	}
	tweets, total, err := s.tweetRepo.FindByOwner(ctx, userID, p)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "动态不存在")
	}
	return tweets, total, nil
}

func (s *tweetService) Update(ctx context.Context, tweetID, actorID uint64, content string) (*model.Tweet, error) {
	if content == "" {
		return nil, apperr.New(apperr.InvalidArgument, "动态内容不能为空")
	}
	if _, err := s.mustOwnTweet(ctx, tweetID, actorID); err != nil {
		return nil, err
	}
	if err := s.tweetRepo.UpdateContent(ctx, tweetID, content); err != nil {
		return nil, apperr.FromDB(err, "动态不存在")
	}
	return s.loadTweet(ctx, tweetID)
}

// Delete 动态和它的点赞在同一个事务里清理
func (s *tweetService) Delete(ctx context.Context, tweetID, actorID uint64) error {
	if _, err := s.mustOwnTweet(ctx, tweetID, actorID); err != nil {
		return err
	}
	err := s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if err := repos.LikeRepo.DeleteByTarget(ctx, model.TargetTweet, tweetID); err != nil {
			return err
		}
		return repos.TweetRepo.Delete(ctx, tweetID)
	})
	if err != nil {
		return apperr.FromDB(err, "动态不存在")
	}
	return nil
}

func (s *tweetService) mustOwnTweet(ctx context.Context, tweetID, actorID uint64) (*model.Tweet, error) {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		return nil, apperr.FromDB(err, "动态不存在")
	}
	if tweet.OwnerID != actorID {
		return nil, apperr.New(apperr.Forbidden, "无权操作他人的动态")
	}
	return tweet, nil
}

func (s *tweetService) loadTweet(ctx context.Context, tweetID uint64) (*model.Tweet, error) {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		return nil, apperr.FromDB(err, "动态不存在")
	}
	return tweet, nil
}
