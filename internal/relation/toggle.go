package relation

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"context"

	"gorm.io/gorm"
)

// Kind 标识“谁对什么”的开关关系：三种点赞加一种订阅
type Kind string

const (
	KindVideoLike    Kind = "video-like"
	KindCommentLike  Kind = "comment-like"
	KindTweetLike    Kind = "tweet-like"
	KindSubscription Kind = "subscription"
)

func (k Kind) valid() bool {
	switch k {
	case KindVideoLike, KindCommentLike, KindTweetLike, KindSubscription:
		return true
	}
	return false
}

// TargetType 返回点赞类Kind在likes表里的target_type，订阅不走likes表
func (k Kind) TargetType() (string, bool) {
	switch k {
	case KindVideoLike:
		return model.TargetVideo, true
	case KindCommentLike:
		return model.TargetComment, true
	case KindTweetLike:
		return model.TargetTweet, true
	}
	return "", false
}

// Result 是一次toggle的结果：翻转后的状态 + 目标当前的关系总数
type Result struct {
	Active     bool  `json:"active"`
	TotalCount int64 `json:"totalCount"`
}

// Engine 是likes和subscriptions共用的toggle引擎
type Engine interface {
	Toggle(ctx context.Context, actorID, targetID uint64, kind Kind) (*Result, error)
}

type gormEngine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) Engine {
	return &gormEngine{db: db}
}

// Toggle 翻转(actor, target, kind)三元组的关系状态
// 不做“先查再写”：直接INSERT，撞到唯一索引的1062就说明关系已存在，改为DELETE
// 唯一索引是并发下的仲裁者，两个同时到达的toggle不可能都插成功
func (e *gormEngine) Toggle(ctx context.Context, actorID, targetID uint64, kind Kind) (*Result, error) {
	if !kind.valid() {
		return nil, apperr.New(apperr.InvalidArgument, "未知的关系类型")
	}
	// 目标必须存在，四种Kind都查（原实现对部分Kind漏了这步）
	if err := e.ensureTargetExists(ctx, kind, targetID); err != nil {
		return nil, err
	}

	res := &Result{}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if kind == KindSubscription {
			return e.toggleSubscription(ctx, tx, actorID, targetID, res)
		}
		return e.toggleLike(ctx, tx, actorID, targetID, kind, res)
	})
	if err != nil {
		return nil, apperr.FromDB(err, "目标不存在")
	}
	return res, nil
}

func (e *gormEngine) toggleLike(ctx context.Context, tx *gorm.DB, actorID, targetID uint64, kind Kind, res *Result) error {
	targetType, _ := kind.TargetType()
	likeRepo := repository.NewLikeRepository(tx)

	like := &model.Like{UserID: actorID, TargetType: targetType, TargetID: targetID}
	err := likeRepo.Create(ctx, like)
	switch {
	case err == nil:
		res.Active = true
	case repository.IsDuplicateEntry(err):
		// 已点赞，这次toggle是取消；MySQL里1062不会让整个事务失效
		if err := likeRepo.DeleteByActorTarget(ctx, actorID, targetType, targetID); err != nil {
			return err
		}
		res.Active = false
	default:
		return err
	}

	total, err := likeRepo.CountForTarget(ctx, targetType, targetID)
	if err != nil {
		return err
	}
	res.TotalCount = total
	return nil
}

func (e *gormEngine) toggleSubscription(ctx context.Context, tx *gorm.DB, actorID, targetID uint64, res *Result) error {
	subRepo := repository.NewSubscriptionRepository(tx)

	sub := &model.Subscription{SubscriberID: actorID, ChannelID: targetID}
	err := subRepo.Create(ctx, sub)
	switch {
	case err == nil:
		res.Active = true
	case repository.IsDuplicateEntry(err):
		if err := subRepo.DeleteBySubscriberChannel(ctx, actorID, targetID); err != nil {
			return err
		}
		res.Active = false
	default:
		return err
	}

	total, err := subRepo.CountForChannel(ctx, targetID)
	if err != nil {
		return err
	}
	res.TotalCount = total
	return nil
}

// 每种Kind的目标落在不同的表里
func (e *gormEngine) ensureTargetExists(ctx context.Context, kind Kind, targetID uint64) error {
	var (
		dest        interface{}
		notFoundMsg string
	)
	switch kind {
	case KindVideoLike:
		dest, notFoundMsg = &model.Video{}, "视频不存在"
	case KindCommentLike:
		dest, notFoundMsg = &model.Comment{}, "评论不存在"
	case KindTweetLike:
		dest, notFoundMsg = &model.Tweet{}, "动态不存在"
	case KindSubscription:
		dest, notFoundMsg = &model.User{}, "频道不存在"
	}
	err := e.db.WithContext(ctx).Select("id").First(dest, targetID).Error
	if err != nil {
		return apperr.FromDB(err, notFoundMsg)
	}
	return nil
}
