package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/relation"
	"Nova_Tube/internal/repository"
	"Nova_Tube/pkg/logger"
	"context"
	"encoding/json"

	"github.com/streadway/amqp"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueLike    = "novatube.like.queue"
	ActionLike   = "like"
	ActionUnlike = "unlike"
)

// LikeMessage 是通知consumer维护冗余like_count的消息体
type LikeMessage struct {
	TargetType string `json:"target_type"` // video / comment / tweet
	TargetID   uint64 `json:"target_id"`
	Action     string `json:"action"` // "like" or "unlike"
}

type LikeService interface {
	// Toggle* 翻转点赞状态，返回(是否已点赞, 目标当前总赞数)
	ToggleVideoLike(ctx context.Context, userID, videoID uint64) (*relation.Result, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*relation.Result, error)
	ToggleTweetLike(ctx context.Context, userID, tweetID uint64) (*relation.Result, error)

	// LikedVideos 当前用户点赞过的全部视频，按点赞时间倒序分页
	LikedVideos(ctx context.Context, userID uint64, p pagination.Params) ([]model.Video, int64, error)
}

type likeService struct {
	engine       relation.Engine
	likeRepo     repository.LikeRepository
	videoRepo    repository.VideoRepository
	rabbitMQConn *amqp.Connection
}

// NewLikeService 构造时顺便声明队列（幂等），rabbitMQConn可以为nil（测试/降级运行）
func NewLikeService(
	engine relation.Engine,
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	rabbitMQConn *amqp.Connection,
) LikeService {
	if rabbitMQConn != nil {
		ch, err := rabbitMQConn.Channel()
		if err != nil {
			logger.Log.WithError(err).Fatal("无法打开RabbitMQ Channel")
		}
		defer ch.Close()
		// durable队列，RabbitMQ重启后队列本身不丢
		_, err = ch.QueueDeclare(
			QueueLike, // name
			true,      // durable
			false,     // autoDelete
			false,     // exclusive
			false,     // noWait
			nil,       // args
		)
		if err != nil {
			logger.Log.WithError(err).Fatal("无法声明点赞队列")
		}
	}

	return &likeService{
		engine:       engine,
		likeRepo:     likeRepo,
		videoRepo:    videoRepo,
		rabbitMQConn: rabbitMQConn,
	}
}

func (s *likeService) ToggleVideoLike(ctx context.Context, userID, videoID uint64) (*relation.Result, error) {
	return s.toggle(ctx, userID, videoID, relation.KindVideoLike)
}

func (s *likeService) ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*relation.Result, error) {
	return s.toggle(ctx, userID, commentID, relation.KindCommentLike)
}

func (s *likeService) ToggleTweetLike(ctx context.Context, userID, tweetID uint64) (*relation.Result, error) {
	return s.toggle(ctx, userID, tweetID, relation.KindTweetLike)
}

// toggle 状态翻转由引擎同步保证；冗余的like_count交给consumer异步刷新
// 消息发不出去不影响本次toggle的结果（likes表才是事实来源），只记日志
func (s *likeService) toggle(ctx context.Context, userID, targetID uint64, kind relation.Kind) (*relation.Result, error) {
	res, err := s.engine.Toggle(ctx, userID, targetID, kind)
	if err != nil {
		return nil, err
	}

	targetType, _ := kind.TargetType()
	action := ActionUnlike
	if res.Active {
		action = ActionLike
	}
	msg := LikeMessage{TargetType: targetType, TargetID: targetID, Action: action}
	if err := s.publishLikeMessage(msg); err != nil {
		logger.Log.WithError(err).
			WithField("target_type", targetType).
			WithField("target_id", targetID).
			Warn("点赞消息发布失败，冗余计数延迟更新")
	}
	return res, nil
}

func (s *likeService) LikedVideos(ctx context.Context, userID uint64, p pagination.Params) ([]model.Video, int64, error) {
	likes, total, err := s.likeRepo.FindVideoLikes(ctx, userID, p)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "视频不存在")
	}

	ids := make([]uint64, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.TargetID)
	}
	videos, err := s.videoRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "视频不存在")
	}

	// IN查询不保序，按点赞时间重排
	byID := make(map[uint64]model.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	ordered := make([]model.Video, 0, len(likes))
	for _, like := range likes {
		if v, ok := byID[like.TargetID]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, total, nil
}

// 每条消息用一个独立的临时channel，互不影响
func (s *likeService) publishLikeMessage(msg LikeMessage) error {
	if s.rabbitMQConn == nil {
		return nil
	}
	ch, err := s.rabbitMQConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ch.Publish(
		"",        // exchange默认交换机
		QueueLike, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}
