package main

import (
	"Nova_Tube/internal/config"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"Nova_Tube/pkg/rabbitmq"
	"context"
	"encoding/json"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 消费者进程：从MQ接收点赞事件，把冗余的like_count刷进对应的表
// likes表是事实来源，这里只维护展示用的计数
func main() {
	_ = godotenv.Load()
	logger.InitLogger()
	cfg := config.Load()

	db, err := gorm.Open(gorm_mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到数据库: %v", err)
	}

	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()

	videoRepo := repository.NewVideoRepository(db, nil)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	consumeLikes(rabbitMQConn, videoRepo, commentRepo, tweetRepo)
}

// like消息消费者：注册消费者后在goroutine里持续读channel
// 计数更新是单条UPDATE的原子操作，不需要额外的事务
func consumeLikes(
	conn *amqp.Connection,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	// 声明队列（幂等），消费者可能比服务端先启动
	_, err = ch.QueueDeclare(
		service.QueueLike, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	)
	if err != nil {
		logger.Log.Fatalf("无法声明点赞队列: %v", err)
	}

	msgs, err := ch.Consume(
		service.QueueLike, // queue
		"",                // consumer
		false,             // auto-ack: 手动确认，处理失败的消息要重试
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册点赞消费者: %v", err)
	}

	forever := make(chan bool)

	go func() {
		ctx := context.Background()
		// msgs是channel，队列为空时阻塞而不是退出
		for d := range msgs {
			logCtx := logger.Log.WithField("body", string(d.Body)).WithField("redelivered", d.Redelivered)
			logCtx.Info("收到一条点赞消息")

			var msg service.LikeMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				logCtx.WithError(err).Error("消息JSON解析失败")
				// 解析不了的坏消息，重试也没用，直接丢弃
				d.Nack(false, false)
				continue
			}

			opErr := applyCountDelta(ctx, msg, videoRepo, commentRepo, tweetRepo)
			if opErr != nil {
				var mysqlErr *mysql.MySQLError
				if errors.As(opErr, &mysqlErr) && mysqlErr.Number == 1062 {
					// 重复键意味着重复消费，按成功确认
					logCtx.WithError(opErr).Warn("处理消息时出现重复键错误，可能是一次重复消费，消息将被确认为成功。")
					d.Ack(false)
				} else {
					logCtx.WithError(opErr).Error("处理消息失败，将进行重试")
					d.Nack(false, true)
				}
			} else {
				d.Ack(false)
			}
		}
	}()
	logger.Log.Info(" [*] 等待点赞消息中. 按 CTRL+C 退出")
	<-forever
}

// applyCountDelta 按目标类型分发计数更新
func applyCountDelta(
	ctx context.Context,
	msg service.LikeMessage,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) error {
	increment := msg.Action == service.ActionLike

	switch msg.TargetType {
	case model.TargetVideo:
		if increment {
			return videoRepo.IncrementLikeCount(ctx, msg.TargetID)
		}
		return videoRepo.DecrementLikeCount(ctx, msg.TargetID)
	case model.TargetComment:
		if increment {
			return commentRepo.IncrementLikeCount(ctx, msg.TargetID)
		}
		return commentRepo.DecrementLikeCount(ctx, msg.TargetID)
	case model.TargetTweet:
		if increment {
			return tweetRepo.IncrementLikeCount(ctx, msg.TargetID)
		}
		return tweetRepo.DecrementLikeCount(ctx, msg.TargetID)
	default:
		logger.Log.WithField("target_type", msg.TargetType).Warn("未知的点赞目标类型，消息被忽略")
		return nil
	}
}
