package main

import (
	"Nova_Tube/internal/config"
	"Nova_Tube/internal/data"
	"Nova_Tube/internal/handler"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/relation"
	"Nova_Tube/internal/repository"
	"Nova_Tube/internal/router"
	"Nova_Tube/internal/service"
	"Nova_Tube/internal/storage"
	"Nova_Tube/pkg/logger"
	"Nova_Tube/pkg/rabbitmq"
	"Nova_Tube/pkg/redis"
	"context"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// 加载.env文件，没有也不致命（容器环境直接注入环境变量）
	_ = godotenv.Load()
	logger.InitLogger()

	cfg := config.Load()

	// 初始化Redis
	redisClient, err := redis.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	logger.Log.Info("Redis连接成功")

	// 初始化RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	logger.Log.Info("RabbitMQ连接成功")

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")

	// AutoMigrate：没有表就建表，没有列就加列，不会删改已有结构
	err = db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Tweet{},
		&model.WatchHistory{},
	)
	if err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	// 对象存储
	uploader, err := storage.NewS3Storage(context.Background(), cfg.ObjectStore)
	if err != nil {
		logger.Log.Fatalf("对象存储初始化失败: %v", err)
	}
	logger.Log.Info("对象存储初始化成功")

	// repository层
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	uow := data.NewUnitOfWork(db, videoRepo, commentRepo, likeRepo, playlistRepo, historyRepo, tweetRepo)
	toggleEngine := relation.NewEngine(db)
	tokens := service.NewTokenIssuer(cfg)

	// service层
	userService := service.NewUserService(userRepo, subRepo, historyRepo, uploader, tokens)
	videoService := service.NewVideoService(videoRepo, historyRepo, uow, uploader)
	commentService := service.NewCommentService(commentRepo, videoRepo, uow)
	likeService := service.NewLikeService(toggleEngine, likeRepo, videoRepo, rabbitMQConn)
	subService := service.NewSubscriptionService(toggleEngine, subRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo, uow)

	// handler层
	handlers := router.Handlers{
		User:         handler.NewUserHandler(userService, tokens),
		Video:        handler.NewVideoHandler(videoService),
		Comment:      handler.NewCommentHandler(commentService),
		Like:         handler.NewLikeHandler(likeService),
		Subscription: handler.NewSubscriptionHandler(subService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Tweet:        handler.NewTweetHandler(tweetService),
	}

	r := router.SetupRouter(handlers, cfg.JWTAccessSecret, cfg.RequestTimeout)
	logger.Log.Printf("服务器将在 %s 启动", cfg.ServerAddr)

	if err := r.Run(cfg.ServerAddr); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
