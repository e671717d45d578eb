package data

import (
	"Nova_Tube/internal/repository"
	"context"

	"gorm.io/gorm"
)

// UnitOfWork 把一个函数包裹在数据库事务中执行
// 多表级联删除（删视频连带评论/点赞/播放列表引用/观看历史）必须走这里，一荣俱荣，一损俱损
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository
type TransactionalRepositories struct {
	VideoRepo    repository.VideoRepository
	CommentRepo  repository.CommentRepository
	LikeRepo     repository.LikeRepository
	PlaylistRepo repository.PlaylistRepository
	HistoryRepo  repository.WatchHistoryRepository
	TweetRepo    repository.TweetRepository
}

// db是事务的入口和管理者
type gormUnitOfWork struct {
	db           *gorm.DB
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	playlistRepo repository.PlaylistRepository
	historyRepo  repository.WatchHistoryRepository
	tweetRepo    repository.TweetRepository
}

// NewUnitOfWork 创建基于GORM的“工作单元”，接收的是原始的、非事务的 repositories
func NewUnitOfWork(
	db *gorm.DB,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	playlistRepo repository.PlaylistRepository,
	historyRepo repository.WatchHistoryRepository,
	tweetRepo repository.TweetRepository,
) UnitOfWork {
	return &gormUnitOfWork{
		db:           db,
		videoRepo:    videoRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		playlistRepo: playlistRepo,
		historyRepo:  historyRepo,
		tweetRepo:    tweetRepo,
	}
}

// Execute 为fn创建事务，把绑定到该事务的Repo副本“注入”进去
// fn返回error，gorm发ROLLBACK；返回nil，gorm发COMMIT
func (u *gormUnitOfWork) Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactionalRepos := &TransactionalRepositories{
			VideoRepo:    u.videoRepo.WithTx(tx),
			CommentRepo:  u.commentRepo.WithTx(tx),
			LikeRepo:     u.likeRepo.WithTx(tx),
			PlaylistRepo: u.playlistRepo.WithTx(tx),
			HistoryRepo:  u.historyRepo.WithTx(tx),
			TweetRepo:    u.tweetRepo.WithTx(tx),
		}
		return fn(transactionalRepos)
	})
}
