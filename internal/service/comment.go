package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/data"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/repository"
	"context"
)

type CommentService interface {
	Add(ctx context.Context, videoID, ownerID uint64, content string) (*model.Comment, error)
	ListForVideo(ctx context.Context, videoID uint64, p pagination.Params) ([]model.Comment, int64, error)
	Update(ctx context.Context, commentID, actorID uint64, content string) (*model.Comment, error)
	Delete(ctx context.Context, commentID, actorID uint64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	uow         data.UnitOfWork
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	uow data.UnitOfWork,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		uow:         uow,
	}
}

// Add 评论必须挂在存在的视频下
func (s *commentService) Add(ctx context.Context, videoID, ownerID uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apperr.New(apperr.InvalidArgument, "评论内容不能为空")
	}
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		return nil, apperr.FromDB(err, "视频不存在")
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperr.FromDB(err, "评论不存在")
	}
	// 带Owner重查，响应里要有作者信息
	return s.loadComment(ctx, comment.ID)
}

func (s *commentService) ListForVideo(ctx context.Context, videoID uint64, p pagination.Params) ([]model.Comment, int64, error) {
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		return nil, 0, apperr.FromDB(err, "视频不存在")
	}
	comments, total, err := s.commentRepo.FindByVideoID(ctx, videoID, p)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "评论不存在")
	}
	return comments, total, nil
}

func (s *commentService) Update(ctx context.Context, commentID, actorID uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apperr.New(apperr.InvalidArgument, "评论内容不能为空")
	}
	if _, err := s.mustOwnComment(ctx, commentID, actorID); err != nil {
		return nil, err
	}
	if err := s.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, apperr.FromDB(err, "评论不存在")
	}
	return s.loadComment(ctx, commentID)
}

// Delete 删评论要把它的点赞一起清理，两张表放进同一个事务
func (s *commentService) Delete(ctx context.Context, commentID, actorID uint64) error {
	if _, err := s.mustOwnComment(ctx, commentID, actorID); err != nil {
		return err
	}
	err := s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if err := repos.LikeRepo.DeleteByTarget(ctx, model.TargetComment, commentID); err != nil {
			return err
		}
		return repos.CommentRepo.Delete(ctx, commentID)
	})
	if err != nil {
		return apperr.FromDB(err, "评论不存在")
	}
	return nil
}

func (s *commentService) mustOwnComment(ctx context.Context, commentID, actorID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, apperr.FromDB(err, "评论不存在")
	}
	if comment.OwnerID != actorID {
		return nil, apperr.New(apperr.Forbidden, "无权操作他人的评论")
	}
	return comment, nil
}

func (s *commentService) loadComment(ctx context.Context, commentID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, apperr.FromDB(err, "评论不存在")
	}
	return comment, nil
}
