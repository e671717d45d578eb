package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	Add(c *gin.Context)
	ListForVideo(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{CommentService: commentService}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *commentHandler) Add(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		sendError(c, err)
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, errInvalidBody)
		return
	}
	ownerID := currentUserID(c)
	logCtx := logger.Log.WithField("video_id", videoID).WithField("owner_id", ownerID)

	comment, err := h.CommentService.Add(c.Request.Context(), videoID, ownerID, req.Content)
	if err != nil {
		logCtx.WithError(err).Warn("发表评论失败")
		sendError(c, err)
		return
	}
	logCtx.WithField("comment_id", comment.ID).Info("评论发表成功")
	sendSuccess(c, http.StatusCreated, dto.ToCommentResponse(comment), "评论发表成功")
}

func (h *commentHandler) ListForVideo(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		sendError(c, err)
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	comments, total, err := h.CommentService.ListForVideo(c.Request.Context(), videoID, p)
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("获取评论列表失败")
		sendError(c, err)
		return
	}
	result := pagination.NewResult(dto.ToCommentResponses(comments), total, p)
	sendSuccess(c, http.StatusOK, result, "获取评论列表成功")
}

func (h *commentHandler) Update(c *gin.Context) {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		sendError(c, err)
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, errInvalidBody)
		return
	}
	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("comment_id", commentID).WithField("actor_id", actorID)

	comment, err := h.CommentService.Update(c.Request.Context(), commentID, actorID, req.Content)
	if err != nil {
		logCtx.WithError(err).Warn("更新评论失败")
		sendError(c, err)
		return
	}
	logCtx.Info("评论更新成功")
	sendSuccess(c, http.StatusOK, dto.ToCommentResponse(comment), "评论更新成功")
}

func (h *commentHandler) Delete(c *gin.Context) {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		sendError(c, err)
		return
	}
	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("comment_id", commentID).WithField("actor_id", actorID)

	if err := h.CommentService.Delete(c.Request.Context(), commentID, actorID); err != nil {
		logCtx.WithError(err).Warn("删除评论失败")
		sendError(c, err)
		return
	}
	logCtx.Info("评论删除成功")
	sendSuccess(c, http.StatusOK, nil, "删除评论成功")
}
