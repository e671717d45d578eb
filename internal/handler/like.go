package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/relation"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	LikedVideos(c *gin.Context)
}

type likeHandler struct {
	LikeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) LikeHandler {
	return &likeHandler{LikeService: likeService}
}

// 三个toggle接口只差路径参数名和service方法，统一走这里
func (h *likeHandler) toggle(
	c *gin.Context,
	paramName string,
	do func(ctx context.Context, userID, targetID uint64) (*relation.Result, error),
) {
	targetID, err := parseIDParam(c, paramName)
	if err != nil {
		sendError(c, err)
		return
	}
	userID := currentUserID(c)
	logCtx := logger.Log.WithField("user_id", userID).WithField(paramName, targetID)

	res, err := do(c.Request.Context(), userID, targetID)
	if err != nil {
		logCtx.WithError(err).Warn("点赞状态翻转失败")
		sendError(c, err)
		return
	}
	logCtx.WithField("active", res.Active).Info("点赞状态翻转成功")
	sendSuccess(c, http.StatusOK, res, "操作成功")
}

func (h *likeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "videoId", h.LikeService.ToggleVideoLike)
}

func (h *likeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "commentId", h.LikeService.ToggleCommentLike)
}

func (h *likeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweetId", h.LikeService.ToggleTweetLike)
}

func (h *likeHandler) LikedVideos(c *gin.Context) {
	userID := currentUserID(c)
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	videos, total, err := h.LikeService.LikedVideos(c.Request.Context(), userID, p)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("获取点赞视频失败")
		sendError(c, err)
		return
	}
	result := pagination.NewResult(dto.ToVideoResponses(videos), total, p)
	sendSuccess(c, http.StatusOK, result, "获取点赞视频成功")
}
