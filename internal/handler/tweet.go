package handler

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TweetHandler interface {
	Create(c *gin.Context)
	ListForUser(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type tweetHandler struct {
	TweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) TweetHandler {
	return &tweetHandler{TweetService: tweetService}
}

type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *tweetHandler) Create(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, errInvalidBody)
		return
	}
	ownerID := currentUserID(c)
	logCtx := logger.Log.WithField("owner_id", ownerID)

	tweet, err := h.TweetService.Create(c.Request.Context(), ownerID, req.Content)
	if err != nil {
		logCtx.WithError(err).Warn("发布动态失败")
		sendError(c, err)
		return
	}
	logCtx.WithField("tweet_id", tweet.ID).Info("动态发布成功")
	sendSuccess(c, http.StatusCreated, dto.ToTweetResponse(tweet), "动态发布成功")
}

// 用户的动态列表：userId查询参数缺省时看自己的
func (h *tweetHandler) ListForUser(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("userId"), 10, 64)
	if userID == 0 {
		userID = currentUserID(c)
	}
	if userID == 0 {
		sendError(c, apperr.New(apperr.InvalidArgument, "缺少userId"))
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	tweets, total, err := h.TweetService.ListForUser(c.Request.Context(), userID, p)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("获取动态列表失败")
		sendError(c, err)
		return
	}
	result := pagination.NewResult(dto.ToTweetResponses(tweets), total, p)
	sendSuccess(c, http.StatusOK, result, "获取动态列表成功")
}

func (h *tweetHandler) Update(c *gin.Context) {
	tweetID, err := parseIDParam(c, "tweetId")
	if err != nil {
		sendError(c, err)
		return
	}
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, errInvalidBody)
		return
	}
	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("tweet_id", tweetID).WithField("actor_id", actorID)

	tweet, err := h.TweetService.Update(c.Request.Context(), tweetID, actorID, req.Content)
	if err != nil {
		logCtx.WithError(err).Warn("更新动态失败")
		sendError(c, err)
		return
	}
	logCtx.Info("动态更新成功")
	sendSuccess(c, http.StatusOK, dto.ToTweetResponse(tweet), "动态更新成功")
}

func (h *tweetHandler) Delete(c *gin.Context) {
	tweetID, err := parseIDParam(c, "tweetId")
	if err != nil {
		sendError(c, err)
		return
	}
	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("tweet_id", tweetID).WithField("actor_id", actorID)

	if err := h.TweetService.Delete(c.Request.Context(), tweetID, actorID); err != nil {
		logCtx.WithError(err).Warn("删除动态失败")
		sendError(c, err)
		return
	}
	logCtx.Info("动态删除成功")
	sendSuccess(c, http.StatusOK, nil, "删除动态成功")
}
