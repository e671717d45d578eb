package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler interface {
	Toggle(c *gin.Context)
	Subscribers(c *gin.Context)
	SubscribedChannels(c *gin.Context)
}

type subscriptionHandler struct {
	SubscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{SubscriptionService: subscriptionService}
}

func (h *subscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		sendError(c, err)
		return
	}
	subscriberID := currentUserID(c)
	logCtx := logger.Log.WithField("subscriber_id", subscriberID).WithField("channel_id", channelID)

	res, err := h.SubscriptionService.Toggle(c.Request.Context(), subscriberID, channelID)
	if err != nil {
		logCtx.WithError(err).Warn("订阅状态翻转失败")
		sendError(c, err)
		return
	}
	logCtx.WithField("active", res.Active).Info("订阅状态翻转成功")
	sendSuccess(c, http.StatusOK, res, "操作成功")
}

func (h *subscriptionHandler) Subscribers(c *gin.Context) {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		sendError(c, err)
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	subs, total, err := h.SubscriptionService.Subscribers(c.Request.Context(), channelID, p)
	if err != nil {
		logger.Log.WithError(err).WithField("channel_id", channelID).Warn("获取订阅者列表失败")
		sendError(c, err)
		return
	}
	result := pagination.NewResult(dto.ToSubscriberInfos(subs), total, p)
	sendSuccess(c, http.StatusOK, result, "获取订阅者列表成功")
}

func (h *subscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID, err := parseIDParam(c, "subscriberId")
	if err != nil {
		sendError(c, err)
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	subs, total, err := h.SubscriptionService.SubscribedChannels(c.Request.Context(), subscriberID, p)
	if err != nil {
		logger.Log.WithError(err).WithField("subscriber_id", subscriberID).Warn("获取订阅频道列表失败")
		sendError(c, err)
		return
	}
	result := pagination.NewResult(dto.ToChannelInfos(subs), total, p)
	sendSuccess(c, http.StatusOK, result, "获取订阅频道列表成功")
}
