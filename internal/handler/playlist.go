package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler interface {
	Create(c *gin.Context)
	ListForUser(c *gin.Context)
	GetByID(c *gin.Context)
	AddVideo(c *gin.Context)
	RemoveVideo(c *gin.Context)
	UpdateInfo(c *gin.Context)
	Delete(c *gin.Context)
}

type playlistHandler struct {
	PlaylistService service.PlaylistService
}

func NewPlaylistHandler(playlistService service.PlaylistService) PlaylistHandler {
	return &playlistHandler{PlaylistService: playlistService}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *playlistHandler) Create(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, errInvalidBody)
		return
	}
	ownerID := currentUserID(c)
	logCtx := logger.Log.WithField("owner_id", ownerID).WithField("name", req.Name)

	playlist, err := h.PlaylistService.Create(c.Request.Context(), ownerID, req.Name, req.Description)
	if err != nil {
		logCtx.WithError(err).Warn("创建播放列表失败")
		sendError(c, err)
		return
	}
	logCtx.WithField("playlist_id", playlist.ID).Info("播放列表创建成功")
	sendSuccess(c, http.StatusCreated, dto.ToPlaylistResponse(playlist), "播放列表创建成功")
}

func (h *playlistHandler) ListForUser(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		sendError(c, err)
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	playlists, total, err := h.PlaylistService.ListForUser(c.Request.Context(), userID, p)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("获取播放列表失败")
		sendError(c, err)
		return
	}
	result := pagination.NewResult(dto.ToPlaylistResponses(playlists), total, p)
	sendSuccess(c, http.StatusOK, result, "获取播放列表成功")
}

// 详情带完整的视频列表（含每个视频的作者）
func (h *playlistHandler) GetByID(c *gin.Context) {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		sendError(c, err)
		return
	}
	playlist, entries, err := h.PlaylistService.GetByID(c.Request.Context(), playlistID)
	if err != nil {
		logger.Log.WithError(err).WithField("playlist_id", playlistID).Warn("获取播放列表详情失败")
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistDetailResponse(playlist, entries), "获取播放列表详情成功")
}

func (h *playlistHandler) AddVideo(c *gin.Context) {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		sendError(c, err)
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		sendError(c, err)
		return
	}
	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("playlist_id", playlistID).WithField("video_id", videoID).WithField("actor_id", actorID)

	playlist, entries, err := h.PlaylistService.AddVideo(c.Request.Context(), playlistID, videoID, actorID)
	if err != nil {
		logCtx.WithError(err).Warn("添加视频到播放列表失败")
		sendError(c, err)
		return
	}
	logCtx.Info("视频已加入播放列表")
	sendSuccess(c, http.StatusOK, dto.ToPlaylistDetailResponse(playlist, entries), "视频已加入播放列表")
}

func (h *playlistHandler) RemoveVideo(c *gin.Context) {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		sendError(c, err)
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		sendError(c, err)
		return
	}
	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("playlist_id", playlistID).WithField("video_id", videoID).WithField("actor_id", actorID)

	playlist, entries, err := h.PlaylistService.RemoveVideo(c.Request.Context(), playlistID, videoID, actorID)
	if err != nil {
		logCtx.WithError(err).Warn("从播放列表移除视频失败")
		sendError(c, err)
		return
	}
	logCtx.Info("视频已移出播放列表")
	sendSuccess(c, http.StatusOK, dto.ToPlaylistDetailResponse(playlist, entries), "视频已移出播放列表")
}

func (h *playlistHandler) UpdateInfo(c *gin.Context) {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		sendError(c, err)
		return
	}
	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, errInvalidBody)
		return
	}
	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("playlist_id", playlistID).WithField("actor_id", actorID)

	playlist, err := h.PlaylistService.UpdateInfo(c.Request.Context(), playlistID, actorID, req.Name, req.Description)
	if err != nil {
		logCtx.WithError(err).Warn("更新播放列表失败")
		sendError(c, err)
		return
	}
	logCtx.Info("播放列表更新成功")
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist), "播放列表更新成功")
}

func (h *playlistHandler) Delete(c *gin.Context) {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		sendError(c, err)
		return
	}
	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("playlist_id", playlistID).WithField("actor_id", actorID)

	if err := h.PlaylistService.Delete(c.Request.Context(), playlistID, actorID); err != nil {
		logCtx.WithError(err).Warn("删除播放列表失败")
		sendError(c, err)
		return
	}
	logCtx.Info("播放列表删除成功")
	sendSuccess(c, http.StatusOK, nil, "删除播放列表成功")
}
