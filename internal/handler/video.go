package handler

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/repository"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	Publish(c *gin.Context)
	GetAll(c *gin.Context)
	GetByID(c *gin.Context)
	UpdateDetails(c *gin.Context)
	Delete(c *gin.Context)
	TogglePublished(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) VideoHandler {
	return &videoHandler{VideoService: videoService}
}

// 发布视频：multipart表单，video和cover两个文件字段 + title/description/duration
func (h *videoHandler) Publish(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		sendError(c, apperr.New(apperr.InvalidArgument, "标题不能为空"))
		return
	}
	duration, err := strconv.ParseFloat(c.PostForm("duration"), 64)
	if err != nil || duration < 0 {
		sendError(c, apperr.New(apperr.InvalidArgument, "无效的视频时长"))
		return
	}

	videoHeader, err := c.FormFile("video")
	if err != nil {
		sendError(c, apperr.New(apperr.InvalidArgument, "缺少视频文件"))
		return
	}
	coverHeader, err := c.FormFile("cover")
	if err != nil {
		sendError(c, apperr.New(apperr.InvalidArgument, "缺少封面文件"))
		return
	}
	videoFile, err := videoHeader.Open()
	if err != nil {
		sendError(c, errMissingFile)
		return
	}
	defer videoFile.Close()
	coverFile, err := coverHeader.Open()
	if err != nil {
		sendError(c, errMissingFile)
		return
	}
	defer coverFile.Close()

	ownerID := currentUserID(c)
	logCtx := logger.Log.WithField("owner_id", ownerID).WithField("title", title)
	logCtx.Info("开始处理发布视频请求")

	video, err := h.VideoService.Publish(c.Request.Context(), ownerID, service.PublishVideoInput{
		Title:         title,
		Description:   c.PostForm("description"),
		Duration:      duration,
		VideoFilename: videoHeader.Filename,
		VideoFile:     videoFile,
		CoverFilename: coverHeader.Filename,
		CoverFile:     coverFile,
	})
	if err != nil {
		logCtx.WithError(err).Error("发布视频失败")
		sendError(c, err)
		return
	}
	logCtx.WithField("video_id", video.ID).Info("视频发布成功")
	sendSuccess(c, http.StatusCreated, dto.ToVideoResponse(video), "视频发布成功")
}

// 视频列表：query模糊搜索 + userId过滤 + sortBy/sortType排序 + 分页
// 挂在OptionalAuth后面，登录用户能看到自己未发布的视频
func (h *videoHandler) GetAll(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))
	ownerID, _ := strconv.ParseUint(c.Query("userId"), 10, 64)

	filter := repository.VideoFilter{
		Query:    c.Query("query"),
		OwnerID:  ownerID,
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		ViewerID: currentUserID(c),
	}

	videos, total, err := h.VideoService.List(c.Request.Context(), filter, p)
	if err != nil {
		logger.Log.WithError(err).Error("获取视频列表失败")
		sendError(c, err)
		return
	}
	result := pagination.NewResult(dto.ToVideoResponses(videos), total, p)
	sendSuccess(c, http.StatusOK, result, "获取视频列表成功")
}

func (h *videoHandler) GetByID(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		sendError(c, err)
		return
	}
	video, err := h.VideoService.GetByID(c.Request.Context(), videoID, currentUserID(c))
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("查找视频失败")
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "获取视频成功")
}

// 更新视频信息：multipart表单，title/description/cover都是可选的，只改给了的
func (h *videoHandler) UpdateDetails(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		sendError(c, err)
		return
	}

	input := service.UpdateVideoInput{}
	if title, ok := c.GetPostForm("title"); ok {
		input.Title = &title
	}
	if description, ok := c.GetPostForm("description"); ok {
		input.Description = &description
	}
	if coverHeader, err := c.FormFile("cover"); err == nil {
		coverFile, err := coverHeader.Open()
		if err != nil {
			sendError(c, errMissingFile)
			return
		}
		defer coverFile.Close()
		input.CoverFile = coverFile
		input.CoverName = coverHeader.Filename
	}

	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("video_id", videoID).WithField("actor_id", actorID)

	video, err := h.VideoService.UpdateDetails(c.Request.Context(), videoID, actorID, input)
	if err != nil {
		logCtx.WithError(err).Warn("更新视频信息失败")
		sendError(c, err)
		return
	}
	logCtx.Info("更新视频信息成功")
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "更新视频信息成功")
}

func (h *videoHandler) Delete(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		sendError(c, err)
		return
	}
	actorID := currentUserID(c)
	logCtx := logger.Log.WithField("video_id", videoID).WithField("actor_id", actorID)
	logCtx.Info("开始处理删除视频请求")

	if err := h.VideoService.Delete(c.Request.Context(), videoID, actorID); err != nil {
		logCtx.WithError(err).Warn("删除视频失败")
		sendError(c, err)
		return
	}
	logCtx.Info("视频及其关联数据已删除")
	sendSuccess(c, http.StatusOK, nil, "删除视频成功")
}

func (h *videoHandler) TogglePublished(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		sendError(c, err)
		return
	}
	video, err := h.VideoService.TogglePublished(c.Request.Context(), videoID, currentUserID(c))
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("切换发布状态失败")
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "切换发布状态成功")
}
