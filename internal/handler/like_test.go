package handler

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/middleware"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/relation"
	"Nova_Tube/pkg/logger"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// 测试里不写日志文件
	logger.Log = logrus.New()
	logger.Log.SetLevel(logrus.PanicLevel)
	gin.SetMode(gin.TestMode)
	m.Run()
}

// fakeLikeService 记录收到的参数并返回预设结果
type fakeLikeService struct {
	result     *relation.Result
	err        error
	gotUserID  uint64
	gotTarget  uint64
	likedResp  []model.Video
	likedTotal int64
}

func (f *fakeLikeService) ToggleVideoLike(ctx context.Context, userID, videoID uint64) (*relation.Result, error) {
	f.gotUserID, f.gotTarget = userID, videoID
	return f.result, f.err
}

func (f *fakeLikeService) ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*relation.Result, error) {
	f.gotUserID, f.gotTarget = userID, commentID
	return f.result, f.err
}

func (f *fakeLikeService) ToggleTweetLike(ctx context.Context, userID, tweetID uint64) (*relation.Result, error) {
	f.gotUserID, f.gotTarget = userID, tweetID
	return f.result, f.err
}

func (f *fakeLikeService) LikedVideos(ctx context.Context, userID uint64, p pagination.Params) ([]model.Video, int64, error) {
	f.gotUserID = userID
	return f.likedResp, f.likedTotal, f.err
}

// 测试路由：用一个假的认证中间件把actor放进Context
func setupLikeRouter(svc *fakeLikeService, userID uint64) *gin.Engine {
	r := gin.New()
	h := NewLikeHandler(svc)
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(middleware.CtxUserID, userID)
		}
	})
	r.POST("/likes/toggleVideoLikeStatus/:videoId", h.ToggleVideoLike)
	r.GET("/likes/getAllLikedVideos", h.LikedVideos)
	return r
}

func TestToggleVideoLikeEnvelope(t *testing.T) {
	svc := &fakeLikeService{result: &relation.Result{Active: true, TotalCount: 3}}
	r := setupLikeRouter(svc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/likes/toggleVideoLikeStatus/42", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(7), svc.gotUserID)
	assert.Equal(t, uint64(42), svc.gotTarget)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(http.StatusOK), body["statusCode"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["active"])
	assert.Equal(t, float64(3), data["totalCount"])
}

func TestToggleVideoLikeBadID(t *testing.T) {
	svc := &fakeLikeService{}
	r := setupLikeRouter(svc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/likes/toggleVideoLikeStatus/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestToggleVideoLikeTargetMissing(t *testing.T) {
	svc := &fakeLikeService{err: apperr.New(apperr.NotFound, "视频不存在")}
	r := setupLikeRouter(svc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/likes/toggleVideoLikeStatus/42", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "视频不存在", body["message"])
	assert.Nil(t, body["data"])
}

// 零条点赞是成功：items为空数组，总数为0
func TestLikedVideosEmpty(t *testing.T) {
	svc := &fakeLikeService{likedResp: nil, likedTotal: 0}
	r := setupLikeRouter(svc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/likes/getAllLikedVideos", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)

	items, ok := data["items"].([]interface{})
	require.True(t, ok, "items必须是数组而不是null")
	assert.Len(t, items, 0)
	assert.Equal(t, float64(0), data["totalItems"])
	assert.Equal(t, float64(0), data["totalPages"])
}
