package handler

import (
	"Nova_Tube/internal/middleware"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVideoService 只实现Publish，其余走内嵌的nil接口，误用会panic
type fakeVideoService struct {
	service.VideoService
	published *model.Video
	gotOwner  uint64
	gotInput  service.PublishVideoInput
	calls     int
}

func (f *fakeVideoService) Publish(ctx context.Context, ownerID uint64, input service.PublishVideoInput) (*model.Video, error) {
	f.calls++
	f.gotOwner, f.gotInput = ownerID, input
	return f.published, nil
}

func setupVideoRouter(svc *fakeVideoService, userID uint64) *gin.Engine {
	r := gin.New()
	h := NewVideoHandler(svc)
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
	})
	r.POST("/videos/publishVideo", h.Publish)
	return r
}

// 组装发布视频的multipart表单，video和cover两个文件字段
func publishForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	videoPart, err := mw.CreateFormFile("video", "clip.mp4")
	require.NoError(t, err)
	_, _ = videoPart.Write([]byte("视频数据"))
	coverPart, err := mw.CreateFormFile("cover", "cover.png")
	require.NoError(t, err)
	_, _ = coverPart.Write([]byte("封面数据"))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// 时长写错不能被默默当成0，必须当场400
func TestPublishRejectsBadDuration(t *testing.T) {
	for _, duration := range []string{"", "abc", "-1"} {
		t.Run("duration="+duration, func(t *testing.T) {
			svc := &fakeVideoService{}
			r := setupVideoRouter(svc, 7)

			body, contentType := publishForm(t, map[string]string{
				"title":    "标题",
				"duration": duration,
			})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/videos/publishVideo", body)
			req.Header.Set("Content-Type", contentType)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, svc.calls, "非法时长不应该到达service层")

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, "无效的视频时长", resp["message"])
		})
	}
}

func TestPublishPassesDuration(t *testing.T) {
	published := &model.Video{OwnerID: 7, Title: "标题", Duration: 12.5, Published: true}
	published.ID = 1
	svc := &fakeVideoService{published: published}
	r := setupVideoRouter(svc, 7)

	body, contentType := publishForm(t, map[string]string{
		"title":    "标题",
		"duration": "12.5",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/videos/publishVideo", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint64(7), svc.gotOwner)
	assert.Equal(t, 12.5, svc.gotInput.Duration)
	assert.Equal(t, "clip.mp4", svc.gotInput.VideoFilename)
}
