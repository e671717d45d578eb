package handler

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/middleware"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommentService struct {
	comment  *model.Comment
	comments []model.Comment
	total    int64
	err      error

	gotVideoID   uint64
	gotCommentID uint64
	gotActorID   uint64
	gotContent   string
}

func (f *fakeCommentService) Add(ctx context.Context, videoID, ownerID uint64, content string) (*model.Comment, error) {
	f.gotVideoID, f.gotActorID, f.gotContent = videoID, ownerID, content
	return f.comment, f.err
}

func (f *fakeCommentService) ListForVideo(ctx context.Context, videoID uint64, p pagination.Params) ([]model.Comment, int64, error) {
	f.gotVideoID = videoID
	return f.comments, f.total, f.err
}

func (f *fakeCommentService) Update(ctx context.Context, commentID, actorID uint64, content string) (*model.Comment, error) {
	f.gotCommentID, f.gotActorID, f.gotContent = commentID, actorID, content
	return f.comment, f.err
}

func (f *fakeCommentService) Delete(ctx context.Context, commentID, actorID uint64) error {
	f.gotCommentID, f.gotActorID = commentID, actorID
	return f.err
}

func setupCommentRouter(svc *fakeCommentService, userID uint64) *gin.Engine {
	r := gin.New()
	h := NewCommentHandler(svc)
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(middleware.CtxUserID, userID)
		}
	})
	r.POST("/comments/addComment/:videoId", h.Add)
	r.GET("/comments/getAllCommentsForVideo/:videoId", h.ListForVideo)
	r.PATCH("/comments/updateComment/:commentId", h.Update)
	r.DELETE("/comments/deleteComment/:commentId", h.Delete)
	return r
}

func TestAddComment(t *testing.T) {
	comment := &model.Comment{VideoID: 5, OwnerID: 7, Content: "不错"}
	comment.ID = 99
	svc := &fakeCommentService{comment: comment}
	r := setupCommentRouter(svc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/comments/addComment/5",
		strings.NewReader(`{"content":"不错"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint64(5), svc.gotVideoID)
	assert.Equal(t, uint64(7), svc.gotActorID)
	assert.Equal(t, "不错", svc.gotContent)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(99), data["id"])
}

// 缺content直接被binding挡下，service不会被触达
func TestAddCommentMissingContent(t *testing.T) {
	svc := &fakeCommentService{}
	r := setupCommentRouter(svc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/comments/addComment/5",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.gotVideoID)
}

// 改别人的评论：service返回Forbidden，信封带403
func TestUpdateCommentForbidden(t *testing.T) {
	svc := &fakeCommentService{err: apperr.New(apperr.Forbidden, "无权操作他人的评论")}
	r := setupCommentRouter(svc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/comments/updateComment/99",
		strings.NewReader(`{"content":"改一下"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "无权操作他人的评论", body["message"])
}

func TestDeleteComment(t *testing.T) {
	svc := &fakeCommentService{}
	r := setupCommentRouter(svc, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/comments/deleteComment/99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(99), svc.gotCommentID)
	assert.Equal(t, uint64(7), svc.gotActorID)
}

// 分页参数透传：非法值回退默认，不报错
func TestListCommentsPagination(t *testing.T) {
	svc := &fakeCommentService{comments: []model.Comment{}, total: 0}
	r := setupCommentRouter(svc, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/comments/getAllCommentsForVideo/5?page=abc&limit=-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(5), svc.gotVideoID)
}
