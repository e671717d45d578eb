package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want int
	}{
		{"参数错误", InvalidArgument, http.StatusBadRequest},
		{"未认证", Unauthenticated, http.StatusUnauthorized},
		{"无权限", Forbidden, http.StatusForbidden},
		{"不存在", NotFound, http.StatusNotFound},
		{"冲突", Conflict, http.StatusConflict},
		{"依赖不可用", Unavailable, http.StatusServiceUnavailable},
		{"内部错误", Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(New(tt.kind, "msg")))
		})
	}
}

func TestHTTPStatusUnclassified(t *testing.T) {
	// 不是*Error的错误一律按Internal处理
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "视频不存在", MessageOf(New(NotFound, "视频不存在")))
	// 未分类错误不能把内部细节漏出去
	assert.Equal(t, "服务器内部错误", MessageOf(errors.New("dial tcp: connection refused")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("底层错误")
	err := Wrap(Unavailable, "服务繁忙", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, Unavailable, KindOf(err))
	assert.Equal(t, "服务繁忙", MessageOf(err))
}

func TestKindOfWrappedChain(t *testing.T) {
	// *Error被fmt.Errorf再包一层后，分类仍然可以取出来
	inner := New(NotFound, "评论不存在")
	outer := fmt.Errorf("处理失败: %w", inner)
	assert.Equal(t, NotFound, KindOf(outer))
}

func TestFromDB(t *testing.T) {
	t.Run("记录不存在", func(t *testing.T) {
		err := FromDB(gorm.ErrRecordNotFound, "视频不存在")
		assert.Equal(t, NotFound, KindOf(err))
		assert.Equal(t, "视频不存在", MessageOf(err))
	})

	t.Run("超时翻译成Unavailable", func(t *testing.T) {
		err := FromDB(context.DeadlineExceeded, "视频不存在")
		assert.Equal(t, Unavailable, KindOf(err))
	})

	t.Run("取消翻译成Unavailable", func(t *testing.T) {
		err := FromDB(context.Canceled, "视频不存在")
		assert.Equal(t, Unavailable, KindOf(err))
	})

	t.Run("其他错误兜底Internal", func(t *testing.T) {
		err := FromDB(errors.New("syntax error"), "视频不存在")
		assert.Equal(t, Internal, KindOf(err))
	})

	t.Run("已经分类过的错误原样透传", func(t *testing.T) {
		classified := New(Forbidden, "无权操作")
		assert.Equal(t, Forbidden, KindOf(FromDB(classified, "不存在")))
	})
}
