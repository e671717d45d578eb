package apperr

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// FromDB 把存储层错误翻译成业务错误：
// 没找到→NotFound（带调用方给的文案），超时/取消→Unavailable，其余→Internal
func FromDB(err error, notFoundMsg string) error {
	// 已经分类过的错误原样透传，避免二次包装把分类盖掉
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return New(NotFound, notFoundMsg)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Wrap(Unavailable, "服务繁忙，请稍后再试", err)
	default:
		return Wrap(Internal, "服务器内部错误", err)
	}
}
