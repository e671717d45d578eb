package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 是业务错误的分类，handler层靠它决定HTTP状态码
type Kind int

const (
	Internal Kind = iota // 未分类的内部错误，兜底
	InvalidArgument
	Unauthenticated
	Forbidden
	NotFound
	Conflict
	Unavailable // 依赖（数据库/Redis/对象存储）不可用或超时
)

// Error 携带分类和一条可以直接展示给用户的消息
// 内部细节放在Err里，只进日志，不出网
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建一个不包裹底层错误的业务错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 在底层错误外面加上分类和用户可见的消息
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf 取出错误的分类，不是*Error的一律按Internal处理
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf 取出可以展示给用户的消息，未分类错误返回统一文案，避免泄露堆栈细节
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "服务器内部错误"
}

// HTTPStatus 把错误分类翻译成HTTP状态码
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidArgument:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
