package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// TimeoutMiddleware 给每个请求的Context加上截止时间
// 存储层的调用都带ctx，超时后gorm/redis会带着context.DeadlineExceeded返回，
// 最终被apperr翻译成Unavailable返回给客户端
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
