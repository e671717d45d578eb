package handler

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/middleware"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Response 是所有接口共用的响应信封，成功失败都长这个样子
// 前端只需要看success和message，不必关心HTTP层
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func sendSuccess(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// sendError 把业务错误翻译成信封：状态码和消息都从apperr里取
func sendError(c *gin.Context, err error) {
	code := apperr.HTTPStatus(err)
	c.AbortWithStatusJSON(code, Response{
		StatusCode: code,
		Data:       nil,
		Message:    apperr.MessageOf(err),
		Success:    false,
	})
}

// 参数解析失败的两种常见情形，预先构造好复用
var (
	errInvalidBody = apperr.New(apperr.InvalidArgument, "无效的参数")
	errMissingFile = apperr.New(apperr.InvalidArgument, "缺少上传文件")
)

// currentUserID 取出认证中间件放进Context的userID
// 走过AuthMiddleware的路由一定有值；OptionalAuth的路由可能返回0（匿名）
func currentUserID(c *gin.Context) uint64 {
	if v, exists := c.Get(middleware.CtxUserID); exists {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}

// parseIDParam 解析URL路径里的数字ID，解析失败返回InvalidArgument
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.InvalidArgument, "无效的"+name)
	}
	return id, nil
}
