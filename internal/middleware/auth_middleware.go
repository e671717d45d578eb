package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// context里的key，handler通过这两个key拿到已认证的actor
	CtxUserID   = "userID"
	CtxUsername = "username"

	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// AuthMiddleware 保护需要登录的路由
// 令牌优先从accessToken cookie取，其次是"Authorization: Bearer xxx"
// 验证通过后把userID(uint64)和username放进Context，后续handler不再碰jwt
func AuthMiddleware(accessSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"data":       nil,
				"message":    "请求未包含授权令牌",
				"success":    false,
			})
			return
		}

		userID, username, err := parseAccessToken(tokenString, accessSecret)
		if err != nil {
			// 立刻Abort，阻止后续的任何处理器被执行
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"data":       nil,
				"message":    "无效的授权令牌",
				"success":    false,
			})
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUsername, username)

		// 放行，继续处理请求
		c.Next()
	}
}

// OptionalAuthMiddleware 用在公开但“登录了体验更好”的路由上
// （getAllVideos要判断作者看自己未发布的视频，getVideoById要记观看历史）
// 有有效令牌就把actor放进Context，没有也绝不拦截
func OptionalAuthMiddleware(accessSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if userID, username, err := parseAccessToken(tokenString, accessSecret); err == nil {
				c.Set(CtxUserID, userID)
				c.Set(CtxUsername, username)
			}
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieAccessToken); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	// 通常Token的格式是 "Bearer [token]"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func parseAccessToken(tokenString, secret string) (uint64, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("无效的授权令牌")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("令牌载荷格式不正确")
	}
	// jwt.MapClaims里的数字会被解析成float64，在这里统一转成uint64，handler不再各自断言
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("令牌缺少user_id")
	}
	username, _ := claims["username"].(string)
	return uint64(idFloat), username, nil
}
