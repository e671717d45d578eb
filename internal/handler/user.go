package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/middleware"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	RefreshToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	CurrentUser(c *gin.Context)
	ChannelProfile(c *gin.Context)
	WatchHistory(c *gin.Context)
	UpdateAvatar(c *gin.Context)
}

type userHandler struct {
	UserService service.UserService
	Tokens      *service.TokenIssuer
}

func NewUserHandler(userService service.UserService, tokens *service.TokenIssuer) UserHandler {
	return &userHandler{UserService: userService, Tokens: tokens}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=64"`
}

// 注册：参数校验交给binding，重名交给唯一索引
func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("注册参数解析失败")
		sendError(c, errInvalidBody)
		return
	}
	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理注册请求")

	user, err := h.UserService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logCtx.WithError(err).Warn("注册失败")
		sendError(c, err)
		return
	}
	logCtx.WithField("user_id", user.ID).Info("注册成功")
	sendSuccess(c, http.StatusCreated, dto.ToUserResponse(user), "注册成功")
}

// 登录：签发双令牌，同时写进cookie和响应体，前端任选其一
func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("登录参数解析失败")
		sendError(c, errInvalidBody)
		return
	}
	logCtx := logger.Log.WithField("username", req.Username).WithField("ip", c.ClientIP())
	logCtx.Info("开始处理登录请求")

	user, accessToken, refreshToken, err := h.UserService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logCtx.WithError(err).Warn("登录失败")
		sendError(c, err)
		return
	}
	h.setAuthCookies(c, accessToken, refreshToken)

	logCtx.WithField("user_id", user.ID).Info("登录成功")
	sendSuccess(c, http.StatusOK, dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, "登录成功")
}

// 登出：清掉落库的刷新令牌，再把两个cookie置空
func (h *userHandler) Logout(c *gin.Context) {
	userID := currentUserID(c)
	logCtx := logger.Log.WithField("user_id", userID)

	if err := h.UserService.Logout(c.Request.Context(), userID); err != nil {
		logCtx.WithError(err).Error("登出失败")
		sendError(c, err)
		return
	}
	h.clearAuthCookies(c)

	logCtx.Info("登出成功")
	sendSuccess(c, http.StatusOK, nil, "登出成功")
}

// 刷新令牌：cookie优先，其次是请求体
func (h *userHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie(middleware.CookieRefreshToken)
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		// 没有cookie时才看body，body也可以没有
		_ = c.ShouldBindJSON(&body)
		refreshToken = body.RefreshToken
	}

	user, newAccess, newRefresh, err := h.UserService.RefreshTokens(c.Request.Context(), refreshToken)
	if err != nil {
		logger.Log.WithError(err).Warn("刷新令牌失败")
		sendError(c, err)
		return
	}
	h.setAuthCookies(c, newAccess, newRefresh)

	logger.Log.WithField("user_id", user.ID).Info("令牌刷新成功")
	sendSuccess(c, http.StatusOK, dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
	}, "令牌刷新成功")
}

func (h *userHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("修改密码参数解析失败")
		sendError(c, errInvalidBody)
		return
	}
	userID := currentUserID(c)
	logCtx := logger.Log.WithField("user_id", userID)

	if err := h.UserService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		logCtx.WithError(err).Warn("修改密码失败")
		sendError(c, err)
		return
	}
	logCtx.Info("修改密码成功")
	sendSuccess(c, http.StatusOK, nil, "修改密码成功")
}

func (h *userHandler) CurrentUser(c *gin.Context) {
	user, err := h.UserService.CurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "获取当前用户成功")
}

// 频道主页：公开接口，viewerID为0时isSubscribed恒为false
func (h *userHandler) ChannelProfile(c *gin.Context) {
	username := c.Param("userName")
	if username == "" {
		sendError(c, errInvalidBody)
		return
	}
	profile, err := h.UserService.ChannelProfile(c.Request.Context(), username, currentUserID(c))
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Warn("获取频道主页失败")
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, profile, "获取频道主页成功")
}

func (h *userHandler) WatchHistory(c *gin.Context) {
	userID := currentUserID(c)
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	entries, total, err := h.UserService.WatchHistory(c.Request.Context(), userID, p)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("获取观看历史失败")
		sendError(c, err)
		return
	}
	result := pagination.NewResult(dto.ToWatchHistoryResponses(entries), total, p)
	sendSuccess(c, http.StatusOK, result, "获取观看历史成功")
}

// 更新头像：multipart表单，字段名avatar
func (h *userHandler) UpdateAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		sendError(c, errMissingFile)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		sendError(c, errMissingFile)
		return
	}
	defer file.Close()

	userID := currentUserID(c)
	logCtx := logger.Log.WithField("user_id", userID).WithField("filename", fileHeader.Filename)
	logCtx.Info("开始处理更新头像请求")

	user, err := h.UserService.UpdateAvatar(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		logCtx.WithError(err).Error("更新头像失败")
		sendError(c, err)
		return
	}
	logCtx.Info("更新头像成功")
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "更新头像成功")
}

// 令牌写cookie：HttpOnly挡住XSS偷令牌，MaxAge和令牌寿命一致
func (h *userHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie(middleware.CookieAccessToken, accessToken, int(h.Tokens.AccessTTL().Seconds()), "/", "", false, true)
	c.SetCookie(middleware.CookieRefreshToken, refreshToken, int(h.Tokens.RefreshTTL().Seconds()), "/", "", false, true)
}

func (h *userHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.CookieAccessToken, "", -1, "/", "", false, true)
	c.SetCookie(middleware.CookieRefreshToken, "", -1, "/", "", false, true)
}
