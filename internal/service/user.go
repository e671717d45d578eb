package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/pagination"
	"Nova_Tube/internal/repository"
	"Nova_Tube/internal/storage"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 用户服务接口：注册、登录登出、令牌刷新、改密码、频道主页、观看历史
type UserService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, string, string, error)
	Logout(ctx context.Context, userID uint64) error
	// RefreshTokens 校验并轮换刷新令牌，返回(user, 新access, 新refresh)
	RefreshTokens(ctx context.Context, refreshToken string) (*model.User, string, string, error)
	ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error
	CurrentUser(ctx context.Context, userID uint64) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID uint64, filename string, file io.Reader) (*model.User, error)

	// ChannelProfile 返回频道主页：基本信息 + 两个聚合计数 + 请求者是否已订阅（派生字段）
	ChannelProfile(ctx context.Context, username string, viewerID uint64) (*dto.ChannelProfileResponse, error)
	WatchHistory(ctx context.Context, userID uint64, p pagination.Params) ([]model.WatchHistory, int64, error)
}

type userService struct {
	userRepo    repository.UserRepository
	subRepo     repository.SubscriptionRepository
	historyRepo repository.WatchHistoryRepository
	uploader    storage.Uploader
	tokens      *TokenIssuer
}

func NewUserService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	historyRepo repository.WatchHistoryRepository,
	uploader storage.Uploader,
	tokens *TokenIssuer,
) UserService {
	return &userService{
		userRepo:    userRepo,
		subRepo:     subRepo,
		historyRepo: historyRepo,
		uploader:    uploader,
		tokens:      tokens,
	}
}

// 注册逻辑：密码加密存储，用户名小写化后插入
// 不做“先查再插”：唯一索引撞1062就是重名，直接翻译成Conflict
func (s *userService) Register(ctx context.Context, username, password string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "服务器内部错误", err)
	}

	newUser := &model.User{
		// 统一小写，保证大小写不敏感的唯一性
		Username: strings.ToLower(username),
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if repository.IsDuplicateEntry(err) {
			return nil, apperr.New(apperr.Conflict, "用户名已存在")
		}
		return nil, apperr.FromDB(err, "用户不存在")
	}
	return newUser, nil
}

// 登录逻辑：查用户、bcrypt比对、签发双令牌并把刷新令牌落库
func (s *userService) Login(ctx context.Context, username, password string) (*model.User, string, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		// 模糊的错误提示，不暴露用户名是否存在
		return nil, "", "", apperr.New(apperr.Unauthenticated, "用户名或密码错误")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", apperr.New(apperr.Unauthenticated, "用户名或密码错误")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", "", apperr.Wrap(apperr.Internal, "服务器内部错误", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, "", "", apperr.Wrap(apperr.Internal, "服务器内部错误", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, "", "", apperr.FromDB(err, "用户不存在")
	}
	return user, accessToken, refreshToken, nil
}

// 登出：清空落库的刷新令牌，旧令牌立刻作废
func (s *userService) Logout(ctx context.Context, userID uint64) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return apperr.FromDB(err, "用户不存在")
	}
	return nil
}

// 刷新令牌：签名有效 + 和库里存的一致，两个条件缺一不可
// 轮换：每次刷新都签发新的刷新令牌，旧的作废
func (s *userService) RefreshTokens(ctx context.Context, refreshToken string) (*model.User, string, string, error) {
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, "", "", err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", "", apperr.New(apperr.Unauthenticated, "无效的刷新令牌")
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		// 库里的不一致，可能已登出或令牌被轮换过
		return nil, "", "", apperr.New(apperr.Unauthenticated, "刷新令牌已失效")
	}

	newAccess, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", "", apperr.Wrap(apperr.Internal, "服务器内部错误", err)
	}
	newRefresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, "", "", apperr.Wrap(apperr.Internal, "服务器内部错误", err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, newRefresh); err != nil {
		return nil, "", "", apperr.FromDB(err, "用户不存在")
	}
	return user, newAccess, newRefresh, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperr.FromDB(err, "用户不存在")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperr.New(apperr.Unauthenticated, "原密码错误")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "服务器内部错误", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		return apperr.FromDB(err, "用户不存在")
	}
	return nil
}

func (s *userService) CurrentUser(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.FromDB(err, "用户不存在")
	}
	return user, nil
}

// 更新头像：上传是外部协作者，失败就短路
func (s *userService) UpdateAvatar(ctx context.Context, userID uint64, filename string, file io.Reader) (*model.User, error) {
	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), path.Ext(filename))
	url, err := s.uploader.Save(ctx, key, file)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "头像上传失败", err)
	}
	if err := s.userRepo.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, apperr.FromDB(err, "用户不存在")
	}
	return s.userRepo.FindByID(ctx, userID)
}

func (s *userService) ChannelProfile(ctx context.Context, username string, viewerID uint64) (*dto.ChannelProfileResponse, error) {
	channel, err := s.userRepo.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, apperr.FromDB(err, "频道不存在")
	}

	subscriberCount, err := s.subRepo.CountForChannel(ctx, channel.ID)
	if err != nil {
		return nil, apperr.FromDB(err, "频道不存在")
	}
	subscribedToCount, err := s.subRepo.CountForSubscriber(ctx, channel.ID)
	if err != nil {
		return nil, apperr.FromDB(err, "频道不存在")
	}

	// isSubscribed是对“当前请求者”的派生字段，匿名请求恒为false
	isSubscribed := false
	if viewerID != 0 {
		isSubscribed, err = s.subRepo.Exists(ctx, viewerID, channel.ID)
		if err != nil {
			return nil, apperr.FromDB(err, "频道不存在")
		}
	}

	return &dto.ChannelProfileResponse{
		ID:                channel.ID,
		Username:          channel.Username,
		Avatar:            channel.Avatar,
		SubscriberCount:   subscriberCount,
		SubscribedToCount: subscribedToCount,
		IsSubscribed:      isSubscribed,
	}, nil
}

func (s *userService) WatchHistory(ctx context.Context, userID uint64, p pagination.Params) ([]model.WatchHistory, int64, error) {
	entries, total, err := s.historyRepo.FindByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, apperr.FromDB(err, "用户不存在")
	}
	return entries, total, nil
}
