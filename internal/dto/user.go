package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

// UserInfo 是嵌在其他资源里的、简化的用户信息
// 白名单投影：永远不带Password和RefreshToken
type UserInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// UserResponse 是用户自身资源的响应结构
type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// ChannelProfileResponse 是“频道主页”的响应，计数和isSubscribed都是派生字段，不落库
type ChannelProfileResponse struct {
	ID                uint64 `json:"id"`
	Username          string `json:"username"`
	Avatar            string `json:"avatar"`
	SubscriberCount   int64  `json:"subscriber_count"`
	SubscribedToCount int64  `json:"subscribed_to_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
}

// AuthResponse 登录/刷新成功后的响应，令牌同时也会写进cookie
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func ToUserInfo(user *model.User) UserInfo {
	return UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
	}
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}
