package repository

import (
	"Nova_Tube/internal/model"
	"context"

	"gorm.io/gorm"
)

// 用户仓库接口：注册插入、按ID/用户名查找、令牌和资料的定点更新
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID uint64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateRefreshToken(ctx context.Context, userID uint64, token string) error
	UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error
	UpdateAvatar(ctx context.Context, userID uint64, avatarURL string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, userID uint64) (*model.User, error) {
	var result model.User
	err := r.db.WithContext(ctx).First(&result, userID).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

// 用户名统一小写存储，查询方负责先转小写，这里只做等值匹配
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var result model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID uint64, token string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("refresh_token", token).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("password", passwordHash).Error
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID uint64, avatarURL string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("avatar", avatarURL).Error
}
