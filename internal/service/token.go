package service

import (
	"Nova_Tube/internal/apperr"
	"Nova_Tube/internal/config"
	"Nova_Tube/internal/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer 负责签发和校验两种令牌
// 访问令牌短期、带username；刷新令牌长期、只带user_id并且落库比对
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken 签发访问令牌
// Payload不加密，绝不能把密码之类的放进claims
func (t *TokenIssuer) GenerateAccessToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(t.accessTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.accessSecret)
}

// GenerateRefreshToken 签发刷新令牌
// jti保证同一秒内连续签发的令牌也互不相同，否则轮换会把旧令牌原样存回去
func (t *TokenIssuer) GenerateRefreshToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"jti":     uuid.New().String(),
		"exp":     time.Now().Add(t.refreshTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.refreshSecret)
}

// ParseRefreshToken 校验刷新令牌并取出user_id
func (t *TokenIssuer) ParseRefreshToken(tokenString string) (uint64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Unauthenticated, "非预期的签名方法")
		}
		return t.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperr.New(apperr.Unauthenticated, "无效的刷新令牌")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperr.New(apperr.Unauthenticated, "无效的刷新令牌")
	}
	// jwt.MapClaims里的数字会被解析成float64
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, apperr.New(apperr.Unauthenticated, "无效的刷新令牌")
	}
	return uint64(idFloat), nil
}

// AccessTTL 暴露给handler，用于设置cookie的MaxAge
func (t *TokenIssuer) AccessTTL() time.Duration { return t.accessTTL }

func (t *TokenIssuer) RefreshTTL() time.Duration { return t.refreshTTL }
