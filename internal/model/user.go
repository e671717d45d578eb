package model

type User struct {
	BaseModel
	// 用户名统一小写存储，保证大小写不敏感的唯一性
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"` // bcrypt哈希，绝不能出现在任何API响应里
	// 刷新令牌落库，登出时清空，refresh时校验并轮换
	RefreshToken string
	Avatar       string
}
