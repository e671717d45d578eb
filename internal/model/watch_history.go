package model

import "time"

// 观看历史：同一个用户对同一个视频只留一条，重复观看只刷新WatchedAt
// 列表按WatchedAt倒序，保证“最近看的在最前面”
type WatchHistory struct {
	BaseModel
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_video_history"`
	VideoID   uint64    `gorm:"not null;uniqueIndex:idx_user_video_history;index"`
	WatchedAt time.Time `gorm:"not null;index"`

	Video Video `gorm:"foreignKey:VideoID"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
