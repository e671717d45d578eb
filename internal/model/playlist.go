package model

type Playlist struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string

	Owner User `gorm:"foreignKey:OwnerID"`
}

// 播放列表和视频的关系单独建表
// 唯一索引天然实现“同一个视频只进一次列表”的集合语义
type PlaylistVideo struct {
	BaseModel
	PlaylistID uint64 `gorm:"not null;uniqueIndex:idx_playlist_video"`
	VideoID    uint64 `gorm:"not null;uniqueIndex:idx_playlist_video;index"`

	Video Video `gorm:"foreignKey:VideoID"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
