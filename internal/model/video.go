package model

// Video结构，视频都要有什么？up主（作者）、标题、简介、时长、是否已发布
type Video struct {
	BaseModel
	OwnerID     uint64  `gorm:"not null;index"` // 作者ID，用于关联用户
	Title       string  `gorm:"not null"`
	Description string
	Duration    float64 // 视频时长（秒），由上传侧的元数据给出
	Published   bool    `gorm:"default:true"` // 未发布的视频只有作者自己能看到
	LikeCount   uint64  `gorm:"default:0"`    // 冗余计数，由consumer异步维护，点赞表才是事实来源

	VideoURL string `gorm:"not null"` // 视频播放地址
	CoverURL string `gorm:"not null"` // 视频封面地址

	// 外键OwnerID和User表的ID
	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}
