package model

type Comment struct {
	BaseModel
	VideoID uint64 `gorm:"not null;index"` // index索引，加速按视频拉取评论
	OwnerID uint64 `gorm:"not null;index"`
	// TEXT类型，评论正文可能很长
	Content   string `gorm:"type:text;not null"`
	LikeCount uint64 `gorm:"default:0"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

func (Comment) TableName() string {
	return "comments"
}
