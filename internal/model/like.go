package model

// Like的目标是三选一的标签变体：video/comment/tweet
// 不用三个可空外键，而是(target_type, target_id)一对字段，构造入口在relation包里收紧
const (
	TargetVideo   = "video"
	TargetComment = "comment"
	TargetTweet   = "tweet"
)

// 用户与目标的点赞关系，uniqueIndex利用的是MySQL数据库的“自动查重”能力
// 唯一索引就是toggle的仲裁者：插入撞1062说明已点赞，转为删除
type Like struct {
	BaseModel
	UserID     uint64 `gorm:"not null;uniqueIndex:idx_actor_target"`
	TargetType string `gorm:"size:16;not null;uniqueIndex:idx_actor_target"`
	TargetID   uint64 `gorm:"not null;uniqueIndex:idx_actor_target;index:idx_target"`
}

func (Like) TableName() string {
	return "likes"
}
