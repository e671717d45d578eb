package model

// 用户（subscriber）对频道（channel，也是User）的订阅关系
// 唯一索引保证同一对(订阅者,频道)最多一条记录
type Subscription struct {
	BaseModel
	SubscriberID uint64 `gorm:"not null;uniqueIndex:idx_sub_channel"`
	ChannelID    uint64 `gorm:"not null;uniqueIndex:idx_sub_channel;index"`

	Subscriber User `gorm:"foreignKey:SubscriberID"`
	Channel    User `gorm:"foreignKey:ChannelID"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
