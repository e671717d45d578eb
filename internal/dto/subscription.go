package dto

import "Nova_Tube/internal/model"

// 订阅列表两个方向都只投影UserInfo：
// getChannelSubscribers返回订阅者，getUsersSubscribedChannels返回频道
func ToSubscriberInfos(subs []model.Subscription) []UserInfo {
	infos := make([]UserInfo, 0, len(subs))
	for i := range subs {
		infos = append(infos, ToUserInfo(&subs[i].Subscriber))
	}
	return infos
}

func ToChannelInfos(subs []model.Subscription) []UserInfo {
	infos := make([]UserInfo, 0, len(subs))
	for i := range subs {
		infos = append(infos, ToUserInfo(&subs[i].Channel))
	}
	return infos
}
