package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

// WatchHistoryResponse 是两层嵌套投影：历史记录→视频→视频作者
type WatchHistoryResponse struct {
	WatchedAt time.Time     `json:"watched_at"`
	Video     VideoResponse `json:"video"`
}

func ToWatchHistoryResponses(entries []model.WatchHistory) []WatchHistoryResponse {
	response := make([]WatchHistoryResponse, 0, len(entries))
	for i := range entries {
		response = append(response, WatchHistoryResponse{
			WatchedAt: entries[i].WatchedAt,
			Video:     ToVideoResponse(&entries[i].Video),
		})
	}
	return response
}
