package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

type VideoResponse struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Published   bool      `json:"published"`
	LikeCount   uint64    `json:"like_count"`
	VideoURL    string    `json:"video_url"`
	CoverURL    string    `json:"cover_url"`
	Owner       UserInfo  `json:"owner"`
}

// ToVideoResponse 把DB模型转换为API响应模型，并且正确利用preload返回的数据
// Owner只投影白名单字段，凭据哈希永远不会跟着视频出去
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          video.ID,
		CreatedAt:   video.CreatedAt,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
		Published:   video.Published,
		LikeCount:   video.LikeCount,
		VideoURL:    video.VideoURL,
		CoverURL:    video.CoverURL,
	}
	// 检查Owner是否被成功preload
	if video.Owner.ID != 0 {
		resp.Owner = ToUserInfo(&video.Owner)
	} else {
		// 如果没有preload，就返回video结构体本身的外键
		resp.Owner.ID = video.OwnerID
	}
	return resp
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	response := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		response = append(response, ToVideoResponse(&videos[i]))
	}
	return response
}
