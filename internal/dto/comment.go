package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

type CommentResponse struct {
	ID        uint64    `json:"id"`
	VideoID   uint64    `json:"video_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount uint64    `json:"like_count"`
	Owner     UserInfo  `json:"owner"`
}

func ToCommentResponse(comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		LikeCount: comment.LikeCount,
	}
	// 安全地填充作者信息，没preload就只带外键ID
	if comment.Owner.ID != 0 {
		resp.Owner = ToUserInfo(&comment.Owner)
	} else {
		resp.Owner.ID = comment.OwnerID
	}
	return resp
}

func ToCommentResponses(comments []model.Comment) []CommentResponse {
	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, ToCommentResponse(&comments[i]))
	}
	return response
}
