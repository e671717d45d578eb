package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

type TweetResponse struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount uint64    `json:"like_count"`
	Owner     UserInfo  `json:"owner"`
}

func ToTweetResponse(tweet *model.Tweet) TweetResponse {
	resp := TweetResponse{
		ID:        tweet.ID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
		LikeCount: tweet.LikeCount,
	}
	if tweet.Owner.ID != 0 {
		resp.Owner = ToUserInfo(&tweet.Owner)
	} else {
		resp.Owner.ID = tweet.OwnerID
	}
	return resp
}

func ToTweetResponses(tweets []model.Tweet) []TweetResponse {
	response := make([]TweetResponse, 0, len(tweets))
	for i := range tweets {
		response = append(response, ToTweetResponse(&tweets[i]))
	}
	return response
}
