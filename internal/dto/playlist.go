package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

type PlaylistResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Owner       UserInfo  `json:"owner"`
	// 只有getPlaylistById会带上视频列表，其余场景是nil，序列化时省略
	Videos []VideoResponse `json:"videos,omitempty"`
}

func ToPlaylistResponse(playlist *model.Playlist) PlaylistResponse {
	resp := PlaylistResponse{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
	}
	if playlist.Owner.ID != 0 {
		resp.Owner = ToUserInfo(&playlist.Owner)
	} else {
		resp.Owner.ID = playlist.OwnerID
	}
	return resp
}

// ToPlaylistDetailResponse 把列表项（PlaylistVideo）里preload出来的视频挂到响应上
func ToPlaylistDetailResponse(playlist *model.Playlist, entries []model.PlaylistVideo) PlaylistResponse {
	resp := ToPlaylistResponse(playlist)
	resp.Videos = make([]VideoResponse, 0, len(entries))
	for i := range entries {
		resp.Videos = append(resp.Videos, ToVideoResponse(&entries[i].Video))
	}
	return resp
}

func ToPlaylistResponses(playlists []model.Playlist) []PlaylistResponse {
	response := make([]PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		response = append(response, ToPlaylistResponse(&playlists[i]))
	}
	return response
}
