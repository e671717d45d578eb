package dto

import (
	"Nova_Tube/internal/model"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeUser(id uint64, username string) model.User {
	user := model.User{
		Username:     username,
		Password:     "$2a$10$secret-hash",
		RefreshToken: "some.refresh.token",
		Avatar:       "https://cdn.test/avatar.png",
	}
	user.ID = id
	return user
}

// 投影是白名单：不管模型里带了什么，凭据字段永远不会出现在序列化结果里
func TestVideoResponseNeverLeaksCredentials(t *testing.T) {
	owner := makeUser(7, "alice")
	video := model.Video{
		OwnerID: owner.ID,
		Title:   "标题",
		Owner:   owner,
	}
	video.ID = 42

	raw, err := json.Marshal(ToVideoResponse(&video))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	ownerMap, ok := m["owner"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, ownerMap, "password")
	assert.NotContains(t, ownerMap, "refresh_token")
	assert.NotContains(t, ownerMap, "Password")
	assert.Equal(t, "alice", ownerMap["username"])
}

func TestUserResponseNeverLeaksCredentials(t *testing.T) {
	user := makeUser(1, "bob")
	raw, err := json.Marshal(ToUserResponse(&user))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "password")
	assert.NotContains(t, m, "refresh_token")
}

// Owner没preload时退回外键ID，而不是返回全零的作者
func TestVideoResponseFallsBackToOwnerID(t *testing.T) {
	video := model.Video{OwnerID: 9, Title: "无preload"}
	video.ID = 1

	resp := ToVideoResponse(&video)
	assert.Equal(t, uint64(9), resp.Owner.ID)
	assert.Empty(t, resp.Owner.Username)
}

func TestToPlaylistDetailResponse(t *testing.T) {
	owner := makeUser(3, "carol")
	playlist := model.Playlist{OwnerID: owner.ID, Name: "收藏", Owner: owner}
	playlist.ID = 5

	video1 := model.Video{OwnerID: owner.ID, Title: "第一个", Owner: owner}
	video1.ID = 11
	video2 := model.Video{OwnerID: owner.ID, Title: "第二个", Owner: owner}
	video2.ID = 12

	entries := []model.PlaylistVideo{
		{PlaylistID: 5, VideoID: 11, Video: video1},
		{PlaylistID: 5, VideoID: 12, Video: video2},
	}

	resp := ToPlaylistDetailResponse(&playlist, entries)
	require.Len(t, resp.Videos, 2)
	assert.Equal(t, "第一个", resp.Videos[0].Title)
	assert.Equal(t, "carol", resp.Videos[1].Owner.Username)
}

// 列表为空时序列化出[]而不是null
func TestToResponsesEmptySlices(t *testing.T) {
	raw, err := json.Marshal(ToVideoResponses(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	raw, err = json.Marshal(ToCommentResponses(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
