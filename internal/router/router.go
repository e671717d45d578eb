package router

import (
	"Nova_Tube/internal/handler"
	"Nova_Tube/internal/middleware"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handlers 聚合全部资源handler，避免SetupRouter的参数列表无限变长
type Handlers struct {
	User         handler.UserHandler
	Video        handler.VideoHandler
	Comment      handler.CommentHandler
	Like         handler.LikeHandler
	Subscription handler.SubscriptionHandler
	Playlist     handler.PlaylistHandler
	Tweet        handler.TweetHandler
}

func SetupRouter(h Handlers, accessSecret string, requestTimeout time.Duration) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.TimeoutMiddleware(requestTimeout))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pang",
		})
	})

	auth := middleware.AuthMiddleware(accessSecret)
	optionalAuth := middleware.OptionalAuthMiddleware(accessSecret)

	apiV1 := r.Group("/api/v1")
	{
		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/register", h.User.Register)
			userGroup.POST("/login", h.User.Login)
			userGroup.POST("/refreshToken", h.User.RefreshToken)
			// 频道主页公开可看，登录用户额外拿到isSubscribed
			userGroup.GET("/channelProfile/:userName", optionalAuth, h.User.ChannelProfile)

			userGroup.POST("/logout", auth, h.User.Logout)
			userGroup.POST("/changePassword", auth, h.User.ChangePassword)
			userGroup.GET("/current", auth, h.User.CurrentUser)
			userGroup.GET("/watchHistory", auth, h.User.WatchHistory)
			userGroup.PATCH("/updateAvatar", auth, h.User.UpdateAvatar)
		}

		videoGroup := apiV1.Group("/videos")
		{
			// 列表和详情公开，但登录用户能看到自己未发布的视频、会被记观看历史
			videoGroup.GET("/getAllVideos", optionalAuth, h.Video.GetAll)
			videoGroup.GET("/getVideoById/:videoId", optionalAuth, h.Video.GetByID)

			videoGroup.POST("/publishVideo", auth, h.Video.Publish)
			videoGroup.PATCH("/updateVideoDetails/:videoId", auth, h.Video.UpdateDetails)
			videoGroup.PATCH("/togglePublishedStatus/:videoId", auth, h.Video.TogglePublished)
			videoGroup.DELETE("/deleteVideo/:videoId", auth, h.Video.Delete)
		}

		commentGroup := apiV1.Group("/comments")
		{
			commentGroup.GET("/getAllCommentsForVideo/:videoId", h.Comment.ListForVideo)

			commentGroup.POST("/addComment/:videoId", auth, h.Comment.Add)
			commentGroup.PATCH("/updateComment/:commentId", auth, h.Comment.Update)
			commentGroup.DELETE("/deleteComment/:commentId", auth, h.Comment.Delete)
		}

		likeGroup := apiV1.Group("/likes", auth)
		{
			likeGroup.POST("/toggleVideoLikeStatus/:videoId", h.Like.ToggleVideoLike)
			likeGroup.POST("/toggleCommentLikeStatus/:commentId", h.Like.ToggleCommentLike)
			likeGroup.POST("/toggleTweetLikeStatus/:tweetId", h.Like.ToggleTweetLike)
			likeGroup.GET("/getAllLikedVideos", h.Like.LikedVideos)
		}

		subGroup := apiV1.Group("/subscriptions", auth)
		{
			subGroup.POST("/toggleSubscription/:channelId", h.Subscription.Toggle)
			subGroup.GET("/getChannelSubscribers/:channelId", h.Subscription.Subscribers)
			subGroup.GET("/getUsersSubscribedChannels/:subscriberId", h.Subscription.SubscribedChannels)
		}

		playlistGroup := apiV1.Group("/playlists", auth)
		{
			playlistGroup.POST("/createPlaylist", h.Playlist.Create)
			playlistGroup.GET("/getUsersAllPlaylist/:userId", h.Playlist.ListForUser)
			playlistGroup.GET("/getPlaylistById/:playlistId", h.Playlist.GetByID)
			playlistGroup.PATCH("/addVideoToPlaylist/:playlistId/:videoId", h.Playlist.AddVideo)
			playlistGroup.PATCH("/removeVideoFromPlaylist/:playlistId/:videoId", h.Playlist.RemoveVideo)
			playlistGroup.PATCH("/updatePlaylistInfo/:playlistId", h.Playlist.UpdateInfo)
			playlistGroup.DELETE("/deletePlaylist/:playlistId", h.Playlist.Delete)
		}

		tweetGroup := apiV1.Group("/tweets", auth)
		{
			tweetGroup.POST("/createTweet", h.Tweet.Create)
			tweetGroup.GET("/getUsersTweets", h.Tweet.ListForUser)
			tweetGroup.PATCH("/updateTweet/:tweetId", h.Tweet.Update)
			tweetGroup.DELETE("/deleteTweet/:tweetId", h.Tweet.Delete)
		}
	}

	return r
}
