package api

import (
	"Skylark/internal/api/middleware"
	"Skylark/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetMe)
				authGroup.PUT("/info", group.UserHandler.UpdateProfile)
			}
		}

		// 按 ID 的公开读接口
		usersGroup := apiGroup.Group("/users")
		usersGroup.Use(middleware.AuthOptionalMiddleware())
		{
			usersGroup.GET("/:user_id/followers", group.RelationHandler.GetFollowers)
			usersGroup.GET("/:user_id/followers/count", group.RelationHandler.GetFollowerCount)
			usersGroup.GET("/:user_id/friends", group.RelationHandler.GetFriends)
			usersGroup.GET("/:user_id/friends/count", group.RelationHandler.GetFriendCount)
			usersGroup.GET("/:user_id/posts", group.PostHandler.GetUserPosts)
			usersGroup.GET("/:user_id/posts/count", group.PostHandler.GetStatusCount)
		}

		apiGroup.GET("/profile/:screen_name", group.UserHandler.GetUserByScreenName)

		relationGroup := apiGroup.Group("/user-relation")
		relationGroup.Use(middleware.AuthMiddleware())
		{
			relationGroup.POST("/follow/:target_id", group.RelationHandler.Follow)
			relationGroup.DELETE("/follow/:target_id", group.RelationHandler.Unfollow)
			relationGroup.GET("/isfollow/:target_id", group.RelationHandler.IsFollowing)
		}

		postGroup := apiGroup.Group("/posts")
		postGroup.Use(middleware.AuthOptionalMiddleware())
		{
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.GET("/:post_id/likers", group.EngagementHandler.GetLikers)
			postGroup.GET("/:post_id/likers/count", group.EngagementHandler.GetLikeCount)
			postGroup.GET("/:post_id/reposters", group.EngagementHandler.GetReposters)
			postGroup.GET("/:post_id/replies", group.EngagementHandler.GetReplies)

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.POST("/:post_id/like", group.EngagementHandler.Like)
				authGroup.DELETE("/:post_id/like", group.EngagementHandler.Unlike)
				authGroup.POST("/:post_id/repost", group.PostHandler.Repost)
				authGroup.DELETE("/:post_id/repost", group.PostHandler.Unrepost)
				authGroup.POST("/:post_id/reply", group.PostHandler.Reply)
			}
		}

		// 对外暴露的公开编号查询
		apiGroup.GET("/statuses/:public_id", group.PostHandler.GetPostByPublicID)

		timelineGroup := apiGroup.Group("/timeline")
		timelineGroup.Use(middleware.AuthMiddleware())
		{
			timelineGroup.GET("/home", group.TimelineHandler.GetHomeTimeline)
		}

		apiGroup.GET("/trends", group.TrendHandler.GetTrends)

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("/list", group.NotificationHandler.GetNotificationList)
			notificationGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notificationGroup.POST("/read", group.NotificationHandler.MarkAsRead)
			notificationGroup.POST("/read/all", group.NotificationHandler.MarkAllAsRead)
		}
	}

	return r
}
