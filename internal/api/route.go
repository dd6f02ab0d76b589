package api

import (
	"Bastion/internal/api/middleware"
	"Bastion/internal/model"
	"Bastion/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	logger.SetupGin(r)

	// socket auth happens inside the handler so anonymous viewers can still receive broadcasts
	r.GET("/ws", group.WsHandler.Connect)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)
		}

		userGroup := apiGroup.Group("/users")
		{
			optGroup := userGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("/:user_id", group.UserHandler.GetProfile)
				optGroup.GET("/:user_id/followers", group.UserFollowHandler.GetFollowers)
				optGroup.GET("/:user_id/following", group.UserFollowHandler.GetFollowing)
			}

			meGroup := userGroup.Group("")
			meGroup.Use(middleware.AuthMiddleware())
			{
				meGroup.GET("/me", group.UserHandler.GetMe)
				meGroup.PUT("/me/profile", group.UserHandler.UpdateProfile)
				meGroup.POST("/me/avatar", group.UserHandler.UploadAvatar)
				meGroup.POST("/:user_id/follow", group.UserFollowHandler.Follow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			optGroup := postGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("", group.PostHandler.GetFeed)
				optGroup.GET("/:post_id", group.PostHandler.GetPost)
				optGroup.GET("/:post_id/comments", group.PostHandler.GetComments)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.POST("/:post_id/like", group.PostHandler.LikePost)
				authGroup.POST("/:post_id/comments", group.PostHandler.CreateComment)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		commentGroup.Use(middleware.AuthMiddleware())
		{
			commentGroup.DELETE("/:comment_id", group.PostHandler.DeleteComment)
		}

		messageGroup := apiGroup.Group("/messages")
		messageGroup.Use(middleware.AuthMiddleware())
		{
			messageGroup.GET("", group.MessageHandler.GetConversations)
			messageGroup.GET("/chat/:user_id", group.MessageHandler.GetThread)
			messageGroup.POST("", group.MessageHandler.Send)
			messageGroup.POST("/mark-read", group.MessageHandler.MarkRead)
		}

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("", group.NotificationHandler.List)
			notificationGroup.GET("/universal", group.NotificationHandler.ListUniversal)
			notificationGroup.GET("/unread-count", group.NotificationHandler.UnreadCount)
			notificationGroup.PUT("/mark-all-read", group.NotificationHandler.MarkAllRead)
			notificationGroup.PUT("/:notification_id/read", group.NotificationHandler.MarkRead)
			notificationGroup.DELETE("/:notification_id", group.NotificationHandler.Delete)

			adminGroup := notificationGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(model.RoleAdmin))
			{
				adminGroup.POST("/universal", group.NotificationHandler.CreateUniversal)
			}
		}

		communityGroup := apiGroup.Group("/communities")
		{
			optGroup := communityGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("", group.CommunityHandler.List)
				optGroup.GET("/:community", group.CommunityHandler.Get)
				optGroup.GET("/:community/members", group.CommunityHandler.Members)
			}

			authGroup := communityGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.CommunityHandler.Create)
				authGroup.PUT("/:community", group.CommunityHandler.Update)
				authGroup.DELETE("/:community", group.CommunityHandler.Delete)
				authGroup.POST("/:community/join", group.CommunityHandler.Join)
				authGroup.POST("/:community/leave", group.CommunityHandler.Leave)
				authGroup.PUT("/:community/members/:member_id", group.CommunityHandler.UpdateMemberRole)
			}
		}

		searchGroup := apiGroup.Group("/search")
		searchGroup.Use(middleware.AuthOptionalMiddleware())
		{
			searchGroup.GET("/users", group.SearchHandler.Users)
			searchGroup.GET("/posts", group.SearchHandler.Posts)
		}

		aiGroup := apiGroup.Group("/ai")
		aiGroup.Use(middleware.AuthMiddleware())
		{
			aiGroup.POST("/chat", group.AgentHandler.Chat)
			aiGroup.GET("/history", group.AgentHandler.History)
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(model.RoleAdmin))
		{
			adminGroup.GET("/pending/posts", group.PostHandler.GetPendingPosts)
			adminGroup.GET("/pending/comments", group.PostHandler.GetPendingComments)
			adminGroup.POST("/posts/:post_id/approve", group.PostHandler.ApprovePost)
			adminGroup.POST("/posts/:post_id/reject", group.PostHandler.RejectPost)
			adminGroup.POST("/comments/:comment_id/approve", group.PostHandler.ApproveComment)
			adminGroup.POST("/comments/:comment_id/reject", group.PostHandler.RejectComment)
		}
	}

	return r
}
