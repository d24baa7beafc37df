package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/reelay-dev/reelay/internal/handlers"
	"github.com/reelay-dev/reelay/internal/middleware"
	"github.com/reelay-dev/reelay/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/notifications", middleware.AuthMiddleware(), handlers.NotificationStream)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		api.PATCH("/users/me/first-view", middleware.AuthMiddleware(), handlers.UpdateFirstView)

		workspaces := api.Group("/workspaces", middleware.AuthMiddleware())
		{
			workspaces.POST("", handlers.CreateWorkspace)
			workspaces.GET("", handlers.ListWorkspaces)
			workspaces.GET("/:workspace_id/access", handlers.VerifyWorkspaceAccess)

			// Folder endpoints
			workspaces.POST("/:workspace_id/folders", handlers.CreateFolder)
			workspaces.GET("/:workspace_id/folders", handlers.ListFolders)

			// Video listing
			workspaces.GET("/:workspace_id/videos", handlers.ListWorkspaceVideos)

			// Membership endpoints
			workspaces.POST("/:workspace_id/invite", handlers.InviteMember)
			workspaces.DELETE("/:workspace_id/members/:member_id", handlers.RemoveMember)
		}

		folders := api.Group("/folders", middleware.AuthMiddleware())
		{
			folders.GET("/:folder_id", handlers.GetFolderInfo)
			folders.PATCH("/:folder_id", handlers.RenameFolder)
			folders.GET("/:folder_id/videos", handlers.ListFolderVideos)
		}

		videos := api.Group("/videos", middleware.AuthMiddleware())
		{
			videos.POST("", handlers.CreateVideo)
			videos.GET("/:video_id/preview", handlers.GetPreviewVideo)
			videos.PUT("/:video_id", handlers.EditVideoInfo)
			videos.POST("/:video_id/move", handlers.MoveVideo)
			videos.PATCH("/:video_id/processing", handlers.CompleteProcessing)
			videos.POST("/:video_id/first-view", handlers.RecordFirstView)

			// Analytics endpoints
			videos.POST("/:video_id/analytics", handlers.IngestAnalytics)
			videos.GET("/:video_id/analytics", handlers.GetAnalytics)

			// Call-to-action endpoints
			videos.PUT("/:video_id/cta", handlers.UpsertCTA)
			videos.GET("/:video_id/cta", handlers.GetCTA)
			videos.POST("/:video_id/cta-click", handlers.RecordCTAClick)
		}

		api.GET("/invites/:token", middleware.AuthMiddleware(), handlers.GetInvite)

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
		}
	}

	return r
}
