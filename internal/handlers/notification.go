package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reelay-dev/reelay/db"
	"github.com/reelay-dev/reelay/internal/models"
	"github.com/reelay-dev/reelay/internal/services"
	"github.com/reelay-dev/reelay/internal/utils"
	"gorm.io/gorm"
)

type NotificationSummary struct {
	ID        uint   `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ListNotifications returns the caller's notifications newest-first.
func ListNotifications(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var notifications []models.Notification

	if err := db.DB.Where("user_id = ?", currentUser.ID).Order("created_at DESC").Find(&notifications).Error; err != nil {
		log.Printf("Failed to list notifications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	response := []NotificationSummary{}

	for _, notification := range notifications {
		response = append(response, NotificationSummary{
			ID:        notification.ID,
			Content:   notification.Content,
			CreatedAt: notification.CreatedAt.Format(time.RFC3339),
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// RecordFirstView drives the one-time first-view workflow. It is a no-op
// unless the owner has first-view notifications enabled and the view counter
// is still zero; otherwise it bumps views to 1 and notifies the owner, by
// email when the mailer is up and by in-app notification regardless. The
// notification write completes before this returns.
func RecordFirstView(ctx *gin.Context) {
	if _, err := utils.GetCurrentUser(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	videoID, err := utils.GetVideoID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var video models.Video

	if err := db.DB.Preload("Owner").First(&video, videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		} else {
			log.Printf("Failed to fetch video: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve video"})
		}
		return
	}

	if !video.Owner.FirstViewEnabled {
		ctx.JSON(http.StatusOK, gin.H{"notified": false})
		return
	}

	if video.Views != 0 {
		ctx.JSON(http.StatusOK, gin.H{"notified": false})
		return
	}

	// Guarded increment: only the caller that moves views 0 -> 1 sends the
	// notification, so concurrent first views cannot double-send.
	result := db.DB.Model(&models.Video{}).
		Where("id = ? AND views = 0", video.ID).
		Update("views", gorm.Expr("views + 1"))

	if result.Error != nil {
		log.Printf("Failed to increment views: %v", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusOK, gin.H{"notified": false})
		return
	}

	if err := services.NotifyFirstView(db.DB, video.Owner, video.Title); err != nil {
		// The view increment is not rolled back; the workflow is attempted
		// exactly once.
		log.Printf("Failed to write first-view notification: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record notification"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"notified": true})
}
