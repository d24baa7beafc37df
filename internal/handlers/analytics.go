package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reelay-dev/reelay/db"
	"github.com/reelay-dev/reelay/internal/analytics"
	"github.com/reelay-dev/reelay/internal/models"
	"github.com/reelay-dev/reelay/internal/utils"
	"gorm.io/gorm"
)

type IngestAnalyticsRequest struct {
	WatchTime       float64 `json:"watch_time" binding:"min=0"`
	WatchPercentage float64 `json:"watch_percentage" binding:"min=0,max=100"`
}

type AnalyticsResponse struct {
	TotalViews             int                     `json:"total_views"`
	AverageWatchTime       float64                 `json:"average_watch_time"`
	AverageWatchPercentage float64                 `json:"average_watch_percentage"`
	ViewsByCountry         map[string]int          `json:"views_by_country"`
	Samples                []models.VideoAnalytics `json:"samples"`
}

// viewDedupWindow bounds the per-IP view counting described in IngestAnalytics.
const viewDedupWindow = 24 * time.Hour

// IngestAnalytics appends a playback sample. Samples themselves are never
// deduplicated; the view counter only moves when this (video, viewer IP) pair
// has no sample inside the trailing 24 hour window. The dedup check runs
// before the insert so the fresh sample cannot satisfy its own guard.
func IngestAnalytics(ctx *gin.Context) {
	if _, err := utils.GetCurrentUser(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	videoID, err := utils.GetVideoID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body IngestAnalyticsRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var video models.Video

	if err := db.DB.First(&video, videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		} else {
			log.Printf("Failed to fetch video: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve video"})
		}
		return
	}

	viewerIP := utils.ViewerIP(ctx)
	viewerCountry := utils.ViewerCountry(ctx)

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var recent int64

		if err := tx.Model(&models.VideoAnalytics{}).
			Where("video_id = ? AND viewer_ip = ? AND viewed_at >= ?",
				video.ID, viewerIP, time.Now().Add(-viewDedupWindow)).
			Count(&recent).Error; err != nil {
			return err
		}

		sample := models.VideoAnalytics{
			VideoID:         video.ID,
			WatchTime:       body.WatchTime,
			WatchPercentage: body.WatchPercentage,
			ViewerIP:        viewerIP,
			ViewerCountry:   viewerCountry,
			ViewedAt:        time.Now(),
		}

		if err := tx.Create(&sample).Error; err != nil {
			return err
		}

		if recent == 0 {
			return tx.Model(&models.Video{}).
				Where("id = ?", video.ID).
				Update("views", gorm.Expr("views + 1")).Error
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to ingest analytics sample: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record analytics"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAnalytics returns the stored view total, aggregate metrics over all
// samples, and the samples newest-first.
func GetAnalytics(ctx *gin.Context) {
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

	if err := db.DB.First(&video, videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		} else {
			log.Printf("Failed to fetch video: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve video"})
		}
		return
	}

	var samples []models.VideoAnalytics

	if err := db.DB.Where("video_id = ?", video.ID).Order("viewed_at DESC").Find(&samples).Error; err != nil {
		log.Printf("Failed to fetch analytics samples: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	summary := analytics.Summarize(samples)

	ctx.JSON(http.StatusOK, AnalyticsResponse{
		TotalViews:             video.Views,
		AverageWatchTime:       summary.AverageWatchTime,
		AverageWatchPercentage: summary.AverageWatchPercentage,
		ViewsByCountry:         summary.ViewsByCountry,
		Samples:                samples,
	})
}
