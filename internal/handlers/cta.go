package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelay-dev/reelay/db"
	"github.com/reelay-dev/reelay/internal/access"
	"github.com/reelay-dev/reelay/internal/models"
	"github.com/reelay-dev/reelay/internal/utils"
	"gorm.io/gorm"
)

type UpsertCTARequest struct {
	ButtonText  string `json:"button_text" binding:"required"`
	ButtonLink  string `json:"button_link" binding:"required"`
	ButtonColor string `json:"button_color"`
	TextColor   string `json:"text_color"`
}

type CTAResponse struct {
	ID          uint   `json:"id"`
	VideoID     uint   `json:"video_id"`
	ButtonText  string `json:"button_text"`
	ButtonLink  string `json:"button_link"`
	ButtonColor string `json:"button_color"`
	TextColor   string `json:"text_color"`
	Clicks      int    `json:"clicks"`
}

// UpsertCTA creates or replaces the video's call-to-action. Only the video
// owner may configure it; the click counter survives reconfiguration.
func UpsertCTA(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	videoID, err := utils.GetVideoID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpsertCTARequest

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

	if !access.CanModifyVideo(currentUser, video) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can configure the call to action"})
		return
	}

	var cta models.CallToAction

	err = db.DB.Where("video_id = ?", video.ID).First(&cta).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to fetch call to action: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve call to action"})
		return
	}

	cta.VideoID = video.ID
	cta.ButtonText = body.ButtonText
	cta.ButtonLink = body.ButtonLink
	cta.ButtonColor = body.ButtonColor
	cta.TextColor = body.TextColor

	if err := db.DB.Save(&cta).Error; err != nil {
		log.Printf("Failed to save call to action: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save call to action"})
		return
	}

	ctx.JSON(http.StatusOK, ctaResponse(cta))
}

// GetCTA returns the video's call-to-action for the player overlay.
func GetCTA(ctx *gin.Context) {
	if _, err := utils.GetCurrentUser(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	videoID, err := utils.GetVideoID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cta models.CallToAction

	if err := db.DB.Where("video_id = ?", videoID).First(&cta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "CTA not found"})
		} else {
			log.Printf("Failed to fetch call to action: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve call to action"})
		}
		return
	}

	ctx.JSON(http.StatusOK, ctaResponse(cta))
}

// RecordCTAClick bumps the click counter by exactly one. The increment runs
// in SQL so N concurrent clicks land as +N.
func RecordCTAClick(ctx *gin.Context) {
	if _, err := utils.GetCurrentUser(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	videoID, err := utils.GetVideoID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := db.DB.Model(&models.CallToAction{}).
		Where("video_id = ?", videoID).
		Update("clicks", gorm.Expr("clicks + 1"))

	if result.Error != nil {
		log.Printf("Failed to record CTA click: %v", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record click"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "CTA not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func ctaResponse(cta models.CallToAction) CTAResponse {
	return CTAResponse{
		ID:          cta.ID,
		VideoID:     cta.VideoID,
		ButtonText:  cta.ButtonText,
		ButtonLink:  cta.ButtonLink,
		ButtonColor: cta.ButtonColor,
		TextColor:   cta.TextColor,
		Clicks:      cta.Clicks,
	}
}
