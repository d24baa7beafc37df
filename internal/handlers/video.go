package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reelay-dev/reelay/db"
	"github.com/reelay-dev/reelay/internal/access"
	"github.com/reelay-dev/reelay/internal/models"
	"github.com/reelay-dev/reelay/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateVideoRequest struct {
	Key         string `json:"key" binding:"required"` // opaque storage key from the upload transport
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	WorkspaceID uint   `json:"workspace_id" binding:"required"`
	FolderID    *uint  `json:"folder_id"`
}

type EditVideoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type MoveVideoRequest struct {
	WorkspaceID uint  `json:"workspace_id" binding:"required"`
	FolderID    *uint `json:"folder_id"` // nil clears the folder association
}

type CompleteProcessingRequest struct {
	Metadata map[string]interface{} `json:"metadata"`
}

type VideoSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	WorkspaceID uint      `json:"workspace_id"`
	FolderID    *uint     `json:"folder_id"`
	OwnerID     uint      `json:"owner_id"`
	Processing  bool      `json:"processing"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
}

type PreviewVideoResponse struct {
	VideoSummary
	Author    bool   `json:"author"`
	OwnerName string `json:"owner_name"`
	OwnerPlan string `json:"owner_plan"`
}

// CreateVideo registers an uploaded video. The file itself lives in object
// storage; only the opaque key is recorded here. Processing stays true until
// the ingestion callback flips it.
func CreateVideo(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateVideoRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	allowed, err := access.CanAccessWorkspace(db.DB, currentUser, body.WorkspaceID)

	if err != nil {
		log.Printf("Failed to check workspace access: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this workspace"})
		return
	}

	video := models.Video{
		Title:       body.Title,
		Description: body.Description,
		Source:      body.Key,
		WorkspaceID: body.WorkspaceID,
		FolderID:    body.FolderID,
		OwnerID:     currentUser.ID,
		Processing:  true,
	}

	if err := db.DB.Create(&video).Error; err != nil {
		log.Printf("Failed to create video: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create video"})
		return
	}

	ctx.JSON(http.StatusCreated, videoSummary(video))
}

// ListWorkspaceVideos returns the workspace's videos ordered by creation time
// ascending.
func ListWorkspaceVideos(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := utils.GetWorkspaceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed, err := access.CanAccessWorkspace(db.DB, currentUser, workspaceID)

	if err != nil {
		log.Printf("Failed to check workspace access: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this workspace"})
		return
	}

	listVideosWhere(ctx, "workspace_id = ?", workspaceID)
}

// ListFolderVideos is the folder-scoped accessor; together with
// ListWorkspaceVideos it replaces the old ambiguous workspace-or-folder id
// query.
func ListFolderVideos(ctx *gin.Context) {
	if _, err := utils.GetCurrentUser(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	folderID, err := utils.GetFolderID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listVideosWhere(ctx, "folder_id = ?", folderID)
}

func listVideosWhere(ctx *gin.Context, query string, arg interface{}) {
	var videos []models.Video

	if err := db.DB.Where(query, arg).Order("created_at ASC").Find(&videos).Error; err != nil {
		log.Printf("Failed to list videos: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve videos"})
		return
	}

	response := []VideoSummary{}

	for _, video := range videos {
		response = append(response, videoSummary(video))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetPreviewVideo returns video detail plus the author flag the player uses
// to show edit controls. An unauthenticated caller gets a 404 even when the
// video exists.
func GetPreviewVideo(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	videoID, err := utils.GetVideoID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var video models.Video

	if err := db.DB.Preload("Owner").Preload("Owner.Subscription").First(&video, videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		} else {
			log.Printf("Failed to fetch video: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve video"})
		}
		return
	}

	ownerPlan := models.PlanFree
	if video.Owner.Subscription != nil {
		ownerPlan = video.Owner.Subscription.Plan
	}

	ctx.JSON(http.StatusOK, PreviewVideoResponse{
		VideoSummary: videoSummary(video),
		Author:       access.CanModifyVideo(currentUser, video),
		OwnerName:    video.Owner.Name,
		OwnerPlan:    ownerPlan,
	})
}

// EditVideoInfo updates title and description; a missing video is a 404.
func EditVideoInfo(ctx *gin.Context) {
	if _, err := utils.GetCurrentUser(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	videoID, err := utils.GetVideoID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body EditVideoRequest

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

	video.Title = body.Title
	video.Description = body.Description

	if err := db.DB.Save(&video).Error; err != nil {
		log.Printf("Failed to update video: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update video"})
		return
	}

	ctx.JSON(http.StatusOK, videoSummary(video))
}

// MoveVideo reassigns the video's workspace. Omitting folder_id clears the
// folder association; this is explicit-null semantics, not "leave unchanged".
func MoveVideo(ctx *gin.Context) {
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

	var body MoveVideoRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	allowed, err := access.CanAccessWorkspace(db.DB, currentUser, body.WorkspaceID)

	if err != nil {
		log.Printf("Failed to check workspace access: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this workspace"})
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

	updates := map[string]interface{}{
		"workspace_id": body.WorkspaceID,
		"folder_id":    body.FolderID,
	}

	if err := db.DB.Model(&video).Updates(updates).Error; err != nil {
		log.Printf("Failed to move video: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move video"})
		return
	}

	video.WorkspaceID = body.WorkspaceID
	video.FolderID = body.FolderID

	ctx.JSON(http.StatusOK, videoSummary(video))
}

// CompleteProcessing is the ingestion completion callback: it flips the
// processing flag and records whatever metadata ingestion reported.
func CompleteProcessing(ctx *gin.Context) {
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

	var body CompleteProcessingRequest
	// Body is optional; ingestion may have nothing to report.
	_ = ctx.ShouldBindJSON(&body)

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
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can update this video"})
		return
	}

	updates := map[string]interface{}{"processing": false}

	if body.Metadata != nil {
		metadata, err := json.Marshal(body.Metadata)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metadata"})
			return
		}
		updates["metadata"] = datatypes.JSON(metadata)
	}

	if err := db.DB.Model(&video).Updates(updates).Error; err != nil {
		log.Printf("Failed to complete processing: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update video"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"processing": false})
}

func videoSummary(video models.Video) VideoSummary {
	return VideoSummary{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		Source:      video.Source,
		WorkspaceID: video.WorkspaceID,
		FolderID:    video.FolderID,
		OwnerID:     video.OwnerID,
		Processing:  video.Processing,
		Views:       video.Views,
		CreatedAt:   video.CreatedAt,
	}
}
