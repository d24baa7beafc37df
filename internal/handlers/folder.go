package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelay-dev/reelay/db"
	"github.com/reelay-dev/reelay/internal/access"
	"github.com/reelay-dev/reelay/internal/models"
	"github.com/reelay-dev/reelay/internal/types"
	"github.com/reelay-dev/reelay/internal/utils"
	"gorm.io/gorm"
)

type RenameFolderRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateFolder appends an "Untitled" folder to the workspace. The operation
// is deliberately not idempotent; calling it twice creates two folders.
func CreateFolder(ctx *gin.Context) {
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

	folder := models.Folder{
		Name:        "Untitled",
		WorkspaceID: workspaceID,
	}

	if err := db.DB.Create(&folder).Error; err != nil {
		log.Printf("Failed to create folder: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder"})
		return
	}

	ctx.JSON(http.StatusCreated, types.FolderResponse{
		ID:   folder.ID,
		Name: folder.Name,
	})
}

// ListFolders returns the workspace's folders, each with its derived video
// count. The count is computed per call, never stored.
func ListFolders(ctx *gin.Context) {
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

	var folders []models.Folder

	if err := db.DB.Where("workspace_id = ?", workspaceID).Find(&folders).Error; err != nil {
		log.Printf("Failed to list folders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve folders"})
		return
	}

	response := []types.FolderResponse{}

	for _, folder := range folders {
		count, err := folderVideoCount(folder.ID)

		if err != nil {
			log.Printf("Failed to count videos for folder %d: %v", folder.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve folders"})
			return
		}

		response = append(response, types.FolderResponse{
			ID:         folder.ID,
			Name:       folder.Name,
			VideoCount: count,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// RenameFolder renames in place; a missing folder is a 404.
func RenameFolder(ctx *gin.Context) {
	folderID, err := utils.GetFolderID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body RenameFolderRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var folder models.Folder

	if err := db.DB.First(&folder, folderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		} else {
			log.Printf("Failed to fetch folder: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve folder"})
		}
		return
	}

	folder.Name = body.Name

	if err := db.DB.Save(&folder).Error; err != nil {
		log.Printf("Failed to rename folder: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename folder"})
		return
	}

	ctx.JSON(http.StatusOK, types.FolderResponse{
		ID:   folder.ID,
		Name: folder.Name,
	})
}

// GetFolderInfo returns the folder name and its computed video count.
func GetFolderInfo(ctx *gin.Context) {
	folderID, err := utils.GetFolderID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var folder models.Folder

	if err := db.DB.First(&folder, folderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		} else {
			log.Printf("Failed to fetch folder: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve folder"})
		}
		return
	}

	count, err := folderVideoCount(folder.ID)

	if err != nil {
		log.Printf("Failed to count videos for folder %d: %v", folder.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve folder"})
		return
	}

	ctx.JSON(http.StatusOK, types.FolderResponse{
		ID:         folder.ID,
		Name:       folder.Name,
		VideoCount: count,
	})
}

func folderVideoCount(folderID uint) (int64, error) {
	var count int64

	err := db.DB.Model(&models.Video{}).Where("folder_id = ?", folderID).Count(&count).Error

	return count, err
}
