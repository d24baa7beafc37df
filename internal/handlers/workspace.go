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

type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required"`
}

type ListWorkspacesResponse struct {
	Plan     string                    `json:"plan"`
	Owned    []types.WorkspaceResponse `json:"owned"`
	MemberOf []types.WorkspaceResponse `json:"member_of"`
}

// CreateWorkspace adds a shared PUBLIC workspace. Only paid-tier users may
// create one; everyone else gets an explicit not-authorized outcome, not a
// generic failure.
func CreateWorkspace(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateWorkspaceRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var subscription models.Subscription

	if err := db.DB.Where("user_id = ?", currentUser.ID).First(&subscription).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to fetch subscription: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	if subscription.Plan != models.PlanPro {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to create a workspace"})
		return
	}

	workspace := models.Workspace{
		Name:    body.Name,
		Type:    models.WorkspacePublic,
		OwnerID: currentUser.ID,
	}

	if err := db.DB.Create(&workspace).Error; err != nil {
		log.Printf("Failed to create workspace: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workspace"})
		return
	}

	ctx.JSON(http.StatusCreated, types.WorkspaceResponse{
		ID:      workspace.ID,
		Name:    workspace.Name,
		Type:    workspace.Type,
		OwnerID: workspace.OwnerID,
	})
}

// ListWorkspaces returns the caller's owned workspaces and the ones shared
// with them through memberships, plus the subscription plan the client needs
// to gate its create-workspace control.
func ListWorkspaces(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var owned []models.Workspace

	if err := db.DB.Where("owner_id = ?", currentUser.ID).Find(&owned).Error; err != nil {
		log.Printf("Failed to list workspaces: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workspaces"})
		return
	}

	var memberships []models.Member

	if err := db.DB.Preload("Workspace").Where("user_id = ?", currentUser.ID).Find(&memberships).Error; err != nil {
		log.Printf("Failed to list memberships: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workspaces"})
		return
	}

	var subscription models.Subscription
	db.DB.Where("user_id = ?", currentUser.ID).First(&subscription)

	plan := subscription.Plan
	if plan == "" {
		plan = models.PlanFree
	}

	response := ListWorkspacesResponse{
		Plan:     plan,
		Owned:    []types.WorkspaceResponse{},
		MemberOf: []types.WorkspaceResponse{},
	}

	for _, workspace := range owned {
		response.Owned = append(response.Owned, types.WorkspaceResponse{
			ID:      workspace.ID,
			Name:    workspace.Name,
			Type:    workspace.Type,
			OwnerID: workspace.OwnerID,
		})
	}

	for _, membership := range memberships {
		response.MemberOf = append(response.MemberOf, types.WorkspaceResponse{
			ID:      membership.Workspace.ID,
			Name:    membership.Workspace.Name,
			Type:    membership.Workspace.Type,
			OwnerID: membership.Workspace.OwnerID,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// VerifyWorkspaceAccess answers whether the caller may open the workspace.
func VerifyWorkspaceAccess(ctx *gin.Context) {
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
		log.Printf("Failed to verify workspace access: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this workspace"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"workspace_id": workspaceID, "access": true})
}
