package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reelay-dev/reelay/db"
	"github.com/reelay-dev/reelay/internal/access"
	"github.com/reelay-dev/reelay/internal/models"
	"github.com/reelay-dev/reelay/internal/services"
	"github.com/reelay-dev/reelay/internal/types"
	"github.com/reelay-dev/reelay/internal/utils"
	"gorm.io/gorm"
)

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type InviteResponse struct {
	ID          uint   `json:"id"`
	Token       string `json:"token"`
	WorkspaceID uint   `json:"workspace_id"`
	Content     string `json:"content"`
	EmailSent   bool   `json:"email_sent"`
	Message     string `json:"message"`
}

// InviteMember creates an invitation for an existing user. Missing entities
// short-circuit with not-found, an existing membership is a conflict, and
// email delivery is best-effort: the invite stands even when mail is down.
func InviteMember(ctx *gin.Context) {
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

	var body InviteMemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	allowed, err := access.CanManageMembers(db.DB, currentUser, workspaceID)

	if err != nil {
		log.Printf("Failed to check member management rights: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot invite members to this workspace"})
		return
	}

	var workspace models.Workspace

	if err := db.DB.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			log.Printf("Failed to fetch workspace: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var invitedUser models.User

	if err := db.DB.Where("email = ?", body.Email).First(&invitedUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Failed to fetch invited user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var existingMember models.Member

	err = db.DB.Where("user_id = ? AND workspace_id = ?", invitedUser.ID, workspaceID).First(&existingMember).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "User is already a member"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check existing membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	invite := models.Invite{
		Token:       uuid.NewString(),
		SenderID:    currentUser.ID,
		ReceiverID:  invitedUser.ID,
		WorkspaceID: workspaceID,
		Content:     "You are invited to join " + workspace.Name + " Workspace, click accept to confirm",
	}

	if err := db.DB.Create(&invite).Error; err != nil {
		log.Printf("Failed to create invite: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invite"})
		return
	}

	// The invite lands on the sender's feed, not the receiver's; the
	// receiver hears about it by email and the accept link.
	if _, err := services.Notify(db.DB, currentUser.ID,
		currentUser.Name+" invited "+invitedUser.Name+" into "+workspace.Name); err != nil {
		log.Printf("Failed to write invite notification: %v", err)
	}

	acceptLink := types.HostURL() + "/invite/" + invite.Token

	result := services.DefaultMailer.Send(
		body.Email,
		"You got an invitation",
		invite.Content+" "+acceptLink,
		`<a href="`+acceptLink+`" style="background-color: #000; padding: 5px 10px; border-radius: 10px;">Accept Invite</a>`,
	)

	response := InviteResponse{
		ID:          invite.ID,
		Token:       invite.Token,
		WorkspaceID: invite.WorkspaceID,
		Content:     invite.Content,
		EmailSent:   result == services.MailSent,
	}

	switch result {
	case services.MailSent:
		response.Message = "Invite sent"
	case services.MailDisabled:
		response.Message = "Invite created but email notification is disabled"
	default:
		response.Message = "Invite created but the email could not be delivered"
	}

	ctx.JSON(http.StatusOK, response)
}

// GetInvite resolves an accept-link token to its invite content. The accept
// flow itself is out of scope; invites are created-but-terminal here.
func GetInvite(ctx *gin.Context) {
	token := ctx.Param("token")

	if token == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invite token is required"})
		return
	}

	var invite models.Invite

	if err := db.DB.Preload("Workspace").Preload("Sender").Where("token = ?", token).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invite not found"})
		} else {
			log.Printf("Failed to fetch invite: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invite"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"workspace": invite.Workspace.Name,
		"sender":    invite.Sender.Name,
		"content":   invite.Content,
	})
}

// RemoveMember deletes a membership. A member whose role is SUPER_ADMIN can
// never be removed, no matter who asks. Nothing else is touched; the user
// and their videos remain.
func RemoveMember(ctx *gin.Context) {
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

	memberID, err := utils.GetMemberID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed, err := access.CanManageMembers(db.DB, currentUser, workspaceID)

	if err != nil {
		log.Printf("Failed to check member management rights: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot remove members from this workspace"})
		return
	}

	var member models.Member

	if err := db.DB.Preload("User").
		Where("id = ? AND workspace_id = ?", memberID, workspaceID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			log.Printf("Failed to fetch member: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if access.IsSuperAdmin(member) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Cannot remove a SUPER_ADMIN member"})
		return
	}

	if err := db.DB.Delete(&member).Error; err != nil {
		log.Printf("Failed to remove member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
