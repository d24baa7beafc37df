// Package access decides whether a principal may read or mutate workspace
// resources. Every check receives the principal explicitly and fails closed:
// a zero principal can never pass.
package access

import (
	"errors"

	"github.com/reelay-dev/reelay/internal/middleware"
	"github.com/reelay-dev/reelay/internal/models"
	"gorm.io/gorm"
)

// CanAccessWorkspace reports whether the principal owns the workspace or is
// one of its members.
func CanAccessWorkspace(db *gorm.DB, principal middleware.AuthenticatedUser, workspaceID uint) (bool, error) {
	if principal.ID == 0 {
		return false, nil
	}

	var workspace models.Workspace

	if err := db.Where("id = ?", workspaceID).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if workspace.OwnerID == principal.ID {
		return true, nil
	}

	var count int64

	if err := db.Model(&models.Member{}).
		Where("user_id = ? AND workspace_id = ?", principal.ID, workspaceID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// CanManageMembers reports whether the principal may invite or remove members
// of the workspace. The caller must hold a membership there; the effective
// role is the membership role, falling back to the user's global role when
// the membership carries none.
func CanManageMembers(db *gorm.DB, principal middleware.AuthenticatedUser, workspaceID uint) (bool, error) {
	if principal.ID == 0 {
		return false, nil
	}

	var member models.Member

	err := db.Where("user_id = ? AND workspace_id = ?", principal.ID, workspaceID).First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	role := member.Role
	if role == "" || role == models.RoleMember {
		role = principal.Role
	}

	return role == models.RoleAdmin || role == models.RoleSuperAdmin, nil
}

// CanModifyVideo is the author check gating edit controls: only the owner may
// modify a video.
func CanModifyVideo(principal middleware.AuthenticatedUser, video models.Video) bool {
	return principal.ID != 0 && principal.ID == video.OwnerID
}

// IsSuperAdmin guards member removal: a SUPER_ADMIN member can never be
// removed, regardless of who asks.
func IsSuperAdmin(member models.Member) bool {
	if member.Role == models.RoleSuperAdmin {
		return true
	}

	return member.User.Role == models.RoleSuperAdmin
}
