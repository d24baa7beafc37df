package models

import "gorm.io/gorm"

const (
	RoleMember     = "MEMBER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
	gorm.Model

	Name             string `gorm:"not null"`
	Email            string `gorm:"uniqueIndex;not null"`
	PasswordHash     string `gorm:"not null"`
	Role             string `gorm:"not null;default:MEMBER"` // "MEMBER", "ADMIN", "SUPER_ADMIN"
	FirstViewEnabled bool   `gorm:"default:true"`

	// Relationships
	Subscription    *Subscription  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	OwnedWorkspaces []Workspace    `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Memberships     []Member       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Videos          []Video        `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications   []Notification `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
