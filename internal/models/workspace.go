package models

import "gorm.io/gorm"

const (
	WorkspacePersonal = "PERSONAL"
	WorkspacePublic   = "PUBLIC"
)

type Workspace struct {
	gorm.Model

	Name    string `gorm:"not null"`
	Type    string `gorm:"not null"` // "PERSONAL", "PUBLIC"
	OwnerID uint   `gorm:"not null;index"`

	// Relationships
	Owner   User     `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members []Member `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Folders []Folder `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Videos  []Video  `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Invites []Invite `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
