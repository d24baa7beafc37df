package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Video struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	Source      string         `gorm:"not null"` // opaque storage key/URL, upload transport lives elsewhere
	WorkspaceID uint           `gorm:"not null;index"`
	FolderID    *uint          `gorm:"index"`
	OwnerID     uint           `gorm:"not null;index"`
	Processing  bool           `gorm:"default:true"`
	Views       int            `gorm:"not null;default:0"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"` // duration, resolution etc. reported by ingestion

	// Relationships
	Workspace    Workspace        `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Folder       *Folder          `gorm:"foreignKey:FolderID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Owner        User             `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Analytics    []VideoAnalytics `gorm:"foreignKey:VideoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CallToAction *CallToAction    `gorm:"foreignKey:VideoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
