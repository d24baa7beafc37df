package models

type Folder struct {
	BaseModel

	Name        string `gorm:"not null;default:Untitled"`
	WorkspaceID uint   `gorm:"not null;index"`

	// Relationships
	Workspace Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Videos    []Video   `gorm:"foreignKey:FolderID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
