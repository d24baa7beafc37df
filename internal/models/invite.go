package models

import "gorm.io/gorm"

// Invite rows are immutable once created; accept/decline is out of scope
// and handled by whoever follows the accept link.
type Invite struct {
	gorm.Model

	Token       string `gorm:"uniqueIndex;not null"` // uuid used in the accept link
	SenderID    uint   `gorm:"not null;index"`
	ReceiverID  uint   `gorm:"not null;index"`
	WorkspaceID uint   `gorm:"not null;index"`
	Content     string `gorm:"not null"`

	// Relationships
	Sender    User      `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Receiver  User      `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Workspace Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
