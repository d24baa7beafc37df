package models

import "gorm.io/gorm"

// Notification is append-only; there is no read/unread state or delete path.
type Notification struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"`
	Content string `gorm:"not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
