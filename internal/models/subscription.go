package models

import "gorm.io/gorm"

const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

type Subscription struct {
	gorm.Model

	UserID uint   `gorm:"not null;uniqueIndex"`
	Plan   string `gorm:"not null;default:FREE"` // "FREE", "PRO"

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
