package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel mirrors gorm.Model but serializes with snake_case keys so
// rows can be returned to clients without a wrapper struct.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
