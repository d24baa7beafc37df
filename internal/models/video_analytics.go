package models

import (
	"time"
)

// VideoAnalytics is one row per reported playback sample. Samples are never
// deduplicated; only the view-count increment is deduplicated, by
// (video, viewer IP) within a trailing 24 hour window.
type VideoAnalytics struct {
	BaseModel

	VideoID         uint      `gorm:"not null;index:idx_video_viewer" json:"video_id"`
	WatchTime       float64   `gorm:"not null" json:"watch_time"`       // seconds
	WatchPercentage float64   `gorm:"not null" json:"watch_percentage"` // 0-100
	ViewerIP        string    `gorm:"not null;index:idx_video_viewer" json:"viewer_ip"`
	ViewerCountry   string    `gorm:"not null" json:"viewer_country"`
	ViewedAt        time.Time `gorm:"not null;index" json:"viewed_at"`

	// Relationships
	Video Video `gorm:"foreignKey:VideoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
