package models

type CallToAction struct {
	BaseModel

	VideoID     uint   `gorm:"not null;uniqueIndex"`
	ButtonText  string `gorm:"not null"`
	ButtonLink  string `gorm:"not null"`
	ButtonColor string
	TextColor   string
	Clicks      int `gorm:"not null;default:0"`

	// Relationships
	Video Video `gorm:"foreignKey:VideoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
