package model

import "time"

// University represents an institution students can apply to
type University struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Location   string    `gorm:"type:varchar(255)" json:"location"`
	Ranking    int       `json:"ranking"`
	PictureURL string    `gorm:"column:picture_url;type:varchar(512)" json:"picture_url"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Courses []Course `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"courses,omitempty"`
	Events  []Event  `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
}
