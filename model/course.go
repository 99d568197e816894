package model

import "time"

// Course represents a program offered by a university (e.g., MCA, BCA)
type Course struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	DurationSemesters int       `gorm:"column:duration_semesters" json:"duration_semesters"`
	UniversityID      uint      `gorm:"not null;index" json:"university_id"`
	Description       string    `gorm:"type:text" json:"description"`
	CreatedAt         time.Time `json:"created_at"`

	// Relationships
	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
}
