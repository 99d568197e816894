package model

import "time"

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

// Application is a student's request to join a course at a university
type Application struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       *uint             `gorm:"index" json:"user_id,omitempty"` // NULL for anonymous submissions
	UniversityID uint              `gorm:"not null;index" json:"university_id"`
	CourseID     uint              `gorm:"not null;index" json:"course_id"`
	Status       ApplicationStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Intake       string            `gorm:"type:varchar(50);not null" json:"intake"`
	Year         int               `gorm:"not null" json:"year"`
	CreatedAt    time.Time         `json:"created_at"`

	// Relationships
	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
	Course     *Course     `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
