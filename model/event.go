package model

import "time"

// Event is a university open day, fair or similar
type Event struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	City         string    `gorm:"type:varchar(120)" json:"city"`
	Date         time.Time `json:"date"`
	UniversityID uint      `gorm:"not null;index" json:"university_id"`
}
