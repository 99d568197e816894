package model

import (
	"time"

	"gorm.io/datatypes"
)

// AdminAuditLog represents audit trail for admin actions
type AdminAuditLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AdminName   string         `gorm:"type:varchar(64);not null" json:"admin_name"`
	Action      string         `gorm:"type:varchar(100);not null" json:"action"` // e.g., "university_create"
	Resource    string         `gorm:"type:varchar(100)" json:"resource"`        // e.g., "universities", "courses"
	ResourceID  uint           `json:"resource_id"`
	Payload     datatypes.JSON `json:"payload"`
	IPAddress   string         `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent   string         `gorm:"type:text" json:"user_agent"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TableName specifies the table name for AdminAuditLog
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
