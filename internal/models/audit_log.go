package models

import "time"

// AuditLog records one status transition. Rows are append-only.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CaseID    string    `gorm:"type:varchar(255);index" json:"case_id"`
	AdminID   uint      `json:"admin_id"`
	Action    string    `gorm:"type:varchar(100)" json:"action"`
	OldStatus string    `gorm:"type:varchar(50)" json:"old_status"`
	NewStatus string    `gorm:"type:varchar(50)" json:"new_status"`
	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
