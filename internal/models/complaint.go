package models

import "time"

// Complaint is a citizen submission. CaseID is the public identifier handed to
// the citizen together with their PIN; it never changes once assigned.
type Complaint struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CaseID      string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"case_id"`
	Category    string    `gorm:"type:varchar(64)" json:"category"`
	Location    string    `gorm:"type:varchar(128)" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	EvidenceURL *string   `gorm:"type:varchar(256)" json:"evidence_url"`
	Status      string    `gorm:"type:varchar(32)" json:"status"`
	PinHash     string    `gorm:"type:varchar(128)" json:"-"` // bcrypt, never the PIN itself
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
