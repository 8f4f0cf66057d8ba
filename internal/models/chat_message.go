package models

import "time"

const (
	SenderCitizen = "user"
	SenderAdmin   = "admin"
)

// ChatMessage is part of the schema only; no route reads or writes it yet.
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CaseID     string    `gorm:"type:varchar(255);index" json:"case_id"`
	SenderType string    `gorm:"type:varchar(20)" json:"sender_type"`
	AdminID    *uint     `json:"admin_id,omitempty"`
	Message    string    `gorm:"type:text" json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
