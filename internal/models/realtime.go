package models

import "time"

const (
	EventComplaintCreated       = "complaint.created"
	EventComplaintStatusUpdated = "complaint.status_updated"
)

// ComplaintEvent is pushed to connected admins and notifiers. It never carries
// the PIN or its hash.
type ComplaintEvent struct {
	Type        string    `json:"type"`
	CaseID      string    `json:"case_id"`
	Category    string    `json:"category,omitempty"`
	Location    string    `json:"location,omitempty"`
	HasEvidence bool      `json:"has_evidence,omitempty"`
	Status      string    `json:"status"`
	OldStatus   string    `json:"old_status,omitempty"`
	AdminID     uint      `json:"admin_id,omitempty"`
	At          time.Time `json:"at"`
}

// AllModels lists every table model, in creation order.
func AllModels() []interface{} {
	return []interface{}{
		&Complaint{},
		&Admin{},
		&AuditLog{},
		&ChatMessage{},
	}
}
