package storage

import (
	"context"
	"errors"
	"fmt"

	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/models"

	"gorm.io/gorm"
)

// StatusChange is one admin-initiated status transition.
type StatusChange struct {
	CaseID    string
	NewStatus string
	AdminID   uint
	Action    string
	Notes     *string
}

// ApplyStatusChange reads the current status, writes the new one and appends
// the audit entry in a single transaction. Either both rows change or neither.
// Concurrent changes to the same complaint are last-write-wins.
func (s *Service) ApplyStatusChange(ctx context.Context, change StatusChange) (*models.AuditLog, error) {
	var entry *models.AuditLog

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var complaint models.Complaint
		if err := tx.Where("case_id = ?", change.CaseID).First(&complaint).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read complaint %s: %w", change.CaseID, err)
		}
		oldStatus := complaint.Status
		if oldStatus == "" {
			oldStatus = config.UnknownBucket
		}

		if err := tx.Model(&models.Complaint{}).
			Where("id = ?", complaint.ID).
			Update("status", change.NewStatus).Error; err != nil {
			return fmt.Errorf("failed to update complaint %s: %w", change.CaseID, err)
		}

		entry = &models.AuditLog{
			CaseID:    change.CaseID,
			AdminID:   change.AdminID,
			Action:    change.Action,
			OldStatus: oldStatus,
			NewStatus: change.NewStatus,
			Notes:     change.Notes,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to append audit log for %s: %w", change.CaseID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
