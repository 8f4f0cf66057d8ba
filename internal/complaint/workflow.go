package complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/metrics"
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// StatusUpdate is an admin request to move a complaint to a new status.
type StatusUpdate struct {
	CaseID  string
	Status  string
	AdminID uint
	Notes   *string
}

// UpdateStatus moves the complaint to a recognised status and records the
// transition in the audit log. Any recognised status may follow any other,
// and repeating the current status still appends an entry.
func (s *Service) UpdateStatus(ctx context.Context, u StatusUpdate) (*models.AuditLog, error) {
	if u.CaseID == "" || u.Status == "" || u.AdminID == 0 {
		return nil, ErrMissingFields
	}
	if !config.IsValidStatus(u.Status) {
		return nil, ErrInvalidStatus
	}
	if u.Notes != nil && strings.TrimSpace(*u.Notes) == "" {
		u.Notes = nil
	}

	entry, err := s.Storage.ApplyStatusChange(ctx, storage.StatusChange{
		CaseID:    u.CaseID,
		NewStatus: u.Status,
		AdminID:   u.AdminID,
		Action:    fmt.Sprintf("Status updated to %s", u.Status),
		Notes:     u.Notes,
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{
		"case_id":    u.CaseID,
		"admin_id":   u.AdminID,
		"old_status": entry.OldStatus,
		"new_status": entry.NewStatus,
	}).Info("complaint status updated")

	metrics.StatusUpdates.WithLabelValues(u.Status).Inc()
	s.Events.Publish(ctx, models.ComplaintEvent{
		Type:      models.EventComplaintStatusUpdated,
		CaseID:    u.CaseID,
		Status:    entry.NewStatus,
		OldStatus: entry.OldStatus,
		AdminID:   u.AdminID,
		At:        s.now(),
	})
	return entry, nil
}
