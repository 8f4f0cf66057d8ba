// Package complaint implements citizen submission, case tracking and the
// admin status workflow.
package complaint

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"complaintbox/backend/internal/caseid"
	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/metrics"
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrCaseNotFound    = errors.New("case not found")
	ErrInvalidPIN      = errors.New("invalid PIN")
	ErrInvalidEvidence = errors.New("evidence must be an http(s) URL or a path")
	ErrPINLength       = fmt.Errorf("PIN must be between %d and %d bytes", config.MinPINLength, config.MaxSecretLength)
)

// Store is the slice of storage.Storage the complaint service needs.
type Store interface {
	CreateComplaint(ctx context.Context, complaint *models.Complaint) error
	FindComplaintByCaseID(ctx context.Context, caseID string) (*models.Complaint, error)
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
	ApplyStatusChange(ctx context.Context, change storage.StatusChange) (*models.AuditLog, error)
	ListAuditLogs(ctx context.Context, caseID string) ([]models.AuditLog, error)
}

// SecretHasher hashes PINs at rest.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// EventPublisher receives complaint lifecycle events. Publish must not block
// the request for long.
type EventPublisher interface {
	Publish(ctx context.Context, event models.ComplaintEvent)
}

// Service handles the business logic for complaints.
type Service struct {
	Storage   Store
	Hasher    SecretHasher
	Events    EventPublisher
	NewCaseID func() (string, error)
	Log       *logrus.Logger
	now       func() time.Time
}

// NewService creates a new complaint service. events may be nil.
func NewService(s Store, h SecretHasher, events EventPublisher, log *logrus.Logger) *Service {
	if events == nil {
		events = Publishers{}
	}
	return &Service{
		Storage:   s,
		Hasher:    h,
		Events:    events,
		NewCaseID: caseid.Generate,
		Log:       log,
		now:       time.Now,
	}
}

// Submission is a citizen complaint before it is stored.
type Submission struct {
	Category    string
	Location    string
	Description string
	EvidenceURL *string
	PIN         string
}

// Submit stores a new complaint with a fresh case identifier and the hashed
// PIN. An identifier collision is retried with a new identifier.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.Complaint, error) {
	sub.Category = strings.TrimSpace(sub.Category)
	sub.Location = strings.TrimSpace(sub.Location)
	if sub.Category == "" || sub.Location == "" || strings.TrimSpace(sub.Description) == "" || sub.PIN == "" {
		return nil, ErrMissingFields
	}
	if len(sub.PIN) < config.MinPINLength || len(sub.PIN) > config.MaxSecretLength {
		return nil, ErrPINLength
	}
	if !config.IsValidCategory(sub.Category) {
		return nil, ErrInvalidCategory
	}
	if sub.EvidenceURL != nil {
		ref := strings.TrimSpace(*sub.EvidenceURL)
		switch {
		case ref == "":
			sub.EvidenceURL = nil
		case !isEvidenceRef(ref):
			return nil, ErrInvalidEvidence
		default:
			sub.EvidenceURL = &ref
		}
	}

	pinHash, err := s.Hasher.Hash(sub.PIN)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	var complaint *models.Complaint
	for attempt := 1; attempt <= config.MaxCaseIDAttempts; attempt++ {
		id, err := s.NewCaseID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate case id: %w", err)
		}

		complaint = &models.Complaint{
			CaseID:      id,
			Category:    sub.Category,
			Location:    sub.Location,
			Description: sub.Description,
			EvidenceURL: sub.EvidenceURL,
			Status:      config.StatusReceived,
			PinHash:     pinHash,
		}
		err = s.Storage.CreateComplaint(ctx, complaint)
		if err == nil {
			break
		}
		if !errors.Is(err, storage.ErrDuplicateCaseID) || attempt == config.MaxCaseIDAttempts {
			return nil, err
		}
		s.Log.WithField("attempt", attempt).Warn("case id collision, regenerating")
	}

	metrics.ComplaintsSubmitted.WithLabelValues(complaint.Category).Inc()
	s.Events.Publish(ctx, models.ComplaintEvent{
		Type:        models.EventComplaintCreated,
		CaseID:      complaint.CaseID,
		Category:    complaint.Category,
		Location:    complaint.Location,
		HasEvidence: complaint.EvidenceURL != nil,
		Status:      complaint.Status,
		At:          s.now(),
	})
	return complaint, nil
}

// isEvidenceRef accepts an absolute http(s) URL or a relative/absolute path
// to an uploaded file.
func isEvidenceRef(ref string) bool {
	if strings.ContainsAny(ref, " \t\r\n") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return u.Host == "" && u.Path != ""
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Track returns the complaint when caseID exists and pin matches its hash.
// Unknown case and wrong PIN are reported as different errors.
func (s *Service) Track(ctx context.Context, caseID, pin string) (*models.Complaint, error) {
	if caseID == "" || pin == "" {
		return nil, ErrMissingFields
	}

	complaint, err := s.Storage.FindComplaintByCaseID(ctx, caseID)
	if errors.Is(err, storage.ErrNotFound) {
		metrics.TrackAttempts.WithLabelValues("not_found").Inc()
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}

	if !s.Hasher.Verify(pin, complaint.PinHash) {
		metrics.TrackAttempts.WithLabelValues("invalid_pin").Inc()
		return nil, ErrInvalidPIN
	}

	metrics.TrackAttempts.WithLabelValues("success").Inc()
	return complaint, nil
}

// Get returns a complaint for admin views.
func (s *Service) Get(ctx context.Context, caseID string) (*models.Complaint, error) {
	complaint, err := s.Storage.FindComplaintByCaseID(ctx, caseID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrCaseNotFound
	}
	return complaint, err
}

// List returns every complaint, newest first.
func (s *Service) List(ctx context.Context) ([]models.Complaint, error) {
	return s.Storage.ListComplaints(ctx)
}

// AuditTrail returns the status history of a complaint, oldest first.
func (s *Service) AuditTrail(ctx context.Context, caseID string) ([]models.AuditLog, error) {
	if _, err := s.Get(ctx, caseID); err != nil {
		return nil, err
	}
	return s.Storage.ListAuditLogs(ctx, caseID)
}
