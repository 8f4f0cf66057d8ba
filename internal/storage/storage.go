// Package storage is the gorm-backed persistence layer for complaints, admins
// and the audit trail.
package storage

import (
	"context"
	"errors"
	"fmt"

	"complaintbox/backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateCaseID   = errors.New("duplicate case identifier")
	ErrDuplicateUsername = errors.New("duplicate admin username")
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

type Storage interface {
	CreateComplaint(ctx context.Context, complaint *models.Complaint) error
	FindComplaintByCaseID(ctx context.Context, caseID string) (*models.Complaint, error)
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, caseID, status string) error
	ApplyStatusChange(ctx context.Context, change StatusChange) (*models.AuditLog, error)

	ListAuditLogs(ctx context.Context, caseID string) ([]models.AuditLog, error)

	CreateAdmin(ctx context.Context, admin *models.Admin) error
	FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	FindAdminByID(ctx context.Context, id uint) (*models.Admin, error)

	Ping(ctx context.Context) error
}

// Service implements Storage on top of a caller-owned *gorm.DB.
type Service struct {
	DB *gorm.DB
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// AutoMigrate creates the tables from the models. Production schemas are
// managed by the goose migrations; this is used by tests and local setups.
func (s *Service) AutoMigrate() error {
	return s.DB.AutoMigrate(models.AllModels()...)
}

// Ping checks the underlying connection.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateComplaint inserts a new complaint. A clash on case_id is reported as
// ErrDuplicateCaseID so the caller can retry with a fresh identifier.
func (s *Service) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	if err := s.DB.WithContext(ctx).Create(complaint).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCaseID
		}
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

// FindComplaintByCaseID returns ErrNotFound when no complaint has the identifier.
func (s *Service) FindComplaintByCaseID(ctx context.Context, caseID string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.WithContext(ctx).Where("case_id = ?", caseID).First(&complaint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint %s: %w", caseID, err)
	}
	return &complaint, nil
}

// ListComplaints returns every complaint, newest first.
func (s *Service) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

// UpdateComplaintStatus overwrites the status without writing an audit entry.
// Status changes made on behalf of an admin go through ApplyStatusChange.
func (s *Service) UpdateComplaintStatus(ctx context.Context, caseID, status string) error {
	result := s.DB.WithContext(ctx).Model(&models.Complaint{}).
		Where("case_id = ?", caseID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update complaint %s: %w", caseID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAuditLogs returns the audit trail of one complaint, oldest first.
func (s *Service) ListAuditLogs(ctx context.Context, caseID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	if err := s.DB.WithContext(ctx).Where("case_id = ?", caseID).Order("created_at asc").Order("id asc").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs for %s: %w", caseID, err)
	}
	return logs, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
