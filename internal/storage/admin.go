package storage

import (
	"context"
	"errors"
	"fmt"

	"complaintbox/backend/internal/models"

	"gorm.io/gorm"
)

// CreateAdmin inserts an admin; a taken username yields ErrDuplicateUsername.
func (s *Service) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	if err := s.DB.WithContext(ctx).Create(admin).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create admin %s: %w", admin.Username, err)
	}
	return nil
}

func (s *Service) FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin %s: %w", username, err)
	}
	return &admin, nil
}

func (s *Service) FindAdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.WithContext(ctx).First(&admin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin %d: %w", id, err)
	}
	return &admin, nil
}
