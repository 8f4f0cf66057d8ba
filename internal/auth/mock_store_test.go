package auth_test

import (
	"context"

	"complaintbox/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminStore) FindAdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}
