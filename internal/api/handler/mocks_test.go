package handler_test

import (
	"context"

	"complaintbox/backend/internal/analysis"
	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/complaint"
	"complaintbox/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockComplaints struct {
	mock.Mock
}

func (m *MockComplaints) Submit(ctx context.Context, sub complaint.Submission) (*models.Complaint, error) {
	args := m.Called(ctx, sub)
	c, _ := args.Get(0).(*models.Complaint)
	return c, args.Error(1)
}

func (m *MockComplaints) Track(ctx context.Context, caseID, pin string) (*models.Complaint, error) {
	args := m.Called(ctx, caseID, pin)
	c, _ := args.Get(0).(*models.Complaint)
	return c, args.Error(1)
}

func (m *MockComplaints) Get(ctx context.Context, caseID string) (*models.Complaint, error) {
	args := m.Called(ctx, caseID)
	c, _ := args.Get(0).(*models.Complaint)
	return c, args.Error(1)
}

func (m *MockComplaints) List(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Complaint)
	return list, args.Error(1)
}

func (m *MockComplaints) AuditTrail(ctx context.Context, caseID string) ([]models.AuditLog, error) {
	args := m.Called(ctx, caseID)
	entries, _ := args.Get(0).([]models.AuditLog)
	return entries, args.Error(1)
}

func (m *MockComplaints) UpdateStatus(ctx context.Context, u complaint.StatusUpdate) (*models.AuditLog, error) {
	args := m.Called(ctx, u)
	entry, _ := args.Get(0).(*models.AuditLog)
	return entry, args.Error(1)
}

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	args := m.Called(ctx, username, password)
	s, _ := args.Get(0).(*auth.Session)
	return s, args.Error(1)
}

func (m *MockAuth) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	args := m.Called(ctx, token)
	a, _ := args.Get(0).(*models.Admin)
	return a, args.Error(1)
}

type MockAnalytics struct {
	mock.Mock
}

func (m *MockAnalytics) Summary(ctx context.Context) (analysis.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(analysis.Summary), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
