package complaint_test

import (
	"context"
	"sync"

	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockStore) FindComplaintByCaseID(ctx context.Context, caseID string) (*models.Complaint, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStore) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStore) ApplyStatusChange(ctx context.Context, change storage.StatusChange) (*models.AuditLog, error) {
	args := m.Called(ctx, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuditLog), args.Error(1)
}

func (m *MockStore) ListAuditLogs(ctx context.Context, caseID string) ([]models.AuditLog, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLog), args.Error(1)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ComplaintEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event models.ComplaintEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []models.ComplaintEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ComplaintEvent(nil), p.events...)
}
