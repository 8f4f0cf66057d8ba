package storage_test

import (
	"context"
	"testing"
	"time"

	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStorage(t *testing.T) *storage.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive for the whole test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := storage.NewStorageService(db)
	require.NoError(t, s.AutoMigrate())
	return s
}

func newComplaint(caseID string) *models.Complaint {
	return &models.Complaint{
		CaseID:      caseID,
		Category:    "Corruption",
		Location:    "Dhaka",
		Description: "Bribe requested at the passport office",
		Status:      "Received",
		PinHash:     "$2a$10$hash",
	}
}

func TestCreateAndFindComplaint(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	c := newComplaint("case000001")
	require.NoError(t, s.CreateComplaint(ctx, c))
	assert.NotZero(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	found, err := s.FindComplaintByCaseID(ctx, "case000001")
	require.NoError(t, err)
	assert.Equal(t, "Dhaka", found.Location)
	assert.Equal(t, "$2a$10$hash", found.PinHash)
	assert.Nil(t, found.EvidenceURL)
}

func TestFindComplaint_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.FindComplaintByCaseID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateComplaint_DuplicateCaseID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateComplaint(ctx, newComplaint("samesame01")))
	err := s.CreateComplaint(ctx, newComplaint("samesame01"))
	assert.ErrorIs(t, err, storage.ErrDuplicateCaseID)
}

func TestListComplaints_NewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"oldest0001", "middle0001", "newest0001"} {
		c := newComplaint(id)
		c.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.CreateComplaint(ctx, c))
	}

	list, err := s.ListComplaints(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newest0001", list[0].CaseID)
	assert.Equal(t, "oldest0001", list[2].CaseID)
}

func TestListComplaints_Empty(t *testing.T) {
	s := newTestStorage(t)

	list, err := s.ListComplaints(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateComplaintStatus(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	require.NoError(t, s.CreateComplaint(ctx, newComplaint("update0001")))

	require.NoError(t, s.UpdateComplaintStatus(ctx, "update0001", "In Review"))
	found, err := s.FindComplaintByCaseID(ctx, "update0001")
	require.NoError(t, err)
	assert.Equal(t, "In Review", found.Status)

	assert.ErrorIs(t, s.UpdateComplaintStatus(ctx, "missing", "Closed"), storage.ErrNotFound)
}

func TestApplyStatusChange(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	require.NoError(t, s.CreateComplaint(ctx, newComplaint("workflow01")))

	entry, err := s.ApplyStatusChange(ctx, storage.StatusChange{
		CaseID:    "workflow01",
		NewStatus: "Resolved",
		AdminID:   1,
		Action:    "Status updated to Resolved",
	})
	require.NoError(t, err)
	assert.Equal(t, "Received", entry.OldStatus)
	assert.Equal(t, "Resolved", entry.NewStatus)

	found, err := s.FindComplaintByCaseID(ctx, "workflow01")
	require.NoError(t, err)
	assert.Equal(t, "Resolved", found.Status)

	logs, err := s.ListAuditLogs(ctx, "workflow01")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, uint(1), logs[0].AdminID)
	assert.Equal(t, "Received", logs[0].OldStatus)
}

// TestApplyStatusChange_SameStatusTwice documents that repeated updates are not deduplicated.
func TestApplyStatusChange_SameStatusTwice(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	require.NoError(t, s.CreateComplaint(ctx, newComplaint("twice00001")))

	change := storage.StatusChange{CaseID: "twice00001", NewStatus: "In Review", AdminID: 2, Action: "Status updated to In Review"}
	_, err := s.ApplyStatusChange(ctx, change)
	require.NoError(t, err)
	_, err = s.ApplyStatusChange(ctx, change)
	require.NoError(t, err)

	logs, err := s.ListAuditLogs(ctx, "twice00001")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "Received", logs[0].OldStatus)
	assert.Equal(t, "In Review", logs[1].OldStatus)
	assert.Equal(t, logs[1].OldStatus, logs[1].NewStatus)
}

func TestApplyStatusChange_NotFound(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.ApplyStatusChange(ctx, storage.StatusChange{CaseID: "ghost00001", NewStatus: "Closed", AdminID: 1})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	logs, err := s.ListAuditLogs(ctx, "ghost00001")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestAdmins(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	admin := &models.Admin{Username: "admin", PasswordHash: "hash", Role: "super_admin"}
	require.NoError(t, s.CreateAdmin(ctx, admin))
	assert.NotZero(t, admin.ID)

	byName, err := s.FindAdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byName.ID)

	byID, err := s.FindAdminByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "super_admin", byID.Role)

	_, err = s.FindAdminByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.FindAdminByID(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = s.CreateAdmin(ctx, &models.Admin{Username: "admin", PasswordHash: "other"})
	assert.ErrorIs(t, err, storage.ErrDuplicateUsername)
}

func TestPing(t *testing.T) {
	s := newTestStorage(t)
	assert.NoError(t, s.Ping(context.Background()))
}
