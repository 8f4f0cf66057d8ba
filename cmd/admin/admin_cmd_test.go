package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"complaintbox/backend/internal/credential"
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := storage.NewStorageService(db)
	require.NoError(t, s.AutoMigrate())
	return s
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	s := newTestStorage(t)
	h := credential.NewHasher(bcrypt.MinCost)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, seedAdmin(ctx, s, h, &out))
	assert.Contains(t, out.String(), "Demo admin created")

	admin, err := s.FindAdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "super_admin", admin.Role)
	assert.True(t, h.Verify("admin123", admin.PasswordHash))

	out.Reset()
	require.NoError(t, seedAdmin(ctx, s, h, &out))
	assert.Contains(t, out.String(), "already exists")
}

func TestCreateAdmin_Validation(t *testing.T) {
	s := newTestStorage(t)
	h := credential.NewHasher(bcrypt.MinCost)
	ctx := context.Background()

	_, err := createAdmin(ctx, s, h, "  ", "pw", "admin")
	assert.Error(t, err)
	_, err = createAdmin(ctx, s, h, "ops", "pw", "root")
	assert.ErrorContains(t, err, "unknown role")
	_, err = createAdmin(ctx, s, h, "ops", strings.Repeat("p", 73), "admin")
	assert.Error(t, err)

	admin, err := createAdmin(ctx, s, h, "ops", "s3cret", "admin")
	require.NoError(t, err)
	assert.NotZero(t, admin.ID)

	_, err = createAdmin(ctx, s, h, "ops", "other", "admin")
	assert.ErrorIs(t, err, storage.ErrDuplicateUsername)
}

func TestExportComplaints_CSV(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	require.NoError(t, s.CreateComplaint(ctx, &models.Complaint{
		CaseID: "cli0000001", Category: "Fraud", Location: "Rajshahi", Description: "ledger", Status: "Received",
		PinHash: "x", CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}))

	var out bytes.Buffer
	require.NoError(t, exportComplaints(ctx, s, "csv", &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "CaseID,Category,Location,Description,Status,CreatedAt", lines[0])
	assert.Equal(t, "cli0000001,Fraud,Rajshahi,ledger,Received,2025-01-02T03:04:05Z", lines[1])
}

func TestRootCmd_HasCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"migrate", "seed-admin", "create-admin", "export"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	migrate, _, err := root.Find([]string{"migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", migrate.Name())
}
