package analysis_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"complaintbox/backend/internal/analysis"
	"complaintbox/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture() []models.Complaint {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return []models.Complaint{
		{CaseID: "aaaaaaaaaa", Category: "Fraud", Location: "Chittagong", Description: `He said "pay, or wait"`, Status: "Received", CreatedAt: created},
		{CaseID: "bbbbbbbbbb", Category: "Other", Location: "Dhaka", Description: "line one\nline two", Status: "Closed", CreatedAt: created},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, analysis.WriteCSV(&buf, exportFixture()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"CaseID", "Category", "Location", "Description", "Status", "CreatedAt"}, records[0])
	assert.Equal(t, `He said "pay, or wait"`, records[1][3])
	assert.Equal(t, "line one\nline two", records[2][3])
	assert.Equal(t, "2026-03-01T09:30:00Z", records[1][5])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, analysis.WriteCSV(&buf, nil))
	assert.Equal(t, "CaseID,Category,Location,Description,Status,CreatedAt\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, analysis.WriteXLSX(&buf, exportFixture()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Complaints")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "CaseID", rows[0][0])
	assert.Equal(t, "bbbbbbbbbb", rows[2][0])
	assert.Equal(t, "Closed", rows[2][4])
}

func TestExport_Format(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, analysis.Export(&buf, "pdf", nil))
	assert.True(t, analysis.IsExportFormat("xlsx"))
	assert.False(t, analysis.IsExportFormat("pdf"))
	assert.Equal(t, "text/csv", analysis.ContentType("csv"))
}
