package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"complaintbox/backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	exportSheet = "Complaints"
)

// ExportHeader is the column order of every export format.
var ExportHeader = []string{"CaseID", "Category", "Location", "Description", "Status", "CreatedAt"}

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// IsExportFormat reports whether format is supported.
func IsExportFormat(format string) bool {
	return format == FormatCSV || format == FormatXLSX
}

// Export writes complaints to w in the given format.
func Export(w io.Writer, format string, complaints []models.Complaint) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, complaints)
	case FormatXLSX:
		return WriteXLSX(w, complaints)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteCSV writes one header row and one row per complaint.
func WriteCSV(w io.Writer, complaints []models.Complaint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, c := range complaints {
		if err := cw.Write(exportRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same rows as WriteCSV into a single-sheet workbook.
func WriteXLSX(w io.Writer, complaints []models.Complaint) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(ExportHeader)); err != nil {
		return err
	}
	for i, c := range complaints {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(exportRow(c))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

func exportRow(c models.Complaint) []string {
	return []string{
		c.CaseID,
		c.Category,
		c.Location,
		c.Description,
		c.Status,
		c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
