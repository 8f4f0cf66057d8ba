package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"complaintbox/backend/internal/analysis"
	"complaintbox/backend/internal/models"

	"github.com/spf13/cobra"
)

type complaintLister interface {
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
}

func newExportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export [--format csv|xlsx] [--out FILE]",
		Short: "Export every complaint, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !analysis.IsExportFormat(format) {
				return fmt.Errorf("invalid --format %q", format)
			}

			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			s, closeFn, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return exportComplaints(cmd.Context(), s, format, w)
		},
	}

	cmd.Flags().StringVar(&format, "format", analysis.FormatCSV, "Export format: csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "-", "Output file, - for stdout")
	return cmd
}

func exportComplaints(ctx context.Context, s complaintLister, format string, w io.Writer) error {
	list, err := s.ListComplaints(ctx)
	if err != nil {
		return err
	}
	return analysis.Export(w, format, list)
}
