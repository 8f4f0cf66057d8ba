package main

import (
	"context"
	"database/sql"
	"fmt"

	"complaintbox/backend/internal/migrations"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect the schema migrations",
	}

	steps := []struct {
		use, short string
		run        func(ctx context.Context, db *sql.DB, log migrations.Logger) error
	}{
		{"up", "Apply all pending migrations", migrations.Up},
		{"down", "Roll back the latest migration", migrations.Down},
		{"status", "Print the state of every migration", migrations.Status},
	}
	for _, step := range steps {
		run := step.run
		cmd.AddCommand(&cobra.Command{
			Use:   step.use,
			Short: step.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrationDB(func(db *sql.DB, log *logrus.Logger) error {
					return run(cmd.Context(), db, log)
				})
			},
		})
	}
	return cmd
}

func withMigrationDB(fn func(db *sql.DB, log *logrus.Logger) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := migrations.Open(cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := fn(db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
