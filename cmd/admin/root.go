package main

import (
	"fmt"
	"os"

	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var envFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "Complaintbox operator tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional env file loaded before the environment")

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedAdminCmd())
	cmd.AddCommand(newCreateAdminCmd())
	cmd.AddCommand(newExportCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func loadConfig() (*config.ToolConfig, *logrus.Logger, error) {
	cfg, err := config.LoadTool(envFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, config.NewLogger(cfg.LogLevel), nil
}

// openStorage connects gorm the same way the server does. The caller closes it.
func openStorage(cfg *config.ToolConfig) (*storage.Service, func(), error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return storage.NewStorageService(db), closeFn, nil
}
