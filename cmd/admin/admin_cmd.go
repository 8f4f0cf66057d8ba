package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/credential"
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"

	"github.com/spf13/cobra"
)

const (
	demoAdminUsername = "admin"
	demoAdminPassword = "admin123"
)

type adminCreator interface {
	CreateAdmin(ctx context.Context, admin *models.Admin) error
}

func newSeedAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the demo super admin (admin / admin123)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			s, closeFn, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			return seedAdmin(cmd.Context(), s, credential.NewHasher(cfg.BcryptCost), cmd.OutOrStdout())
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var username, password, role string

	cmd := &cobra.Command{
		Use:   "create-admin --username <name> --password <password> [--role admin|super_admin]",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			s, closeFn, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			admin, err := createAdmin(cmd.Context(), s, credential.NewHasher(cfg.BcryptCost), username, password, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created (id %d, role %s)\n", admin.Username, admin.ID, admin.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Admin username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (required)")
	cmd.Flags().StringVar(&role, "role", config.RoleAdmin, "Role: admin or super_admin")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// seedAdmin creates the demo super admin. An existing account is reported,
// not treated as a failure.
func seedAdmin(ctx context.Context, s adminCreator, h *credential.Hasher, out io.Writer) error {
	_, err := createAdmin(ctx, s, h, demoAdminUsername, demoAdminPassword, config.RoleSuperAdmin)
	if errors.Is(err, storage.ErrDuplicateUsername) {
		fmt.Fprintln(out, "Admin user already exists")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Demo admin created: username=%s password=%s\n", demoAdminUsername, demoAdminPassword)
	return nil
}

func createAdmin(ctx context.Context, s adminCreator, h *credential.Hasher, username, password, role string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	if len(password) > config.MaxSecretLength {
		return nil, fmt.Errorf("password must be at most %d bytes", config.MaxSecretLength)
	}
	if role != config.RoleAdmin && role != config.RoleSuperAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	hash, err := h.Hash(password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Username: username, PasswordHash: hash, Role: role}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
