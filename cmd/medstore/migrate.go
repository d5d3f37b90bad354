package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/app"
	"github.com/Skotchmaster/medstore/internal/events"
	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/pkg/db"
)

func (c *cli) openDB(ctx context.Context) (*gorm.DB, error) {
	if c.cfg.Database.URL == "" {
		return nil, errors.New("database.url (MEDSTORE_DATABASE_URL or DATABASE_URL) is required")
	}
	return app.OpenDatabase(ctx, c.cfg)
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, err := c.openDB(cmd.Context())
			if err != nil {
				return c.fail("db_connect_failed", err)
			}
			defer db.Close(gdb)

			if err := models.AutoMigrate(gdb); err != nil {
				return c.fail("migrate_failed", errors.Wrap(err, "auto migrate"))
			}
			c.log.Info("migrate_done", "tables", len(models.All()))
			return nil
		},
	}
}

func (c *cli) createAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account or promote an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 6 {
				return errors.New("password must be at least 6 characters long")
			}
			if c.cfg.Auth.AccessSecret == "" || c.cfg.Auth.RefreshSecret == "" {
				return errors.New("auth.accessSecret and auth.refreshSecret are required")
			}
			ctx := cmd.Context()
			gdb, err := c.openDB(ctx)
			if err != nil {
				return c.fail("db_connect_failed", err)
			}
			defer db.Close(gdb)

			r := repo.New(gdb)
			auth := app.NewAuthService(c.cfg, r, app.NewTokenService(c.cfg, r), events.Noop{})
			u, err := auth.CreateAdmin(ctx, email, password, name)
			if err != nil {
				return c.fail("create_admin_failed", err)
			}
			c.log.Info("admin_ready", "user_id", u.ID, "email", u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Administrator", "full name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
